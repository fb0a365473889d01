package health

import (
	"context"
	"database/sql"
	"time"

	"hiremenot/internal/shared/storage/db"
)

const pingTimeout = 2 * time.Second

// Status is the health payload served at /api/v1/health.
type Status struct {
	OK       bool   `json:"ok"`
	Backend  string `json:"backend"`
	Database string `json:"database"`
}

// Service encapsulates health-related checks.
type Service struct {
	DB      *sql.DB
	Backend string
}

// NewService constructs a new health service. A nil DB means the in-memory store is active.
func NewService(database *sql.DB, backend string) *Service {
	return &Service{DB: database, Backend: backend}
}

// Status reports liveness plus database reachability.
func (s *Service) Status(ctx context.Context) Status {
	out := Status{OK: true, Backend: s.Backend, Database: "memory"}
	if s.DB == nil {
		return out
	}
	if err := db.Ping(ctx, s.DB, pingTimeout); err != nil {
		out.OK = false
		out.Database = "unreachable"
		return out
	}
	out.Database = "ok"
	return out
}

package roasts

import "context"

const (
	defaultTopLimit  = 10
	defaultListLimit = 20
	maxListLimit     = 100
)

// Repo persists roasts. IncrementUpvote must be atomic with respect to concurrent callers.
type Repo interface {
	Create(ctx context.Context, resumeText, roastText string) (Roast, error)
	GetByID(ctx context.Context, id string) (Roast, error)
	IncrementUpvote(ctx context.Context, id string) (int, error)
	ListTopRanked(ctx context.Context, limit int) ([]Roast, error)
	ListRecent(ctx context.Context, q ListQuery) ([]Roast, error)
}

func clampLimit(limit, def int) int {
	if limit <= 0 {
		return def
	}
	if limit > maxListLimit {
		return maxListLimit
	}
	return limit
}

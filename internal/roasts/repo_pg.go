package roasts

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/google/uuid"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

const roastColumns = `id, resume_text, roast_text, created_at, upvotes`

// Create inserts a roast; created_at and upvotes come from column defaults.
func (r *PGRepo) Create(ctx context.Context, resumeText, roastText string) (Roast, error) {
	const query = `
INSERT INTO roasts (id, resume_text, roast_text)
VALUES ($1, $2, $3)
RETURNING created_at, upvotes`

	roast := Roast{
		ID:         uuid.NewString(),
		ResumeText: resumeText,
		RoastText:  roastText,
	}
	if err := r.DB.QueryRowContext(ctx, query, roast.ID, resumeText, roastText).Scan(&roast.CreatedAt, &roast.Upvotes); err != nil {
		return Roast{}, err
	}
	roast.CreatedAt = roast.CreatedAt.UTC()
	return roast, nil
}

// GetByID fetches a roast by id.
func (r *PGRepo) GetByID(ctx context.Context, id string) (Roast, error) {
	if !validID(id) {
		return Roast{}, ErrNotFound
	}
	const query = `
SELECT ` + roastColumns + `
FROM roasts
WHERE id = $1`
	roast, err := scanRoast(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Roast{}, ErrNotFound
		}
		return Roast{}, err
	}
	return roast, nil
}

// IncrementUpvote bumps the counter in a single statement so concurrent upvotes are never lost.
func (r *PGRepo) IncrementUpvote(ctx context.Context, id string) (int, error) {
	if !validID(id) {
		return 0, ErrNotFound
	}
	const query = `
UPDATE roasts
SET upvotes = upvotes + 1
WHERE id = $1
RETURNING upvotes`
	var upvotes int
	if err := r.DB.QueryRowContext(ctx, query, id).Scan(&upvotes); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrNotFound
		}
		return 0, err
	}
	return upvotes, nil
}

// ListTopRanked lists roasts by upvotes desc, then newest first.
func (r *PGRepo) ListTopRanked(ctx context.Context, limit int) ([]Roast, error) {
	const query = `
SELECT ` + roastColumns + `
FROM roasts
ORDER BY upvotes DESC, created_at DESC
LIMIT $1`
	rows, err := r.DB.QueryContext(ctx, query, clampLimit(limit, defaultTopLimit))
	if err != nil {
		return nil, err
	}
	return collect(rows)
}

// ListRecent lists roasts newest first with an optional case-insensitive search.
func (r *PGRepo) ListRecent(ctx context.Context, q ListQuery) ([]Roast, error) {
	const listQuery = `
SELECT ` + roastColumns + `
FROM roasts
ORDER BY created_at DESC
LIMIT $1 OFFSET $2`
	const searchQuery = `
SELECT ` + roastColumns + `
FROM roasts
WHERE resume_text ILIKE $3 ESCAPE '\' OR roast_text ILIKE $3 ESCAPE '\'
ORDER BY created_at DESC
LIMIT $1 OFFSET $2`

	limit := clampLimit(q.Limit, defaultListLimit)
	offset := q.Offset
	if offset < 0 {
		offset = 0
	}

	var rows *sql.Rows
	var err error
	if search := strings.TrimSpace(q.Search); search != "" {
		rows, err = r.DB.QueryContext(ctx, searchQuery, limit, offset, likePattern(search))
	} else {
		rows, err = r.DB.QueryContext(ctx, listQuery, limit, offset)
	}
	if err != nil {
		return nil, err
	}
	return collect(rows)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRoast(row rowScanner) (Roast, error) {
	var roast Roast
	if err := row.Scan(&roast.ID, &roast.ResumeText, &roast.RoastText, &roast.CreatedAt, &roast.Upvotes); err != nil {
		return Roast{}, err
	}
	roast.CreatedAt = roast.CreatedAt.UTC()
	return roast, nil
}

func collect(rows *sql.Rows) ([]Roast, error) {
	defer rows.Close()
	out := []Roast{}
	for rows.Next() {
		roast, err := scanRoast(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, roast)
	}
	return out, rows.Err()
}

func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

func likePattern(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(s) + "%"
}

var _ Repo = (*PGRepo)(nil)

package roasts

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
)

var roastCols = []string{"id", "resume_text", "roast_text", "created_at", "upvotes"}

func newMockRepo(t *testing.T) (*PGRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return &PGRepo{DB: db}, mock
}

func TestPGRepoCreateUsesColumnDefaults(t *testing.T) {
	repo, mock := newMockRepo(t)
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	mock.ExpectQuery("INSERT INTO roasts \\(id, resume_text, roast_text\\)").
		WithArgs(sqlmock.AnyArg(), "resume text", "roast text").
		WillReturnRows(sqlmock.NewRows([]string{"created_at", "upvotes"}).AddRow(now, 0))

	roast, err := repo.Create(context.Background(), "resume text", "roast text")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := uuid.Parse(roast.ID); err != nil {
		t.Fatalf("expected uuid id, got %q", roast.ID)
	}
	if !roast.CreatedAt.Equal(now) || roast.Upvotes != 0 {
		t.Fatalf("unexpected roast: %+v", roast)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoGetByID(t *testing.T) {
	repo, mock := newMockRepo(t)
	id := uuid.NewString()
	now := time.Now().UTC()

	mock.ExpectQuery("SELECT id, resume_text, roast_text, created_at, upvotes FROM roasts WHERE id = \\$1").
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows(roastCols).AddRow(id, "resume", "roast", now, 4))

	roast, err := repo.GetByID(context.Background(), id)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if roast.ID != id || roast.Upvotes != 4 || roast.RoastText != "roast" {
		t.Fatalf("unexpected roast: %+v", roast)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoGetByIDNotFound(t *testing.T) {
	repo, mock := newMockRepo(t)
	id := uuid.NewString()

	mock.ExpectQuery("FROM roasts WHERE id = \\$1").
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows(roastCols))

	if _, err := repo.GetByID(context.Background(), id); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := repo.GetByID(context.Background(), "not-a-uuid"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for malformed id, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoIncrementUpvoteIsSingleStatement(t *testing.T) {
	repo, mock := newMockRepo(t)
	id := uuid.NewString()

	mock.ExpectQuery("UPDATE roasts SET upvotes = upvotes \\+ 1 WHERE id = \\$1 RETURNING upvotes").
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows([]string{"upvotes"}).AddRow(7))

	got, err := repo.IncrementUpvote(context.Background(), id)
	if err != nil {
		t.Fatalf("IncrementUpvote: %v", err)
	}
	if got != 7 {
		t.Fatalf("expected 7, got %d", got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoIncrementUpvoteMissing(t *testing.T) {
	repo, mock := newMockRepo(t)
	id := uuid.NewString()

	mock.ExpectQuery("UPDATE roasts SET upvotes = upvotes \\+ 1").
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows([]string{"upvotes"}))

	if _, err := repo.IncrementUpvote(context.Background(), id); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoListTopRanked(t *testing.T) {
	repo, mock := newMockRepo(t)
	now := time.Now().UTC()

	mock.ExpectQuery("ORDER BY upvotes DESC, created_at DESC LIMIT \\$1").
		WithArgs(defaultTopLimit).
		WillReturnRows(sqlmock.NewRows(roastCols).
			AddRow(uuid.NewString(), "a", "roast a", now, 9).
			AddRow(uuid.NewString(), "b", "roast b", now.Add(-time.Hour), 3))

	items, err := repo.ListTopRanked(context.Background(), 0)
	if err != nil {
		t.Fatalf("ListTopRanked: %v", err)
	}
	if len(items) != 2 || items[0].Upvotes != 9 {
		t.Fatalf("unexpected items: %+v", items)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoListRecentSearchEscapesPattern(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery("WHERE resume_text ILIKE \\$3").
		WithArgs(maxListLimit, 5, `%100\%\_done%`).
		WillReturnRows(sqlmock.NewRows(roastCols))

	items, err := repo.ListRecent(context.Background(), ListQuery{Limit: 500, Offset: 5, Search: " 100%_done "})
	if err != nil {
		t.Fatalf("ListRecent: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("expected no items, got %d", len(items))
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

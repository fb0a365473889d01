package roasts

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryRepo is an in-memory implementation of Repo.
type MemoryRepo struct {
	mu   sync.RWMutex
	data map[string]*memoryEntry
	seq  uint64

	// Now overrides the creation clock; nil means time.Now.
	Now func() time.Time
}

type memoryEntry struct {
	roast Roast
	seq   uint64
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		data: make(map[string]*memoryEntry),
	}
}

// Create stores a new roast with a fresh id and zero upvotes.
func (r *MemoryRepo) Create(ctx context.Context, resumeText, roastText string) (Roast, error) {
	if err := ctx.Err(); err != nil {
		return Roast{}, err
	}
	now := time.Now
	if r.Now != nil {
		now = r.Now
	}
	roast := Roast{
		ID:         uuid.NewString(),
		ResumeText: resumeText,
		RoastText:  roastText,
		CreatedAt:  now().UTC(),
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	r.data[roast.ID] = &memoryEntry{roast: roast, seq: r.seq}
	return roast, nil
}

// GetByID returns a roast by id.
func (r *MemoryRepo) GetByID(ctx context.Context, id string) (Roast, error) {
	if err := ctx.Err(); err != nil {
		return Roast{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	entry, ok := r.data[id]
	if !ok {
		return Roast{}, ErrNotFound
	}
	return entry.roast, nil
}

// IncrementUpvote adds one upvote under the write lock and returns the new count.
func (r *MemoryRepo) IncrementUpvote(ctx context.Context, id string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	entry, ok := r.data[id]
	if !ok {
		return 0, ErrNotFound
	}
	entry.roast.Upvotes++
	return entry.roast.Upvotes, nil
}

// ListTopRanked returns roasts by upvotes desc, then newest first.
func (r *MemoryRepo) ListTopRanked(ctx context.Context, limit int) ([]Roast, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	entries := r.snapshot()
	sort.Slice(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.roast.Upvotes != b.roast.Upvotes {
			return a.roast.Upvotes > b.roast.Upvotes
		}
		return newer(a, b)
	})
	return page(entries, clampLimit(limit, defaultTopLimit), 0), nil
}

// ListRecent returns roasts newest first, optionally filtered by a case-insensitive substring.
func (r *MemoryRepo) ListRecent(ctx context.Context, q ListQuery) ([]Roast, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	needle := strings.ToLower(strings.TrimSpace(q.Search))
	all := r.snapshot()
	entries := all[:0]
	for _, e := range all {
		if needle == "" ||
			strings.Contains(strings.ToLower(e.roast.ResumeText), needle) ||
			strings.Contains(strings.ToLower(e.roast.RoastText), needle) {
			entries = append(entries, e)
		}
	}
	sort.Slice(entries, func(i, j int) bool {
		return newer(entries[i], entries[j])
	})
	offset := q.Offset
	if offset < 0 {
		offset = 0
	}
	return page(entries, clampLimit(q.Limit, defaultListLimit), offset), nil
}

func (r *MemoryRepo) snapshot() []memoryEntry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]memoryEntry, 0, len(r.data))
	for _, e := range r.data {
		out = append(out, *e)
	}
	return out
}

func newer(a, b memoryEntry) bool {
	if !a.roast.CreatedAt.Equal(b.roast.CreatedAt) {
		return a.roast.CreatedAt.After(b.roast.CreatedAt)
	}
	return a.seq > b.seq
}

func page(entries []memoryEntry, limit, offset int) []Roast {
	if offset >= len(entries) {
		return []Roast{}
	}
	end := len(entries)
	if offset+limit < end {
		end = offset + limit
	}
	out := make([]Roast, 0, end-offset)
	for _, e := range entries[offset:end] {
		out = append(out, e.roast)
	}
	return out
}

var _ Repo = (*MemoryRepo)(nil)

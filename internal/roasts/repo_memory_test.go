package roasts

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

func TestMemoryRepoCreateAndGet(t *testing.T) {
	repo := NewMemoryRepo()
	ctx := context.Background()

	created, err := repo.Create(ctx, "resume", "roast")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.ID == "" || created.CreatedAt.IsZero() || created.Upvotes != 0 {
		t.Fatalf("unexpected created roast: %+v", created)
	}

	got, err := repo.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got != created {
		t.Fatalf("expected %+v, got %+v", created, got)
	}

	if _, err := repo.GetByID(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestMemoryRepoConcurrentUpvotes(t *testing.T) {
	repo := NewMemoryRepo()
	ctx := context.Background()
	roast, err := repo.Create(ctx, "resume", "roast")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	const k = 64
	var wg sync.WaitGroup
	for i := 0; i < k; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := repo.IncrementUpvote(ctx, roast.ID); err != nil {
				t.Errorf("IncrementUpvote: %v", err)
			}
		}()
	}
	wg.Wait()

	got, err := repo.GetByID(ctx, roast.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Upvotes != k {
		t.Fatalf("expected %d upvotes, got %d", k, got.Upvotes)
	}
}

func TestMemoryRepoUpvoteMissing(t *testing.T) {
	repo := NewMemoryRepo()
	if _, err := repo.IncrementUpvote(context.Background(), "nope"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestMemoryRepoListTopRanked(t *testing.T) {
	repo := NewMemoryRepo()
	ctx := context.Background()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	tick := 0
	repo.Now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Minute)
	}

	oldPopular, _ := repo.Create(ctx, "r1", "old popular")
	newPopular, _ := repo.Create(ctx, "r2", "new popular")
	unloved, _ := repo.Create(ctx, "r3", "unloved")
	top, _ := repo.Create(ctx, "r4", "top")

	for i := 0; i < 2; i++ {
		_, _ = repo.IncrementUpvote(ctx, oldPopular.ID)
		_, _ = repo.IncrementUpvote(ctx, newPopular.ID)
	}
	for i := 0; i < 5; i++ {
		_, _ = repo.IncrementUpvote(ctx, top.ID)
	}

	got, err := repo.ListTopRanked(ctx, 10)
	if err != nil {
		t.Fatalf("ListTopRanked: %v", err)
	}
	want := []string{top.ID, newPopular.ID, oldPopular.ID, unloved.ID}
	if len(got) != len(want) {
		t.Fatalf("expected %d roasts, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i].ID != want[i] {
			t.Fatalf("position %d: expected %s, got %s (%s)", i, want[i], got[i].ID, got[i].RoastText)
		}
	}

	limited, _ := repo.ListTopRanked(ctx, 2)
	if len(limited) != 2 || limited[0].ID != top.ID {
		t.Fatalf("unexpected limited result: %+v", limited)
	}
}

func TestMemoryRepoListRecent(t *testing.T) {
	repo := NewMemoryRepo()
	ctx := context.Background()
	first, _ := repo.Create(ctx, "Python wizard", "A wizard? Of snakes?")
	second, _ := repo.Create(ctx, "Go gopher", "Gophers dig holes, like this resume.")
	third, _ := repo.Create(ctx, "Java bean", "Decaf energy.")

	all, err := repo.ListRecent(ctx, ListQuery{})
	if err != nil {
		t.Fatalf("ListRecent: %v", err)
	}
	if len(all) != 3 || all[0].ID != third.ID || all[2].ID != first.ID {
		t.Fatalf("unexpected order: %+v", all)
	}

	paged, _ := repo.ListRecent(ctx, ListQuery{Limit: 1, Offset: 1})
	if len(paged) != 1 || paged[0].ID != second.ID {
		t.Fatalf("unexpected page: %+v", paged)
	}

	found, _ := repo.ListRecent(ctx, ListQuery{Search: "WIZARD"})
	if len(found) != 1 || found[0].ID != first.ID {
		t.Fatalf("unexpected search result: %+v", found)
	}

	beyond, _ := repo.ListRecent(ctx, ListQuery{Offset: 10})
	if len(beyond) != 0 {
		t.Fatalf("expected empty page, got %d", len(beyond))
	}
}

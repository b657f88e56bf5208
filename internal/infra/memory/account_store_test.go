package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"vocab-progress-service/internal/domain"
)

func TestInsertRejectsDuplicate(t *testing.T) {
	ctx := context.Background()
	store := NewAccountStore()

	if err := store.Insert(ctx, domain.Account{Username: "alice", PasswordHash: "h1"}); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if err := store.Insert(ctx, domain.Account{Username: "alice", PasswordHash: "h2"}); err != domain.ErrUsernameTaken {
		t.Fatalf("expected ErrUsernameTaken, got %v", err)
	}

	acc, err := store.Get(ctx, "alice")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if acc.PasswordHash != "h1" {
		t.Fatalf("duplicate insert mutated the account: %+v", acc)
	}
}

func TestAwardUpdatesStreakAndActivity(t *testing.T) {
	ctx := context.Background()
	store := NewAccountStore()
	_ = store.Insert(ctx, domain.Account{Username: "alice"})

	day1 := time.Date(2024, 11, 21, 10, 0, 0, 0, time.UTC)
	day2 := day1.AddDate(0, 0, 1)

	acc, err := store.Award(ctx, "alice", 5, day1)
	if err != nil {
		t.Fatalf("award: %v", err)
	}
	if acc.XP != 5 || acc.Streak != 1 {
		t.Fatalf("expected xp=5 streak=1, got %+v", acc)
	}

	// Second award the same day keeps the streak flat.
	acc, _ = store.Award(ctx, "alice", 5, day1)
	if acc.XP != 10 || acc.Streak != 1 {
		t.Fatalf("expected xp=10 streak=1, got %+v", acc)
	}

	acc, _ = store.Award(ctx, "alice", 5, day2)
	if acc.XP != 15 || acc.Streak != 2 {
		t.Fatalf("expected xp=15 streak=2, got %+v", acc)
	}
	if !acc.LastActivity.Equal(domain.DateOnly(day2)) {
		t.Fatalf("expected activity stamped %v, got %v", domain.DateOnly(day2), acc.LastActivity)
	}
}

func TestConcurrentAwardsLoseNoUpdate(t *testing.T) {
	ctx := context.Background()
	store := NewAccountStore()
	_ = store.Insert(ctx, domain.Account{Username: "alice", XP: 10})

	today := time.Date(2024, 11, 22, 0, 0, 0, 0, time.UTC)
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := store.Award(ctx, "alice", 5, today); err != nil {
				t.Errorf("award: %v", err)
			}
		}()
	}
	wg.Wait()

	acc, _ := store.Get(ctx, "alice")
	if acc.XP != 20 {
		t.Fatalf("lost update: expected xp=20, got %d", acc.XP)
	}
}

func TestTopOrderingAndClamp(t *testing.T) {
	ctx := context.Background()
	store := NewAccountStore()
	for _, a := range []struct {
		name string
		xp   int
	}{{"b", 30}, {"a", 50}, {"c", 50}, {"d", 10}} {
		_ = store.Insert(ctx, domain.Account{Username: a.name, XP: a.xp})
	}

	rows, err := store.Top(ctx, 2)
	if err != nil {
		t.Fatalf("top: %v", err)
	}
	if len(rows) != 2 || rows[0].Username != "a" || rows[1].Username != "c" {
		t.Fatalf("expected [a c], got %+v", rows)
	}

	rows, _ = store.Top(ctx, 10)
	if len(rows) != 4 {
		t.Fatalf("expected clamp to 4 accounts, got %d", len(rows))
	}

	rows, err = store.Top(ctx, -1)
	if err != nil {
		t.Fatalf("top with negative n: %v", err)
	}
	if len(rows) != 4 {
		t.Fatalf("expected negative n to return all rows, got %d", len(rows))
	}
}

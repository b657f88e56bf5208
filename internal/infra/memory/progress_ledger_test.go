package memory

import (
	"context"
	"testing"
	"time"

	"vocab-progress-service/internal/domain"
)

func TestUpsertTodayIsIdempotent(t *testing.T) {
	ctx := context.Background()
	ledger := NewProgressLedger()
	day := time.Date(2024, 11, 22, 0, 0, 0, 0, time.UTC)

	rec := domain.ProgressRecord{Date: day, XP: 15, Streak: 3}
	if err := ledger.UpsertToday(ctx, rec); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if err := ledger.UpsertToday(ctx, rec); err != nil {
		t.Fatalf("second upsert: %v", err)
	}

	latest, ok, err := ledger.Latest(ctx)
	if err != nil || !ok {
		t.Fatalf("latest: ok=%v err=%v", ok, err)
	}
	if latest.XP != 15 || latest.Streak != 3 {
		t.Fatalf("expected single record 15/3, got %+v", latest)
	}
}

func TestUpsertTodayNeverLowersXP(t *testing.T) {
	ctx := context.Background()
	ledger := NewProgressLedger()
	day := time.Date(2024, 11, 22, 0, 0, 0, 0, time.UTC)

	_ = ledger.UpsertToday(ctx, domain.ProgressRecord{Date: day, XP: 10, Streak: 2})
	// A stale lower-XP snapshot committing late must not roll the row back.
	if err := ledger.UpsertToday(ctx, domain.ProgressRecord{Date: day, XP: 5, Streak: 2}); err != nil {
		t.Fatalf("stale upsert: %v", err)
	}

	latest, ok, _ := ledger.Latest(ctx)
	if !ok || latest.XP != 10 {
		t.Fatalf("expected row to keep xp=10, got %+v", latest)
	}

	// Higher XP still replaces.
	_ = ledger.UpsertToday(ctx, domain.ProgressRecord{Date: day, XP: 15, Streak: 2})
	latest, _, _ = ledger.Latest(ctx)
	if latest.XP != 15 {
		t.Fatalf("expected row to advance to xp=15, got %+v", latest)
	}
}

func TestLatestPicksMostRecentDate(t *testing.T) {
	ctx := context.Background()
	ledger := NewProgressLedger()
	day1 := time.Date(2024, 11, 21, 0, 0, 0, 0, time.UTC)
	day2 := day1.AddDate(0, 0, 1)

	_ = ledger.UpsertToday(ctx, domain.ProgressRecord{Date: day2, XP: 20, Streak: 2})
	_ = ledger.UpsertToday(ctx, domain.ProgressRecord{Date: day1, XP: 15, Streak: 1})

	latest, ok, _ := ledger.Latest(ctx)
	if !ok || !latest.Date.Equal(day2) {
		t.Fatalf("expected latest=%v, got %+v", day2, latest)
	}
}

func TestLatestEmpty(t *testing.T) {
	_, ok, err := NewProgressLedger().Latest(context.Background())
	if err != nil || ok {
		t.Fatalf("expected empty ledger, ok=%v err=%v", ok, err)
	}
}

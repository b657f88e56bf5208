package domain

import (
	"testing"
	"time"
)

func TestNextStreak(t *testing.T) {
	today := time.Date(2024, 11, 22, 15, 4, 5, 0, time.UTC)
	yesterday := today.AddDate(0, 0, -1)
	twoDaysAgo := today.AddDate(0, 0, -2)

	if got := NextStreak(time.Time{}, today, 0); got != 1 {
		t.Fatalf("first activity: expected streak 1, got %d", got)
	}
	if got := NextStreak(yesterday, today, 4); got != 5 {
		t.Fatalf("consecutive day: expected streak 5, got %d", got)
	}
	if got := NextStreak(twoDaysAgo, today, 9); got != 1 {
		t.Fatalf("gap: expected streak reset to 1, got %d", got)
	}
	if got := NextStreak(today, today, 3); got != 3 {
		t.Fatalf("same day: expected streak unchanged at 3, got %d", got)
	}
}

func TestNextStreakIgnoresTimeOfDay(t *testing.T) {
	lastNight := time.Date(2024, 11, 21, 23, 59, 0, 0, time.UTC)
	thisMorning := time.Date(2024, 11, 22, 0, 1, 0, 0, time.UTC)
	if got := NextStreak(lastNight, thisMorning, 2); got != 3 {
		t.Fatalf("expected calendar-day comparison to yield 3, got %d", got)
	}
}

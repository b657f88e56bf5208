package domain

import "time"

// NextStreak computes the streak length after activity on today.
// lastActivity is the date of the most recent prior activity (zero when the
// account has never been active). The caller is responsible for stamping
// lastActivity=today in the same write that persists the result.
func NextStreak(lastActivity, today time.Time, current int) int {
	if lastActivity.IsZero() {
		return 1
	}
	last := DateOnly(lastActivity)
	day := DateOnly(today)
	switch {
	case last.Equal(day):
		// Already credited today; never double-increment.
		return current
	case last.AddDate(0, 0, 1).Equal(day):
		return current + 1
	default:
		return 1
	}
}

package memory

import (
	"context"
	"sort"
	"sync"

	"vocab-progress-service/internal/domain"
)

const dateKey = "2006-01-02"

// ProgressLedger is an in-memory implementation of app.ProgressRepository,
// keyed by calendar date.
type ProgressLedger struct {
	mu      sync.RWMutex
	records map[string]domain.ProgressRecord
}

func NewProgressLedger() *ProgressLedger {
	return &ProgressLedger{records: make(map[string]domain.ProgressRecord)}
}

func (l *ProgressLedger) UpsertToday(_ context.Context, rec domain.ProgressRecord) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	rec.Date = domain.DateOnly(rec.Date)
	key := rec.Date.Format(dateKey)
	// Monotonic per date: a late-committing lower-XP snapshot must not
	// overwrite a fresher one.
	if existing, ok := l.records[key]; ok && existing.XP > rec.XP {
		return nil
	}
	l.records[key] = rec
	return nil
}

func (l *ProgressLedger) Latest(_ context.Context) (domain.ProgressRecord, bool, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if len(l.records) == 0 {
		return domain.ProgressRecord{}, false, nil
	}
	keys := make([]string, 0, len(l.records))
	for k := range l.records {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return l.records[keys[len(keys)-1]], true, nil
}

func sortRows(rows []domain.LeaderboardRow) {
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].XP != rows[j].XP {
			return rows[i].XP > rows[j].XP
		}
		return rows[i].Username < rows[j].Username
	})
}

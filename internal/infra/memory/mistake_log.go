package memory

import (
	"context"
	"sync"

	"vocab-progress-service/internal/domain"
)

// MistakeLog is an in-memory, append-only implementation of app.MistakeRepository.
type MistakeLog struct {
	mu      sync.RWMutex
	entries []domain.MistakeEntry
}

func NewMistakeLog() *MistakeLog {
	return &MistakeLog{}
}

func (l *MistakeLog) Append(_ context.Context, entry domain.MistakeEntry) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, entry)
	return nil
}

// Recent returns up to n entries, newest first.
func (l *MistakeLog) Recent(_ context.Context, n int) ([]domain.MistakeEntry, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if n > len(l.entries) {
		n = len(l.entries)
	}
	out := make([]domain.MistakeEntry, 0, n)
	for i := len(l.entries) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, l.entries[i])
	}
	return out, nil
}

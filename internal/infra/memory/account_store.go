package memory

import (
	"context"
	"sync"
	"time"

	"vocab-progress-service/internal/domain"
)

// AccountStore is an in-memory implementation of app.AccountRepository.
// The store mutex spans every read-compute-write, so concurrent awards for
// the same account serialize instead of losing updates.
type AccountStore struct {
	mu       sync.Mutex
	accounts map[string]*domain.Account
}

func NewAccountStore() *AccountStore {
	return &AccountStore{accounts: make(map[string]*domain.Account)}
}

func (s *AccountStore) Insert(_ context.Context, acc domain.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.accounts[acc.Username]; ok {
		return domain.ErrUsernameTaken
	}
	copied := acc
	s.accounts[acc.Username] = &copied
	return nil
}

func (s *AccountStore) Get(_ context.Context, username string) (domain.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	acc, ok := s.accounts[username]
	if !ok {
		return domain.Account{}, domain.ErrAccountNotFound
	}
	return *acc, nil
}

func (s *AccountStore) Award(_ context.Context, username string, delta int, today time.Time) (domain.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	acc, ok := s.accounts[username]
	if !ok {
		return domain.Account{}, domain.ErrAccountNotFound
	}
	acc.XP += delta
	acc.Streak = domain.NextStreak(acc.LastActivity, today, acc.Streak)
	acc.LastActivity = domain.DateOnly(today)
	return *acc, nil
}

func (s *AccountStore) Top(_ context.Context, n int) ([]domain.LeaderboardRow, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rows := make([]domain.LeaderboardRow, 0, len(s.accounts))
	for _, acc := range s.accounts {
		rows = append(rows, domain.LeaderboardRow{Username: acc.Username, XP: acc.XP})
	}
	sortRows(rows)
	if n >= 0 && n < len(rows) {
		rows = rows[:n]
	}
	return rows, nil
}

package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"vocab-progress-service/internal/domain"
)

// AccountStore is the Postgres implementation of app.AccountRepository.
type AccountStore struct {
	pool *pgxpool.Pool
}

func NewAccountStore(pool *pgxpool.Pool) *AccountStore {
	return &AccountStore{pool: pool}
}

func (s *AccountStore) Insert(ctx context.Context, acc domain.Account) error {
	tag, err := s.pool.Exec(ctx,
		`INSERT INTO accounts (username, password_hash, xp, streak)
		 VALUES ($1, $2, 0, 0)
		 ON CONFLICT (username) DO NOTHING`,
		acc.Username, acc.PasswordHash)
	if err != nil {
		return fmt.Errorf("insert account: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUsernameTaken
	}
	return nil
}

func (s *AccountStore) Get(ctx context.Context, username string) (domain.Account, error) {
	return scanAccount(s.pool.QueryRow(ctx,
		`SELECT username, password_hash, xp, streak, last_activity
		 FROM accounts WHERE username=$1`, username))
}

// Award runs the whole read-compute-write inside one transaction with a row
// lock, so concurrent awards for the same account serialize. XP, streak and
// the activity date commit together or not at all.
func (s *AccountStore) Award(ctx context.Context, username string, delta int, today time.Time) (domain.Account, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return domain.Account{}, fmt.Errorf("begin award: %w", err)
	}
	defer tx.Rollback(ctx)

	acc, err := scanAccount(tx.QueryRow(ctx,
		`SELECT username, password_hash, xp, streak, last_activity
		 FROM accounts WHERE username=$1 FOR UPDATE`, username))
	if err != nil {
		return domain.Account{}, err
	}

	acc.XP += delta
	acc.Streak = domain.NextStreak(acc.LastActivity, today, acc.Streak)
	acc.LastActivity = domain.DateOnly(today)

	if _, err := tx.Exec(ctx,
		`UPDATE accounts SET xp=$1, streak=$2, last_activity=$3 WHERE username=$4`,
		acc.XP, acc.Streak, acc.LastActivity, acc.Username); err != nil {
		return domain.Account{}, fmt.Errorf("update account: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return domain.Account{}, fmt.Errorf("commit award: %w", err)
	}
	return acc, nil
}

func (s *AccountStore) Top(ctx context.Context, n int) ([]domain.LeaderboardRow, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT username, xp FROM accounts ORDER BY xp DESC, username ASC LIMIT $1`, n)
	if err != nil {
		return nil, fmt.Errorf("query leaderboard: %w", err)
	}
	defer rows.Close()

	var out []domain.LeaderboardRow
	for rows.Next() {
		var row domain.LeaderboardRow
		if err := rows.Scan(&row.Username, &row.XP); err != nil {
			return nil, fmt.Errorf("scan leaderboard row: %w", err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

func scanAccount(row pgx.Row) (domain.Account, error) {
	var acc domain.Account
	var last *time.Time
	err := row.Scan(&acc.Username, &acc.PasswordHash, &acc.XP, &acc.Streak, &last)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Account{}, domain.ErrAccountNotFound
	}
	if err != nil {
		return domain.Account{}, fmt.Errorf("scan account: %w", err)
	}
	if last != nil {
		acc.LastActivity = domain.DateOnly(*last)
	}
	return acc, nil
}

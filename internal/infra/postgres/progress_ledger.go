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

// ProgressLedger is the Postgres implementation of app.ProgressRepository.
// The date column is the primary key, so writes are true upserts.
type ProgressLedger struct {
	pool *pgxpool.Pool
}

func NewProgressLedger(pool *pgxpool.Pool) *ProgressLedger {
	return &ProgressLedger{pool: pool}
}

func (l *ProgressLedger) UpsertToday(ctx context.Context, rec domain.ProgressRecord) error {
	// The WHERE guard keeps the row monotonic per date: a snapshot that
	// commits after a higher-XP one becomes a no-op instead of rolling the
	// trail back.
	_, err := l.pool.Exec(ctx,
		`INSERT INTO progress (date, xp, streak) VALUES ($1, $2, $3)
		 ON CONFLICT (date) DO UPDATE SET xp=EXCLUDED.xp, streak=EXCLUDED.streak
		 WHERE progress.xp <= EXCLUDED.xp`,
		domain.DateOnly(rec.Date), rec.XP, rec.Streak)
	if err != nil {
		return fmt.Errorf("upsert progress: %w", err)
	}
	return nil
}

func (l *ProgressLedger) Latest(ctx context.Context) (domain.ProgressRecord, bool, error) {
	var rec domain.ProgressRecord
	var date time.Time
	err := l.pool.QueryRow(ctx,
		`SELECT date, xp, streak FROM progress ORDER BY date DESC LIMIT 1`).
		Scan(&date, &rec.XP, &rec.Streak)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ProgressRecord{}, false, nil
	}
	if err != nil {
		return domain.ProgressRecord{}, false, fmt.Errorf("query latest progress: %w", err)
	}
	rec.Date = domain.DateOnly(date)
	return rec, true, nil
}

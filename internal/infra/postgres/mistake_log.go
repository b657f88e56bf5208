package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v4/pgxpool"

	"vocab-progress-service/internal/domain"
)

// MistakeLog is the Postgres implementation of app.MistakeRepository.
type MistakeLog struct {
	pool *pgxpool.Pool
}

func NewMistakeLog(pool *pgxpool.Pool) *MistakeLog {
	return &MistakeLog{pool: pool}
}

func (l *MistakeLog) Append(ctx context.Context, entry domain.MistakeEntry) error {
	_, err := l.pool.Exec(ctx,
		`INSERT INTO mistakes (username, question, submitted, correct) VALUES ($1, $2, $3, $4)`,
		entry.Username, entry.Question, entry.Submitted, entry.Correct)
	if err != nil {
		return fmt.Errorf("append mistake: %w", err)
	}
	return nil
}

func (l *MistakeLog) Recent(ctx context.Context, n int) ([]domain.MistakeEntry, error) {
	rows, err := l.pool.Query(ctx,
		`SELECT username, question, submitted, correct FROM mistakes ORDER BY id DESC LIMIT $1`, n)
	if err != nil {
		return nil, fmt.Errorf("query mistakes: %w", err)
	}
	defer rows.Close()

	var out []domain.MistakeEntry
	for rows.Next() {
		var entry domain.MistakeEntry
		if err := rows.Scan(&entry.Username, &entry.Question, &entry.Submitted, &entry.Correct); err != nil {
			return nil, fmt.Errorf("scan mistake: %w", err)
		}
		out = append(out, entry)
	}
	return out, rows.Err()
}

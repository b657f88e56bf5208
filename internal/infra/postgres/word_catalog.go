package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"vocab-progress-service/internal/domain"
)

// WordCatalog loads word records from the words table, seeded by migration.
// It satisfies both content.WordCatalog and the redis/memory WordLoader
// interfaces, so it can sit behind a cache.
type WordCatalog struct {
	pool *pgxpool.Pool
}

func NewWordCatalog(pool *pgxpool.Pool) *WordCatalog {
	return &WordCatalog{pool: pool}
}

func (c *WordCatalog) LoadWord(ctx context.Context, text string) (domain.Word, error) {
	word := domain.Word{Text: text}
	err := c.pool.QueryRow(ctx,
		`SELECT meaning, example FROM words WHERE text=$1`, text).
		Scan(&word.Meaning, &word.Example)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Word{}, domain.ErrNoWordAvailable
	}
	if err != nil {
		return domain.Word{}, fmt.Errorf("load word: %w", err)
	}
	return word, nil
}

func (c *WordCatalog) WordTexts(ctx context.Context) ([]string, error) {
	rows, err := c.pool.Query(ctx, `SELECT text FROM words ORDER BY text`)
	if err != nil {
		return nil, fmt.Errorf("query word texts: %w", err)
	}
	defer rows.Close()

	var texts []string
	for rows.Next() {
		var text string
		if err := rows.Scan(&text); err != nil {
			return nil, fmt.Errorf("scan word text: %w", err)
		}
		texts = append(texts, text)
	}
	return texts, rows.Err()
}

func (c *WordCatalog) Texts(ctx context.Context) ([]string, error) {
	return c.WordTexts(ctx)
}

func (c *WordCatalog) Lookup(ctx context.Context, text string) (domain.Word, error) {
	return c.LoadWord(ctx, text)
}

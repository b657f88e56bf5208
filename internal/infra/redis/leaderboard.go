package redis

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"vocab-progress-service/internal/domain"
)

const leaderboardKey = "progress:leaderboard"

// Leaderboard mirrors account XP into a Redis sorted set so Top reads do not
// scan the account table. It implements app.LeaderboardMirror.
type Leaderboard struct {
	client *redis.Client
}

func NewLeaderboard(client *redis.Client) *Leaderboard {
	return &Leaderboard{client: client}
}

// Record sets the member's score to the current XP total.
func (l *Leaderboard) Record(ctx context.Context, username string, xp int) error {
	if err := l.client.ZAdd(ctx, leaderboardKey, redis.Z{Score: float64(xp), Member: username}).Err(); err != nil {
		return fmt.Errorf("leaderboard zadd: %w", err)
	}
	return nil
}

// Top returns up to n members by score descending. Ties come back in zset
// member order; the service re-sorts with its username tie-break.
func (l *Leaderboard) Top(ctx context.Context, n int) ([]domain.LeaderboardRow, error) {
	if n <= 0 {
		return nil, nil
	}
	entries, err := l.client.ZRevRangeWithScores(ctx, leaderboardKey, 0, int64(n-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("leaderboard zrevrange: %w", err)
	}
	rows := make([]domain.LeaderboardRow, 0, len(entries))
	for _, e := range entries {
		name, ok := e.Member.(string)
		if !ok {
			continue
		}
		rows = append(rows, domain.LeaderboardRow{Username: name, XP: int(e.Score)})
	}
	return rows, nil
}

// Seed repopulates the sorted set from an authoritative row set, used at
// startup so the mirror survives redis restarts.
func (l *Leaderboard) Seed(ctx context.Context, rows []domain.LeaderboardRow) error {
	if len(rows) == 0 {
		return nil
	}
	members := make([]redis.Z, 0, len(rows))
	for _, r := range rows {
		members = append(members, redis.Z{Score: float64(r.XP), Member: r.Username})
	}
	if err := l.client.ZAdd(ctx, leaderboardKey, members...).Err(); err != nil {
		return fmt.Errorf("leaderboard seed: %w", err)
	}
	return nil
}

package redis

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"

	"vocab-progress-service/internal/domain"
)

// WordLoader fetches word records from a backing store (e.g. postgres).
type WordLoader interface {
	LoadWord(ctx context.Context, text string) (domain.Word, error)
	WordTexts(ctx context.Context) ([]string, error)
}

// WordCache caches word definitions in Redis (hash per word) and falls back
// to a loader on cache miss. Records are stored as:
// HSET word:{text} meaning {meaning} example {example}
type WordCache struct {
	client *redis.Client
	loader WordLoader
	ttl    time.Duration
	sf     singleflight.Group

	rndMu sync.Mutex
	rnd   *rand.Rand
}

func NewWordCache(client *redis.Client, loader WordLoader, ttl time.Duration) *WordCache {
	return &WordCache{
		client: client,
		loader: loader,
		ttl:    ttl,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (c *WordCache) Texts(ctx context.Context) ([]string, error) {
	return c.loader.WordTexts(ctx)
}

func (c *WordCache) Lookup(ctx context.Context, text string) (domain.Word, error) {
	key := c.key(text)

	fields, err := c.client.HGetAll(ctx, key).Result()
	if err == nil && len(fields) > 0 {
		return wordFromFields(text, fields), nil
	}

	result, err, _ := c.sf.Do(text, func() (interface{}, error) {
		// Re-check cache in case another goroutine filled it.
		fields, err := c.client.HGetAll(ctx, key).Result()
		if err == nil && len(fields) > 0 {
			return wordFromFields(text, fields), nil
		}

		word, err := c.loader.LoadWord(ctx, text)
		if err != nil {
			return domain.Word{}, err
		}

		pipe := c.client.Pipeline()
		pipe.HSet(ctx, key, "meaning", word.Meaning, "example", word.Example)
		if ttl := c.ttlWithJitter(); ttl > 0 {
			pipe.Expire(ctx, key, ttl)
		}
		_, _ = pipe.Exec(ctx)

		return word, nil
	})
	if err != nil {
		return domain.Word{}, err
	}
	return result.(domain.Word), nil
}

func (c *WordCache) key(text string) string {
	return "word:" + text
}

func wordFromFields(text string, fields map[string]string) domain.Word {
	return domain.Word{
		Text:    text,
		Meaning: fields["meaning"],
		Example: fields["example"],
	}
}

func (c *WordCache) ttlWithJitter() time.Duration {
	if c.ttl <= 0 {
		return 0
	}
	// singleflight only serializes per key, so the shared rand needs its
	// own lock
	jitterMax := int64(c.ttl) / 10
	c.rndMu.Lock()
	defer c.rndMu.Unlock()
	return c.ttl + time.Duration(c.rnd.Int63n(jitterMax+1))
}

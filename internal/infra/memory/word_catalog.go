package memory

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"vocab-progress-service/internal/domain"
)

// WordLoader fetches word records from a backing store (e.g. postgres).
type WordLoader interface {
	LoadWord(ctx context.Context, text string) (domain.Word, error)
	WordTexts(ctx context.Context) ([]string, error)
}

// StaticWordCatalog serves a fixed pool of words. It implements both
// content.WordCatalog and WordLoader, so it works standalone or behind a
// cache.
type StaticWordCatalog struct {
	texts []string
	words map[string]domain.Word
}

func NewStaticWordCatalog(words []domain.Word) *StaticWordCatalog {
	c := &StaticWordCatalog{words: make(map[string]domain.Word, len(words))}
	for _, w := range words {
		c.texts = append(c.texts, w.Text)
		c.words[w.Text] = w
	}
	return c
}

func (c *StaticWordCatalog) Texts(_ context.Context) ([]string, error) {
	out := make([]string, len(c.texts))
	copy(out, c.texts)
	return out, nil
}

func (c *StaticWordCatalog) Lookup(_ context.Context, text string) (domain.Word, error) {
	if w, ok := c.words[text]; ok {
		return w, nil
	}
	return domain.Word{}, domain.ErrNoWordAvailable
}

func (c *StaticWordCatalog) LoadWord(ctx context.Context, text string) (domain.Word, error) {
	return c.Lookup(ctx, text)
}

func (c *StaticWordCatalog) WordTexts(ctx context.Context) ([]string, error) {
	return c.Texts(ctx)
}

// WordCache caches word lookups with TTL to avoid repeated backing-store hits.
type WordCache struct {
	loader WordLoader
	ttl    time.Duration
	clock  func() time.Time
	sf     singleflight.Group

	rndMu sync.Mutex
	rnd   *rand.Rand

	mu    sync.RWMutex
	cache map[string]cachedWord
}

type cachedWord struct {
	word      domain.Word
	expiresAt time.Time
}

func NewWordCache(loader WordLoader, ttl time.Duration) *WordCache {
	return &WordCache{
		loader: loader,
		ttl:    ttl,
		clock:  time.Now,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
		cache:  make(map[string]cachedWord),
	}
}

func (c *WordCache) Texts(ctx context.Context) ([]string, error) {
	return c.loader.WordTexts(ctx)
}

func (c *WordCache) Lookup(ctx context.Context, text string) (domain.Word, error) {
	now := c.clock()

	c.mu.RLock()
	if entry, ok := c.cache[text]; ok && entry.expiresAt.After(now) {
		c.mu.RUnlock()
		return entry.word, nil
	}
	c.mu.RUnlock()

	result, err, _ := c.sf.Do(text, func() (interface{}, error) {
		now := c.clock()
		c.mu.RLock()
		if entry, ok := c.cache[text]; ok && entry.expiresAt.After(now) {
			c.mu.RUnlock()
			return entry.word, nil
		}
		c.mu.RUnlock()

		word, err := c.loader.LoadWord(ctx, text)
		if err != nil {
			return domain.Word{}, err
		}

		c.mu.Lock()
		c.cache[text] = cachedWord{
			word:      word,
			expiresAt: now.Add(c.ttlWithJitter()),
		}
		c.mu.Unlock()
		return word, nil
	})
	if err != nil {
		return domain.Word{}, err
	}
	return result.(domain.Word), nil
}

func (c *WordCache) ttlWithJitter() time.Duration {
	if c.ttl <= 0 {
		return 0
	}
	// add up to 10% jitter to spread expirations; singleflight only
	// serializes per key, so the shared rand needs its own lock
	jitterMax := int64(c.ttl) / 10
	c.rndMu.Lock()
	defer c.rndMu.Unlock()
	return c.ttl + time.Duration(c.rnd.Int63n(jitterMax+1))
}

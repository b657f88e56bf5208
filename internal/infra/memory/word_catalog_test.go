package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"vocab-progress-service/internal/content"
	"vocab-progress-service/internal/domain"
)

func TestWordCacheAvoidsRepeatLoads(t *testing.T) {
	loader := &countingLoader{
		WordLoader: NewStaticWordCatalog(content.BuiltinWords()),
	}
	cache := NewWordCache(loader, time.Minute)

	if _, err := cache.Lookup(context.Background(), "apple"); err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if loader.calls != 1 {
		t.Fatalf("expected loader once, got %d", loader.calls)
	}

	if _, err := cache.Lookup(context.Background(), "apple"); err != nil {
		t.Fatalf("lookup 2: %v", err)
	}
	if loader.calls != 1 {
		t.Fatalf("expected cache hit, loader calls %d", loader.calls)
	}
}

// Concurrent misses on distinct words run their fill callbacks in parallel,
// since singleflight collapses per key only. The shared jitter source must
// tolerate that.
func TestWordCacheConcurrentMissesOnDistinctWords(t *testing.T) {
	cache := NewWordCache(NewStaticWordCatalog(content.BuiltinWords()), time.Minute)

	var wg sync.WaitGroup
	for _, w := range []string{"apple", "run", "book", "happy", "dog", "candid"} {
		wg.Add(1)
		go func(text string) {
			defer wg.Done()
			if _, err := cache.Lookup(context.Background(), text); err != nil {
				t.Errorf("lookup %q: %v", text, err)
			}
		}(w)
	}
	wg.Wait()
}

func TestStaticCatalogUnknownWord(t *testing.T) {
	catalog := NewStaticWordCatalog(content.BuiltinWords())
	if _, err := catalog.Lookup(context.Background(), "nonesuch"); err != domain.ErrNoWordAvailable {
		t.Fatalf("expected ErrNoWordAvailable, got %v", err)
	}
}

type countingLoader struct {
	WordLoader
	calls int
}

func (l *countingLoader) LoadWord(ctx context.Context, text string) (domain.Word, error) {
	l.calls++
	return l.WordLoader.LoadWord(ctx, text)
}

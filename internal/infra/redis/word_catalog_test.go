package redis

import (
	"context"
	"sync"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"

	"vocab-progress-service/internal/content"
	"vocab-progress-service/internal/domain"
	"vocab-progress-service/internal/infra/memory"
)

func TestWordCacheCachesInRedis(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	loader := &countingLoader{
		WordLoader: memory.NewStaticWordCatalog(content.BuiltinWords()),
	}
	cache := NewWordCache(newClient(mr), loader, time.Minute)

	word, err := cache.Lookup(context.Background(), "candid")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if word.Meaning == "" {
		t.Fatalf("expected meaning, got %+v", word)
	}
	if loader.calls != 1 {
		t.Fatalf("expected loader called once, got %d", loader.calls)
	}
	if !mr.Exists("word:candid") {
		t.Fatalf("expected redis hash to be set")
	}

	// Second call should hit cache, loader not incremented.
	again, _ := cache.Lookup(context.Background(), "candid")
	if loader.calls != 1 {
		t.Fatalf("expected cache hit, loader calls=%d", loader.calls)
	}
	if again.Meaning != word.Meaning {
		t.Fatalf("cache returned different meaning: %q vs %q", again.Meaning, word.Meaning)
	}
}

// Misses on distinct words fill in parallel; the shared jitter source must
// tolerate that.
func TestWordCacheConcurrentMissesOnDistinctWords(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	cache := NewWordCache(newClient(mr), memory.NewStaticWordCatalog(content.BuiltinWords()), time.Minute)

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

type countingLoader struct {
	memory.WordLoader
	calls int
}

func (l *countingLoader) LoadWord(ctx context.Context, text string) (domain.Word, error) {
	l.calls++
	return l.WordLoader.LoadWord(ctx, text)
}

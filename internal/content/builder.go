package content

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"vocab-progress-service/internal/domain"
)

// vocabularyChoices is how many meanings a vocabulary question offers.
const vocabularyChoices = 4

// WordCatalog supplies the vocabulary pool and per-word definitions.
type WordCatalog interface {
	Texts(ctx context.Context) ([]string, error)
	Lookup(ctx context.Context, text string) (domain.Word, error)
}

// Builder assembles question instances from static content. It implements
// app.QuestionSource.
type Builder struct {
	catalog WordCatalog
	grammar []grammarItem

	mu  sync.Mutex
	rnd *rand.Rand
}

func NewBuilder(catalog WordCatalog) *Builder {
	return &Builder{
		catalog: catalog,
		grammar: builtinGrammar(),
		rnd:     rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Next returns a freshly assembled question for the requested mode.
func (b *Builder) Next(ctx context.Context, kind domain.QuestionKind) (domain.Question, error) {
	switch kind {
	case domain.KindVocabulary:
		return b.vocabulary(ctx)
	case domain.KindGrammar:
		return b.grammarQuestion(), nil
	default:
		return domain.Question{}, fmt.Errorf("%w: %q", domain.ErrUnknownQuestionKind, kind)
	}
}

// vocabulary picks a word and offers its meaning among distractor meanings
// drawn from the rest of the pool. Words without a resolvable definition are
// skipped rather than surfaced to the learner.
func (b *Builder) vocabulary(ctx context.Context) (domain.Question, error) {
	texts, err := b.catalog.Texts(ctx)
	if err != nil {
		return domain.Question{}, err
	}
	if len(texts) == 0 {
		return domain.Question{}, domain.ErrNoWordAvailable
	}

	order := b.shuffledIndexes(len(texts))

	var word domain.Word
	found := false
	rest := make([]string, 0, len(texts)-1)
	for i, idx := range order {
		w, lerr := b.catalog.Lookup(ctx, texts[idx])
		if lerr == nil && w.Meaning != "" {
			word = w
			found = true
			for _, j := range order[i+1:] {
				rest = append(rest, texts[j])
			}
			break
		}
	}
	if !found {
		return domain.Question{}, domain.ErrNoWordAvailable
	}

	options := []string{word.Meaning}
	seen := map[string]bool{word.Meaning: true}
	for _, text := range rest {
		if len(options) == vocabularyChoices {
			break
		}
		w, lerr := b.catalog.Lookup(ctx, text)
		if lerr != nil || w.Meaning == "" || seen[w.Meaning] {
			continue
		}
		seen[w.Meaning] = true
		options = append(options, w.Meaning)
	}
	if len(options) < 2 {
		return domain.Question{}, domain.ErrNoWordAvailable
	}
	b.shuffle(options)

	return domain.Question{
		Kind:    domain.KindVocabulary,
		Prompt:  word.Text,
		Options: options,
		Answer:  word.Meaning,
	}, nil
}

func (b *Builder) grammarQuestion() domain.Question {
	b.mu.Lock()
	item := b.grammar[b.rnd.Intn(len(b.grammar))]
	b.mu.Unlock()

	options := make([]string, len(item.options))
	copy(options, item.options)
	b.shuffle(options)

	return domain.Question{
		Kind:    domain.KindGrammar,
		Prompt:  item.prompt,
		Options: options,
		Answer:  item.answer,
	}
}

func (b *Builder) shuffledIndexes(n int) []int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.rnd.Perm(n)
}

func (b *Builder) shuffle(s []string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.rnd.Shuffle(len(s), func(i, j int) { s[i], s[j] = s[j], s[i] })
}

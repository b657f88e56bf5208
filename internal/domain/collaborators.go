package domain

import "context"

// WordProvider supplies word definitions. Implementations live outside the
// engine; the built-in catalog in infra/memory covers the bundled pool.
type WordProvider interface {
	Fetch(ctx context.Context, text string) (Word, error)
}

// SpeechSynth renders text to audio. Consumed by the UI layer only; the
// engine never calls it.
type SpeechSynth interface {
	Speak(ctx context.Context, text string) ([]byte, error)
}

// Translator converts text to a target language. Consumed by the UI layer
// only; the engine never calls it.
type Translator interface {
	Translate(ctx context.Context, text, targetLang string) (string, error)
}

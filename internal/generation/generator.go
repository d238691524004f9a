// Package generation defines the interface for generating vocabulary
// example sentences with a language model. The concrete OpenAI-backed
// implementation lives in internal/platform/openai.
package generation

import (
	"context"
	"errors"
)

// Common generation errors.
var (
	// ErrGenerationFailed is returned when the model call fails or the
	// response cannot be used. Generation is best-effort everywhere it is
	// wired, so callers log this and continue.
	ErrGenerationFailed = errors.New("example sentence generation failed")

	// ErrEmptyResult is returned when the model produced no usable sentence.
	ErrEmptyResult = errors.New("model returned an empty sentence")
)

// Generator produces a Hebrew example sentence for a vocabulary word.
type Generator interface {
	// GenerateExampleSentence returns a single short Hebrew sentence using
	// the given word, suitable for a learner at the given CEFR level.
	GenerateExampleSentence(ctx context.Context, hebrew, english, level string) (string, error)
}

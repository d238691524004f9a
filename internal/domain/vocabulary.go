package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Common validation errors for Vocabulary
var (
	ErrEmptyHebrew  = errors.New("vocabulary hebrew text cannot be empty")
	ErrEmptyEnglish = errors.New("vocabulary english text cannot be empty")
)

// Vocabulary represents a single Hebrew/English word pair shared by all
// learners. Identity is content-addressed: at most one entry exists per
// distinct (hebrew, english) pair, and entries are immutable once created.
type Vocabulary struct {
	ID              uuid.UUID `json:"id"`
	Hebrew          string    `json:"hebrew"`
	English         string    `json:"english"`
	Transliteration string    `json:"transliteration,omitempty"`
	Category        string    `json:"category"` // Free-text tag, usually the lesson topic
	Level           string    `json:"level"`    // CEFR-like band (A1, A2, B1, ...)
	ExampleSentence string    `json:"example_sentence,omitempty"`
	AudioURL        string    `json:"audio_url,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

// NewVocabulary creates a vocabulary entry with a generated ID.
// Hebrew and English text are required; everything else is optional.
func NewVocabulary(hebrew, english string) (*Vocabulary, error) {
	v := &Vocabulary{
		ID:        uuid.New(),
		Hebrew:    hebrew,
		English:   english,
		CreatedAt: time.Now().UTC(),
	}

	if err := v.Validate(); err != nil {
		return nil, err
	}

	return v, nil
}

// Validate checks if the Vocabulary has valid data.
// Returns an error if any field fails validation.
func (v *Vocabulary) Validate() error {
	if v.Hebrew == "" {
		return ErrEmptyHebrew
	}

	if v.English == "" {
		return ErrEmptyEnglish
	}

	return nil
}

package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Scheduling defaults for newly enqueued review items.
const (
	// InitialInterval is the interval in days assigned at creation time.
	InitialInterval = 1

	// InitialEaseFactor is the SM-2 starting ease factor.
	InitialEaseFactor = 2.5

	// MinEaseFactor is the floor below which the ease factor never drops.
	// Clamping here prevents runaway interval shrinkage for hard words.
	MinEaseFactor = 1.3
)

// Common validation errors for ReviewItem
var (
	ErrEmptyReviewUserID       = errors.New("review item user ID cannot be empty")
	ErrEmptyReviewVocabularyID = errors.New("review item vocabulary ID cannot be empty")
	ErrInvalidInterval         = errors.New("interval must be at least 1 day")
	ErrInvalidEaseFactor       = errors.New("ease factor must be at least 1.3")
	ErrInvalidRepetitions      = errors.New("repetitions cannot be negative")
)

// ReviewItem tracks a user's spaced repetition state for a single
// vocabulary entry. Exactly one item exists per (user, vocabulary) pair.
// All timestamps are stored and compared in UTC.
type ReviewItem struct {
	ID           uuid.UUID `json:"id"`
	UserID       uuid.UUID `json:"user_id"`
	VocabularyID uuid.UUID `json:"vocabulary_id"`
	Interval     int       `json:"interval"`    // Days until next review, >= 1
	EaseFactor   float64   `json:"ease_factor"` // SM-2 multiplier, >= 1.3
	Repetitions  int       `json:"repetitions"` // Consecutive correct reviews
	NextReview   time.Time `json:"next_review"`
	LastReviewed time.Time `json:"last_reviewed,omitempty"` // Zero until first grading
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// NewReviewItem creates a review item with spaced repetition defaults.
// The item is due immediately so that freshly enqueued words show up in
// the next review session.
func NewReviewItem(userID, vocabularyID uuid.UUID) (*ReviewItem, error) {
	now := time.Now().UTC()
	item := &ReviewItem{
		ID:           uuid.New(),
		UserID:       userID,
		VocabularyID: vocabularyID,
		Interval:     InitialInterval,
		EaseFactor:   InitialEaseFactor,
		Repetitions:  0,
		NextReview:   now,
		LastReviewed: time.Time{}, // Zero time until the first grading
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := item.Validate(); err != nil {
		return nil, err
	}

	return item, nil
}

// Validate checks if the ReviewItem has valid data.
// Returns an error if any field fails validation.
func (r *ReviewItem) Validate() error {
	if r.UserID == uuid.Nil {
		return ErrEmptyReviewUserID
	}

	if r.VocabularyID == uuid.Nil {
		return ErrEmptyReviewVocabularyID
	}

	if r.Interval < 1 {
		return ErrInvalidInterval
	}

	if r.EaseFactor < MinEaseFactor {
		return ErrInvalidEaseFactor
	}

	if r.Repetitions < 0 {
		return ErrInvalidRepetitions
	}

	return nil
}

// Reviewed reports whether the item has been graded at least once.
func (r *ReviewItem) Reviewed() bool {
	return !r.LastReviewed.IsZero()
}

// ReviewQuality is a recall rating on the 0-5 SM-2 scale:
// 0 is a complete blackout, 3 the lowest passing grade, 5 perfect recall.
type ReviewQuality int

// Quality scale boundaries.
const (
	MinQuality     ReviewQuality = 0
	PassingQuality ReviewQuality = 3
	MaxQuality     ReviewQuality = 5
)

// Valid reports whether the quality rating is within the 0-5 scale.
func (q ReviewQuality) Valid() bool {
	return q >= MinQuality && q <= MaxQuality
}

// Correct reports whether the rating counts as a successful recall.
func (q ReviewQuality) Correct() bool {
	return q >= PassingQuality
}

// ReviewWord is the joined read model returned by due-list and listing
// queries: the shared vocabulary fields combined with the caller's
// per-user review state.
type ReviewWord struct {
	ReviewItemID    uuid.UUID `json:"id"`
	VocabularyID    uuid.UUID `json:"vocabulary_id"`
	Hebrew          string    `json:"hebrew"`
	English         string    `json:"english"`
	Transliteration string    `json:"transliteration,omitempty"`
	Category        string    `json:"category"`
	Level           string    `json:"level"`
	ExampleSentence string    `json:"example_sentence,omitempty"`
	AudioURL        string    `json:"audio_url,omitempty"`
	Repetitions     int       `json:"repetitions"`
	NextReview      time.Time `json:"next_review"`
}

// Package review implements the spaced repetition review scheduler: it
// owns the lifecycle of per-user vocabulary review items, computes due
// lists and applies the SM-2 update rule on each graded review.
package review

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/ivrit-app/ivrit-api/internal/domain"
	"github.com/ivrit-app/ivrit-api/internal/store"
)

// WordImport is a raw word record supplied by a lesson or course word
// list. It is the explicit, validated form of the loosely shaped
// vocabulary JSON the content pipeline produces.
type WordImport struct {
	Hebrew          string `json:"hebrew"`
	English         string `json:"english"`
	Transliteration string `json:"transliteration,omitempty"`
	Category        string `json:"category,omitempty"`
	Level           string `json:"level,omitempty"`
	ExampleSentence string `json:"example,omitempty"`
	AudioURL        string `json:"audio_url,omitempty"`
}

// GradeResult carries the caller-relevant scheduling fields after a
// review has been graded.
type GradeResult struct {
	NextReview  time.Time `json:"next_review"`
	Interval    int       `json:"interval"`
	Repetitions int       `json:"repetitions"`
}

// CompletionSummary reports the outcome of processing a lesson or course
// completion.
type CompletionSummary struct {
	TotalWords    int    `json:"total_words"`
	NewWordsAdded int    `json:"new_words_added"`
	Message       string `json:"message"`
}

// MasteredThreshold is the repetition count at which a word counts as
// mastered rather than learning in the stats aggregation.
const MasteredThreshold = 3

// Service is the review scheduler's caller-facing interface. The HTTP
// layer is responsible for validating raw input shapes (e.g. parsing
// UUIDs) and translating the sentinel errors in this package into
// transport-level responses.
type Service interface {
	// RegisterVocabulary deduplicates the given word records by Hebrew
	// text (first occurrence wins), persists each unique valid word as a
	// vocabulary entry via idempotent find-or-create, and returns the
	// resulting entry IDs in first-occurrence order.
	//
	// Records missing hebrew or english text fail only for themselves:
	// valid records are still persisted, and the returned error joins one
	// ErrInvalidWord per rejected record. A store failure aborts the batch
	// and is returned unchanged. An empty input is valid and yields an
	// empty result.
	RegisterVocabulary(ctx context.Context, words []WordImport) ([]uuid.UUID, error)

	// EnqueueWordsForUser creates review items with default scheduling
	// state for every given vocabulary entry the user does not yet have,
	// and returns the number actually created. The operation is
	// idempotent: re-invoking with the same entries returns 0.
	EnqueueWordsForUser(ctx context.Context, userID uuid.UUID, vocabularyIDs []uuid.UUID) (int, error)

	// GetDueReviewWords returns the user's review items due at or before
	// now (UTC), most overdue first, joined with their vocabulary entries.
	// A limit of 0 means unbounded; otherwise it caps results after
	// ordering. Read-only.
	GetDueReviewWords(ctx context.Context, userID uuid.UUID, limit int) ([]domain.ReviewWord, error)

	// GradeReview applies the SM-2 update rule to a review item from a
	// recall quality rating in [0,5] and persists the new scheduling state
	// atomically. Returns ErrReviewItemNotFound if the item does not exist
	// and ErrInvalidQuality for an out-of-range rating.
	//
	// Grading is not idempotent; deduplicating repeated client
	// submissions is the caller's concern. The scheduler guarantees only
	// that concurrent gradings of the same item serialize cleanly via
	// row-level locking.
	GradeReview(ctx context.Context, reviewItemID uuid.UUID, quality domain.ReviewQuality) (*GradeResult, error)

	// ProcessLessonCompletion registers the lesson's vocabulary and
	// enqueues it for the user. Words without hebrew or english text are
	// skipped. Returns ErrLessonNotFound if the content source has no
	// such lesson.
	ProcessLessonCompletion(ctx context.Context, userID uuid.UUID, lessonID string) (*CompletionSummary, error)

	// ProcessCourseCompletion is ProcessLessonCompletion over every lesson
	// of a course, in course order. Returns ErrCourseNotFound if the
	// content source has no such course.
	ProcessCourseCompletion(ctx context.Context, userID uuid.UUID, courseID string) (*CompletionSummary, error)

	// GetStats aggregates the user's review queue: total words, words due
	// now, and the learning/mastered split at MasteredThreshold.
	GetStats(ctx context.Context, userID uuid.UUID) (*store.ReviewCounts, error)

	// ListUserVocabulary returns all of the user's words with review
	// state, newest first, optionally filtered by category and level.
	ListUserVocabulary(ctx context.Context, userID uuid.UUID, filter store.ListFilter) ([]domain.ReviewWord, error)
}

package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/ivrit-app/ivrit-api/internal/domain"
)

// ReviewCounts aggregates a user's review queue for the stats endpoint.
type ReviewCounts struct {
	TotalWords   int `json:"total_words"`
	DueForReview int `json:"due_for_review"`
	Learning     int `json:"learning"`
	Mastered     int `json:"mastered"`
}

// ListFilter narrows ListByUser results. Empty fields match everything.
type ListFilter struct {
	Category string
	Level    string
}

// ReviewStore defines the interface for review item persistence.
type ReviewStore interface {
	// Create saves a new review item.
	// Returns validation errors from the domain ReviewItem if data is
	// invalid, ErrDuplicate if an item already exists for the same
	// (user, vocabulary) pair, and ErrInvalidEntity if the referenced
	// vocabulary entry does not exist.
	Create(ctx context.Context, item *domain.ReviewItem) error

	// GetByID retrieves a review item by its unique ID.
	// Returns ErrReviewItemNotFound if the item does not exist.
	// No row lock is taken; use GetByIDForUpdate before an update.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.ReviewItem, error)

	// GetByIDForUpdate retrieves a review item with a row-level lock using
	// SELECT FOR UPDATE. It must be called within a transaction and
	// protects the grading read-modify-write from concurrent submissions
	// for the same item. Returns ErrReviewItemNotFound if the item does
	// not exist.
	GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*domain.ReviewItem, error)

	// GetByUserAndVocabulary retrieves the review item for a
	// (user, vocabulary) pair. Returns ErrReviewItemNotFound if the user
	// has no item for that entry.
	GetByUserAndVocabulary(ctx context.Context, userID, vocabularyID uuid.UUID) (*domain.ReviewItem, error)

	// Update persists the scheduling fields of an existing review item as
	// a single-row update; partial-field persistence is not acceptable.
	// Returns ErrReviewItemNotFound if the item does not exist.
	Update(ctx context.Context, item *domain.ReviewItem) error

	// ListDue returns the user's review items whose next_review is at or
	// before now, joined with their vocabulary entries, ordered by
	// next_review ascending (most overdue first). A limit of 0 means
	// unbounded; otherwise the limit caps results after ordering.
	ListDue(ctx context.Context, userID uuid.UUID, now time.Time, limit int) ([]domain.ReviewWord, error)

	// ListByUser returns all of the user's review items joined with their
	// vocabulary entries, newest first, optionally filtered by vocabulary
	// category and level.
	ListByUser(ctx context.Context, userID uuid.UUID, filter ListFilter) ([]domain.ReviewWord, error)

	// CountsForUser aggregates the user's queue: total items, items due at
	// or before now, and the learning/mastered split at the given
	// repetition threshold.
	CountsForUser(ctx context.Context, userID uuid.UUID, now time.Time, masteredThreshold int) (*ReviewCounts, error)

	// WithTx returns a ReviewStore that uses the provided transaction.
	WithTx(tx *sql.Tx) ReviewStore
}

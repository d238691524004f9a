package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/ivrit-app/ivrit-api/internal/domain"
)

// VocabularyStore defines the interface for vocabulary entry persistence.
type VocabularyStore interface {
	// GetOrCreate looks up the vocabulary entry matching the
	// (hebrew, english) pair of the given entry and returns it if one
	// exists; otherwise it persists the given entry and returns that.
	// The operation is idempotent: repeated calls with the same pair
	// always resolve to the same stored entry, even under concurrent
	// registration (a unique-constraint race resolves to a re-read).
	// Returns validation errors from the domain Vocabulary if data is
	// invalid.
	GetOrCreate(ctx context.Context, entry *domain.Vocabulary) (*domain.Vocabulary, error)

	// GetByID retrieves a vocabulary entry by its unique ID.
	// Returns ErrVocabularyNotFound if the entry does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Vocabulary, error)

	// WithTx returns a VocabularyStore that uses the provided transaction.
	// The transaction should be created and managed by the caller,
	// typically through RunInTransaction.
	WithTx(tx *sql.Tx) VocabularyStore
}

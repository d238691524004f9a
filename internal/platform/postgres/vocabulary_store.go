package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/ivrit-app/ivrit-api/internal/domain"
	"github.com/ivrit-app/ivrit-api/internal/platform/logger"
	"github.com/ivrit-app/ivrit-api/internal/store"
)

// PostgresVocabularyStore implements the store.VocabularyStore interface
// using a PostgreSQL database as the storage backend.
type PostgresVocabularyStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresVocabularyStore creates a new PostgreSQL implementation of
// the VocabularyStore interface. It accepts a database connection or
// transaction that should be initialized and managed by the caller.
// If logger is nil, the default logger is used.
func NewPostgresVocabularyStore(db store.DBTX, logger *slog.Logger) *PostgresVocabularyStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresVocabularyStore{
		db:     db,
		logger: logger.With(slog.String("component", "vocabulary_store")),
	}
}

// Ensure PostgresVocabularyStore implements store.VocabularyStore
var _ store.VocabularyStore = (*PostgresVocabularyStore)(nil)

// GetOrCreate implements store.VocabularyStore.GetOrCreate.
// It resolves the entry's (hebrew, english) pair to the single stored row
// for that pair, inserting it if missing. A concurrent insert losing the
// unique-index race falls back to re-reading the winner's row, so the
// operation stays idempotent under concurrency.
func (s *PostgresVocabularyStore) GetOrCreate(
	ctx context.Context,
	entry *domain.Vocabulary,
) (*domain.Vocabulary, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := entry.Validate(); err != nil {
		log.Warn("vocabulary validation failed during get-or-create",
			slog.String("error", err.Error()))
		return nil, err
	}

	existing, err := s.getByPair(ctx, entry.Hebrew, entry.English)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, store.ErrVocabularyNotFound) {
		return nil, err
	}

	query := `
		INSERT INTO vocabulary_items
			(id, hebrew, english, transliteration, category, level, example_sentence, audio_url, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err = s.db.ExecContext(
		ctx,
		query,
		entry.ID,
		entry.Hebrew,
		entry.English,
		nullString(entry.Transliteration),
		entry.Category,
		entry.Level,
		nullString(entry.ExampleSentence),
		nullString(entry.AudioURL),
		entry.CreatedAt.UTC(),
	)

	if err != nil {
		if isUniqueViolation(err) {
			// Lost the race; the pair exists now.
			log.Debug("vocabulary insert raced, re-reading existing entry",
				slog.String("hebrew", entry.Hebrew))
			return s.getByPair(ctx, entry.Hebrew, entry.English)
		}

		log.Error("failed to create vocabulary entry",
			slog.String("error", err.Error()),
			slog.String("vocabulary_id", entry.ID.String()))
		return nil, err
	}

	log.Debug("vocabulary entry created",
		slog.String("vocabulary_id", entry.ID.String()),
		slog.String("hebrew", entry.Hebrew))
	return entry, nil
}

// GetByID implements store.VocabularyStore.GetByID.
// Returns store.ErrVocabularyNotFound if the entry does not exist.
func (s *PostgresVocabularyStore) GetByID(
	ctx context.Context,
	id uuid.UUID,
) (*domain.Vocabulary, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, hebrew, english, transliteration, category, level, example_sentence, audio_url, created_at
		FROM vocabulary_items
		WHERE id = $1
	`

	entry, err := scanVocabulary(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrVocabularyNotFound
		}
		log.Error("failed to get vocabulary by ID",
			slog.String("error", err.Error()),
			slog.String("vocabulary_id", id.String()))
		return nil, err
	}

	return entry, nil
}

// WithTx implements store.VocabularyStore.WithTx.
func (s *PostgresVocabularyStore) WithTx(tx *sql.Tx) store.VocabularyStore {
	return &PostgresVocabularyStore{
		db:     tx,
		logger: s.logger,
	}
}

// getByPair retrieves the entry for a (hebrew, english) pair.
func (s *PostgresVocabularyStore) getByPair(
	ctx context.Context,
	hebrew, english string,
) (*domain.Vocabulary, error) {
	query := `
		SELECT id, hebrew, english, transliteration, category, level, example_sentence, audio_url, created_at
		FROM vocabulary_items
		WHERE hebrew = $1 AND english = $2
	`

	entry, err := scanVocabulary(s.db.QueryRowContext(ctx, query, hebrew, english))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrVocabularyNotFound
		}
		return nil, err
	}

	return entry, nil
}

// rowScanner abstracts *sql.Row and *sql.Rows for the scan helpers.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanVocabulary reads one vocabulary row; optional text columns are
// stored as NULL and surface as empty strings on the domain type.
func scanVocabulary(row rowScanner) (*domain.Vocabulary, error) {
	var entry domain.Vocabulary
	var transliteration, example, audioURL sql.NullString

	err := row.Scan(
		&entry.ID,
		&entry.Hebrew,
		&entry.English,
		&transliteration,
		&entry.Category,
		&entry.Level,
		&example,
		&audioURL,
		&entry.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	entry.Transliteration = transliteration.String
	entry.ExampleSentence = example.String
	entry.AudioURL = audioURL.String
	entry.CreatedAt = entry.CreatedAt.UTC()

	return &entry, nil
}

// nullString maps an empty string to SQL NULL.
func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/ivrit-app/ivrit-api/internal/domain"
	"github.com/ivrit-app/ivrit-api/internal/platform/logger"
	"github.com/ivrit-app/ivrit-api/internal/store"
)

// PostgresReviewStore implements the store.ReviewStore interface
// using a PostgreSQL database as the storage backend.
type PostgresReviewStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresReviewStore creates a new PostgreSQL implementation of the
// ReviewStore interface. It accepts a database connection or transaction
// that should be initialized and managed by the caller.
// If logger is nil, the default logger is used.
func NewPostgresReviewStore(db store.DBTX, logger *slog.Logger) *PostgresReviewStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresReviewStore{
		db:     db,
		logger: logger.With(slog.String("component", "review_store")),
	}
}

// Ensure PostgresReviewStore implements store.ReviewStore
var _ store.ReviewStore = (*PostgresReviewStore)(nil)

const reviewItemColumns = `id, user_id, vocabulary_id, interval, ease_factor, repetitions,
	next_review, last_reviewed, created_at, updated_at`

// Create implements store.ReviewStore.Create.
// Returns store.ErrDuplicate if an item already exists for the same
// (user, vocabulary) pair and store.ErrInvalidEntity if the referenced
// vocabulary entry does not exist.
func (s *PostgresReviewStore) Create(ctx context.Context, item *domain.ReviewItem) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := item.Validate(); err != nil {
		log.Warn("review item validation failed during create",
			slog.String("error", err.Error()),
			slog.String("review_item_id", item.ID.String()))
		return err
	}

	query := `
		INSERT INTO review_items
			(id, user_id, vocabulary_id, interval, ease_factor, repetitions,
			 next_review, last_reviewed, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		item.ID,
		item.UserID,
		item.VocabularyID,
		item.Interval,
		item.EaseFactor,
		item.Repetitions,
		item.NextReview.UTC(),
		nullTime(item.LastReviewed),
		item.CreatedAt.UTC(),
		item.UpdatedAt.UTC(),
	)

	if err != nil {
		if isUniqueViolation(err) {
			log.Debug("review item already exists for pair",
				slog.String("user_id", item.UserID.String()),
				slog.String("vocabulary_id", item.VocabularyID.String()))
			return fmt.Errorf("%w: review item for (user, vocabulary) pair", store.ErrDuplicate)
		}
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: vocabulary with ID %s not found",
				store.ErrInvalidEntity, item.VocabularyID)
		}

		log.Error("failed to create review item",
			slog.String("error", err.Error()),
			slog.String("review_item_id", item.ID.String()))
		return err
	}

	log.Debug("review item created",
		slog.String("review_item_id", item.ID.String()),
		slog.String("user_id", item.UserID.String()))
	return nil
}

// GetByID implements store.ReviewStore.GetByID.
func (s *PostgresReviewStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.ReviewItem, error) {
	query := fmt.Sprintf(`SELECT %s FROM review_items WHERE id = $1`, reviewItemColumns)
	return s.getOne(ctx, query, id)
}

// GetByIDForUpdate implements store.ReviewStore.GetByIDForUpdate.
// Must run inside a transaction; the lock is released at commit/rollback.
func (s *PostgresReviewStore) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*domain.ReviewItem, error) {
	query := fmt.Sprintf(`SELECT %s FROM review_items WHERE id = $1 FOR UPDATE`, reviewItemColumns)
	return s.getOne(ctx, query, id)
}

// GetByUserAndVocabulary implements store.ReviewStore.GetByUserAndVocabulary.
func (s *PostgresReviewStore) GetByUserAndVocabulary(
	ctx context.Context,
	userID, vocabularyID uuid.UUID,
) (*domain.ReviewItem, error) {
	query := fmt.Sprintf(
		`SELECT %s FROM review_items WHERE user_id = $1 AND vocabulary_id = $2`,
		reviewItemColumns,
	)
	return s.getOne(ctx, query, userID, vocabularyID)
}

// Update implements store.ReviewStore.Update.
// All scheduling fields are written in one statement so a grading update
// is never partially persisted.
func (s *PostgresReviewStore) Update(ctx context.Context, item *domain.ReviewItem) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := item.Validate(); err != nil {
		log.Warn("review item validation failed during update",
			slog.String("error", err.Error()),
			slog.String("review_item_id", item.ID.String()))
		return err
	}

	query := `
		UPDATE review_items
		SET interval = $2, ease_factor = $3, repetitions = $4,
			next_review = $5, last_reviewed = $6, updated_at = $7
		WHERE id = $1
	`
	result, err := s.db.ExecContext(
		ctx,
		query,
		item.ID,
		item.Interval,
		item.EaseFactor,
		item.Repetitions,
		item.NextReview.UTC(),
		nullTime(item.LastReviewed),
		item.UpdatedAt.UTC(),
	)
	if err != nil {
		log.Error("failed to update review item",
			slog.String("error", err.Error()),
			slog.String("review_item_id", item.ID.String()))
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return store.ErrReviewItemNotFound
	}

	log.Debug("review item updated",
		slog.String("review_item_id", item.ID.String()),
		slog.Int("interval", item.Interval),
		slog.Int("repetitions", item.Repetitions))
	return nil
}

// ListDue implements store.ReviewStore.ListDue.
// The comparison runs entirely on TIMESTAMPTZ values; now is normalized
// to UTC before it reaches the query.
func (s *PostgresReviewStore) ListDue(
	ctx context.Context,
	userID uuid.UUID,
	now time.Time,
	limit int,
) ([]domain.ReviewWord, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT r.id, r.vocabulary_id, v.hebrew, v.english, v.transliteration,
			v.category, v.level, v.example_sentence, v.audio_url,
			r.repetitions, r.next_review
		FROM review_items r
		JOIN vocabulary_items v ON v.id = r.vocabulary_id
		WHERE r.user_id = $1 AND r.next_review <= $2
		ORDER BY r.next_review ASC
	`
	args := []any{userID, now.UTC()}
	if limit > 0 {
		query += ` LIMIT $3`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to list due review words",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	return collectReviewWords(rows)
}

// ListByUser implements store.ReviewStore.ListByUser.
func (s *PostgresReviewStore) ListByUser(
	ctx context.Context,
	userID uuid.UUID,
	filter store.ListFilter,
) ([]domain.ReviewWord, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT r.id, r.vocabulary_id, v.hebrew, v.english, v.transliteration,
			v.category, v.level, v.example_sentence, v.audio_url,
			r.repetitions, r.next_review
		FROM review_items r
		JOIN vocabulary_items v ON v.id = r.vocabulary_id
		WHERE r.user_id = $1
			AND ($2 = '' OR v.category = $2)
			AND ($3 = '' OR v.level = $3)
		ORDER BY r.created_at DESC
	`

	rows, err := s.db.QueryContext(ctx, query, userID, filter.Category, filter.Level)
	if err != nil {
		log.Error("failed to list user vocabulary",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	return collectReviewWords(rows)
}

// CountsForUser implements store.ReviewStore.CountsForUser.
func (s *PostgresReviewStore) CountsForUser(
	ctx context.Context,
	userID uuid.UUID,
	now time.Time,
	masteredThreshold int,
) (*store.ReviewCounts, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE next_review <= $2),
			COUNT(*) FILTER (WHERE repetitions < $3),
			COUNT(*) FILTER (WHERE repetitions >= $3)
		FROM review_items
		WHERE user_id = $1
	`

	var counts store.ReviewCounts
	err := s.db.QueryRowContext(ctx, query, userID, now.UTC(), masteredThreshold).Scan(
		&counts.TotalWords,
		&counts.DueForReview,
		&counts.Learning,
		&counts.Mastered,
	)
	if err != nil {
		log.Error("failed to count review items",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, err
	}

	return &counts, nil
}

// WithTx implements store.ReviewStore.WithTx.
func (s *PostgresReviewStore) WithTx(tx *sql.Tx) store.ReviewStore {
	return &PostgresReviewStore{
		db:     tx,
		logger: s.logger,
	}
}

// getOne runs a single-row review item query and maps sql.ErrNoRows to
// the sentinel not-found error.
func (s *PostgresReviewStore) getOne(
	ctx context.Context,
	query string,
	args ...any,
) (*domain.ReviewItem, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var item domain.ReviewItem
	var lastReviewed sql.NullTime

	err := s.db.QueryRowContext(ctx, query, args...).Scan(
		&item.ID,
		&item.UserID,
		&item.VocabularyID,
		&item.Interval,
		&item.EaseFactor,
		&item.Repetitions,
		&item.NextReview,
		&lastReviewed,
		&item.CreatedAt,
		&item.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrReviewItemNotFound
		}
		log.Error("failed to get review item", slog.String("error", err.Error()))
		return nil, err
	}

	if lastReviewed.Valid {
		item.LastReviewed = lastReviewed.Time.UTC()
	}
	item.NextReview = item.NextReview.UTC()
	item.CreatedAt = item.CreatedAt.UTC()
	item.UpdatedAt = item.UpdatedAt.UTC()

	return &item, nil
}

// collectReviewWords drains a joined review/vocabulary result set.
func collectReviewWords(rows *sql.Rows) ([]domain.ReviewWord, error) {
	words := make([]domain.ReviewWord, 0)

	for rows.Next() {
		var w domain.ReviewWord
		var transliteration, example, audioURL sql.NullString

		err := rows.Scan(
			&w.ReviewItemID,
			&w.VocabularyID,
			&w.Hebrew,
			&w.English,
			&transliteration,
			&w.Category,
			&w.Level,
			&example,
			&audioURL,
			&w.Repetitions,
			&w.NextReview,
		)
		if err != nil {
			return nil, err
		}

		w.Transliteration = transliteration.String
		w.ExampleSentence = example.String
		w.AudioURL = audioURL.String
		w.NextReview = w.NextReview.UTC()

		words = append(words, w)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return words, nil
}

// nullTime maps the zero time to SQL NULL; never-reviewed items keep a
// NULL last_reviewed column.
func nullTime(t time.Time) sql.NullTime {
	return sql.NullTime{Time: t.UTC(), Valid: !t.IsZero()}
}

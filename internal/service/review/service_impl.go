package review

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/ivrit-app/ivrit-api/internal/domain"
	"github.com/ivrit-app/ivrit-api/internal/domain/srs"
	"github.com/ivrit-app/ivrit-api/internal/generation"
	"github.com/ivrit-app/ivrit-api/internal/platform/logger"
	"github.com/ivrit-app/ivrit-api/internal/store"
)

// Verify interface compliance at compile time
var _ Service = (*schedulerService)(nil)

// schedulerService implements the Service interface.
type schedulerService struct {
	db          *sql.DB
	vocabStore  store.VocabularyStore
	reviewStore store.ReviewStore
	srsService  srs.Service
	source      ContentSource
	generator   generation.Generator // Optional; nil disables generation
	logger      *slog.Logger

	// runTx wraps store.RunInTransaction; tests substitute a pass-through.
	runTx func(ctx context.Context, db *sql.DB, fn store.TxFn) error
}

// NewService creates the review scheduler. The database handle is used
// for the grading transaction; generator may be nil, in which case
// missing example sentences are simply left empty.
func NewService(
	db *sql.DB,
	vocabStore store.VocabularyStore,
	reviewStore store.ReviewStore,
	srsService srs.Service,
	source ContentSource,
	generator generation.Generator,
	logger *slog.Logger,
) Service {
	if db == nil {
		panic("db cannot be nil")
	}
	if vocabStore == nil {
		panic("vocabStore cannot be nil")
	}
	if reviewStore == nil {
		panic("reviewStore cannot be nil")
	}
	if srsService == nil {
		panic("srsService cannot be nil")
	}
	if source == nil {
		panic("source cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &schedulerService{
		db:          db,
		vocabStore:  vocabStore,
		reviewStore: reviewStore,
		srsService:  srsService,
		source:      source,
		generator:   generator,
		logger:      logger.With(slog.String("component", "review_scheduler")),
		runTx:       store.RunInTransaction,
	}
}

// RegisterVocabulary implements Service.RegisterVocabulary.
func (s *schedulerService) RegisterVocabulary(
	ctx context.Context,
	words []WordImport,
) ([]uuid.UUID, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	ids := make([]uuid.UUID, 0, len(words))
	var recordErrs []error
	seen := make(map[string]bool, len(words))

	for i, word := range words {
		// Batch-level dedup by Hebrew text; first occurrence wins.
		if word.Hebrew != "" && seen[word.Hebrew] {
			continue
		}

		if word.Hebrew == "" || word.English == "" {
			recordErrs = append(recordErrs,
				fmt.Errorf("%w: record %d is missing hebrew or english text", ErrInvalidWord, i))
			continue
		}
		seen[word.Hebrew] = true

		entry, err := s.vocabularyFromImport(ctx, word)
		if err != nil {
			recordErrs = append(recordErrs, fmt.Errorf("%w: record %d: %v", ErrInvalidWord, i, err))
			continue
		}

		stored, err := s.vocabStore.GetOrCreate(ctx, entry)
		if err != nil {
			// A store failure is not a per-record problem; abort the batch.
			log.Error("failed to get or create vocabulary entry",
				slog.String("error", err.Error()),
				slog.String("hebrew", word.Hebrew))
			return nil, err
		}

		ids = append(ids, stored.ID)
	}

	if len(recordErrs) > 0 {
		log.Warn("rejected invalid word records during registration",
			slog.Int("rejected", len(recordErrs)),
			slog.Int("registered", len(ids)))
		return ids, errors.Join(recordErrs...)
	}

	log.Debug("vocabulary batch registered", slog.Int("count", len(ids)))
	return ids, nil
}

// EnqueueWordsForUser implements Service.EnqueueWordsForUser.
func (s *schedulerService) EnqueueWordsForUser(
	ctx context.Context,
	userID uuid.UUID,
	vocabularyIDs []uuid.UUID,
) (int, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	added := 0
	for _, vocabID := range vocabularyIDs {
		_, err := s.reviewStore.GetByUserAndVocabulary(ctx, userID, vocabID)
		if err == nil {
			continue // Already enqueued
		}
		if !errors.Is(err, store.ErrReviewItemNotFound) {
			return added, err
		}

		item, err := domain.NewReviewItem(userID, vocabID)
		if err != nil {
			return added, err
		}

		if err := s.reviewStore.Create(ctx, item); err != nil {
			// A concurrent enqueue for the same pair is not a failure;
			// the item exists either way.
			if errors.Is(err, store.ErrDuplicate) {
				continue
			}
			return added, err
		}

		added++
	}

	log.Info("enqueued review words",
		slog.String("user_id", userID.String()),
		slog.Int("requested", len(vocabularyIDs)),
		slog.Int("added", added))
	return added, nil
}

// GetDueReviewWords implements Service.GetDueReviewWords.
func (s *schedulerService) GetDueReviewWords(
	ctx context.Context,
	userID uuid.UUID,
	limit int,
) ([]domain.ReviewWord, error) {
	return s.reviewStore.ListDue(ctx, userID, time.Now().UTC(), limit)
}

// GradeReview implements Service.GradeReview.
// The read-modify-write runs in a single transaction with the row locked,
// so two racing submissions for the same item serialize instead of losing
// an update.
func (s *schedulerService) GradeReview(
	ctx context.Context,
	reviewItemID uuid.UUID,
	quality domain.ReviewQuality,
) (*GradeResult, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if !quality.Valid() {
		log.Warn("invalid quality rating",
			slog.String("review_item_id", reviewItemID.String()),
			slog.Int("quality", int(quality)))
		return nil, ErrInvalidQuality
	}

	var result *GradeResult
	err := s.runTx(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txStore := s.reviewStore.WithTx(tx)

		item, err := txStore.GetByIDForUpdate(ctx, reviewItemID)
		if err != nil {
			if errors.Is(err, store.ErrReviewItemNotFound) {
				return ErrReviewItemNotFound
			}
			return fmt.Errorf("failed to load review item: %w", err)
		}

		updated, err := s.srsService.ApplyReview(item, quality, time.Now().UTC())
		if err != nil {
			if errors.Is(err, domain.ErrInvalidQuality) {
				return ErrInvalidQuality
			}
			return fmt.Errorf("failed to apply review: %w", err)
		}

		if err := txStore.Update(ctx, updated); err != nil {
			return fmt.Errorf("failed to persist review item: %w", err)
		}

		result = &GradeResult{
			NextReview:  updated.NextReview,
			Interval:    updated.Interval,
			Repetitions: updated.Repetitions,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info("review graded",
		slog.String("review_item_id", reviewItemID.String()),
		slog.Int("quality", int(quality)),
		slog.Int("interval", result.Interval),
		slog.Int("repetitions", result.Repetitions))
	return result, nil
}

// ProcessLessonCompletion implements Service.ProcessLessonCompletion.
func (s *schedulerService) ProcessLessonCompletion(
	ctx context.Context,
	userID uuid.UUID,
	lessonID string,
) (*CompletionSummary, error) {
	words, err := s.source.LessonWords(ctx, lessonID)
	if err != nil {
		return nil, err
	}

	return s.processCompletion(ctx, userID, words)
}

// ProcessCourseCompletion implements Service.ProcessCourseCompletion.
func (s *schedulerService) ProcessCourseCompletion(
	ctx context.Context,
	userID uuid.UUID,
	courseID string,
) (*CompletionSummary, error) {
	words, err := s.source.CourseWords(ctx, courseID)
	if err != nil {
		return nil, err
	}

	return s.processCompletion(ctx, userID, words)
}

// GetStats implements Service.GetStats.
func (s *schedulerService) GetStats(
	ctx context.Context,
	userID uuid.UUID,
) (*store.ReviewCounts, error) {
	return s.reviewStore.CountsForUser(ctx, userID, time.Now().UTC(), MasteredThreshold)
}

// ListUserVocabulary implements Service.ListUserVocabulary.
func (s *schedulerService) ListUserVocabulary(
	ctx context.Context,
	userID uuid.UUID,
	filter store.ListFilter,
) ([]domain.ReviewWord, error) {
	return s.reviewStore.ListByUser(ctx, userID, filter)
}

// processCompletion registers a word list and enqueues the results for
// the user. Invalid records are skipped with a warning; they should not
// block the rest of a completed lesson's vocabulary.
func (s *schedulerService) processCompletion(
	ctx context.Context,
	userID uuid.UUID,
	words []WordImport,
) (*CompletionSummary, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if len(words) == 0 {
		return &CompletionSummary{
			Message: "No vocabulary found in this content",
		}, nil
	}

	ids, err := s.RegisterVocabulary(ctx, words)
	if err != nil {
		if !errors.Is(err, ErrInvalidWord) {
			return nil, err
		}
		log.Warn("skipped invalid word records during completion",
			slog.String("user_id", userID.String()),
			slog.String("error", err.Error()))
	}

	added, err := s.EnqueueWordsForUser(ctx, userID, ids)
	if err != nil {
		return nil, err
	}

	return &CompletionSummary{
		TotalWords:    len(ids),
		NewWordsAdded: added,
		Message:       fmt.Sprintf("Added %d new words to your vocabulary review", added),
	}, nil
}

// vocabularyFromImport builds a domain entry from a word record, filling
// a missing example sentence from the generator when one is configured.
// Generation failures are non-fatal: the word is stored without an
// example.
func (s *schedulerService) vocabularyFromImport(
	ctx context.Context,
	word WordImport,
) (*domain.Vocabulary, error) {
	entry, err := domain.NewVocabulary(word.Hebrew, word.English)
	if err != nil {
		return nil, err
	}

	entry.Transliteration = word.Transliteration
	entry.Category = word.Category
	entry.Level = word.Level
	entry.ExampleSentence = word.ExampleSentence
	entry.AudioURL = word.AudioURL

	if entry.Category == "" {
		entry.Category = "general"
	}

	if entry.ExampleSentence == "" && s.generator != nil {
		sentence, genErr := s.generator.GenerateExampleSentence(
			ctx, word.Hebrew, word.English, word.Level)
		if genErr != nil {
			s.logger.Warn("example sentence generation failed, storing word without one",
				slog.String("hebrew", word.Hebrew),
				slog.String("error", genErr.Error()))
		} else {
			entry.ExampleSentence = sentence
		}
	}

	return entry, nil
}

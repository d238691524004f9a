package review

import (
	"context"
	"database/sql"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/ivrit-app/ivrit-api/internal/domain"
	"github.com/ivrit-app/ivrit-api/internal/store"
)

// fakeVocabularyStore is an in-memory store.VocabularyStore for service
// tests.
type fakeVocabularyStore struct {
	mu      sync.Mutex
	entries map[uuid.UUID]*domain.Vocabulary
	byPair  map[[2]string]uuid.UUID

	// getOrCreateErr, when set, is returned by every GetOrCreate call.
	getOrCreateErr error
}

func newFakeVocabularyStore() *fakeVocabularyStore {
	return &fakeVocabularyStore{
		entries: make(map[uuid.UUID]*domain.Vocabulary),
		byPair:  make(map[[2]string]uuid.UUID),
	}
}

func (f *fakeVocabularyStore) GetOrCreate(
	_ context.Context,
	entry *domain.Vocabulary,
) (*domain.Vocabulary, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.getOrCreateErr != nil {
		return nil, f.getOrCreateErr
	}

	if err := entry.Validate(); err != nil {
		return nil, err
	}

	key := [2]string{entry.Hebrew, entry.English}
	if id, ok := f.byPair[key]; ok {
		existing := *f.entries[id]
		return &existing, nil
	}

	stored := *entry
	f.entries[stored.ID] = &stored
	f.byPair[key] = stored.ID
	copied := stored
	return &copied, nil
}

func (f *fakeVocabularyStore) GetByID(_ context.Context, id uuid.UUID) (*domain.Vocabulary, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	entry, ok := f.entries[id]
	if !ok {
		return nil, store.ErrVocabularyNotFound
	}
	copied := *entry
	return &copied, nil
}

func (f *fakeVocabularyStore) WithTx(_ *sql.Tx) store.VocabularyStore {
	return f
}

// fakeReviewStore is an in-memory store.ReviewStore. It joins against a
// fakeVocabularyStore for the read-model queries.
type fakeReviewStore struct {
	mu    sync.Mutex
	items map[uuid.UUID]*domain.ReviewItem
	vocab *fakeVocabularyStore

	// createErr, when set, is returned by every Create call.
	createErr error
}

func newFakeReviewStore(vocab *fakeVocabularyStore) *fakeReviewStore {
	return &fakeReviewStore{
		items: make(map[uuid.UUID]*domain.ReviewItem),
		vocab: vocab,
	}
}

func (f *fakeReviewStore) Create(_ context.Context, item *domain.ReviewItem) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.createErr != nil {
		return f.createErr
	}

	if err := item.Validate(); err != nil {
		return err
	}

	for _, existing := range f.items {
		if existing.UserID == item.UserID && existing.VocabularyID == item.VocabularyID {
			return store.ErrDuplicate
		}
	}

	copied := *item
	f.items[copied.ID] = &copied
	return nil
}

func (f *fakeReviewStore) GetByID(_ context.Context, id uuid.UUID) (*domain.ReviewItem, error) {
	return f.get(id)
}

func (f *fakeReviewStore) GetByIDForUpdate(_ context.Context, id uuid.UUID) (*domain.ReviewItem, error) {
	return f.get(id)
}

func (f *fakeReviewStore) get(id uuid.UUID) (*domain.ReviewItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	item, ok := f.items[id]
	if !ok {
		return nil, store.ErrReviewItemNotFound
	}
	copied := *item
	return &copied, nil
}

func (f *fakeReviewStore) GetByUserAndVocabulary(
	_ context.Context,
	userID, vocabularyID uuid.UUID,
) (*domain.ReviewItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, item := range f.items {
		if item.UserID == userID && item.VocabularyID == vocabularyID {
			copied := *item
			return &copied, nil
		}
	}
	return nil, store.ErrReviewItemNotFound
}

func (f *fakeReviewStore) Update(_ context.Context, item *domain.ReviewItem) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.items[item.ID]; !ok {
		return store.ErrReviewItemNotFound
	}
	copied := *item
	f.items[copied.ID] = &copied
	return nil
}

func (f *fakeReviewStore) ListDue(
	_ context.Context,
	userID uuid.UUID,
	now time.Time,
	limit int,
) ([]domain.ReviewWord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var due []*domain.ReviewItem
	for _, item := range f.items {
		if item.UserID == userID && !item.NextReview.After(now) {
			due = append(due, item)
		}
	}
	sort.Slice(due, func(i, j int) bool {
		return due[i].NextReview.Before(due[j].NextReview)
	})
	if limit > 0 && len(due) > limit {
		due = due[:limit]
	}

	return f.join(due), nil
}

func (f *fakeReviewStore) ListByUser(
	_ context.Context,
	userID uuid.UUID,
	filter store.ListFilter,
) ([]domain.ReviewWord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var items []*domain.ReviewItem
	for _, item := range f.items {
		if item.UserID != userID {
			continue
		}
		vocab := f.vocab.entries[item.VocabularyID]
		if vocab == nil {
			continue
		}
		if filter.Category != "" && vocab.Category != filter.Category {
			continue
		}
		if filter.Level != "" && vocab.Level != filter.Level {
			continue
		}
		items = append(items, item)
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})

	return f.join(items), nil
}

func (f *fakeReviewStore) CountsForUser(
	_ context.Context,
	userID uuid.UUID,
	now time.Time,
	masteredThreshold int,
) (*store.ReviewCounts, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	counts := &store.ReviewCounts{}
	for _, item := range f.items {
		if item.UserID != userID {
			continue
		}
		counts.TotalWords++
		if !item.NextReview.After(now) {
			counts.DueForReview++
		}
		if item.Repetitions >= masteredThreshold {
			counts.Mastered++
		} else {
			counts.Learning++
		}
	}
	return counts, nil
}

func (f *fakeReviewStore) WithTx(_ *sql.Tx) store.ReviewStore {
	return f
}

// join builds the ReviewWord read model. Callers must hold f.mu.
func (f *fakeReviewStore) join(items []*domain.ReviewItem) []domain.ReviewWord {
	words := make([]domain.ReviewWord, 0, len(items))
	for _, item := range items {
		vocab := f.vocab.entries[item.VocabularyID]
		if vocab == nil {
			continue
		}
		words = append(words, domain.ReviewWord{
			ReviewItemID:    item.ID,
			VocabularyID:    vocab.ID,
			Hebrew:          vocab.Hebrew,
			English:         vocab.English,
			Transliteration: vocab.Transliteration,
			Category:        vocab.Category,
			Level:           vocab.Level,
			ExampleSentence: vocab.ExampleSentence,
			AudioURL:        vocab.AudioURL,
			Repetitions:     item.Repetitions,
			NextReview:      item.NextReview,
		})
	}
	return words
}

// fakeGenerator returns a fixed sentence or error.
type fakeGenerator struct {
	sentence string
	err      error
	calls    int
}

func (f *fakeGenerator) GenerateExampleSentence(
	_ context.Context,
	_, _, _ string,
) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.sentence, nil
}

package srs

import (
	"math"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/ivrit-app/ivrit-api/internal/domain"
)

func TestNextInterval(t *testing.T) {
	t.Parallel()
	params := NewDefaultParams()

	testCases := []struct {
		name     string
		current  int
		reps     int
		ef       float64
		quality  domain.ReviewQuality
		expected int
	}{
		{
			name:     "incorrect recall resets interval",
			current:  15,
			reps:     4,
			ef:       2.5,
			quality:  1,
			expected: 1,
		},
		{
			name:     "blackout resets interval",
			current:  30,
			reps:     6,
			ef:       2.8,
			quality:  0,
			expected: 1,
		},
		{
			name:     "first success uses first interval",
			current:  1,
			reps:     0,
			ef:       2.5,
			quality:  4,
			expected: params.FirstInterval,
		},
		{
			name:     "second success uses second interval",
			current:  1,
			reps:     1,
			ef:       2.5,
			quality:  4,
			expected: params.SecondInterval,
		},
		{
			name:     "third success multiplies by ease factor",
			current:  6,
			reps:     2,
			ef:       2.5,
			quality:  5,
			expected: 15, // round(6 * 2.5)
		},
		{
			name:     "multiplication rounds half up",
			current:  10,
			reps:     3,
			ef:       1.35,
			quality:  4,
			expected: 14, // round(13.5)
		},
		{
			name:     "barely passing grade still advances",
			current:  6,
			reps:     2,
			ef:       2.5,
			quality:  3,
			expected: 15,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := nextInterval(tc.current, tc.reps, tc.ef, tc.quality, params)
			if got != tc.expected {
				t.Errorf("Expected interval %d, got %d", tc.expected, got)
			}
		})
	}
}

func TestNextEaseFactor(t *testing.T) {
	t.Parallel()
	params := NewDefaultParams()

	testCases := []struct {
		name     string
		ef       float64
		quality  domain.ReviewQuality
		expected float64
	}{
		{
			name:     "perfect recall increases ease factor",
			ef:       2.5,
			quality:  5,
			expected: 2.6,
		},
		{
			name:     "good recall leaves ease factor unchanged",
			ef:       2.5,
			quality:  4,
			expected: 2.5,
		},
		{
			name:     "passing recall decreases ease factor",
			ef:       2.5,
			quality:  3,
			expected: 2.36,
		},
		{
			name:     "failed recall decreases ease factor further",
			ef:       2.5,
			quality:  2,
			expected: 2.18,
		},
		{
			name:     "blackout takes the largest penalty",
			ef:       2.5,
			quality:  0,
			expected: 1.7,
		},
		{
			name:     "ease factor is clamped at the floor",
			ef:       1.3,
			quality:  0,
			expected: params.MinEaseFactor,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := nextEaseFactor(tc.ef, tc.quality, params)
			if math.Abs(got-tc.expected) > 1e-9 {
				t.Errorf("Expected ease factor %f, got %f", tc.expected, got)
			}
		})
	}
}

func TestEaseFactorNeverDropsBelowFloor(t *testing.T) {
	t.Parallel()
	params := NewDefaultParams()

	ef := domain.InitialEaseFactor
	for i := 0; i < 20; i++ {
		ef = nextEaseFactor(ef, 0, params)
		if ef < params.MinEaseFactor {
			t.Fatalf("ease factor %f dropped below floor %f after %d failures",
				ef, params.MinEaseFactor, i+1)
		}
	}
	if math.Abs(ef-params.MinEaseFactor) > 1e-9 {
		t.Errorf("Expected ease factor to settle at floor %f, got %f", params.MinEaseFactor, ef)
	}
}

func TestApply(t *testing.T) {
	t.Parallel()
	params := NewDefaultParams()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	newItem := func() *domain.ReviewItem {
		return &domain.ReviewItem{
			ID:           uuid.New(),
			UserID:       uuid.New(),
			VocabularyID: uuid.New(),
			Interval:     domain.InitialInterval,
			EaseFactor:   domain.InitialEaseFactor,
			Repetitions:  0,
			NextReview:   now.Add(-time.Hour),
			CreatedAt:    now.Add(-24 * time.Hour),
			UpdatedAt:    now.Add(-24 * time.Hour),
		}
	}

	t.Run("correct recall advances the schedule", func(t *testing.T) {
		item := newItem()
		updated := apply(item, 4, now, params)

		if updated.Interval != params.FirstInterval {
			t.Errorf("Expected interval %d, got %d", params.FirstInterval, updated.Interval)
		}
		if updated.Repetitions != 1 {
			t.Errorf("Expected 1 repetition, got %d", updated.Repetitions)
		}
		wantNext := now.AddDate(0, 0, params.FirstInterval)
		if !updated.NextReview.Equal(wantNext) {
			t.Errorf("Expected next review %v, got %v", wantNext, updated.NextReview)
		}
		if !updated.LastReviewed.Equal(now) {
			t.Errorf("Expected last reviewed %v, got %v", now, updated.LastReviewed)
		}
	})

	t.Run("incorrect recall resets repetitions and interval", func(t *testing.T) {
		item := newItem()
		item.Interval = 15
		item.Repetitions = 3

		updated := apply(item, 2, now, params)

		if updated.Interval != 1 {
			t.Errorf("Expected interval 1, got %d", updated.Interval)
		}
		if updated.Repetitions != 0 {
			t.Errorf("Expected 0 repetitions, got %d", updated.Repetitions)
		}
		if updated.EaseFactor >= item.EaseFactor {
			t.Errorf("Expected ease factor below %f, got %f", item.EaseFactor, updated.EaseFactor)
		}
	})

	t.Run("interval growth uses the pre-adjustment ease factor", func(t *testing.T) {
		item := newItem()
		item.Interval = 10
		item.Repetitions = 2
		item.EaseFactor = 2.0

		// Quality 5 raises the ease factor to 2.1, but the interval must
		// still be computed with 2.0.
		updated := apply(item, 5, now, params)

		if updated.Interval != 20 {
			t.Errorf("Expected interval 20, got %d", updated.Interval)
		}
		if math.Abs(updated.EaseFactor-2.1) > 1e-9 {
			t.Errorf("Expected ease factor 2.1, got %f", updated.EaseFactor)
		}
	})

	t.Run("input item is not modified", func(t *testing.T) {
		item := newItem()
		before := *item

		_ = apply(item, 5, now, params)

		if *item != before {
			t.Error("apply modified its input item")
		}
	})
}

// TestGradingSequence walks a word through the canonical SM-2 trajectory:
// two successes graduate it through the fixed early intervals, a third
// grows it multiplicatively, and one failure sends it back to the start.
func TestGradingSequence(t *testing.T) {
	t.Parallel()
	params := NewDefaultParams()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	item := &domain.ReviewItem{
		ID:           uuid.New(),
		UserID:       uuid.New(),
		VocabularyID: uuid.New(),
		Interval:     domain.InitialInterval,
		EaseFactor:   domain.InitialEaseFactor,
		Repetitions:  0,
		NextReview:   now,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	// First review: quality 4 keeps ease at 2.5, interval 1.
	item = apply(item, 4, now, params)
	if item.Interval != 1 || item.Repetitions != 1 {
		t.Fatalf("after first review: interval=%d reps=%d, want 1/1", item.Interval, item.Repetitions)
	}

	// Second review: quality 4, interval jumps to 6.
	now = now.AddDate(0, 0, 1)
	item = apply(item, 4, now, params)
	if item.Interval != 6 || item.Repetitions != 2 {
		t.Fatalf("after second review: interval=%d reps=%d, want 6/2", item.Interval, item.Repetitions)
	}

	// Third review: quality 5, interval = round(6 * 2.5) = 15 and the
	// ease factor moves above its starting value.
	now = now.AddDate(0, 0, 6)
	item = apply(item, 5, now, params)
	if item.Interval != 15 || item.Repetitions != 3 {
		t.Fatalf("after third review: interval=%d reps=%d, want 15/3", item.Interval, item.Repetitions)
	}
	if item.EaseFactor <= domain.InitialEaseFactor {
		t.Fatalf("after third review: ease factor %f should exceed %f",
			item.EaseFactor, domain.InitialEaseFactor)
	}

	// Failure: quality 1 resets interval and repetitions, ease drops.
	easeBefore := item.EaseFactor
	now = now.AddDate(0, 0, 15)
	item = apply(item, 1, now, params)
	if item.Interval != 1 || item.Repetitions != 0 {
		t.Fatalf("after failure: interval=%d reps=%d, want 1/0", item.Interval, item.Repetitions)
	}
	if item.EaseFactor >= easeBefore {
		t.Fatalf("after failure: ease factor %f should drop below %f", item.EaseFactor, easeBefore)
	}
}

package srs

import (
	"math"
	"time"

	"github.com/ivrit-app/ivrit-api/internal/domain"
)

// nextEaseFactor computes the updated ease factor for a review graded with
// the given quality, using the standard SM-2 adjustment:
//
//	ef' = ef + (0.1 - (5-q) * (0.08 + (5-q) * 0.02))
//
// The adjustment is applied on every review regardless of whether the
// recall was correct, so sustained high-quality recall grows the ease
// factor while repeated failures keep it low. The result is clamped at
// params.MinEaseFactor so difficult words cannot shrink their intervals
// indefinitely and never graduate.
func nextEaseFactor(currentEF float64, quality domain.ReviewQuality, params *Params) float64 {
	q := float64(quality)
	newEF := currentEF + (0.1 - (5-q)*(0.08+(5-q)*0.02))

	if newEF < params.MinEaseFactor {
		newEF = params.MinEaseFactor
	}

	return newEF
}

// nextInterval computes the new interval in days following the three-tier
// SM-2 schedule.
//
// For a correct recall (quality >= 3):
//   - first success: params.FirstInterval (1 day)
//   - second consecutive success: params.SecondInterval (6 days)
//   - thereafter: round(interval * ease factor)
//
// For an incorrect recall the interval resets to 1 day.
//
// The two fixed early intervals prevent premature long gaps for memories
// that are still fragile; only established items grow multiplicatively.
// Note the multiplication uses the ease factor from before this review's
// ease adjustment, matching the reference SM-2 ordering.
func nextInterval(
	currentInterval int,
	repetitions int,
	easeFactor float64,
	quality domain.ReviewQuality,
	params *Params,
) int {
	if !quality.Correct() {
		return 1
	}

	switch repetitions {
	case 0:
		return params.FirstInterval
	case 1:
		return params.SecondInterval
	default:
		return int(math.Round(float64(currentInterval) * easeFactor))
	}
}

// apply produces the updated review item for a grading at time now,
// leaving the input untouched. The returned item has its interval, ease
// factor, repetition count and both timestamps recalculated; NextReview
// is always LastReviewed plus the new interval in days.
func apply(
	item *domain.ReviewItem,
	quality domain.ReviewQuality,
	now time.Time,
	params *Params,
) *domain.ReviewItem {
	updated := *item

	updated.Interval = nextInterval(item.Interval, item.Repetitions, item.EaseFactor, quality, params)

	if quality.Correct() {
		updated.Repetitions = item.Repetitions + 1
	} else {
		updated.Repetitions = 0
	}

	updated.EaseFactor = nextEaseFactor(item.EaseFactor, quality, params)
	updated.LastReviewed = now
	updated.NextReview = now.AddDate(0, 0, updated.Interval)
	updated.UpdatedAt = now

	return &updated
}

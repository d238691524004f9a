// Package srs implements the SM-2 spaced repetition algorithm used to
// schedule vocabulary reviews. The algorithm itself is a set of pure
// functions; Service wraps them behind an interface so callers can swap
// in alternative scheduling policies in tests.
package srs

import (
	"errors"
	"time"

	"github.com/ivrit-app/ivrit-api/internal/domain"
)

// Common errors
var (
	ErrNilItem = errors.New("review item cannot be nil")
)

// Service defines the interface for spaced repetition scheduling.
type Service interface {
	// ApplyReview computes the review item's next scheduling state from a
	// recall quality rating. It follows immutability principles: the input
	// item is never modified and a new instance is returned.
	//
	// Returns ErrNilItem for a nil item and domain.ErrInvalidQuality for a
	// quality rating outside [0,5]. The quality range is validated at the
	// API boundary too, but the ease-factor math depends on it, so the
	// scheduler defends against out-of-range values itself.
	ApplyReview(
		item *domain.ReviewItem,
		quality domain.ReviewQuality,
		now time.Time,
	) (*domain.ReviewItem, error)
}

// defaultService is the standard implementation of the Service interface.
type defaultService struct {
	params *Params
}

// NewDefaultService creates an SM-2 service with default parameters.
func NewDefaultService() Service {
	return &defaultService{
		params: NewDefaultParams(),
	}
}

// NewServiceWithParams creates an SM-2 service with custom parameters.
func NewServiceWithParams(params *Params) Service {
	return &defaultService{
		params: params,
	}
}

// ApplyReview implements the Service interface.
func (s *defaultService) ApplyReview(
	item *domain.ReviewItem,
	quality domain.ReviewQuality,
	now time.Time,
) (*domain.ReviewItem, error) {
	if item == nil {
		return nil, ErrNilItem
	}

	if !quality.Valid() {
		return nil, domain.ErrInvalidQuality
	}

	// Timestamps are compared in UTC everywhere; normalize here so a
	// caller passing a local time cannot introduce timezone drift.
	return apply(item, quality, now.UTC(), s.params), nil
}

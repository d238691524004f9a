package srs

import "github.com/ivrit-app/ivrit-api/internal/domain"

// Params defines all configurable parameters for the SM-2 algorithm.
type Params struct {
	// MinEaseFactor is the floor for the ease factor after any update.
	MinEaseFactor float64

	// InitialEaseFactor is assigned to items that have never been reviewed.
	InitialEaseFactor float64

	// FirstInterval is the interval in days after the first successful
	// review (repetitions == 0 at grading time).
	FirstInterval int

	// SecondInterval is the interval in days after the second consecutive
	// successful review (repetitions == 1 at grading time).
	SecondInterval int
}

// NewDefaultParams creates a Params instance with the classic SM-2 values.
func NewDefaultParams() *Params {
	return &Params{
		MinEaseFactor:     domain.MinEaseFactor,
		InitialEaseFactor: domain.InitialEaseFactor,
		FirstInterval:     1,
		SecondInterval:    6,
	}
}

// ParamsConfig allows overriding individual defaults when creating Params.
// Zero values fall back to the defaults from NewDefaultParams.
type ParamsConfig struct {
	MinEaseFactor     float64
	InitialEaseFactor float64
	FirstInterval     int
	SecondInterval    int
}

// NewParams creates a Params instance with custom configuration.
func NewParams(config ParamsConfig) *Params {
	params := NewDefaultParams()

	if config.MinEaseFactor > 0 {
		params.MinEaseFactor = config.MinEaseFactor
	}
	if config.InitialEaseFactor > 0 {
		params.InitialEaseFactor = config.InitialEaseFactor
	}
	if config.FirstInterval > 0 {
		params.FirstInterval = config.FirstInterval
	}
	if config.SecondInterval > 0 {
		params.SecondInterval = config.SecondInterval
	}

	return params
}

package review

import "errors"

// Common error types for the review scheduler service.
var (
	// ErrReviewItemNotFound indicates that the graded review item does not exist.
	ErrReviewItemNotFound = errors.New("review item not found")

	// ErrInvalidQuality indicates a recall quality rating outside [0,5].
	ErrInvalidQuality = errors.New("quality must be between 0 and 5")

	// ErrInvalidWord indicates a word record missing its required hebrew or
	// english text. Batch registration reports one wrapped instance per bad
	// record; valid records in the same batch are unaffected.
	ErrInvalidWord = errors.New("invalid word record")

	// ErrLessonNotFound indicates the content source has no such lesson.
	ErrLessonNotFound = errors.New("lesson not found")

	// ErrCourseNotFound indicates the content source has no such course.
	ErrCourseNotFound = errors.New("course not found")
)

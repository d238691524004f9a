package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/ivrit-app/ivrit-api/internal/domain"
	"github.com/ivrit-app/ivrit-api/internal/service/review"
	"github.com/ivrit-app/ivrit-api/internal/store"
)

// MapErrorToStatusCode maps internal errors to HTTP status codes based
// on the error type, so that internal error strings never decide the
// response shape.
func MapErrorToStatusCode(err error) int {
	switch {
	// Not found errors
	case errors.Is(err, review.ErrReviewItemNotFound),
		errors.Is(err, review.ErrLessonNotFound),
		errors.Is(err, review.ErrCourseNotFound),
		errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound

	// Conflict errors
	case errors.Is(err, store.ErrDuplicate):
		return http.StatusConflict

	// Bad request errors
	case errors.Is(err, review.ErrInvalidQuality),
		errors.Is(err, review.ErrInvalidWord),
		errors.Is(err, store.ErrInvalidEntity),
		errors.Is(err, domain.ErrInvalidQuality),
		errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-facing message for the
// error. Internal details stay in the logs.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	case errors.Is(err, review.ErrReviewItemNotFound):
		return "Review item not found"

	case errors.Is(err, review.ErrLessonNotFound):
		return "Lesson not found"

	case errors.Is(err, review.ErrCourseNotFound):
		return "Course not found"

	case errors.Is(err, store.ErrVocabularyNotFound):
		return "Vocabulary word not found"

	case errors.Is(err, store.ErrNotFound):
		return "Resource not found"

	case errors.Is(err, store.ErrDuplicate):
		return "Resource already exists"

	case errors.Is(err, review.ErrInvalidQuality),
		errors.Is(err, domain.ErrInvalidQuality):
		return "Quality rating must be between 0 and 5"

	case errors.Is(err, review.ErrInvalidWord):
		return "Invalid vocabulary word data"

	case errors.Is(err, store.ErrInvalidEntity),
		errors.Is(err, domain.ErrValidation):
		return "Invalid request data"

	default:
		return "An unexpected error occurred"
	}
}

// SanitizeValidationError turns a go-playground/validator error into a
// short user-facing message without echoing field values.
func SanitizeValidationError(err error) string {
	errMsg := err.Error()

	if strings.Contains(errMsg, "Field validation") {
		// Example: "Key: 'GradeRequest.Quality' Error:Field validation for 'Quality' failed on the 'max' tag"
		parts := strings.Split(errMsg, "Error:")
		if len(parts) >= 2 {
			fieldParts := strings.Split(parts[1], "'")
			if len(fieldParts) >= 3 {
				field := fieldParts[1]
				var tag string
				if len(fieldParts) >= 5 {
					tag = fieldParts[3]
				}
				if tag != "" {
					return fmt.Sprintf("Invalid %s: %s", field, validationTagMessage(tag))
				}
				return fmt.Sprintf("Invalid %s", field)
			}
		}
	}

	return "Validation error"
}

func validationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "min":
		return "value too small"
	case "max":
		return "value too large"
	case "uuid":
		return "invalid identifier format"
	case "oneof":
		return "invalid value"
	default:
		return "validation failed"
	}
}

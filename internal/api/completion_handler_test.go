package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ivrit-app/ivrit-api/internal/service/review"
)

func newCompletionRouter(svc review.Service) http.Handler {
	h := NewCompletionHandler(svc, testLogger())
	r := chi.NewRouter()
	r.Post("/api/lessons/{id}/complete", h.CompleteLesson)
	r.Post("/api/courses/{id}/complete", h.CompleteCourse)
	return r
}

func TestCompleteLesson(t *testing.T) {
	t.Parallel()
	userID := uuid.New()

	t.Run("returns the completion summary", func(t *testing.T) {
		t.Parallel()
		svc := &mockReviewService{
			completeFn: func(gotUser uuid.UUID, id string) (*review.CompletionSummary, error) {
				assert.Equal(t, userID, gotUser)
				assert.Equal(t, "lesson-1", id)
				return &review.CompletionSummary{
					TotalWords:    5,
					NewWordsAdded: 3,
					Message:       "Added 3 new words to your vocabulary review",
				}, nil
			},
		}
		router := newCompletionRouter(svc)

		req := httptest.NewRequest(http.MethodPost, "/api/lessons/lesson-1/complete",
			strings.NewReader(`{"user_id": "`+userID.String()+`"}`))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)

		var summary review.CompletionSummary
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &summary))
		assert.Equal(t, 5, summary.TotalWords)
		assert.Equal(t, 3, summary.NewWordsAdded)
		assert.Contains(t, summary.Message, "3 new words")
	})

	t.Run("missing user_id is a validation error", func(t *testing.T) {
		t.Parallel()
		router := newCompletionRouter(&mockReviewService{})

		req := httptest.NewRequest(http.MethodPost, "/api/lessons/lesson-1/complete",
			strings.NewReader(`{}`))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("malformed user_id is a validation error", func(t *testing.T) {
		t.Parallel()
		router := newCompletionRouter(&mockReviewService{})

		req := httptest.NewRequest(http.MethodPost, "/api/lessons/lesson-1/complete",
			strings.NewReader(`{"user_id": "not-a-uuid"}`))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("unknown lesson is not found", func(t *testing.T) {
		t.Parallel()
		svc := &mockReviewService{
			completeFn: func(_ uuid.UUID, _ string) (*review.CompletionSummary, error) {
				return nil, review.ErrLessonNotFound
			},
		}
		router := newCompletionRouter(svc)

		req := httptest.NewRequest(http.MethodPost, "/api/lessons/missing/complete",
			strings.NewReader(`{"user_id": "`+userID.String()+`"}`))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)

		var resp struct {
			Error string `json:"error"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "Lesson not found", resp.Error)
	})
}

func TestCompleteCourse(t *testing.T) {
	t.Parallel()
	userID := uuid.New()

	t.Run("returns the completion summary", func(t *testing.T) {
		t.Parallel()
		svc := &mockReviewService{
			completeFn: func(_ uuid.UUID, id string) (*review.CompletionSummary, error) {
				assert.Equal(t, "course-1", id)
				return &review.CompletionSummary{TotalWords: 12, NewWordsAdded: 12}, nil
			},
		}
		router := newCompletionRouter(svc)

		req := httptest.NewRequest(http.MethodPost, "/api/courses/course-1/complete",
			strings.NewReader(`{"user_id": "`+userID.String()+`"}`))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)

		var summary review.CompletionSummary
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &summary))
		assert.Equal(t, 12, summary.NewWordsAdded)
	})

	t.Run("unknown course is not found", func(t *testing.T) {
		t.Parallel()
		svc := &mockReviewService{
			completeFn: func(_ uuid.UUID, _ string) (*review.CompletionSummary, error) {
				return nil, review.ErrCourseNotFound
			},
		}
		router := newCompletionRouter(svc)

		req := httptest.NewRequest(http.MethodPost, "/api/courses/missing/complete",
			strings.NewReader(`{"user_id": "`+userID.String()+`"}`))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

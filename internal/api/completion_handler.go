package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/ivrit-app/ivrit-api/internal/api/shared"
	"github.com/ivrit-app/ivrit-api/internal/platform/logger"
	"github.com/ivrit-app/ivrit-api/internal/redact"
	"github.com/ivrit-app/ivrit-api/internal/service/review"
)

// CompletionHandler handles lesson and course completion HTTP requests.
// Completing a lesson or course registers its vocabulary and enqueues it
// into the user's review schedule.
type CompletionHandler struct {
	reviewService review.Service
	logger        *slog.Logger
}

// NewCompletionHandler creates a new CompletionHandler.
func NewCompletionHandler(reviewService review.Service, logger *slog.Logger) *CompletionHandler {
	if reviewService == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("reviewService cannot be nil for CompletionHandler")
	}
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for CompletionHandler")
	}

	return &CompletionHandler{
		reviewService: reviewService,
		logger:        logger.With(slog.String("component", "completion_handler")),
	}
}

// CompletionRequest is the request body for completing a lesson or course.
type CompletionRequest struct {
	UserID string `json:"user_id" validate:"required,uuid"`
}

// CompleteLesson handles POST /api/lessons/{id}/complete requests.
func (h *CompletionHandler) CompleteLesson(w http.ResponseWriter, r *http.Request) {
	h.handleCompletion(w, r, "lesson", h.reviewService.ProcessLessonCompletion)
}

// CompleteCourse handles POST /api/courses/{id}/complete requests.
func (h *CompletionHandler) CompleteCourse(w http.ResponseWriter, r *http.Request) {
	h.handleCompletion(w, r, "course", h.reviewService.ProcessCourseCompletion)
}

func (h *CompletionHandler) handleCompletion(
	w http.ResponseWriter,
	r *http.Request,
	kind string,
	process func(ctx context.Context, userID uuid.UUID, id string) (*review.CompletionSummary, error),
) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	contentID := chi.URLParam(r, "id")
	if contentID == "" {
		log.Warn("content ID not found in URL path", slog.String("kind", kind))
		shared.RespondWithError(w, r, http.StatusBadRequest, "ID is required")
		return
	}

	var req CompletionRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		log.Warn("invalid request format",
			slog.String("error", redact.Error(err)),
			slog.String("kind", kind),
			slog.String("content_id", contentID))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.ValidateRequest(req); err != nil {
		log.Warn("validation error",
			slog.String("error", redact.Error(err)),
			slog.String("kind", kind),
			slog.String("content_id", contentID))
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return
	}

	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		log.Warn("invalid user_id format", slog.String("user_id", req.UserID))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid user_id format")
		return
	}

	summary, err := process(r.Context(), userID, contentID)
	if err != nil {
		statusCode := MapErrorToStatusCode(err)
		safeMessage := GetSafeErrorMessage(err)
		if statusCode == http.StatusInternalServerError {
			safeMessage = "Failed to process completion"
		}
		shared.RespondWithErrorAndLog(w, r, statusCode, safeMessage, err)
		return
	}

	log.Info("processed completion",
		slog.String("kind", kind),
		slog.String("content_id", contentID),
		slog.String("user_id", userID.String()),
		slog.Int("new_words_added", summary.NewWordsAdded))
	shared.RespondWithJSON(w, r, http.StatusOK, summary)
}

package api

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/ivrit-app/ivrit-api/internal/api/shared"
	"github.com/ivrit-app/ivrit-api/internal/domain"
	"github.com/ivrit-app/ivrit-api/internal/platform/logger"
	"github.com/ivrit-app/ivrit-api/internal/redact"
	"github.com/ivrit-app/ivrit-api/internal/service/review"
	"github.com/ivrit-app/ivrit-api/internal/store"
)

// DefaultReviewLimit caps the due-word list when the client does not
// ask for a specific limit.
const DefaultReviewLimit = 20

// VocabularyHandler handles vocabulary review HTTP requests.
type VocabularyHandler struct {
	reviewService review.Service
	logger        *slog.Logger
}

// NewVocabularyHandler creates a new VocabularyHandler.
func NewVocabularyHandler(reviewService review.Service, logger *slog.Logger) *VocabularyHandler {
	if reviewService == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("reviewService cannot be nil for VocabularyHandler")
	}
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for VocabularyHandler")
	}

	return &VocabularyHandler{
		reviewService: reviewService,
		logger:        logger.With(slog.String("component", "vocabulary_handler")),
	}
}

// GetReviewWords handles GET /api/vocabulary/review requests.
// It returns the user's due review words, most overdue first.
func (h *VocabularyHandler) GetReviewWords(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := userIDFromQuery(w, r, log)
	if !ok {
		return
	}

	limit := DefaultReviewLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			log.Warn("invalid limit parameter", slog.String("limit", raw))
			shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid limit parameter")
			return
		}
		limit = parsed
	}

	words, err := h.reviewService.GetDueReviewWords(r.Context(), userID, limit)
	if err != nil {
		statusCode := MapErrorToStatusCode(err)
		safeMessage := GetSafeErrorMessage(err)
		if statusCode == http.StatusInternalServerError {
			safeMessage = "Failed to get review words"
		}
		shared.RespondWithErrorAndLog(w, r, statusCode, safeMessage, err)
		return
	}

	log.Debug("retrieved due review words",
		slog.String("user_id", userID.String()),
		slog.Int("count", len(words)))
	shared.RespondWithJSON(w, r, http.StatusOK, ReviewWordListResponse{
		Words: reviewWordsToResponse(words),
		Count: len(words),
	})
}

// GradeRequest is the request body for grading a review.
type GradeRequest struct {
	Quality *int `json:"quality" validate:"required,min=0,max=5"`
}

// GradeResponse is the response body after grading a review.
type GradeResponse struct {
	ReviewItemID string    `json:"id"`
	NextReview   time.Time `json:"next_review"`
	Interval     int       `json:"interval"`
	Repetitions  int       `json:"repetitions"`
}

// GradeReview handles POST /api/vocabulary/review/{id} requests.
// It records a recall quality rating for a review item and returns the
// new schedule.
func (h *VocabularyHandler) GradeReview(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	pathID := chi.URLParam(r, "id")
	if pathID == "" {
		log.Warn("review item ID not found in URL path")
		shared.RespondWithError(w, r, http.StatusBadRequest, "Review item ID is required")
		return
	}

	reviewItemID, err := uuid.Parse(pathID)
	if err != nil {
		log.Warn("invalid review item ID format", slog.String("id", pathID))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid review item ID format")
		return
	}

	var req GradeRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		log.Warn("invalid request format",
			slog.String("error", redact.Error(err)),
			slog.String("review_item_id", reviewItemID.String()))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.ValidateRequest(req); err != nil {
		log.Warn("validation error",
			slog.String("error", redact.Error(err)),
			slog.String("review_item_id", reviewItemID.String()))
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return
	}

	result, err := h.reviewService.GradeReview(
		r.Context(),
		reviewItemID,
		domain.ReviewQuality(*req.Quality),
	)
	if err != nil {
		statusCode := MapErrorToStatusCode(err)
		safeMessage := GetSafeErrorMessage(err)
		if statusCode == http.StatusInternalServerError {
			safeMessage = "Failed to grade review"
		}
		shared.RespondWithErrorAndLog(w, r, statusCode, safeMessage, err)
		return
	}

	log.Debug("graded review",
		slog.String("review_item_id", reviewItemID.String()),
		slog.Int("quality", *req.Quality),
		slog.Int("interval", result.Interval))
	shared.RespondWithJSON(w, r, http.StatusOK, GradeResponse{
		ReviewItemID: reviewItemID.String(),
		NextReview:   result.NextReview,
		Interval:     result.Interval,
		Repetitions:  result.Repetitions,
	})
}

// GetStats handles GET /api/vocabulary/stats requests.
func (h *VocabularyHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := userIDFromQuery(w, r, log)
	if !ok {
		return
	}

	counts, err := h.reviewService.GetStats(r.Context(), userID)
	if err != nil {
		statusCode := MapErrorToStatusCode(err)
		safeMessage := GetSafeErrorMessage(err)
		if statusCode == http.StatusInternalServerError {
			safeMessage = "Failed to get vocabulary stats"
		}
		shared.RespondWithErrorAndLog(w, r, statusCode, safeMessage, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, counts)
}

// ListVocabulary handles GET /api/vocabulary/all requests.
// It returns all of the user's words with review state, newest first,
// optionally filtered by category and level.
func (h *VocabularyHandler) ListVocabulary(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := userIDFromQuery(w, r, log)
	if !ok {
		return
	}

	filter := store.ListFilter{
		Category: r.URL.Query().Get("category"),
		Level:    r.URL.Query().Get("level"),
	}

	words, err := h.reviewService.ListUserVocabulary(r.Context(), userID, filter)
	if err != nil {
		statusCode := MapErrorToStatusCode(err)
		safeMessage := GetSafeErrorMessage(err)
		if statusCode == http.StatusInternalServerError {
			safeMessage = "Failed to list vocabulary"
		}
		shared.RespondWithErrorAndLog(w, r, statusCode, safeMessage, err)
		return
	}

	log.Debug("listed user vocabulary",
		slog.String("user_id", userID.String()),
		slog.Int("count", len(words)))
	shared.RespondWithJSON(w, r, http.StatusOK, ReviewWordListResponse{
		Words: reviewWordsToResponse(words),
		Count: len(words),
	})
}

// ReviewWordResponse is the client-facing shape of one reviewable word.
type ReviewWordResponse struct {
	ID              string    `json:"id"`
	VocabularyID    string    `json:"vocabulary_id"`
	Hebrew          string    `json:"hebrew"`
	English         string    `json:"english"`
	Transliteration string    `json:"transliteration,omitempty"`
	Category        string    `json:"category"`
	Level           string    `json:"level"`
	ExampleSentence string    `json:"example_sentence,omitempty"`
	AudioURL        string    `json:"audio_url,omitempty"`
	Repetitions     int       `json:"repetitions"`
	NextReview      time.Time `json:"next_review"`
}

// ReviewWordListResponse wraps a list of reviewable words.
type ReviewWordListResponse struct {
	Words []ReviewWordResponse `json:"words"`
	Count int                  `json:"count"`
}

func reviewWordsToResponse(words []domain.ReviewWord) []ReviewWordResponse {
	out := make([]ReviewWordResponse, 0, len(words))
	for _, word := range words {
		out = append(out, ReviewWordResponse{
			ID:              word.ReviewItemID.String(),
			VocabularyID:    word.VocabularyID.String(),
			Hebrew:          word.Hebrew,
			English:         word.English,
			Transliteration: word.Transliteration,
			Category:        word.Category,
			Level:           word.Level,
			ExampleSentence: word.ExampleSentence,
			AudioURL:        word.AudioURL,
			Repetitions:     word.Repetitions,
			NextReview:      word.NextReview,
		})
	}
	return out
}

// userIDFromQuery extracts and parses the user_id query parameter,
// writing a 400 response and returning ok=false when it is missing or
// malformed.
func userIDFromQuery(w http.ResponseWriter, r *http.Request, log *slog.Logger) (uuid.UUID, bool) {
	raw := r.URL.Query().Get("user_id")
	if raw == "" {
		log.Warn("user_id query parameter missing")
		shared.RespondWithError(w, r, http.StatusBadRequest, "user_id is required")
		return uuid.Nil, false
	}

	userID, err := uuid.Parse(raw)
	if err != nil {
		log.Warn("invalid user_id format", slog.String("user_id", raw))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid user_id format")
		return uuid.Nil, false
	}
	return userID, true
}

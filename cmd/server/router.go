package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"

	"github.com/ivrit-app/ivrit-api/internal/api"
	apiMiddleware "github.com/ivrit-app/ivrit-api/internal/api/middleware"
)

// setupRouter creates and configures the application router with all
// routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware)

	corsOptions := cors.Options{
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}
	if len(app.config.Server.CORSOrigins) > 0 {
		corsOptions.AllowedOrigins = app.config.Server.CORSOrigins
	} else {
		corsOptions.AllowedOrigins = []string{"*"}
	}
	r.Use(cors.New(corsOptions).Handler)

	vocabularyHandler := api.NewVocabularyHandler(app.reviewService, app.logger)
	completionHandler := api.NewCompletionHandler(app.reviewService, app.logger)

	r.Route("/api", func(r chi.Router) {
		// Vocabulary review endpoints
		r.Get("/vocabulary/review", vocabularyHandler.GetReviewWords)
		r.Post("/vocabulary/review/{id}", vocabularyHandler.GradeReview)
		r.Get("/vocabulary/stats", vocabularyHandler.GetStats)
		r.Get("/vocabulary/all", vocabularyHandler.ListVocabulary)

		// Lesson and course completion endpoints
		r.Post("/lessons/{id}/complete", completionHandler.CompleteLesson)
		r.Post("/courses/{id}/complete", completionHandler.CompleteCourse)
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	return r
}

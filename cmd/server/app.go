package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/ivrit-app/ivrit-api/internal/config"
	"github.com/ivrit-app/ivrit-api/internal/domain/srs"
	"github.com/ivrit-app/ivrit-api/internal/generation"
	"github.com/ivrit-app/ivrit-api/internal/platform/openai"
	"github.com/ivrit-app/ivrit-api/internal/platform/postgres"
	"github.com/ivrit-app/ivrit-api/internal/service/review"
	"github.com/ivrit-app/ivrit-api/internal/store"
)

// application holds the shared application dependencies to simplify
// management and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	vocabularyStore store.VocabularyStore
	reviewStore     store.ReviewStore

	srsService    srs.Service
	contentSource review.ContentSource
	generator     generation.Generator
	reviewService review.Service
}

// newApplication creates a new application instance with all
// dependencies initialized. Configuration, logging and the database
// connection must already be established.
func newApplication(cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	app.vocabularyStore = postgres.NewPostgresVocabularyStore(db, logger)
	app.reviewStore = postgres.NewPostgresReviewStore(db, logger)

	app.srsService = srs.NewServiceWithParams(srs.NewParams(srs.ParamsConfig{
		MinEaseFactor:     cfg.SRS.MinEaseFactor,
		InitialEaseFactor: cfg.SRS.InitialEaseFactor,
		FirstInterval:     cfg.SRS.FirstInterval,
		SecondInterval:    cfg.SRS.SecondInterval,
	}))

	source, err := setupContentSource(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to load curriculum: %w", err)
	}
	app.contentSource = source

	// The generator is optional; without an API key missing example
	// sentences are simply left empty.
	if cfg.OpenAI.APIKey != "" {
		generator, err := openai.NewGenerator(openai.Config{
			APIKey: cfg.OpenAI.APIKey,
			Model:  cfg.OpenAI.Model,
		}, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize sentence generator: %w", err)
		}
		app.generator = generator
		logger.Info("Example sentence generator initialized")
	} else {
		logger.Info("No OpenAI API key configured, sentence generation disabled")
	}

	app.reviewService = review.NewService(
		db,
		app.vocabularyStore,
		app.reviewStore,
		app.srsService,
		app.contentSource,
		app.generator,
		logger,
	)

	logger.Info("Application initialized successfully")
	return app, nil
}

// setupContentSource loads the curriculum file when configured, falling
// back to an empty static source otherwise.
func setupContentSource(cfg *config.Config, logger *slog.Logger) (review.ContentSource, error) {
	if cfg.Content.CurriculumFile == "" {
		logger.Info("No curriculum file configured, content source is empty")
		return review.NewStaticContentSource(nil), nil
	}

	source, err := review.LoadCurriculum(cfg.Content.CurriculumFile)
	if err != nil {
		return nil, err
	}
	logger.Info("Curriculum loaded", "path", cfg.Content.CurriculumFile)
	return source, nil
}

// Run starts the application server, handling lifecycle and cleanup.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.db != nil {
		closeDatabase(app.db, app.logger)
	}
	app.logger.Info("Application shutdown completed")
}

// Package logger provides structured logging for the application, built
// on log/slog with JSON output in production and a colorized tint
// handler for local development.
package logger

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/lmittmann/tint"
)

// Config controls logger setup.
type Config struct {
	// Level is the minimum level to log: debug, info, warn or error.
	Level string

	// Pretty switches from JSON output to a human-readable colorized
	// handler. Intended for local development only.
	Pretty bool
}

// Setup initializes the application's logging system from the given
// configuration, sets the result as the process-wide default logger and
// returns it. An unknown level is an error rather than a silent default
// so that a typo in configuration is caught at startup.
func Setup(cfg Config) (*slog.Logger, error) {
	var level slog.Level
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = slog.LevelDebug
	case "info", "":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return nil, fmt.Errorf("invalid log level %q", cfg.Level)
	}

	var handler slog.Handler
	if cfg.Pretty {
		handler = tint.NewHandler(os.Stdout, &tint.Options{
			Level:      level,
			TimeFormat: time.Kitchen,
		})
	} else {
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: level,
		})
	}

	log := slog.New(handler)
	slog.SetDefault(log)

	return log, nil
}

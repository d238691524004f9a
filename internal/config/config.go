package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"   validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	SRS      SRSConfig      `mapstructure:"srs"`
	OpenAI   OpenAIConfig   `mapstructure:"openai"`
	Content  ContentConfig  `mapstructure:"content"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	// PrettyLogs switches from JSON to colorized text log output for
	// local development.
	PrettyLogs bool `mapstructure:"pretty_logs"`
	// CORSOrigins lists the allowed CORS origins. Empty means allow all.
	CORSOrigins []string `mapstructure:"cors_origins"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"required"`
	// MaxOpenConns caps the connection pool size. Zero keeps the driver
	// default.
	MaxOpenConns int `mapstructure:"max_open_conns" validate:"gte=0"`
}

// SRSConfig tunes the spaced repetition scheduler. Zero values fall back
// to the standard SM-2 parameters.
type SRSConfig struct {
	MinEaseFactor     float64 `mapstructure:"min_ease_factor"     validate:"gte=0"`
	InitialEaseFactor float64 `mapstructure:"initial_ease_factor" validate:"gte=0"`
	FirstInterval     int     `mapstructure:"first_interval"      validate:"gte=0"`
	SecondInterval    int     `mapstructure:"second_interval"     validate:"gte=0"`
}

// OpenAIConfig contains settings for the example-sentence generator.
// An empty APIKey disables generation.
type OpenAIConfig struct {
	APIKey string `mapstructure:"api_key"`
	Model  string `mapstructure:"model"`
}

// ContentConfig points at the curriculum backing lesson and course
// completions. An empty path means no built-in curriculum is loaded.
type ContentConfig struct {
	CurriculumFile string `mapstructure:"curriculum_file"`
}

// Package config defines the application's configuration structure and
// loading logic. Settings come from environment variables (HEBREW_
// prefix) and an optional config.yaml, with environment variables taking
// precedence, and are validated before the application starts.
package config

// Package cli provides common process initialization utilities for
// cmd/spendtrack.
package cli

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"spendtrack/internal/config"
	"spendtrack/internal/storage"
)

// SetupLogger initializes structured logging at the given level and
// sets it as the default logger.
func SetupLogger(level slog.Level) *slog.Logger {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)
	return logger
}

// LoadEnvFile loads the .env file for local development. Errors are
// ignored silently as the file is optional.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// LoadAndValidateConfig loads configuration and validates it, exiting
// the process on validation failure.
func LoadAndValidateConfig(logger *slog.Logger) *config.Config {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("configuration validation failed", "error", err)
		os.Exit(1)
	}
	return cfg
}

// InitStore opens the database at the given path, exiting the process
// on failure. An unopenable store is the one unrecoverable startup
// error.
func InitStore(logger *slog.Logger, dbPath string) *storage.Store {
	store, err := storage.Open(dbPath)
	if err != nil {
		logger.Error("failed to open store", "error", err, "path", dbPath)
		os.Exit(1)
	}
	return store
}

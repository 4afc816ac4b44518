package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"spendtrack/internal/credential"
)

type Config struct {
	// Database
	DBPath string

	// Credentials
	CredentialScheme string

	// Logging
	LogLevel string
}

func Load() *Config {
	return &Config{
		DBPath:           getEnv("SPENDTRACK_DB_PATH", "./data/spendtrack.db"),
		CredentialScheme: getEnv("CREDENTIAL_SCHEME", credential.SchemeSHA256),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
	}
}

// Validate validates the configuration and returns an error if invalid.
func (c *Config) Validate() error {
	var errs []string

	if c.DBPath == "" {
		errs = append(errs, "database path cannot be empty")
	}

	if _, err := credential.ForScheme(c.CredentialScheme); err != nil {
		errs = append(errs, err.Error())
	}

	if _, err := parseLevel(c.LogLevel); err != nil {
		errs = append(errs, err.Error())
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errs, "\n- "))
	}
	return nil
}

// SlogLevel returns the configured log level. Load's default always
// parses; call Validate first for user-supplied values.
func (c *Config) SlogLevel() slog.Level {
	level, err := parseLevel(c.LogLevel)
	if err != nil {
		return slog.LevelInfo
	}
	return level
}

func parseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return 0, fmt.Errorf("invalid log level %q: must be debug, info, warn or error", s)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

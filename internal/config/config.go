// Package config loads server settings from the environment, with a .env
// file honored in development.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config is the top-level application configuration.
type Config struct {
	// ListenAddr is the HTTP bind address.
	ListenAddr string
	// WordAPIBaseURL is the random-word service base URL.
	WordAPIBaseURL string
	// MeaningAPIBaseURL is the dictionary service base URL.
	MeaningAPIBaseURL string
	// WordLengthMin/Max bound the letters in a round's word, inclusive.
	WordLengthMin int
	WordLengthMax int
	// ProviderTimeout caps one word-and-meaning fetch.
	ProviderTimeout time.Duration
	// LogLevel is "debug", "info", "warn", or "error".
	LogLevel string
	// LogFormat is "json" or "console".
	LogFormat string
}

// Load reads configuration from the environment. A missing .env file is not
// an error; explicit environment variables always win over defaults.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		ListenAddr:        envOr("LISTEN_ADDR", ":8080"),
		WordAPIBaseURL:    envOr("WORD_API_BASE_URL", "https://random-word-api.herokuapp.com"),
		MeaningAPIBaseURL: envOr("MEANING_API_BASE_URL", "https://api.dictionaryapi.dev/api/v2/entries/en"),
		LogLevel:          envOr("LOG_LEVEL", "info"),
		LogFormat:         envOr("LOG_FORMAT", "json"),
	}

	var err error
	if cfg.WordLengthMin, err = envIntOr("WORD_LENGTH_MIN", 5); err != nil {
		return Config{}, err
	}
	if cfg.WordLengthMax, err = envIntOr("WORD_LENGTH_MAX", 12); err != nil {
		return Config{}, err
	}
	if cfg.ProviderTimeout, err = envDurationOr("PROVIDER_TIMEOUT", 10*time.Second); err != nil {
		return Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks all configuration invariants, reporting every violation.
func (c Config) Validate() error {
	var errs []string

	if c.ListenAddr == "" {
		errs = append(errs, "listen address must not be empty")
	}
	if c.WordAPIBaseURL == "" {
		errs = append(errs, "word API base URL must not be empty")
	}
	if c.MeaningAPIBaseURL == "" {
		errs = append(errs, "meaning API base URL must not be empty")
	}
	if c.WordLengthMin < 1 {
		errs = append(errs, fmt.Sprintf("word length min %d must be at least 1", c.WordLengthMin))
	}
	if c.WordLengthMax < c.WordLengthMin {
		errs = append(errs, fmt.Sprintf("word length max %d must not be below min %d", c.WordLengthMax, c.WordLengthMin))
	}
	if c.ProviderTimeout <= 0 {
		errs = append(errs, "provider timeout must be positive")
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Sprintf("unknown log level %q", c.LogLevel))
	}
	switch c.LogFormat {
	case "json", "console":
	default:
		errs = append(errs, fmt.Sprintf("unknown log format %q", c.LogFormat))
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOr(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("parsing %s=%q: %w", key, v, err)
	}
	return n, nil
}

func envDurationOr(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("parsing %s=%q: %w", key, v, err)
	}
	return d, nil
}

package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, ":8080", cfg.ListenAddr)
	require.Equal(t, 5, cfg.WordLengthMin)
	require.Equal(t, 12, cfg.WordLengthMax)
	require.Equal(t, 10*time.Second, cfg.ProviderTimeout)
	require.Equal(t, "info", cfg.LogLevel)
	require.Equal(t, "json", cfg.LogFormat)
}

func TestLoadHonorsEnvironment(t *testing.T) {
	t.Setenv("LISTEN_ADDR", ":3001")
	t.Setenv("WORD_LENGTH_MIN", "6")
	t.Setenv("WORD_LENGTH_MAX", "8")
	t.Setenv("PROVIDER_TIMEOUT", "2s")
	t.Setenv("LOG_FORMAT", "console")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, ":3001", cfg.ListenAddr)
	require.Equal(t, 6, cfg.WordLengthMin)
	require.Equal(t, 8, cfg.WordLengthMax)
	require.Equal(t, 2*time.Second, cfg.ProviderTimeout)
	require.Equal(t, "console", cfg.LogFormat)
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Setenv("WORD_LENGTH_MIN", "five")
	_, err := Load()
	require.Error(t, err)
}

func TestValidateReportsAllViolations(t *testing.T) {
	cfg := Config{
		WordLengthMin:   0,
		WordLengthMax:   -1,
		ProviderTimeout: 0,
		LogLevel:        "loud",
		LogFormat:       "xml",
	}
	err := cfg.Validate()
	require.Error(t, err)
	require.Contains(t, err.Error(), "word length min")
	require.Contains(t, err.Error(), "log level")
	require.Contains(t, err.Error(), "log format")
}

func TestValidateInvertedRange(t *testing.T) {
	cfg := Config{
		ListenAddr:        ":8080",
		WordAPIBaseURL:    "http://words",
		MeaningAPIBaseURL: "http://meanings",
		WordLengthMin:     9,
		WordLengthMax:     5,
		ProviderTimeout:   time.Second,
		LogLevel:          "info",
		LogFormat:         "json",
	}
	require.Error(t, cfg.Validate())
}

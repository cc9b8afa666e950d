package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		ServerPort:     "8080",
		RequestTimeout: 30 * time.Second,
		DatabaseURL:    "postgres://localhost/todos",
		JWTSecret:      "0123456789abcdef0123456789abcdef",
		JWTAccessTTL:   time.Hour,
		JWTRefreshTTL:  168 * time.Hour,
	}
}

func TestValidateAcceptsCompleteConfig(t *testing.T) {
	require.NoError(t, validConfig().Validate())
}

func TestValidateRequiresSecret(t *testing.T) {
	cfg := validConfig()
	cfg.JWTSecret = ""
	require.Error(t, cfg.Validate())

	// A present but short secret is just as unacceptable.
	cfg.JWTSecret = "short"
	require.Error(t, cfg.Validate())
}

func TestValidateRequiresDatabaseURL(t *testing.T) {
	cfg := validConfig()
	cfg.DatabaseURL = "  "
	require.Error(t, cfg.Validate())
}

func TestValidateRequiresPositiveTTLs(t *testing.T) {
	cfg := validConfig()
	cfg.JWTAccessTTL = 0
	require.Error(t, cfg.Validate())

	cfg = validConfig()
	cfg.JWTRefreshTTL = -time.Hour
	require.Error(t, cfg.Validate())
}

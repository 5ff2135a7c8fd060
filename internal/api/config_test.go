package api

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "http://localhost:8000", cfg.BaseURL)
	assert.Equal(t, 60*time.Second, cfg.Timeout)
	assert.Equal(t, 5*time.Second, cfg.HealthTimeout)
	assert.Equal(t, 2, cfg.Retry.MaxAttempts)
	require.NoError(t, cfg.Validate())
}

func TestConfigFromEnv(t *testing.T) {
	t.Setenv("QRAYTI_API_URL", "http://10.0.0.5:9000")
	t.Setenv("QRAYTI_TIMEOUT", "90s")
	t.Setenv("QRAYTI_HEALTH_TIMEOUT", "2s")
	t.Setenv("QRAYTI_RETRY_ATTEMPTS", "4")

	cfg := ConfigFromEnv()
	assert.Equal(t, "http://10.0.0.5:9000", cfg.BaseURL)
	assert.Equal(t, 90*time.Second, cfg.Timeout)
	assert.Equal(t, 2*time.Second, cfg.HealthTimeout)
	assert.Equal(t, 4, cfg.Retry.MaxAttempts)
}

func TestConfigFromEnv_IgnoresGarbage(t *testing.T) {
	t.Setenv("QRAYTI_API_URL", "")
	t.Setenv("QRAYTI_TIMEOUT", "soon")
	t.Setenv("QRAYTI_RETRY_ATTEMPTS", "many")

	cfg := ConfigFromEnv()
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"no base url", func(c *Config) { c.BaseURL = "" }},
		{"not a url", func(c *Config) { c.BaseURL = "localhost 8000" }},
		{"zero timeout", func(c *Config) { c.Timeout = 0 }},
		{"zero health timeout", func(c *Config) { c.HealthTimeout = 0 }},
		{"zero attempts", func(c *Config) { c.Retry.MaxAttempts = 0 }},
		{"shrinking backoff", func(c *Config) { c.Retry.Multiplier = 0.5 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestSessionID(t *testing.T) {
	assert.Equal(t, "unknown", SessionIDFrom(context.Background()))
	ctx := WithSessionID(context.Background(), "abc")
	assert.Equal(t, "abc", SessionIDFrom(ctx))
}

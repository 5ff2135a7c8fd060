package monitor

import (
	"os"
	"time"
)

// Polling bounds for Watch.
const (
	DefaultPollInterval = 10 * time.Second
	MinPollInterval     = 5 * time.Second
	MaxPollInterval     = 15 * time.Second
)

// Config holds monitor configuration.
type Config struct {
	// PollInterval is the delay between probes in Watch. Zero means
	// DefaultPollInterval; other values are clamped to
	// [MinPollInterval, MaxPollInterval].
	PollInterval time.Duration
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{PollInterval: DefaultPollInterval}
}

// ConfigFromEnv reads QRAYTI_POLL_INTERVAL, falling back to the default.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()
	if v := os.Getenv("QRAYTI_POLL_INTERVAL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.PollInterval = d
		}
	}
	return cfg
}

func (c Config) interval() time.Duration {
	if c.PollInterval == 0 {
		return DefaultPollInterval
	}
	return min(max(c.PollInterval, MinPollInterval), MaxPollInterval)
}

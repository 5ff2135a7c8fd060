package api

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
)

// DefaultBaseURL is used when no base URL is configured.
const DefaultBaseURL = "http://localhost:8000"

// Config holds the transport client configuration. It is passed to
// NewClient explicitly; call sites never read the environment.
type Config struct {
	// BaseURL is the root of the remote service, e.g. http://localhost:8000.
	BaseURL string `validate:"required,url"`

	// Timeout bounds a single upload or generation call. Default: 60s.
	Timeout time.Duration `validate:"gt=0"`

	// HealthTimeout bounds a single /health call. Default: 5s.
	HealthTimeout time.Duration `validate:"gt=0"`

	Retry RetryConfig
}

// RetryConfig configures retry behavior for transient failures.
type RetryConfig struct {
	MaxAttempts int           `validate:"min=1"`
	InitialWait time.Duration `validate:"gte=0"`
	MaxWait     time.Duration `validate:"gte=0"`
	Multiplier  float64       `validate:"gte=1"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		BaseURL:       DefaultBaseURL,
		Timeout:       60 * time.Second,
		HealthTimeout: 5 * time.Second,
		Retry: RetryConfig{
			MaxAttempts: 2,
			InitialWait: 500 * time.Millisecond,
			MaxWait:     4 * time.Second,
			Multiplier:  2.0,
		},
	}
}

// ConfigFromEnv builds a Config from environment variables, falling back
// to defaults for unset or unparseable values.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()

	if u := os.Getenv("QRAYTI_API_URL"); u != "" {
		cfg.BaseURL = u
	}
	if d, ok := envDuration("QRAYTI_TIMEOUT"); ok {
		cfg.Timeout = d
	}
	if d, ok := envDuration("QRAYTI_HEALTH_TIMEOUT"); ok {
		cfg.HealthTimeout = d
	}
	if v := os.Getenv("QRAYTI_RETRY_ATTEMPTS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Retry.MaxAttempts = n
		}
	}

	return cfg
}

// Validate checks the configuration before a client is built from it.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid API config: %w", err)
	}
	return nil
}

func envDuration(key string) (time.Duration, bool) {
	v := os.Getenv(key)
	if v == "" {
		return 0, false
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, false
	}
	return d, true
}

// validate is shared by config, document and request validation.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("document_mime", func(fl validator.FieldLevel) bool {
		return IsDocumentMIME(fl.Field().String())
	})
	return v
}

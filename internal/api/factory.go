package api

import (
	"fmt"

	"go.uber.org/zap"
)

// NewService creates the production Service from configuration, wrapped
// with retry and logging middleware.
func NewService(cfg Config, logger *zap.Logger, opts ...ClientOption) (Service, error) {
	base, err := NewClient(cfg, opts...)
	if err != nil {
		return nil, fmt.Errorf("initializing API client: %w", err)
	}

	// Wrap with middleware: caller → retry → logging → base
	logged := WithLogging(base, logger)
	retried := WithRetry(logged, cfg.Retry)

	return retried, nil
}

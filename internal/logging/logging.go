// Package logging builds the application's zap logger.
package logging

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// Options controls logger construction.
type Options struct {
	// Level is a zap level name: debug, info, warn or error.
	Level string

	// Path is the log destination: a file path, "stderr" or "stdout".
	// Empty discards all output, which keeps logs off a running TUI.
	Path string

	// Production selects JSON output instead of the console encoder.
	Production bool
}

// New builds a logger from opts.
func New(opts Options) (*zap.Logger, error) {
	if opts.Path == "" {
		return zap.NewNop(), nil
	}

	level := zap.InfoLevel
	if opts.Level != "" {
		lvl, err := zap.ParseAtomicLevel(strings.ToLower(opts.Level))
		if err != nil {
			return nil, fmt.Errorf("log level %q: %w", opts.Level, err)
		}
		level = lvl.Level()
	}

	var cfg zap.Config
	if opts.Production {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.Level = zap.NewAtomicLevelAt(level)
	cfg.OutputPaths = []string{opts.Path}
	cfg.ErrorOutputPaths = []string{opts.Path}

	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return logger, nil
}

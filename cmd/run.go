package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/qrayti/internal/app"
	"github.com/abhisek/qrayti/internal/monitor"
	"github.com/abhisek/qrayti/internal/summary"
)

// runApp builds dependencies and launches the TUI.
func runApp(cmd *cobra.Command) error {
	logger, err := newLogger(cmd, "")
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	svc, err := newService(cmd, logger)
	if err != nil {
		return err
	}

	demo, _ := cmd.Flags().GetBool("demo")
	questions, _ := cmd.Flags().GetInt("questions")
	if questions < 1 || questions > 20 {
		return fmt.Errorf("--questions must be between 1 and 20, got %d", questions)
	}

	logger.Info("starting", zap.String("base_url", svc.BaseURL()))
	return app.Run(app.Options{
		Service:      svc,
		Monitor:      monitor.New(svc, monitor.ConfigFromEnv(), logger),
		Clipboard:    summary.SystemClipboard{},
		Logger:       logger,
		NumQuestions: questions,
		Demo:         demo,
	})
}

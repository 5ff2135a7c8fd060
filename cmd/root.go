package cmd

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/qrayti/internal/api"
	"github.com/abhisek/qrayti/internal/logging"
)

var rootCmd = &cobra.Command{
	Use:   "qrayti",
	Short: "Study assistant for your course documents",
	Long:  "Qrayti turns a PDF or Word course into quizzes and structured summaries, right in the terminal.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return loadEnvFile(cmd)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("api-url", "", "Backend base URL (overrides QRAYTI_API_URL)")
	pf.String("env-file", ".env", "Dotenv file to load before reading the environment")
	pf.String("log-file", "", "Write logs to this file (the TUI discards logs by default)")
	pf.String("log-level", "info", "Log level: debug, info, warn or error")

	rootCmd.Flags().Bool("demo", false, "Open the bundled sample course without uploading")
	rootCmd.Flags().Int("questions", 5, "Number of quiz questions to request (1-20)")

	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(outlineCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadEnvFile loads the --env-file dotenv. A missing file is not an error;
// variables already set in the environment win.
func loadEnvFile(cmd *cobra.Command) error {
	path, _ := cmd.Flags().GetString("env-file")
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load env file %s: %w", path, err)
	}
	return nil
}

// newLogger builds the logger for a command. fallback is the destination
// used when --log-file is not given.
func newLogger(cmd *cobra.Command, fallback string) (*zap.Logger, error) {
	path, _ := cmd.Flags().GetString("log-file")
	if path == "" {
		path = fallback
	}
	level, _ := cmd.Flags().GetString("log-level")
	return logging.New(logging.Options{Level: level, Path: path})
}

// resolveConfig reads the client configuration from the environment, with
// --api-url taking precedence.
func resolveConfig(cmd *cobra.Command) (api.Config, error) {
	cfg := api.ConfigFromEnv()
	if u, _ := cmd.Flags().GetString("api-url"); u != "" {
		cfg.BaseURL = u
	}
	if err := cfg.Validate(); err != nil {
		return api.Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// newService builds the backend service stack from flags and environment.
func newService(cmd *cobra.Command, logger *zap.Logger) (api.Service, error) {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return nil, err
	}
	return api.NewService(cfg, logger)
}

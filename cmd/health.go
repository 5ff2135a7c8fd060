package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/abhisek/qrayti/internal/monitor"
)

// errNotReady makes the process exit non-zero when the backend cannot
// serve generation requests yet.
var errNotReady = errors.New("backend not ready")

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check whether the backend is reachable and its model is loaded",
	RunE: func(cmd *cobra.Command, args []string) error {
		logger, err := newLogger(cmd, "stderr")
		if err != nil {
			return err
		}
		defer func() { _ = logger.Sync() }()

		svc, err := newService(cmd, logger)
		if err != nil {
			return err
		}
		m := monitor.New(svc, monitor.ConfigFromEnv(), logger)

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		out := cmd.OutOrStdout()
		watch, _ := cmd.Flags().GetBool("watch")

		var st monitor.Status
		if watch {
			fmt.Fprintf(out, "Watching %s every %s\n", svc.BaseURL(), m.Interval())
			st = m.Watch(ctx, func(s monitor.Status) { printStatus(out, s) })
		} else {
			st = m.Probe(ctx)
			printStatus(out, st)
		}

		if st.State != monitor.Ready {
			return errNotReady
		}
		return nil
	},
}

func init() {
	healthCmd.Flags().Bool("watch", false, "Keep probing until the backend is ready")
}

func printStatus(w io.Writer, st monitor.Status) {
	if !st.Checked() {
		fmt.Fprintln(w, "[unchecked]", monitor.MessagePending)
		return
	}
	line := fmt.Sprintf("[%s] %s", st.State, st.Message)
	if st.ModelType != "" {
		line += fmt.Sprintf(" (model: %s)", st.ModelType)
	}
	fmt.Fprintln(w, line)
}

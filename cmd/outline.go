package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/abhisek/qrayti/internal/api"
	"github.com/abhisek/qrayti/internal/content"
	"github.com/abhisek/qrayti/internal/summary"
)

var outlineCmd = &cobra.Command{
	Use:   "outline [file]",
	Short: "Upload a document and print its structured summary",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		demo, _ := cmd.Flags().GetBool("demo")
		if !demo && len(args) == 0 {
			return errors.New("a document path is required unless --demo is set")
		}

		logger, err := newLogger(cmd, "stderr")
		if err != nil {
			return err
		}
		defer func() { _ = logger.Sync() }()

		svc, err := newService(cmd, logger)
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		var rc api.RemoteContent
		if demo {
			rc = content.Demo()
		} else {
			doc, err := content.Open(args[0])
			if err != nil {
				return err
			}
			uploaded, err := svc.Upload(ctx, doc)
			if err != nil {
				return fmt.Errorf("upload %s: %w", doc.Name, err)
			}
			rc = *uploaded
		}

		return writeOutline(ctx, svc, rc, cmd.OutOrStdout())
	},
}

func init() {
	outlineCmd.Flags().Bool("demo", false, "Summarize the bundled sample course instead of a file")
}

// writeOutline generates a summary for rc and writes it to w as plain
// text. It drives the same session machine as the interactive screen.
func writeOutline(ctx context.Context, gen summary.Generator, rc api.RemoteContent, w io.Writer) error {
	st, err := summary.Next(summary.New(), summary.Load(ctx, gen, rc.Content))
	if err != nil {
		return err
	}
	switch st.Phase {
	case summary.PhaseError:
		return fmt.Errorf("summarize %s: %w", rc.FileName, st.Err)
	case summary.PhaseEmpty:
		return fmt.Errorf("summarize %s: no sections generated", rc.FileName)
	}

	fmt.Fprintf(w, "%s (%d pages)\n\n", rc.FileName, rc.PageCount)
	_, err = io.WriteString(w, summary.Outline(st))
	return err
}

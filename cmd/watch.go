package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	tt "github.com/gnolang/jsxlint/internal/types"
)

var watchCmd = &cobra.Command{
	Use:   "watch [dirs...]",
	Short: "Re-lint documents whenever the parser rewrites them",
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			args = []string{"."}
		}

		engine, err := newEngine()
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		if err := engine.StartWatching(args, logger, reportTo(cmd.OutOrStdout())); err != nil {
			return err
		}
		logger.Info("watching for changes", zap.Strings("dirs", args))

		<-ctx.Done()
		return engine.StopWatching()
	},
}

func reportTo(w io.Writer) func(string, []tt.Issue) {
	return func(documentPath string, issues []tt.Issue) {
		if len(issues) == 0 {
			fmt.Fprintf(w, "%s: no issues\n", documentPath)
			return
		}
		if err := printIssues(logger, w, issues, false, ""); err != nil {
			logger.Error("Error printing issues", zap.Error(err))
		}
	}
}

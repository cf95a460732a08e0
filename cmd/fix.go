package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gnolang/jsxlint/internal/fixer"
	tt "github.com/gnolang/jsxlint/internal/types"
	"github.com/gnolang/jsxlint/lint"
)

var (
	dryRun      bool
	minSeverity string
)

var fixCmd = &cobra.Command{
	Use:   "fix [paths...]",
	Short: "Automatically fix issues",
	Long: `Apply the fix carried by each issue to the source file. The ESTree
documents describe the sources before the fix; regenerate them before
linting again.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return fmt.Errorf("please provide file or directory paths")
		}
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		threshold, err := tt.ParseSeverity(minSeverity)
		if err != nil {
			return err
		}

		engine, err := newEngine()
		if err != nil {
			return err
		}

		return runAutoFix(ctx, logger, engine, args, cmd.OutOrStdout(), dryRun, threshold)
	},
}

func init() {
	fixCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Run in dry-run mode (show fixes without applying them)")
	fixCmd.Flags().StringVar(&minSeverity, "min-severity", "info", "Least severe issue to fix (error, warning, info)")
}

func runAutoFix(ctx context.Context, logger *zap.Logger, engine lint.LintEngine, paths []string, w io.Writer, dryRun bool, threshold tt.Severity) error {
	fix := fixer.New(dryRun, threshold)
	fix.Out = w

	var errs []error
	for _, path := range paths {
		issues, err := lint.ProcessPath(ctx, logger, engine, path, lint.ProcessFile)
		if err != nil {
			logger.Error("error processing path", zap.String("path", path), zap.Error(err))
			errs = append(errs, err)
		}

		issuesByFile := make(map[string][]tt.Issue)
		for _, issue := range issues {
			issuesByFile[issue.Filename] = append(issuesByFile[issue.Filename], issue)
		}

		files := make([]string, 0, len(issuesByFile))
		for filename := range issuesByFile {
			files = append(files, filename)
		}
		sort.Strings(files)

		for _, filename := range files {
			if err := fix.Fix(filename, issuesByFile[filename]); err != nil {
				logger.Error("error fixing issues", zap.String("file", filename), zap.Error(err))
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}

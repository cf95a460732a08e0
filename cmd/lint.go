package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gnolang/jsxlint/formatter"
	"github.com/gnolang/jsxlint/internal"
	tt "github.com/gnolang/jsxlint/internal/types"
	"github.com/gnolang/jsxlint/lint"
)

var (
	ignoreRules    string
	ignorePaths    string
	lintJsonOutput bool
	outPath        string
)

var lintCmd = &cobra.Command{
	Use:   "lint [paths...]",
	Short: "Lint the JSX sources described by ESTree documents",
	Long: `Lint JSX sources. Each source file X.jsx is read together with the
ESTree JSON document X.jsx.ast.json produced by babel, espree or acorn-jsx.
Paths may name documents, source files or directories.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return fmt.Errorf("please provide file or directory paths")
		}

		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		engine, err := newEngine()
		if err != nil {
			return err
		}

		applyIgnores(logger, engine, ignoreRules, ignorePaths)

		return runNormalLintProcess(ctx, logger, engine, args, cmd.OutOrStdout(), lintJsonOutput, outPath)
	},
}

func init() {
	lintCmd.Flags().StringVar(&ignoreRules, "ignore", "", "Comma-separated list of lint rules to ignore")
	lintCmd.Flags().StringVar(&ignorePaths, "ignore-paths", "", "Comma-separated list of paths to ignore")
	lintCmd.Flags().BoolVar(&lintJsonOutput, "json", false, "Output issues in JSON format")
	lintCmd.Flags().StringVarP(&outPath, "output", "o", "", "Output path (when using JSON)")
}

func applyIgnores(logger *zap.Logger, engine lint.LintEngine, rules, paths string) {
	if rules != "" {
		known := internal.RuleNames()
		for _, rule := range strings.Split(rules, ",") {
			rule = strings.TrimSpace(rule)
			if !slices.Contains(known, rule) {
				logger.Warn("ignoring unknown rule", zap.String("rule", rule), zap.Strings("known", known))
			}
			engine.IgnoreRule(rule)
		}
	}

	if paths != "" {
		for _, path := range strings.Split(paths, ",") {
			engine.IgnorePath(strings.TrimSpace(path))
		}
	}
}

func runNormalLintProcess(ctx context.Context, logger *zap.Logger, engine lint.LintEngine, paths []string, w io.Writer, isJson bool, jsonOutput string) error {
	// issues of the paths that succeeded are still reported
	issues, procErr := lint.ProcessFiles(ctx, logger, engine, paths, lint.ProcessFile)
	if procErr != nil {
		logger.Error("Error processing files", zap.Error(procErr))
	}

	if err := printIssues(logger, w, issues, isJson, jsonOutput); err != nil {
		return errors.Join(procErr, err)
	}
	if procErr != nil {
		return procErr
	}

	if len(issues) > 0 {
		return ErrIssuesFound
	}
	return nil
}

func printIssues(logger *zap.Logger, w io.Writer, issues []tt.Issue, isJson bool, jsonOutput string) error {
	if isJson {
		return writeJSONIssues(w, issues, jsonOutput)
	}

	issuesByFile := make(map[string][]tt.Issue)
	for _, issue := range issues {
		issuesByFile[issue.Filename] = append(issuesByFile[issue.Filename], issue)
	}

	sortedFiles := make([]string, 0, len(issuesByFile))
	for filename := range issuesByFile {
		sortedFiles = append(sortedFiles, filename)
	}
	sort.Strings(sortedFiles)

	// text output
	for _, filename := range sortedFiles {
		fileIssues := issuesByFile[filename]
		sourceCode, err := formatter.ReadSourceCode(filename)
		if err != nil {
			logger.Error("Error reading source file", zap.String("file", filename), zap.Error(err))
			continue
		}
		fmt.Fprint(w, formatter.GenerateFormattedIssue(fileIssues, sourceCode))
	}
	return nil
}

func writeJSONIssues(w io.Writer, issues []tt.Issue, jsonOutput string) error {
	if jsonOutput == "" {
		return formatter.WriteJSON(w, issues)
	}

	f, err := os.Create(jsonOutput)
	if err != nil {
		return fmt.Errorf("error creating JSON output file: %w", err)
	}
	defer f.Close()

	return formatter.WriteJSON(f, issues)
}

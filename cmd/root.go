package cmd

import (
	"errors"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gnolang/jsxlint/internal"
	"github.com/gnolang/jsxlint/lint"
)

const (
	defaultConfigFile = ".jsxlint.yaml"
	defaultTimeout    = 5 * time.Minute
)

// ErrIssuesFound is returned when linting reported at least one issue.
var ErrIssuesFound = errors.New("issues found")

var (
	cfgFile        string
	explicitConfig bool
	timeout        time.Duration
	verbose        bool
	clearCache     bool

	logger = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:              "jsxlint [paths...]",
	Short:            "jsxlint - a linter for JSX attribute notation",
	TraverseChildren: true, // Prioritize subcommands
	SilenceUsage:     true,
	SilenceErrors:    true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		explicitConfig = cmd.Root().PersistentFlags().Changed("config")
		return initLogger()
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		// no subcommand
		if len(args) == 0 {
			// display help when only 'jsxlint' is entered
			return cmd.Help()
		}
		// Format: jsxlint [path1 path2 ...] => behaves like the lint subcommand
		return lintCmd.RunE(cmd, args)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", defaultConfigFile, "Path to the configuration file")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", defaultTimeout, "Set a timeout for the linter")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable development logging")
	rootCmd.PersistentFlags().BoolVar(&clearCache, "clear-cache", false, "Drop cached results before linting")

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(lintCmd)
	rootCmd.AddCommand(fixCmd)
	rootCmd.AddCommand(watchCmd)
}

func initLogger() error {
	var (
		l   *zap.Logger
		err error
	)
	if verbose {
		l, err = zap.NewDevelopment()
	} else {
		l, err = zap.NewProduction()
	}
	if err != nil {
		return err
	}
	logger = l
	return nil
}

// configPath returns the configuration file to load. The default file is
// optional; an explicitly given one must exist.
func configPath() string {
	if explicitConfig {
		return cfgFile
	}
	if _, err := os.Stat(cfgFile); err == nil {
		return cfgFile
	}
	return ""
}

// newEngine builds the engine from the active configuration file.
func newEngine() (*internal.Engine, error) {
	engine, err := lint.New(configPath())
	if err != nil {
		logger.Error("Failed to initialize lint engine", zap.Error(err))
		return nil, err
	}
	if clearCache {
		engine.ClearCache()
	}
	return engine, nil
}

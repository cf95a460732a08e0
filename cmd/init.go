package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/gnolang/jsxlint/internal/lints/jsxbool"
	tt "github.com/gnolang/jsxlint/internal/types"
	"github.com/gnolang/jsxlint/lint"
)

var forceInit bool

// initCmd: jsxlint init
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a new linter configuration file",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := initConfigurationFile(cfgFile, forceInit); err != nil {
			logger.Error("Error initializing config file", zap.Error(err))
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Configuration file created: %s\n", cfgFile)
		return nil
	},
}

func init() {
	initCmd.Flags().BoolVar(&forceInit, "force", false, "Overwrite an existing configuration file")
}

func initConfigurationFile(configurationPath string, force bool) error {
	if configurationPath == "" {
		configurationPath = defaultConfigFile
	}

	if !force {
		if _, err := os.Stat(configurationPath); err == nil {
			return fmt.Errorf("%s already exists, use --force to overwrite", configurationPath)
		}
	}

	var options yaml.Node
	if err := options.Encode(jsxbool.Options{Mode: jsxbool.ModeNever}); err != nil {
		return err
	}

	// Create a yaml file with rules
	severity := tt.SeverityWarning
	config := lint.DefaultConfig()
	config.Rules[jsxbool.RuleName] = tt.ConfigRule{
		Severity: &severity,
		Options:  options,
	}
	d, err := yaml.Marshal(config)
	if err != nil {
		return err
	}

	return os.WriteFile(configurationPath, d, 0o644)
}

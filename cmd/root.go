// Package cmd provides the root command and CLI setup for conform.
package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"conform.dev/pkg/conform/internal/adapter"
	"conform.dev/pkg/conform/internal/controller"
	"conform.dev/pkg/conform/internal/engine"
	m "conform.dev/pkg/conform/internal/model"
	"conform.dev/pkg/conform/internal/rules"
)

var fsAdapter adapter.SourceFSAdapter
var reportStore adapter.ReportStore

// reportsOutputDirFlag is a root-level flag shared by commands that read/write reports.
var reportsOutputDirFlag string

// noSaveFlag disables writing the report to disk when set.
var noSaveFlag bool

// excludePatterns is a root-level flag that filters files for applicable commands.
var excludePatterns []string

func init() {
	configureRootFlags(rootCmd)

	// Initialize shared dependencies.
	fsAdapter = adapter.NewLocalSourceFSAdapter()
	reportStore = adapter.NewReportStore()
}

const pathPatternsHelp = `Supports Go-style path patterns:
  - ./...              recursively scan current directory
  - ./Source/...       recursively scan the Source directory
  - ./Public ./Private scan multiple directories`

const rootLongDescription = `Conform is a style conformance checker for game-engine C++ codebases.
It tokenizes and structurally parses source files, then checks them
against a fixed catalogue of naming, layout and safety rules.

` + pathPatternsHelp

const checkLongDescription = `Check the given paths for style violations (default: current directory).

` + pathPatternsHelp

const listLongDescription = `List the source files a check would cover.

` + pathPatternsHelp

// rootCmd represents the base command when called without any subcommands.
var rootCmd = baseRootCmd()

func baseRootCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "conform",
		Short: "Game-engine C++ style conformance checker",
		Long:  rootLongDescription,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			configureLogger(viper.GetString(logFilenameKey), viper.GetBool(logVerboseKey))
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}
}

func configureRootFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().
		StringVarP(
			&reportsOutputDirFlag, outputFlagName, "o",
			viper.GetString(outputFlagName),
			"output directory for check reports",
		)
	bindFlagToConfig(cmd.PersistentFlags().Lookup(outputFlagName), outputFlagName)

	cmd.PersistentFlags().BoolVar(&noSaveFlag, noSaveFlagName, viper.GetBool(noSaveFlagName), "do not write the report to the output directory")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(noSaveFlagName), noSaveFlagName)

	cmd.PersistentFlags().StringArrayVarP(&excludePatterns, excludeFlagName, "x", viper.GetStringSlice(excludeConfigKey), "exclude files matching regex (can be repeated)")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(excludeFlagName), excludeConfigKey)
}

// bindFlagToConfig wires a Cobra flag to a Viper key so config/env values feed the flag.
func bindFlagToConfig(flag *pflag.Flag, key string) {
	if flag == nil {
		cobra.CheckErr(fmt.Errorf("flag for config key %q not found", key))
		return
	}

	cobra.CheckErr(viper.BindPFlag(key, flag))
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
//
// Exit status: 0 on a clean run, 1 when the report contains error-severity
// violations, 2 on any operational failure.
func Execute() {
	err := rootCmd.Execute()
	if err == nil {
		return
	}

	if errors.Is(err, engine.ErrViolations) {
		os.Exit(1)
	}

	os.Exit(2)
}

func parsePaths(args []string) []m.Path {
	if len(args) == 0 {
		return []m.Path{"./..."}
	}

	paths := make([]m.Path, 0, len(args))
	for _, arg := range args {
		paths = append(paths, m.Path(arg))
	}

	return paths
}

// newUI builds the UI for a command from the configured output format.
func newUI(cmd *cobra.Command) (controller.UI, error) {
	format, err := controller.ParseFormat(viper.GetString(checkFormatConfigKey))
	if err != nil {
		return nil, err
	}

	return controller.NewSimpleUI(cmd, format), nil
}

// ruleConfig assembles the rule configuration from viper and an optional
// profile file.
func ruleConfig(profilePath string) (rules.Config, error) {
	cfg := rules.Config{
		Disabled:      viper.GetStringSlice(rulesDisabledConfigKey),
		MaxLineLength: viper.GetInt(maxLineLengthConfigKey),
		PCHName:       viper.GetString(pchConfigKey),
	}

	overrides := viper.GetStringMapString(rulesSeverityConfigKey)
	if len(overrides) > 0 {
		cfg.Severities = make(map[string]m.Severity, len(overrides))

		for id, name := range overrides {
			severity, err := m.ParseSeverity(name)
			if err != nil {
				return rules.Config{}, fmt.Errorf("severity override for %s: %w", id, err)
			}

			cfg.Severities[id] = severity
		}
	}

	if profilePath == "" {
		return cfg, nil
	}

	profile, err := rules.LoadProfile(m.Path(profilePath))
	if err != nil {
		return rules.Config{}, err
	}

	return profile.Apply(cfg)
}

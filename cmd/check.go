package cmd

import (
	"context"
	"errors"
	"runtime"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"conform.dev/pkg/conform/internal/controller"
	"conform.dev/pkg/conform/internal/engine"
	m "conform.dev/pkg/conform/internal/model"
	"conform.dev/pkg/conform/internal/rules"
)

var checkParallelFlag int
var checkFailFastFlag bool
var checkFormatFlag string
var checkProfileFlag string

// checkCmd represents the check command.
var checkCmd = newCheckCmd()

func newCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [paths...]",
		Short: "Check source files for style violations",
		Long:  checkLongDescription,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			ui, err := newUI(cmd)
			if err != nil {
				return err
			}

			if err := ui.Start(ctx, controller.WithCheckMode()); err != nil {
				return err
			}
			defer ui.Close(ctx)

			files, err := fsAdapter.Discover(ctx, parsePaths(args), viper.GetStringSlice(excludeConfigKey)...)
			if err != nil {
				return err
			}

			cfg, err := ruleConfig(checkProfileFlag)
			if err != nil {
				return err
			}

			ruleSet, err := rules.NewRuleSet(cfg)
			if err != nil {
				return err
			}

			opts := engine.Options{
				Parallel: viper.GetInt(checkParallelConfigKey),
				FailFast: viper.GetBool(checkFailFastConfigKey),
			}

			workers := opts.Parallel
			if workers <= 0 {
				workers = runtime.GOMAXPROCS(0)
			}

			ui.DisplayRunInfo(ctx, len(files), workers)

			runner := engine.NewRunner(engine.NewChecker(fsAdapter, ruleSet), opts)

			report, runErr := runner.Run(ctx, files)
			if runErr != nil && !errors.Is(runErr, engine.ErrViolations) {
				return runErr
			}

			for _, fileReport := range report.Files {
				ui.DisplayFileReport(ctx, fileReport)
			}

			if err := ui.DisplaySummary(ctx, report); err != nil {
				return err
			}

			if !viper.GetBool(noSaveFlagName) {
				reportsPath := m.Path(viper.GetString(outputFlagName))
				if err := reportStore.Save(reportsPath, report); err != nil {
					return err
				}
			}

			return runErr
		},
	}

	configureCheckFlags(cmd)

	return cmd
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func configureCheckFlags(cmd *cobra.Command) {
	cmd.Flags().IntVarP(&checkParallelFlag, parallelFlagName, "p", viper.GetInt(checkParallelConfigKey), "number of parallel workers (0 = one per CPU)")
	bindFlagToConfig(cmd.Flags().Lookup(parallelFlagName), checkParallelConfigKey)

	cmd.Flags().BoolVar(&checkFailFastFlag, failFastFlagName, viper.GetBool(checkFailFastConfigKey), "stop checking after the first error-severity violation")
	bindFlagToConfig(cmd.Flags().Lookup(failFastFlagName), checkFailFastConfigKey)

	cmd.Flags().StringVarP(&checkFormatFlag, formatFlagName, "f", viper.GetString(checkFormatConfigKey), "output format: text or json")
	bindFlagToConfig(cmd.Flags().Lookup(formatFlagName), checkFormatConfigKey)

	cmd.Flags().StringVar(&checkProfileFlag, profileFlagName, "", "path to a rule profile file (yaml)")
}

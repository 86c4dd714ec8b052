package cmd

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"conform.dev/pkg/conform/internal/controller"
	"conform.dev/pkg/conform/internal/engine"
)

// listCmd represents the list command.
var listCmd = newListCmd()

func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list [paths...]",
		Short: "List source files and their token and node counts",
		Long:  listLongDescription,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			ui, err := newUI(cmd)
			if err != nil {
				return err
			}

			if err := ui.Start(ctx, controller.WithListMode()); err != nil {
				return err
			}
			defer ui.Close(ctx)

			files, err := fsAdapter.Discover(ctx, parsePaths(args), viper.GetStringSlice(excludeConfigKey)...)
			if err != nil {
				return err
			}

			stats, err := engine.Survey(ctx, fsAdapter, files)
			if err != nil {
				return err
			}

			return ui.DisplayFileList(ctx, stats)
		},
	}

	return cmd
}

func init() {
	rootCmd.AddCommand(listCmd)
}

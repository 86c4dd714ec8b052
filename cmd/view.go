package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"conform.dev/pkg/conform/internal/controller"
	m "conform.dev/pkg/conform/internal/model"
)

// viewCmd represents the view command.
var viewCmd = newViewCmd()

func newViewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "view",
		Short: "View a previously saved check report",
		Long:  "View a previously saved check report from a reports directory.",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			reportsPath := m.Path(viper.GetString(outputFlagName))

			report, err := reportStore.Load(reportsPath)
			if err != nil {
				return err
			}

			return controller.NewTUI(cmd.OutOrStdout()).DisplayReport(report)
		},
	}

	return cmd
}

func init() {
	rootCmd.AddCommand(viewCmd)
}

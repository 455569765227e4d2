package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"remirror.dev/pkg/remirror/internal/domain"
)

// statusCmd represents the status command.
var statusCmd = newStatusCmd()

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the currently configured mirror per manager",
		Long:  "Read-only: detects each supported manager and reports which mirror its configuration points at. Nothing is written.",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			scope, err := runScope()
			if err != nil {
				return err
			}

			statuses, err := rewriter.Inspect(cmd.Context(), domain.RunArgs{
				Scope:      scope,
				MirrorRoot: viper.GetString(mirrorRootConfigKey),
				Only:       viper.GetStringSlice(onlyConfigKey),
			})
			if err != nil {
				return err
			}

			ui.DisplayStatus(statuses)

			return nil
		},
	}
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

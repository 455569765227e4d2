package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// listCmd represents the list command.
var listCmd = newListCmd()

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the supported package managers",
		Long:  "Shows every supported manager with its config file format and the mirror URL that apply would install.",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			root := viper.GetString(mirrorRootConfigKey)

			for _, desc := range managers {
				cmd.Printf("%-10s %-12s %s\n", desc.Name, desc.Format.Kind(), desc.MirrorURL(root))
			}

			return nil
		},
	}
}

func init() {
	rootCmd.AddCommand(listCmd)
}

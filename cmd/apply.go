package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"remirror.dev/pkg/remirror/internal/domain"
)

var applyDryRun bool
var applyYes bool
var applyCheck bool

// applyCmd represents the apply command.
var applyCmd = newApplyCmd()

func newApplyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "apply",
		Short: "Rewrite package manager sources to the mirror",
		Long: `Detect installed package managers and point each one at the mirror.

Managers that are not installed are skipped; managers already on the
mirror are left untouched. Each change is confirmed interactively unless
--yes is given. The run exits nonzero only when every detected manager
ended in an error.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			scope, err := runScope()
			if err != nil {
				return err
			}

			args := domain.RunArgs{
				Scope:      scope,
				MirrorRoot: viper.GetString(mirrorRootConfigKey),
				Only:       viper.GetStringSlice(onlyConfigKey),
				DryRun:     applyDryRun,
				AssumeYes:  applyYes,
			}

			ctx := cmd.Context()

			if applyCheck {
				checker := domain.NewReachabilityChecker(domain.DefaultReachabilityTimeout)
				targets := domain.MirrorTargets(managers, args.MirrorRoot)
				ui.DisplayReachability(checker.Check(ctx, targets))
			}

			outcomes, err := rewriter.Run(ctx, args)
			if err != nil {
				return err
			}

			ui.DisplayReport(outcomes)

			if domain.Fatal(outcomes) {
				return errors.New("no package manager could be configured")
			}

			return nil
		},
	}

	configureApplyFlags(cmd)

	return cmd
}

func init() {
	rootCmd.AddCommand(applyCmd)
}

func configureApplyFlags(cmd *cobra.Command) {
	cmd.Flags().BoolVarP(&applyDryRun, dryRunFlagName, "n", false, "show pending changes without writing")
	cmd.Flags().BoolVarP(&applyYes, yesFlagName, "y", false, "apply changes without asking")
	cmd.Flags().BoolVar(&applyCheck, checkFlagName, false,
		fmt.Sprintf("probe mirror reachability first (advisory, %s timeout)", domain.DefaultReachabilityTimeout))
}

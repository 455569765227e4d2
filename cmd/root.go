// Package cmd provides the root command and CLI setup for remirror.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"remirror.dev/pkg/remirror/internal/adapter"
	"remirror.dev/pkg/remirror/internal/controller"
	"remirror.dev/pkg/remirror/internal/domain"
	m "remirror.dev/pkg/remirror/internal/model"
)

var probe adapter.SystemProbe
var configFS adapter.ConfigFS
var managers []domain.ManagerDescriptor
var detector domain.Detector
var rewriter domain.Rewriter
var ui controller.UI

// scopeFlag selects user-wide vs system-wide configuration files.
var scopeFlag string

// mirrorFlag overrides the mirror root host.
var mirrorFlag string

// onlyManagers restricts a run to the named managers.
var onlyManagers []string

// verboseFlag raises the log level to debug.
var verboseFlag bool

func init() {
	configureRootFlags(rootCmd)

	// Initialize shared dependencies.
	probe = adapter.NewLocalSystemProbe()
	configFS = adapter.NewLocalConfigFS()
	managers = domain.SupportedManagers(probe)
	detector = domain.NewDetector(probe, configFS)
	ui = controller.NewUI(rootCmd, controller.IsTTY(os.Stdout))
	rewriter = domain.NewRewriter(managers, detector, configFS, ui)
}

const rootLongDescription = `Remirror detects the package managers installed on this machine
(Anaconda, pacman, CTAN, apt, Homebrew, pip, tlmgr) and rewrites their
source configuration to point at a regional mirror network.

Configuration files are patched in place: unrelated settings, comments
and ordering are preserved, and every write is atomic.`

// rootCmd represents the base command when called without any subcommands.
var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remirror",
		Short: "Point package managers at a faster mirror",
		Long:  rootLongDescription,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			configureLogger(verboseFlag)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}
}

func configureRootFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVarP(
		&scopeFlag, scopeFlagName, "s",
		viper.GetString(scopeFlagName),
		"configuration scope: user or system",
	)
	bindFlagToConfig(cmd.PersistentFlags().Lookup(scopeFlagName), scopeFlagName)

	cmd.PersistentFlags().StringVarP(
		&mirrorFlag, mirrorFlagName, "m",
		viper.GetString(mirrorRootConfigKey),
		"mirror network host to install",
	)
	bindFlagToConfig(cmd.PersistentFlags().Lookup(mirrorFlagName), mirrorRootConfigKey)

	cmd.PersistentFlags().StringArrayVar(
		&onlyManagers, onlyFlagName,
		viper.GetStringSlice(onlyConfigKey),
		"limit the run to the named managers (can be repeated)",
	)
	bindFlagToConfig(cmd.PersistentFlags().Lookup(onlyFlagName), onlyConfigKey)

	cmd.PersistentFlags().BoolVarP(&verboseFlag, verboseFlagName, "v", false, "debug logging")
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
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

// runScope validates and returns the requested scope.
func runScope() (m.Scope, error) {
	scope := m.Scope(viper.GetString(scopeFlagName))
	if !scope.Valid() {
		return "", fmt.Errorf("invalid scope %q: want %q or %q", scope, m.ScopeUser, m.ScopeSystem)
	}

	return scope, nil
}

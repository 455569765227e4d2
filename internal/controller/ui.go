// Package controller provides the output and confirmation surfaces for
// the remirror CLI.
package controller

import (
	"context"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	m "remirror.dev/pkg/remirror/internal/model"
)

// UI is how the rewrite engine talks to the user: confirmation prompts,
// diffs, and the final per-manager report. Implementations differ only in
// how the confirmation is asked (plain stdin vs an interactive prompt).
type UI interface {
	// ConfirmChange shows the pending change and asks whether to apply
	// it. It returns false when the user declines.
	ConfirmChange(ctx context.Context, manager string, path m.Path, diff string) (bool, error)

	// DisplayDiff prints a pending change without asking anything
	// (dry-run mode).
	DisplayDiff(manager string, path m.Path, diff string)

	// DisplayReport renders one line per manager with its outcome.
	DisplayReport(outcomes []m.PatchOutcome)

	// DisplayStatus renders the read-only mirror status table.
	DisplayStatus(statuses []m.MirrorStatus)

	// DisplayReachability renders the advisory mirror probe results.
	DisplayReachability(results []m.ReachabilityResult)
}

// NewUI picks the confirmation style: an interactive prompt when attached
// to a terminal, a plain stdin prompt otherwise.
func NewUI(cmd *cobra.Command, interactive bool) UI {
	simple := NewSimpleUI(cmd)
	if interactive {
		return NewInteractiveUI(simple)
	}

	return simple
}

// IsTTY reports whether the file is attached to a terminal.
func IsTTY(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

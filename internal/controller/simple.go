package controller

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	m "remirror.dev/pkg/remirror/internal/model"
)

var (
	changedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))  // green
	mirroredStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))  // cyan
	skippedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))  // yellow
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))  // red
	mutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))  // gray
	headerStyle   = lipgloss.NewStyle().Bold(true)
)

// SimpleUI implements UI using the cobra command's output and a plain
// stdin y/n prompt for confirmation.
type SimpleUI struct {
	cmd   *cobra.Command
	stdin *bufio.Reader
}

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(cmd *cobra.Command) *SimpleUI {
	return &SimpleUI{cmd: cmd}
}

// ConfirmChange prints the pending diff and reads a y/n answer.
func (s *SimpleUI) ConfirmChange(ctx context.Context, manager string, path m.Path, diff string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	s.DisplayDiff(manager, path, diff)
	s.printf("Apply this change? [y/N]: ")

	if s.stdin == nil {
		s.stdin = bufio.NewReader(s.cmd.InOrStdin())
	}

	answer, err := s.stdin.ReadString('\n')
	if err != nil && answer == "" {
		return false, nil
	}

	answer = strings.ToLower(strings.TrimSpace(answer))

	return answer == "y" || answer == "yes", nil
}

// DisplayDiff prints the pending change for one manager.
func (s *SimpleUI) DisplayDiff(manager string, path m.Path, diff string) {
	s.printf("\n%s (%s)\n", headerStyle.Render(manager), path)

	if diff == "" {
		s.printf("(no textual diff)\n")
		return
	}

	s.printf("%s", diff)
}

// DisplayReport renders the per-manager outcome table plus a summary line.
func (s *SimpleUI) DisplayReport(outcomes []m.PatchOutcome) {
	var buf bytes.Buffer

	table := tablewriter.NewWriter(&buf)
	table.SetHeader([]string{"Manager", "Status", "Detail"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT})

	counts := map[m.Status]int{}

	for _, outcome := range outcomes {
		counts[outcome.Status]++
		table.Append([]string{outcome.Manager, styleStatus(outcome.Status), outcome.Detail})
	}

	table.Render()

	s.printf("\n%s", buf.String())
	s.printf("\n%d changed, %d already mirrored, %d skipped, %d not installed, %d failed\n",
		counts[m.Changed],
		counts[m.AlreadyMirrored],
		counts[m.Skipped],
		counts[m.NotInstalled],
		counts[m.NotWritable]+counts[m.ParseError],
	)
}

// DisplayStatus renders the read-only mirror status table.
func (s *SimpleUI) DisplayStatus(statuses []m.MirrorStatus) {
	var buf bytes.Buffer

	table := tablewriter.NewWriter(&buf)
	table.SetHeader([]string{"Manager", "Installed", "Mirror", "Path"})
	table.SetBorder(false)
	table.SetCenterSeparator("")

	for _, status := range statuses {
		installed := "no"
		if status.Installed {
			installed = "yes"
		}

		mirror := status.Mirror
		if mirror == "" {
			mirror = mutedStyle.Render(status.Detail)
		}

		table.Append([]string{status.Manager, installed, mirror, string(status.Path)})
	}

	table.Render()
	s.printf("\n%s", buf.String())
}

// DisplayReachability renders the advisory probe results.
func (s *SimpleUI) DisplayReachability(results []m.ReachabilityResult) {
	for _, result := range results {
		if result.OK {
			s.printf("%s %s: %s (%s)\n", changedStyle.Render("✓"), result.Manager, result.URL, result.Detail)
		} else {
			s.printf("%s %s: %s (%s)\n", errorStyle.Render("✗"), result.Manager, result.URL, result.Detail)
		}
	}
}

func (s *SimpleUI) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(s.cmd.OutOrStdout(), format, args...)
}

func styleStatus(status m.Status) string {
	label := status.String()

	switch status {
	case m.Changed:
		return changedStyle.Render(label)
	case m.AlreadyMirrored:
		return mirroredStyle.Render(label)
	case m.Skipped:
		return skippedStyle.Render(label)
	case m.NotInstalled:
		return mutedStyle.Render(label)
	case m.NotWritable, m.ParseError:
		return errorStyle.Render(label)
	}

	return label
}

package controller

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	m "remirror.dev/pkg/remirror/internal/model"
)

// InteractiveUI renders everything like SimpleUI but asks for
// confirmation with a Bubble Tea prompt instead of a raw stdin read.
type InteractiveUI struct {
	*SimpleUI
}

// NewInteractiveUI wraps a SimpleUI with the interactive prompt.
func NewInteractiveUI(simple *SimpleUI) *InteractiveUI {
	return &InteractiveUI{SimpleUI: simple}
}

// ConfirmChange runs the confirmation prompt and reports the answer.
func (u *InteractiveUI) ConfirmChange(ctx context.Context, manager string, path m.Path, diff string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	prompt := newConfirmModel(manager, path, diff)

	program := tea.NewProgram(prompt,
		tea.WithContext(ctx),
		tea.WithInput(u.cmd.InOrStdin()),
		tea.WithOutput(u.cmd.OutOrStdout()),
	)

	final, err := program.Run()
	if err != nil {
		return false, err
	}

	result, ok := final.(confirmModel)
	if !ok {
		return false, nil
	}

	return result.accepted, nil
}

// confirmModel is a minimal y/n prompt showing the pending diff.
type confirmModel struct {
	manager  string
	path     m.Path
	diff     string
	accepted bool
	done     bool
}

func newConfirmModel(manager string, path m.Path, diff string) confirmModel {
	return confirmModel{manager: manager, path: path, diff: diff}
}

func (c confirmModel) Init() tea.Cmd {
	return nil
}

func (c confirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return c, nil
	}

	switch strings.ToLower(key.String()) {
	case "y":
		c.accepted = true
		c.done = true

		return c, tea.Quit
	case "n", "q", "esc", "ctrl+c":
		c.done = true
		return c, tea.Quit
	}

	return c, nil
}

func (c confirmModel) View() string {
	if c.done {
		answer := "skipped"
		if c.accepted {
			answer = "applying"
		}

		return fmt.Sprintf("%s: %s\n", c.manager, answer)
	}

	var b strings.Builder

	b.WriteString(headerStyle.Render(c.manager))
	b.WriteString(fmt.Sprintf(" (%s)\n", c.path))

	if c.diff != "" {
		b.WriteString(c.diff)
	}

	b.WriteString(lipgloss.NewStyle().Bold(true).Render("Apply this change? (y/n)"))
	b.WriteString("\n")

	return b.String()
}

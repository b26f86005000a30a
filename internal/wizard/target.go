package wizard

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/docuforge/docuforge/internal/dialect"
)

// TargetResult is returned when the target step completes.
type TargetResult struct {
	Target dialect.Target
}

// TargetModel is the bubbletea model for the backend selection list.
type TargetModel struct {
	targets []dialect.Target
	cursor  int
	result  *TargetResult
	done    bool
}

// NewTargetModel creates a new target selection model. The cursor starts on
// the previously chosen target when resuming.
func NewTargetModel(current dialect.Target) TargetModel {
	targets := dialect.All()
	cursor := 0
	for i, t := range targets {
		if t == current {
			cursor = i
		}
	}
	return TargetModel{
		targets: targets,
		cursor:  cursor,
	}
}

func (m TargetModel) Init() tea.Cmd {
	return nil
}

func (m TargetModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.done = true
			return m, tea.Quit

		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}

		case "down", "j":
			if m.cursor < len(m.targets)-1 {
				m.cursor++
			}

		case "enter":
			m.result = &TargetResult{Target: m.targets[m.cursor]}
			m.done = true
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m TargetModel) View() string {
	var b strings.Builder

	title := titleStyle.Render("Step 2: Target Backend")
	b.WriteString(title + "\n\n")

	for i, t := range m.targets {
		d, err := dialect.For(t)
		if err != nil {
			continue
		}
		cursor := "  "
		name := fmt.Sprintf("%-12s", t)
		if i == m.cursor {
			cursor = highlightStyle.Render("> ")
			name = highlightStyle.Render(name)
		}
		detail := dimStyle.Render(fmt.Sprintf("(%s, id field %q)", d.Term, d.IDField))
		b.WriteString(cursor + name + " " + detail + "\n")
	}

	b.WriteString("\n" + dimStyle.Render("  up/down to move • enter to select • esc to cancel\n"))
	return b.String()
}

// Result returns the chosen target, or nil if not completed.
func (m TargetModel) Result() *TargetResult {
	return m.result
}

// Cancelled returns true if the user cancelled.
func (m TargetModel) Cancelled() bool {
	return m.done && m.result == nil
}

package wizard

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/docuforge/docuforge/internal/emit"
)

// OptionsResult is returned when the options step completes.
type OptionsResult struct {
	Options emit.Options
}

// options row indexes
const (
	optRowName = iota
	optRowAddIDs
	optRowAddTimestamps
	optRowAddIndexes
	optRowCount
)

// OptionsModel is the bubbletea model for the generation options form:
// an optional name override plus three toggles.
type OptionsModel struct {
	name    textinput.Model
	toggles [3]bool
	focused int
	result  *OptionsResult
	done    bool
}

// NewOptionsModel creates a new options model seeded with the current values.
func NewOptionsModel(current emit.Options) OptionsModel {
	ti := textinput.New()
	ti.Placeholder = "derived from the document"
	ti.CharLimit = 128
	ti.SetValue(current.Name)
	ti.Focus()

	return OptionsModel{
		name:    ti,
		toggles: [3]bool{current.AddIDs, current.AddTimestamps, current.AddIndexes},
	}
}

func (m OptionsModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m OptionsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.done = true
			return m, tea.Quit

		case "tab", "down":
			m.focused = (m.focused + 1) % optRowCount
			return m, m.updateFocus()

		case "shift+tab", "up":
			m.focused--
			if m.focused < 0 {
				m.focused = optRowCount - 1
			}
			return m, m.updateFocus()

		case " ", "space":
			if m.focused > optRowName {
				m.toggles[m.focused-1] = !m.toggles[m.focused-1]
				return m, nil
			}

		case "enter":
			m.result = &OptionsResult{Options: m.buildOptions()}
			m.done = true
			return m, tea.Quit
		}
	}

	if m.focused == optRowName {
		var cmd tea.Cmd
		m.name, cmd = m.name.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m OptionsModel) View() string {
	var b strings.Builder

	title := titleStyle.Render("Step 4: Generation Options")
	b.WriteString(title + "\n\n")

	cursor := "  "
	if m.focused == optRowName {
		cursor = highlightStyle.Render("> ")
	}
	b.WriteString(cursor + dimStyle.Render(fmt.Sprintf("  %-18s ", "Name override")) + m.name.View() + "\n\n")

	labels := []string{"Add generated ids", "Add timestamps", "Suggest indexes"}
	for i, label := range labels {
		cursor := "  "
		if m.focused == i+1 {
			cursor = highlightStyle.Render("> ")
		}
		check := "[ ]"
		if m.toggles[i] {
			check = successStyle.Render("[x]")
		}
		b.WriteString(fmt.Sprintf("%s%s %s\n", cursor, check, label))
	}

	b.WriteString("\n" + dimStyle.Render("  space to toggle • tab to navigate • enter to continue • esc to cancel\n"))
	return b.String()
}

// Result returns the chosen options, or nil if not completed.
func (m OptionsModel) Result() *OptionsResult {
	return m.result
}

// Cancelled returns true if the user cancelled.
func (m OptionsModel) Cancelled() bool {
	return m.done && m.result == nil
}

func (m *OptionsModel) updateFocus() tea.Cmd {
	if m.focused == optRowName {
		return m.name.Focus()
	}
	m.name.Blur()
	return nil
}

func (m *OptionsModel) buildOptions() emit.Options {
	return emit.Options{
		Name:          strings.TrimSpace(m.name.Value()),
		AddIDs:        m.toggles[0],
		AddTimestamps: m.toggles[1],
		AddIndexes:    m.toggles[2],
	}
}

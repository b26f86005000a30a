package wizard

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/docuforge/docuforge/internal/structure"
)

// StructureResult is returned when the structure step completes.
type StructureResult struct {
	Policy structure.Policy
}

var policyDescriptions = map[structure.Policy]string{
	structure.Nested:       "keep the hierarchy as embedded sub-documents",
	structure.Flat:         "merge nested objects into the parent with joined keys",
	structure.References:   "extract nested objects into linked collections",
	structure.ArrayWrapped: "wrap everything as the items of one container document",
}

// StructureModel is the bubbletea model for the structure policy list.
type StructureModel struct {
	policies []structure.Policy
	cursor   int
	result   *StructureResult
	done     bool
}

// NewStructureModel creates a new structure selection model.
func NewStructureModel(current structure.Policy) StructureModel {
	policies := structure.All()
	cursor := 0
	for i, p := range policies {
		if p == current {
			cursor = i
		}
	}
	return StructureModel{
		policies: policies,
		cursor:   cursor,
	}
}

func (m StructureModel) Init() tea.Cmd {
	return nil
}

func (m StructureModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
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
			if m.cursor < len(m.policies)-1 {
				m.cursor++
			}

		case "enter":
			m.result = &StructureResult{Policy: m.policies[m.cursor]}
			m.done = true
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m StructureModel) View() string {
	var b strings.Builder

	title := titleStyle.Render("Step 3: Document Structure")
	b.WriteString(title + "\n\n")

	for i, p := range m.policies {
		cursor := "  "
		name := string(p)
		if i == m.cursor {
			cursor = highlightStyle.Render("> ")
			name = highlightStyle.Render(name)
		}
		b.WriteString(cursor + name + "\n")
		b.WriteString("      " + dimStyle.Render(policyDescriptions[p]) + "\n")
	}

	b.WriteString("\n" + dimStyle.Render("  up/down to move • enter to select • esc to cancel\n"))
	return b.String()
}

// Result returns the chosen policy, or nil if not completed.
func (m StructureModel) Result() *StructureResult {
	return m.result
}

// Cancelled returns true if the user cancelled.
func (m StructureModel) Cancelled() bool {
	return m.done && m.result == nil
}

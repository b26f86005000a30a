package wizard

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/docuforge/docuforge/internal/emit"
)

// ReviewSummary is the data shown on the review screen.
type ReviewSummary struct {
	InputPath  string
	Target     string
	Structure  string
	Options    emit.Options
	OutputPath string
}

// ReviewModel is the bubbletea model for the final confirmation screen.
type ReviewModel struct {
	summary   ReviewSummary
	confirmed bool
	done      bool
}

// NewReviewModel creates a new review model.
func NewReviewModel(summary ReviewSummary) ReviewModel {
	return ReviewModel{summary: summary}
}

func (m ReviewModel) Init() tea.Cmd {
	return nil
}

func (m ReviewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc", "n":
			m.done = true
			return m, tea.Quit

		case "enter", "y":
			m.confirmed = true
			m.done = true
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m ReviewModel) View() string {
	var b strings.Builder

	title := titleStyle.Render("Step 5: Review")
	b.WriteString(title + "\n\n")

	rows := []struct {
		label string
		value string
	}{
		{"Input", m.summary.InputPath},
		{"Target", m.summary.Target},
		{"Structure", m.summary.Structure},
		{"Add ids", onOff(m.summary.Options.AddIDs)},
		{"Add timestamps", onOff(m.summary.Options.AddTimestamps)},
		{"Suggest indexes", onOff(m.summary.Options.AddIndexes)},
		{"Output", m.summary.OutputPath},
	}
	if m.summary.Options.Name != "" {
		rows = append(rows, struct {
			label string
			value string
		}{"Name override", m.summary.Options.Name})
	}

	for _, r := range rows {
		b.WriteString(fmt.Sprintf("  %s %s\n", dimStyle.Render(fmt.Sprintf("%-16s", r.label)), r.value))
	}

	b.WriteString("\n" + dimStyle.Render("  enter/y to generate • n/esc to cancel\n"))
	return b.String()
}

// Confirmed returns true if the user confirmed generation.
func (m ReviewModel) Confirmed() bool {
	return m.confirmed
}

// Cancelled returns true if the user cancelled.
func (m ReviewModel) Cancelled() bool {
	return m.done && !m.confirmed
}

func onOff(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}

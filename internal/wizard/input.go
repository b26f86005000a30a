package wizard

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/docuforge/docuforge/internal/document"
)

// InputResult is returned when the input step completes.
type InputResult struct {
	Path string
	Root document.Value
}

// parseDoneMsg is sent when the document file has been read and parsed.
type parseDoneMsg struct {
	path string
	root document.Value
	err  error
}

// InputModel is the bubbletea model for the document file prompt.
type InputModel struct {
	input     textinput.Model
	err       error
	statusMsg string
	result    *InputResult
	done      bool
	width     int
}

// NewInputModel creates a new input file model.
func NewInputModel(initialPath string) InputModel {
	ti := textinput.New()
	ti.Placeholder = "document.json"
	ti.CharLimit = 512
	ti.SetValue(initialPath)
	ti.Focus()

	return InputModel{
		input: ti,
		width: 80,
	}
}

func (m InputModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m InputModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.done = true
			m.err = fmt.Errorf("cancelled")
			return m, tea.Quit

		case "enter":
			return m, m.startParse()
		}

	case parseDoneMsg:
		if msg.err != nil {
			m.err = msg.err
			m.statusMsg = fmt.Sprintf("Cannot use document: %v", msg.err)
			return m, nil
		}
		m.result = &InputResult{Path: msg.path, Root: msg.root}
		m.done = true
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m InputModel) View() string {
	var b strings.Builder

	title := titleStyle.Render("Step 1: Input Document")
	b.WriteString(title + "\n\n")

	b.WriteString("  " + dimStyle.Render("JSON file ") + m.input.View() + "\n\n")

	if m.err != nil {
		b.WriteString(errStyle.Render("  "+m.statusMsg) + "\n")
		b.WriteString(dimStyle.Render("  Fix the file or path and press Enter to retry\n"))
	} else {
		b.WriteString(dimStyle.Render("  Enter to load • esc to cancel\n"))
	}

	return b.String()
}

// Result returns the parsed input, or nil if not completed.
func (m InputModel) Result() *InputResult {
	return m.result
}

// Cancelled returns true if the user cancelled.
func (m InputModel) Cancelled() bool {
	return m.done && m.result == nil
}

func (m *InputModel) startParse() tea.Cmd {
	m.err = nil
	m.statusMsg = ""

	path := strings.TrimSpace(m.input.Value())
	if path == "" {
		path = "document.json"
	}

	return func() tea.Msg {
		data, err := os.ReadFile(path)
		if err != nil {
			return parseDoneMsg{err: err}
		}
		root, err := document.Parse(data)
		if err == nil {
			err = document.ValidateRoot(root)
		}
		if err != nil {
			return parseDoneMsg{err: err}
		}
		return parseDoneMsg{path: path, root: root}
	}
}

// styles
var (
	titleStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("99")).BorderStyle(lipgloss.DoubleBorder()).BorderBottom(true).Padding(0, 1)
	highlightStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	dimStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	errStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	successStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
)

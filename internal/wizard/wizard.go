package wizard

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/docuforge/docuforge/internal/dialect"
	"github.com/docuforge/docuforge/internal/document"
	"github.com/docuforge/docuforge/internal/emit"
	"github.com/docuforge/docuforge/internal/state"
	"github.com/docuforge/docuforge/internal/structure"
)

// Wizard orchestrates the interactive generation setup.
type Wizard struct {
	state     *state.State
	statePath string

	root document.Value
}

// New creates a new Wizard, loading any saved state for resume.
func New(statePath string) (*Wizard, error) {
	s, err := state.Load(statePath)
	if err != nil {
		return nil, fmt.Errorf("loading wizard state: %w", err)
	}
	return &Wizard{
		state:     s,
		statePath: statePath,
	}, nil
}

// Run executes the wizard from the current step through generation.
func (w *Wizard) Run() error {
	// A completed session starts over on the next invocation.
	if w.state.CurrentStep == state.StepComplete {
		w.state.Reset()
	}
	step := w.state.CurrentStep

	if step == state.StepInput {
		if err := w.runInput(); err != nil {
			return err
		}
		step = w.state.CurrentStep
	}

	if step == state.StepTarget {
		if err := w.runTarget(); err != nil {
			return err
		}
		step = w.state.CurrentStep
	}

	if step == state.StepStructure {
		if err := w.runStructure(); err != nil {
			return err
		}
		step = w.state.CurrentStep
	}

	if step == state.StepOptions {
		if err := w.runOptions(); err != nil {
			return err
		}
		step = w.state.CurrentStep
	}

	if step == state.StepReview {
		if err := w.runReview(); err != nil {
			return err
		}
	}

	return nil
}

func (w *Wizard) runInput() error {
	m := NewInputModel(w.state.InputPath)
	p := tea.NewProgram(m, tea.WithAltScreen())

	finalModel, err := p.Run()
	if err != nil {
		return fmt.Errorf("running input step: %w", err)
	}

	im := finalModel.(InputModel)
	if im.Cancelled() {
		return fmt.Errorf("cancelled")
	}

	result := im.Result()
	if result == nil {
		return fmt.Errorf("no input result")
	}

	w.root = result.Root
	w.state.InputPath = result.Path
	w.state.CompleteStep(state.StepInput, state.StepTarget)
	if err := w.state.Save(w.statePath); err != nil {
		return fmt.Errorf("saving state: %w", err)
	}

	fmt.Printf("\nLoaded %s.\n\n", result.Path)
	return nil
}

func (w *Wizard) runTarget() error {
	m := NewTargetModel(dialect.Target(w.state.Target))
	p := tea.NewProgram(m, tea.WithAltScreen())

	finalModel, err := p.Run()
	if err != nil {
		return fmt.Errorf("running target step: %w", err)
	}

	tm := finalModel.(TargetModel)
	if tm.Cancelled() {
		return fmt.Errorf("cancelled")
	}

	result := tm.Result()
	if result == nil {
		return fmt.Errorf("no target result")
	}

	w.state.Target = string(result.Target)
	w.state.CompleteStep(state.StepTarget, state.StepStructure)
	if err := w.state.Save(w.statePath); err != nil {
		return fmt.Errorf("saving state: %w", err)
	}

	return nil
}

func (w *Wizard) runStructure() error {
	m := NewStructureModel(structure.Policy(w.state.Structure))
	p := tea.NewProgram(m, tea.WithAltScreen())

	finalModel, err := p.Run()
	if err != nil {
		return fmt.Errorf("running structure step: %w", err)
	}

	sm := finalModel.(StructureModel)
	if sm.Cancelled() {
		return fmt.Errorf("cancelled")
	}

	result := sm.Result()
	if result == nil {
		return fmt.Errorf("no structure result")
	}

	w.state.Structure = string(result.Policy)
	w.state.CompleteStep(state.StepStructure, state.StepOptions)
	if err := w.state.Save(w.statePath); err != nil {
		return fmt.Errorf("saving state: %w", err)
	}

	return nil
}

func (w *Wizard) runOptions() error {
	m := NewOptionsModel(w.state.Options)
	p := tea.NewProgram(m, tea.WithAltScreen())

	finalModel, err := p.Run()
	if err != nil {
		return fmt.Errorf("running options step: %w", err)
	}

	om := finalModel.(OptionsModel)
	if om.Cancelled() {
		return fmt.Errorf("cancelled")
	}

	result := om.Result()
	if result == nil {
		return fmt.Errorf("no options result")
	}

	w.state.Options = result.Options
	w.state.CompleteStep(state.StepOptions, state.StepReview)
	if err := w.state.Save(w.statePath); err != nil {
		return fmt.Errorf("saving state: %w", err)
	}

	return nil
}

func (w *Wizard) runReview() error {
	outPath := w.outputPath()

	m := NewReviewModel(ReviewSummary{
		InputPath:  w.state.InputPath,
		Target:     w.state.Target,
		Structure:  w.state.Structure,
		Options:    w.state.Options,
		OutputPath: outPath,
	})
	p := tea.NewProgram(m, tea.WithAltScreen())

	finalModel, err := p.Run()
	if err != nil {
		return fmt.Errorf("running review step: %w", err)
	}

	rm := finalModel.(ReviewModel)
	if rm.Cancelled() {
		return fmt.Errorf("cancelled")
	}

	code, err := w.generate()
	if err != nil {
		return err
	}

	if err := os.WriteFile(outPath, []byte(code), 0o644); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}

	w.state.OutputPath = outPath
	w.state.LastGeneratedAt = time.Now()
	w.state.CompleteStep(state.StepReview, state.StepComplete)
	if err := w.state.Save(w.statePath); err != nil {
		return fmt.Errorf("saving state: %w", err)
	}

	fmt.Printf("\nWrote %s.\n", outPath)
	return nil
}

// generate runs the pipeline with the accumulated wizard choices.
func (w *Wizard) generate() (string, error) {
	if err := w.ensureInput(); err != nil {
		return "", err
	}

	target, err := dialect.ParseTarget(w.state.Target)
	if err != nil {
		return "", err
	}
	policy, err := structure.ParsePolicy(w.state.Structure)
	if err != nil {
		return "", err
	}

	gen, err := emit.New(target)
	if err != nil {
		return "", err
	}
	return gen.Generate(w.root, policy, w.state.Options)
}

// ensureInput re-reads the input document when resuming a saved session.
func (w *Wizard) ensureInput() error {
	if w.root != nil {
		return nil
	}
	if w.state.InputPath == "" {
		return fmt.Errorf("no input document; run the input step first")
	}
	data, err := os.ReadFile(w.state.InputPath)
	if err != nil {
		return fmt.Errorf("reading input document: %w", err)
	}
	root, err := document.Parse(data)
	if err != nil {
		return fmt.Errorf("parsing input document: %w", err)
	}
	w.root = root
	return nil
}

func (w *Wizard) outputPath() string {
	dir := filepath.Dir(w.state.InputPath)
	if w.state.InputPath == "" {
		dir = "."
	}
	return filepath.Join(dir, fmt.Sprintf("insert_%s.js", w.state.Target))
}

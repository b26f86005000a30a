package state

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/docuforge/docuforge/internal/config"
	"github.com/docuforge/docuforge/internal/emit"
)

const DefaultPath = "~/.docuforge/state.yaml"

// Step represents a wizard step.
type Step string

const (
	StepInput     Step = "input"
	StepTarget    Step = "target"
	StepStructure Step = "structure"
	StepOptions   Step = "options"
	StepReview    Step = "review"
	StepComplete  Step = "complete"
)

// State holds the current wizard progress and the last generation inputs,
// so an interrupted session can resume where it left off.
type State struct {
	CurrentStep Step               `yaml:"current_step"`
	LastUpdated time.Time          `yaml:"last_updated"`
	Steps       map[Step]StepState `yaml:"steps,omitempty"`

	// Data accumulated across wizard steps
	InputPath string       `yaml:"input_path,omitempty"`
	Target    string       `yaml:"target,omitempty"`
	Structure string       `yaml:"structure,omitempty"`
	Options   emit.Options `yaml:"options,omitempty"`

	// Last generation result
	OutputPath      string    `yaml:"output_path,omitempty"`
	LastGeneratedAt time.Time `yaml:"last_generated_at,omitempty"`
}

// StepState tracks the state of a single wizard step.
type StepState struct {
	Status      string    `yaml:"status"` // pending, in_progress, complete, skipped
	CompletedAt time.Time `yaml:"completed_at,omitempty"`
}

// Load reads the wizard state from disk.
func Load(path string) (*State, error) {
	if path == "" {
		path = config.ExpandHome(DefaultPath)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return New(), nil
		}
		return nil, fmt.Errorf("reading state: %w", err)
	}

	s := &State{}
	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("parsing state: %w", err)
	}
	if s.Steps == nil {
		s.Steps = make(map[Step]StepState)
	}

	return s, nil
}

// Save writes the wizard state to disk.
func (s *State) Save(path string) error {
	if path == "" {
		path = config.ExpandHome(DefaultPath)
	}

	s.LastUpdated = time.Now()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating state directory: %w", err)
	}

	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshaling state: %w", err)
	}

	return os.WriteFile(path, data, 0o644)
}

// New creates a fresh wizard state.
func New() *State {
	return &State{
		CurrentStep: StepInput,
		LastUpdated: time.Now(),
		Steps:       make(map[Step]StepState),
	}
}

// CompleteStep marks a step as complete and advances to the next.
func (s *State) CompleteStep(step Step, next Step) {
	s.Steps[step] = StepState{
		Status:      "complete",
		CompletedAt: time.Now(),
	}
	s.CurrentStep = next
}

// IsStepComplete returns true if the given step has been completed.
func (s *State) IsStepComplete(step Step) bool {
	ss, ok := s.Steps[step]
	return ok && ss.Status == "complete"
}

// Reset clears progress so the wizard starts over.
func (s *State) Reset() {
	*s = *New()
}

package state

import (
	"path/filepath"
	"testing"

	"github.com/docuforge/docuforge/internal/emit"
)

func TestLoadMissingFileReturnsFresh(t *testing.T) {
	s, err := Load(filepath.Join(t.TempDir(), "state.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s.CurrentStep != StepInput {
		t.Errorf("current step = %q, want input", s.CurrentStep)
	}
	if len(s.Steps) != 0 {
		t.Errorf("steps = %v, want empty", s.Steps)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.yaml")

	s := New()
	s.InputPath = "/tmp/doc.json"
	s.Target = "firestore"
	s.Structure = "references"
	s.Options = emit.Options{AddIDs: true, Name: "users"}
	s.CompleteStep(StepInput, StepTarget)
	if err := s.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.CurrentStep != StepTarget {
		t.Errorf("current step = %q", loaded.CurrentStep)
	}
	if loaded.InputPath != "/tmp/doc.json" || loaded.Target != "firestore" {
		t.Errorf("inputs = %q %q", loaded.InputPath, loaded.Target)
	}
	if !loaded.Options.AddIDs || loaded.Options.Name != "users" {
		t.Errorf("options = %+v", loaded.Options)
	}
	if !loaded.IsStepComplete(StepInput) {
		t.Error("input step should be complete after round trip")
	}
}

func TestCompleteStep(t *testing.T) {
	s := New()
	s.CompleteStep(StepInput, StepTarget)

	if s.CurrentStep != StepTarget {
		t.Errorf("current step = %q", s.CurrentStep)
	}
	if !s.IsStepComplete(StepInput) {
		t.Error("input not marked complete")
	}
	if s.IsStepComplete(StepTarget) {
		t.Error("target should not be complete")
	}
	if s.Steps[StepInput].CompletedAt.IsZero() {
		t.Error("completion time not recorded")
	}
}

func TestReset(t *testing.T) {
	s := New()
	s.InputPath = "/tmp/doc.json"
	s.CompleteStep(StepInput, StepTarget)
	s.CompleteStep(StepTarget, StepStructure)

	s.Reset()

	if s.CurrentStep != StepInput {
		t.Errorf("current step = %q", s.CurrentStep)
	}
	if s.InputPath != "" {
		t.Errorf("input path = %q", s.InputPath)
	}
	if s.IsStepComplete(StepInput) {
		t.Error("steps should be cleared")
	}
}

func TestSaveCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "state.yaml")
	if err := New().Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if _, err := Load(path); err != nil {
		t.Fatalf("Load after Save: %v", err)
	}
}

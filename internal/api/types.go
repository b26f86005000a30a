package api

import (
	"github.com/docuforge/docuforge/internal/emit"
)

// GenerateRequest is the body of POST /api/generate. Document is the raw
// JSON text as typed, so syntax errors can be reported with positions.
type GenerateRequest struct {
	Document  string       `json:"document"`
	Target    string       `json:"target"`
	Structure string       `json:"structure"`
	Options   emit.Options `json:"options"`
}

// GenerateResponse carries the generated code artifact.
type GenerateResponse struct {
	Target    string `json:"target"`
	Structure string `json:"structure"`
	Code      string `json:"code"`
}

// ValidateRequest is the body of POST /api/validate.
type ValidateRequest struct {
	Document string `json:"document"`
}

// ValidateResponse reports whether the document is usable as generator input.
type ValidateResponse struct {
	Valid  bool   `json:"valid"`
	Error  string `json:"error,omitempty"`
	Line   int    `json:"line,omitempty"`
	Column int    `json:"column,omitempty"`
}

// IndexesRequest is the body of POST /api/indexes.
type IndexesRequest struct {
	Document  string `json:"document"`
	Target    string `json:"target"`
	Structure string `json:"structure"`
}

// IndexesResponse carries the index suggestion for a document.
type IndexesResponse struct {
	Fields   []string `json:"fields"`
	Compound []string `json:"compound,omitempty"`
}

// TargetInfo describes one supported backend.
type TargetInfo struct {
	ID          string `json:"id"`
	Term        string `json:"term"`
	IDField     string `json:"id_field"`
	DefaultName string `json:"default_name"`
}

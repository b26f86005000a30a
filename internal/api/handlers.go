package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/docuforge/docuforge/internal/dialect"
	"github.com/docuforge/docuforge/internal/document"
	"github.com/docuforge/docuforge/internal/emit"
	"github.com/docuforge/docuforge/internal/structure"
	"github.com/docuforge/docuforge/internal/ws"
)

func (s *Server) handleTargets(w http.ResponseWriter, r *http.Request) {
	targets := dialect.All()
	infos := make([]TargetInfo, 0, len(targets))
	for _, t := range targets {
		d, err := dialect.For(t)
		if err != nil {
			errorResponse(w, http.StatusInternalServerError, err.Error())
			return
		}
		infos = append(infos, TargetInfo{
			ID:          string(d.Target),
			Term:        d.Term,
			IDField:     d.IDField,
			DefaultName: d.DefaultName,
		})
	}
	jsonResponse(w, http.StatusOK, infos)
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}

	root, target, policy, err := resolveInputs(req.Document, req.Target, req.Structure)
	if err != nil {
		errorResponse(w, statusForError(err), err.Error())
		return
	}

	gen, err := emit.New(target)
	if err != nil {
		errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	code, err := gen.Generate(root, policy, req.Options)
	if err != nil {
		if s.hub != nil {
			s.hub.BroadcastError(err.Error())
		}
		errorResponse(w, statusForError(err), err.Error())
		return
	}

	if s.hub != nil {
		s.hub.BroadcastGeneration(ws.GenerationEvent{
			Target:    string(target),
			Structure: string(policy),
			Name:      req.Options.Name,
			Code:      code,
		})
	}

	jsonResponse(w, http.StatusOK, GenerateResponse{
		Target:    string(target),
		Structure: string(policy),
		Code:      code,
	})
}

func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	var req ValidateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}

	root, err := document.Parse([]byte(req.Document))
	if err == nil {
		err = document.ValidateRoot(root)
	}
	if err != nil {
		resp := ValidateResponse{Valid: false, Error: err.Error()}
		var syn *document.SyntaxError
		if errors.As(err, &syn) {
			resp.Line = syn.Line
			resp.Column = syn.Column
		}
		jsonResponse(w, http.StatusOK, resp)
		return
	}

	jsonResponse(w, http.StatusOK, ValidateResponse{Valid: true})
}

func (s *Server) handleIndexes(w http.ResponseWriter, r *http.Request) {
	var req IndexesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}

	root, target, policy, err := resolveInputs(req.Document, req.Target, req.Structure)
	if err != nil {
		errorResponse(w, statusForError(err), err.Error())
		return
	}

	gen, err := emit.New(target)
	if err != nil {
		errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	suggestion, err := gen.Suggest(root, policy)
	if err != nil {
		errorResponse(w, statusForError(err), err.Error())
		return
	}

	jsonResponse(w, http.StatusOK, IndexesResponse{
		Fields:   suggestion.Fields,
		Compound: suggestion.Compound,
	})
}

// resolveInputs parses the raw document and the target/structure selectors,
// applying the mongodb/nested defaults for omitted selectors.
func resolveInputs(doc, targetStr, structureStr string) (document.Value, dialect.Target, structure.Policy, error) {
	if doc == "" {
		return nil, "", "", document.ErrInvalidInput
	}

	root, err := document.Parse([]byte(doc))
	if err != nil {
		return nil, "", "", err
	}

	if targetStr == "" {
		targetStr = string(dialect.MongoDB)
	}
	target, err := dialect.ParseTarget(targetStr)
	if err != nil {
		return nil, "", "", err
	}

	if structureStr == "" {
		structureStr = string(structure.Nested)
	}
	policy, err := structure.ParsePolicy(structureStr)
	if err != nil {
		return nil, "", "", err
	}

	return root, target, policy, nil
}

// statusForError maps generator errors to HTTP statuses: anything caused by
// the caller's input is a 400, everything else a 500.
func statusForError(err error) int {
	var syn *document.SyntaxError
	switch {
	case errors.As(err, &syn),
		errors.Is(err, document.ErrInvalidInput),
		errors.Is(err, structure.ErrUnsupportedStructure),
		errors.Is(err, dialect.ErrUnknownTarget):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

package api

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func testServer(opts ...Option) *Server {
	return New(slog.Default(), 0, opts...)
}

// serveMux creates an http.ServeMux with the server's routes registered.
func serveMux(s *Server) *http.ServeMux {
	mux := http.NewServeMux()
	s.registerRoutes(mux)
	return mux
}

func TestHealthEndpoint(t *testing.T) {
	mux := serveMux(testServer())

	req := httptest.NewRequest("GET", "/api/health", nil)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", w.Code, http.StatusOK)
	}

	var resp map[string]string
	json.NewDecoder(w.Body).Decode(&resp)
	if resp["status"] != "ok" {
		t.Errorf("status = %q, want %q", resp["status"], "ok")
	}
}

func TestTargets(t *testing.T) {
	mux := serveMux(testServer())

	req := httptest.NewRequest("GET", "/api/targets", nil)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}

	var infos []TargetInfo
	json.NewDecoder(w.Body).Decode(&infos)
	if len(infos) != 4 {
		t.Fatalf("targets count = %d, want 4", len(infos))
	}
	if infos[0].ID != "mongodb" {
		t.Errorf("first target = %q, want %q", infos[0].ID, "mongodb")
	}
	if infos[0].IDField != "_id" {
		t.Errorf("mongodb id field = %q, want %q", infos[0].IDField, "_id")
	}
}

func TestGenerate(t *testing.T) {
	mux := serveMux(testServer())

	body, _ := json.Marshal(GenerateRequest{
		Document: `{"users": {"name": "Ann"}}`,
		Target:   "mongodb",
	})
	req := httptest.NewRequest("POST", "/api/generate", bytes.NewReader(body))
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	var resp GenerateResponse
	json.NewDecoder(w.Body).Decode(&resp)
	if resp.Target != "mongodb" {
		t.Errorf("target = %q", resp.Target)
	}
	if resp.Structure != "nested" {
		t.Errorf("structure = %q, want default %q", resp.Structure, "nested")
	}
	if !strings.Contains(resp.Code, "db.users.insertOne(") {
		t.Errorf("code missing insertOne:\n%s", resp.Code)
	}
}

func TestGenerate_InvalidBody(t *testing.T) {
	mux := serveMux(testServer())

	req := httptest.NewRequest("POST", "/api/generate", bytes.NewReader([]byte("not json")))
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
}

func TestGenerate_ScalarDocument(t *testing.T) {
	mux := serveMux(testServer())

	body, _ := json.Marshal(GenerateRequest{
		Document: `42`,
		Target:   "couchdb",
	})
	req := httptest.NewRequest("POST", "/api/generate", bytes.NewReader(body))
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
}

func TestGenerate_UnknownTarget(t *testing.T) {
	mux := serveMux(testServer())

	body, _ := json.Marshal(GenerateRequest{
		Document: `{"a": 1}`,
		Target:   "cassandra",
	})
	req := httptest.NewRequest("POST", "/api/generate", bytes.NewReader(body))
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
}

func TestGenerate_UnknownStructure(t *testing.T) {
	mux := serveMux(testServer())

	body, _ := json.Marshal(GenerateRequest{
		Document:  `{"a": 1}`,
		Structure: "graph",
	})
	req := httptest.NewRequest("POST", "/api/generate", bytes.NewReader(body))
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
}

func TestValidate_Valid(t *testing.T) {
	mux := serveMux(testServer())

	body, _ := json.Marshal(ValidateRequest{Document: `{"a": 1}`})
	req := httptest.NewRequest("POST", "/api/validate", bytes.NewReader(body))
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var resp ValidateResponse
	json.NewDecoder(w.Body).Decode(&resp)
	if !resp.Valid {
		t.Errorf("valid = false, error = %q", resp.Error)
	}
}

func TestValidate_SyntaxError(t *testing.T) {
	mux := serveMux(testServer())

	body, _ := json.Marshal(ValidateRequest{Document: "{\"a\": 1,\n\"b\": }"})
	req := httptest.NewRequest("POST", "/api/validate", bytes.NewReader(body))
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var resp ValidateResponse
	json.NewDecoder(w.Body).Decode(&resp)
	if resp.Valid {
		t.Fatal("broken document reported valid")
	}
	if resp.Line != 2 {
		t.Errorf("line = %d, want 2", resp.Line)
	}
}

func TestValidate_ScalarRoot(t *testing.T) {
	mux := serveMux(testServer())

	body, _ := json.Marshal(ValidateRequest{Document: `"hello"`})
	req := httptest.NewRequest("POST", "/api/validate", bytes.NewReader(body))
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var resp ValidateResponse
	json.NewDecoder(w.Body).Decode(&resp)
	if resp.Valid {
		t.Error("scalar root reported valid")
	}
	if resp.Error == "" {
		t.Error("expected an error message")
	}
}

func TestIndexes(t *testing.T) {
	mux := serveMux(testServer())

	body, _ := json.Marshal(IndexesRequest{
		Document: `[{"user_id": 7, "email": "a@b.com", "notes": "x"}]`,
		Target:   "mongodb",
	})
	req := httptest.NewRequest("POST", "/api/indexes", bytes.NewReader(body))
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	var resp IndexesResponse
	json.NewDecoder(w.Body).Decode(&resp)
	if len(resp.Fields) != 2 {
		t.Fatalf("fields = %v, want [user_id email]", resp.Fields)
	}
	if resp.Fields[0] != "user_id" || resp.Fields[1] != "email" {
		t.Errorf("fields = %v", resp.Fields)
	}
	if len(resp.Compound) != 2 {
		t.Errorf("compound = %v, want two fields", resp.Compound)
	}
}

func TestCORSMiddleware(t *testing.T) {
	s := testServer(WithDevMode(true))
	mux := serveMux(s)
	handler := s.corsMiddleware(mux)

	// OPTIONS preflight
	req := httptest.NewRequest("OPTIONS", "/api/health", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusNoContent {
		t.Errorf("OPTIONS status = %d, want %d", w.Code, http.StatusNoContent)
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("CORS origin = %q, want %q", got, "*")
	}

	// Normal request
	req = httptest.NewRequest("GET", "/api/health", nil)
	w = httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("GET status = %d, want %d", w.Code, http.StatusOK)
	}
}

func TestJsonResponse(t *testing.T) {
	w := httptest.NewRecorder()
	jsonResponse(w, http.StatusCreated, map[string]string{"key": "value"})

	if w.Code != http.StatusCreated {
		t.Errorf("status = %d, want %d", w.Code, http.StatusCreated)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}
}

func TestErrorResponse(t *testing.T) {
	w := httptest.NewRecorder()
	errorResponse(w, http.StatusBadRequest, "bad input")

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}

	var resp map[string]string
	json.NewDecoder(w.Body).Decode(&resp)
	if resp["error"] != "bad input" {
		t.Errorf("error = %q", resp["error"])
	}
}

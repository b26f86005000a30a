// Package advisor inspects a sample document and suggests index candidates.
// The heuristics are backend-agnostic; each emitter renders the result in
// its own index-definition syntax.
package advisor

import (
	"strings"

	"github.com/docuforge/docuforge/internal/document"
)

// Suggestion is the ordered, de-duplicated set of index candidates.
type Suggestion struct {
	// Fields are candidate field names, first-seen order.
	Fields []string
	// Compound is a suggested compound index over the first two candidates.
	// Empty when fewer than two candidates exist.
	Compound []string
}

// Empty reports whether no candidates were found.
func (s Suggestion) Empty() bool {
	return len(s.Fields) == 0
}

// Analyze scans the sample's field names and value shapes. When the input
// is an array, the first element is used as the sample. Heuristics are
// applied independently and unioned:
//
//   - name contains "id" or ends with "_id"
//   - name contains "date" or "time", value is a date, or value is a
//     string with a leading YYYY-MM-DD
//   - name contains "name", "email", or "username"
func Analyze(v document.Value) Suggestion {
	sample := sampleObject(v)
	if sample == nil {
		return Suggestion{}
	}

	var s Suggestion
	seen := make(map[string]bool)
	for _, f := range sample.Fields() {
		if !candidate(f.Key, f.Value) || seen[f.Key] {
			continue
		}
		seen[f.Key] = true
		s.Fields = append(s.Fields, f.Key)
	}

	if len(s.Fields) > 1 {
		s.Compound = []string{s.Fields[0], s.Fields[1]}
	}
	return s
}

func candidate(key string, v document.Value) bool {
	name := strings.ToLower(key)

	if strings.Contains(name, "id") || strings.HasSuffix(name, "_id") {
		return true
	}
	if strings.Contains(name, "date") || strings.Contains(name, "time") {
		return true
	}
	switch val := v.(type) {
	case document.Date:
		return true
	case string:
		if document.IsDateLike(val) {
			return true
		}
	}
	if strings.Contains(name, "name") || strings.Contains(name, "email") || strings.Contains(name, "username") {
		return true
	}
	return false
}

func sampleObject(v document.Value) *document.Object {
	switch val := v.(type) {
	case *document.Object:
		return val
	case document.Array:
		if len(val) > 0 {
			if obj, ok := val[0].(*document.Object); ok {
				return obj
			}
		}
	}
	return nil
}

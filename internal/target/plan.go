package target

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/docuforge/docuforge/internal/advisor"
)

// IndexPlan describes the set of indexes to create on the target, plus
// human-readable explanations of where each came from.
type IndexPlan struct {
	Indexes      []CollectionIndex `yaml:"indexes"`
	Explanations []string          `yaml:"explanations"`
}

// PlanFromSuggestion converts an advisor suggestion into a concrete index
// plan for one collection: one single-field index per candidate and a
// compound index over the first two.
func PlanFromSuggestion(collection string, s advisor.Suggestion) *IndexPlan {
	plan := &IndexPlan{}

	for _, f := range s.Fields {
		idx := IndexDefinition{
			Keys: []IndexKey{{Field: f, Order: 1}},
			Name: fmt.Sprintf("idx_%s_%s", collection, f),
		}
		plan.addIfNew(collection, idx)
		plan.Explanations = append(plan.Explanations,
			fmt.Sprintf("Index on %s.%s from field-shape heuristic", collection, f))
	}

	if len(s.Compound) == 2 {
		idx := IndexDefinition{
			Keys: []IndexKey{
				{Field: s.Compound[0], Order: 1},
				{Field: s.Compound[1], Order: 1},
			},
			Name: fmt.Sprintf("idx_%s_%s_%s", collection, s.Compound[0], s.Compound[1]),
		}
		plan.addIfNew(collection, idx)
		plan.Explanations = append(plan.Explanations,
			fmt.Sprintf("Compound index on %s(%s, %s) over the first two candidates",
				collection, s.Compound[0], s.Compound[1]))
	}

	return plan
}

func (p *IndexPlan) addIfNew(collection string, idx IndexDefinition) {
	// Never generate an _id index; MongoDB maintains it automatically.
	if len(idx.Keys) == 1 && idx.Keys[0].Field == "_id" {
		return
	}

	keyStr := indexKeyString(idx.Keys)
	for _, existing := range p.Indexes {
		if existing.Collection == collection && indexKeyString(existing.Index.Keys) == keyStr {
			return
		}
	}
	p.Indexes = append(p.Indexes, CollectionIndex{Collection: collection, Index: idx})
}

func indexKeyString(keys []IndexKey) string {
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s:%d", k.Field, k.Order)
	}
	return strings.Join(parts, ",")
}

// WriteYAML writes the index plan to a YAML file.
func (p *IndexPlan) WriteYAML(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating directory: %w", err)
	}
	data, err := yaml.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshaling index plan: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// LoadYAML reads an index plan from a YAML file.
func LoadYAML(path string) (*IndexPlan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading index plan: %w", err)
	}
	p := &IndexPlan{}
	if err := yaml.Unmarshal(data, p); err != nil {
		return nil, fmt.Errorf("parsing index plan: %w", err)
	}
	return p, nil
}

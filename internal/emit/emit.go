// Package emit assembles generated insert code per backend. The heavy
// lifting (restructuring, literal rendering) lives in structure and dialect;
// emitters are thin template assembly in the style of a migration script
// generator.
package emit

import (
	"fmt"

	"github.com/docuforge/docuforge/internal/advisor"
	"github.com/docuforge/docuforge/internal/dialect"
	"github.com/docuforge/docuforge/internal/document"
	"github.com/docuforge/docuforge/internal/idgen"
	"github.com/docuforge/docuforge/internal/structure"
)

// Options control generation.
type Options struct {
	AddIDs        bool   `yaml:"add_ids" json:"addIds"`
	AddTimestamps bool   `yaml:"add_timestamps" json:"addTimestamps"`
	AddIndexes    bool   `yaml:"add_indexes" json:"addIndexes"`
	Name          string `yaml:"name,omitempty" json:"name,omitempty"`
}

// Generator produces insert code for one backend target.
type Generator struct {
	Dialect *dialect.Dialect
	Clock   idgen.Clock
	IDs     idgen.Source
}

// New returns a Generator for the target with production clock and ids.
func New(target dialect.Target) (*Generator, error) {
	d, err := dialect.For(target)
	if err != nil {
		return nil, err
	}
	return &Generator{
		Dialect: d,
		Clock:   idgen.SystemClock{},
		IDs:     idgen.RandomSource{},
	}, nil
}

// insertUnit is one collection/table worth of documents to insert.
type insertUnit struct {
	Name string
	Docs []*document.Object
}

// Generate returns the complete code artifact for the input document.
// It is a pure function of its arguments plus the injected clock and id
// source, and never mutates the input.
func (g *Generator) Generate(root document.Value, policy structure.Policy, opts Options) (string, error) {
	if err := document.ValidateRoot(root); err != nil {
		return "", err
	}

	name := g.resolveName(root, opts)

	res, err := structure.Apply(root, policy, g.conventions())
	if err != nil {
		return "", err
	}

	// Advisor runs on the restructured sample, before id/timestamp
	// injection so synthesized fields do not pollute the suggestions.
	var suggestion advisor.Suggestion
	if opts.AddIndexes {
		if len(res.Documents) > 0 {
			suggestion = advisor.Analyze(res.Documents[0])
		}
	}

	g.inject(res, policy, opts)

	units := make([]insertUnit, 0, 1+len(res.Collections))
	units = append(units, insertUnit{Name: name, Docs: res.Documents})
	for _, c := range res.Collections {
		units = append(units, insertUnit{Name: c.Name, Docs: c.Documents})
	}

	var code string
	switch g.Dialect.Target {
	case dialect.MongoDB:
		code, err = g.emitMongo(units)
	case dialect.Firestore:
		code, err = g.emitFirestore(units)
	case dialect.DynamoDB:
		code, err = g.emitDynamo(units)
	case dialect.CouchDB:
		code, err = g.emitCouch(units)
	default:
		return "", fmt.Errorf("%w: %q", dialect.ErrUnknownTarget, g.Dialect.Target)
	}
	if err != nil {
		return "", err
	}

	if opts.AddIndexes {
		code += g.renderIndexes(name, suggestion)
	}

	return code, nil
}

func (g *Generator) conventions() structure.Conventions {
	return structure.Conventions{
		FlattenSep:     g.Dialect.FlattenSep,
		IDField:        g.Dialect.IDField,
		CollectionName: g.Dialect.CollectionName,
		RefField:       g.Dialect.RefField,
		NewID:          func() string { return g.Dialect.NewID(g.IDs) },
	}
}

// Suggest returns the index suggestion for a document without generating
// code. The document is restructured first so the suggestion matches what
// Generate would embed.
func (g *Generator) Suggest(root document.Value, policy structure.Policy) (advisor.Suggestion, error) {
	if err := document.ValidateRoot(root); err != nil {
		return advisor.Suggestion{}, err
	}
	res, err := structure.Apply(root, policy, g.conventions())
	if err != nil {
		return advisor.Suggestion{}, err
	}
	if len(res.Documents) == 0 {
		return advisor.Suggestion{}, nil
	}
	return advisor.Analyze(res.Documents[0]), nil
}

// resolveName picks the target collection/table name: explicit option, else
// the first key of a non-array root object, else the backend generic name.
func (g *Generator) resolveName(root document.Value, opts Options) string {
	if opts.Name != "" {
		return opts.Name
	}
	if key := document.FirstKey(root); key != "" {
		return key
	}
	return g.Dialect.DefaultName
}

// inject adds synthesized ids and timestamps. Ids lead the document;
// timestamps trail it. Reference-extracted documents already carry ids from
// the transform and are left alone by the id pass.
func (g *Generator) inject(res *structure.Result, policy structure.Policy, opts Options) {
	if opts.AddIDs {
		for _, doc := range res.Documents {
			g.injectID(doc)
		}
		for _, c := range res.Collections {
			for _, doc := range c.Documents {
				g.injectID(doc)
			}
		}
		if policy == structure.ArrayWrapped {
			g.injectItemIDs(res)
		}
	}

	if opts.AddTimestamps {
		now := document.Date(g.Clock.Now())
		for _, doc := range res.Documents {
			doc.Set(g.Dialect.CreatedField, now)
			doc.Set(g.Dialect.UpdatedField, now)
		}
		for _, c := range res.Collections {
			for _, doc := range c.Documents {
				doc.Set(g.Dialect.CreatedField, now)
				doc.Set(g.Dialect.UpdatedField, now)
			}
		}
	}
}

func (g *Generator) injectID(doc *document.Object) {
	if doc.Has(g.Dialect.IDField) {
		return
	}
	doc.Prepend(g.Dialect.IDField, document.ID(g.Dialect.NewID(g.IDs)))
}

// injectItemIDs tags the object elements of the container's items array.
// Item-level ids are independent of the container-level id.
func (g *Generator) injectItemIDs(res *structure.Result) {
	for _, doc := range res.Documents {
		items, ok := doc.Get("items")
		if !ok {
			continue
		}
		arr, ok := items.(document.Array)
		if !ok {
			continue
		}
		for _, e := range arr {
			if obj, ok := e.(*document.Object); ok {
				g.injectID(obj)
			}
		}
	}
}

// renderIndexes renders the advisor suggestion in backend syntax.
func (g *Generator) renderIndexes(name string, s advisor.Suggestion) string {
	switch g.Dialect.Target {
	case dialect.MongoDB:
		return renderMongoIndexes(name, s)
	case dialect.Firestore:
		return renderFirestoreIndexes(name, s)
	case dialect.DynamoDB:
		return renderDynamoIndexes(name, s)
	case dialect.CouchDB:
		return renderCouchIndexes(s)
	}
	return ""
}

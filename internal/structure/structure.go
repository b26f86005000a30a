// Package structure implements the four document-shaping policies. All
// transforms operate on a deep copy of the input; the caller's value tree is
// never mutated.
package structure

import (
	"errors"
	"fmt"
	"strings"

	"github.com/docuforge/docuforge/internal/document"
)

// Policy selects how the input document is restructured before emission.
type Policy string

const (
	// Nested preserves the hierarchy as embedded sub-documents.
	Nested Policy = "nested"
	// Flat merges nested objects into the parent with joined keys.
	Flat Policy = "flat"
	// References extracts nested objects into separate collections linked
	// by synthesized foreign-key fields.
	References Policy = "references"
	// ArrayWrapped wraps the whole input as the items field of one
	// container document.
	ArrayWrapped Policy = "array"
)

// ErrUnsupportedStructure is returned for a policy this tool does not know.
// Unknown policies fail loudly instead of silently falling back to Nested.
var ErrUnsupportedStructure = errors.New("unsupported structure policy")

// All returns the known policies in display order.
func All() []Policy {
	return []Policy{Nested, Flat, References, ArrayWrapped}
}

// ParsePolicy resolves a user-supplied policy name.
func ParsePolicy(s string) (Policy, error) {
	switch Policy(strings.ToLower(strings.TrimSpace(s))) {
	case Nested:
		return Nested, nil
	case Flat:
		return Flat, nil
	case References:
		return References, nil
	case ArrayWrapped:
		return ArrayWrapped, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedStructure, s)
	}
}

// Conventions are the backend-scoped naming rules the transform needs. They
// come from the target dialect so that observable output stays per-backend.
type Conventions struct {
	FlattenSep     string
	IDField        string
	CollectionName func(key string) string
	RefField       func(key string) string
	NewID          func() string
}

// Collection is a spun-off set of documents produced by References.
type Collection struct {
	Name      string
	Documents []*document.Object
}

// Result is the transformed document set.
type Result struct {
	// Documents are the main insert targets, in input order.
	Documents []*document.Object
	// Collections holds extracted collections (References only), ordered
	// by first extraction.
	Collections []Collection
}

// Apply restructures root according to the policy. root must be an object
// or array (document.ErrInvalidInput otherwise).
func Apply(root document.Value, p Policy, conv Conventions) (*Result, error) {
	if err := document.ValidateRoot(root); err != nil {
		return nil, err
	}
	root = document.Clone(root)

	switch p {
	case Nested:
		docs, err := rootDocuments(root)
		if err != nil {
			return nil, err
		}
		return &Result{Documents: docs}, nil
	case Flat:
		docs, err := rootDocuments(root)
		if err != nil {
			return nil, err
		}
		for i, d := range docs {
			docs[i] = flatten(d, "", conv.FlattenSep)
		}
		return &Result{Documents: docs}, nil
	case References:
		docs, err := rootDocuments(root)
		if err != nil {
			return nil, err
		}
		res := &Result{Documents: docs}
		extractReferences(res, docs, conv)
		return res, nil
	case ArrayWrapped:
		return wrapArray(root), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedStructure, p)
	}
}

// rootDocuments coerces the root into a document sequence: an object is a
// single document, an array is one document per element. An empty array
// yields zero documents.
func rootDocuments(root document.Value) ([]*document.Object, error) {
	switch v := root.(type) {
	case *document.Object:
		return []*document.Object{v}, nil
	case document.Array:
		docs := make([]*document.Object, 0, len(v))
		for _, e := range v {
			obj, ok := e.(*document.Object)
			if !ok {
				return nil, fmt.Errorf("%w: array elements must be objects", document.ErrInvalidInput)
			}
			docs = append(docs, obj)
		}
		return docs, nil
	default:
		return nil, document.ErrInvalidInput
	}
}

// flatten recursively merges object-valued fields into the parent using the
// backend's key-join separator. Arrays are kept verbatim.
func flatten(obj *document.Object, prefix, sep string) *document.Object {
	out := document.NewObject()
	flattenInto(out, obj, prefix, sep)
	return out
}

func flattenInto(out, obj *document.Object, prefix, sep string) {
	for _, f := range obj.Fields() {
		key := f.Key
		if prefix != "" {
			key = prefix + sep + f.Key
		}
		if child, ok := f.Value.(*document.Object); ok {
			flattenInto(out, child, key, sep)
			continue
		}
		out.Set(key, f.Value)
	}
}

// extractReferences walks each document and relocates nested objects (and
// arrays of objects) into named collections, replacing them with synthesized
// foreign-key fields. Extracted documents are processed recursively so
// multi-level nesting spins off further collections.
func extractReferences(res *Result, docs []*document.Object, conv Conventions) {
	for _, doc := range docs {
		for _, f := range doc.Fields() {
			switch val := f.Value.(type) {
			case *document.Object:
				if val.Len() == 0 {
					continue
				}
				id := extractOne(res, f.Key, val, conv)
				doc.Replace(f.Key, conv.RefField(f.Key), document.ID(id))
			case document.Array:
				if len(val) == 0 {
					continue
				}
				if _, ok := val[0].(*document.Object); !ok {
					continue
				}
				ids := document.Array{}
				for _, e := range val {
					child, ok := e.(*document.Object)
					if !ok {
						continue
					}
					ids = append(ids, document.ID(extractOne(res, f.Key, child, conv)))
				}
				doc.Replace(f.Key, conv.RefField(f.Key), ids)
			}
		}
	}
}

// extractOne assigns the child an id, appends it to the collection named
// after the field key, recurses into it, and returns the id.
func extractOne(res *Result, key string, child *document.Object, conv Conventions) string {
	id := conv.NewID()
	child.Prepend(conv.IDField, document.ID(id))
	name := conv.CollectionName(key)

	extractReferences(res, []*document.Object{child}, conv)

	for i := range res.Collections {
		if res.Collections[i].Name == name {
			res.Collections[i].Documents = append(res.Collections[i].Documents, child)
			return id
		}
	}
	res.Collections = append(res.Collections, Collection{Name: name, Documents: []*document.Object{child}})
	return id
}

// wrapArray builds the single container document whose items field holds the
// input sequence. Scalar items are allowed here; only the container itself
// must be a document.
func wrapArray(root document.Value) *Result {
	var items document.Array
	switch v := root.(type) {
	case document.Array:
		items = v
	default:
		items = document.Array{v}
	}
	container := document.NewObject()
	container.Set("items", items)
	return &Result{Documents: []*document.Object{container}}
}

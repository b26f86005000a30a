// Package dialect holds the per-backend rendering strategy: leaf literal
// rules (null, date, id), naming conventions (flatten separator, collection
// naming, id field), and the shared tree renderer. Emitters stay thin
// template assembly on top of this.
package dialect

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/docuforge/docuforge/internal/document"
	"github.com/docuforge/docuforge/internal/idgen"
)

// Target identifies a supported backend.
type Target string

const (
	MongoDB   Target = "mongodb"
	Firestore Target = "firestore"
	DynamoDB  Target = "dynamodb"
	CouchDB   Target = "couchdb"
)

var (
	// ErrUnknownTarget is returned for a backend this tool does not support.
	ErrUnknownTarget = errors.New("unknown backend target")
	// ErrSerialization is returned when a value is not part of the JSON
	// value model (should not happen for parsed input).
	ErrSerialization = errors.New("value cannot be serialized")
)

// All returns the supported targets in display order.
func All() []Target {
	return []Target{MongoDB, Firestore, DynamoDB, CouchDB}
}

// ParseTarget resolves a user-supplied target name.
func ParseTarget(s string) (Target, error) {
	switch Target(strings.ToLower(strings.TrimSpace(s))) {
	case MongoDB:
		return MongoDB, nil
	case Firestore:
		return Firestore, nil
	case DynamoDB:
		return DynamoDB, nil
	case CouchDB:
		return CouchDB, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownTarget, s)
	}
}

// Dialect carries everything backend-specific about rendering.
type Dialect struct {
	Target      Target
	DefaultName string // fallback collection/table name
	IDField     string // "_id" or "id"
	FlattenSep  string // key join for the flat structure
	Term        string // collection/table terminology for messages

	// CreatedField and UpdatedField are the injected timestamp field names.
	CreatedField string
	UpdatedField string

	nullLit        string
	date           func(iso string) string
	id             func(id string) string
	collectionName func(key string) string
	refField       func(key string) string
	newID          func(src idgen.Source) string
}

// For returns the dialect for a target.
func For(t Target) (*Dialect, error) {
	d, ok := registry[t]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTarget, t)
	}
	return d, nil
}

// CollectionName derives the name of a spun-off collection from the field
// key it was extracted from. The convention is backend-scoped: MongoDB and
// CouchDB pluralize, Firestore and DynamoDB use a capitalized entity tag.
func (d *Dialect) CollectionName(key string) string {
	return d.collectionName(key)
}

// RefField derives the synthesized foreign-key field name for an extracted
// value.
func (d *Dialect) RefField(key string) string {
	return d.refField(key)
}

// NewID draws a fresh id in this backend's native format.
func (d *Dialect) NewID(src idgen.Source) string {
	return d.newID(src)
}

// Serialize renders a value as backend source-literal text. indent is the
// current indentation depth in spaces. Output is deterministic: field order
// follows the input's own insertion order.
func (d *Dialect) Serialize(v document.Value, indent int) (string, error) {
	switch val := v.(type) {
	case nil:
		return d.nullLit, nil
	case bool:
		if val {
			return "true", nil
		}
		return "false", nil
	case json.Number:
		return val.String(), nil
	case string:
		return quote(val), nil
	case document.Date:
		return d.date(isoTime(val)), nil
	case document.ID:
		return d.id(string(val)), nil
	case document.Array:
		return d.serializeArray(val, indent)
	case *document.Object:
		return d.serializeObject(val, indent)
	default:
		return "", fmt.Errorf("%w: %T", ErrSerialization, v)
	}
}

func (d *Dialect) serializeObject(obj *document.Object, indent int) (string, error) {
	if obj.Len() == 0 {
		return "{}", nil
	}
	var b strings.Builder
	b.WriteString("{\n")
	inner := indent + 2
	fields := obj.Fields()
	for i, f := range fields {
		val, err := d.Serialize(f.Value, inner)
		if err != nil {
			return "", err
		}
		b.WriteString(pad(inner))
		b.WriteString(quote(f.Key))
		b.WriteString(": ")
		b.WriteString(val)
		if i < len(fields)-1 {
			b.WriteString(",")
		}
		b.WriteString("\n")
	}
	b.WriteString(pad(indent))
	b.WriteString("}")
	return b.String(), nil
}

func (d *Dialect) serializeArray(arr document.Array, indent int) (string, error) {
	if len(arr) == 0 {
		return "[]", nil
	}
	var b strings.Builder
	b.WriteString("[\n")
	inner := indent + 2
	for i, e := range arr {
		val, err := d.Serialize(e, inner)
		if err != nil {
			return "", err
		}
		b.WriteString(pad(inner))
		b.WriteString(val)
		if i < len(arr)-1 {
			b.WriteString(",")
		}
		b.WriteString("\n")
	}
	b.WriteString(pad(indent))
	b.WriteString("]")
	return b.String(), nil
}

// quote renders a double-quoted string with internal double quotes escaped.
func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `\"`) + `"`
}

func pad(n int) string {
	return strings.Repeat(" ", n)
}

func isoTime(dt document.Date) string {
	return timeOf(dt).UTC().Format("2006-01-02T15:04:05.000Z")
}

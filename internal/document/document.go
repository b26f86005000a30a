// Package document defines the JSON value model used throughout the
// generation pipeline. Objects preserve key insertion order, which keeps
// generated code byte-identical across runs for the same input.
package document

import (
	"encoding/json"
	"errors"
	"time"
)

// ErrInvalidInput is returned when the root of the input is not a JSON
// object or array. Scalars cannot be shaped into documents.
var ErrInvalidInput = errors.New("input root must be a JSON object or array")

// Value is one of: nil, bool, json.Number, string, Date, ID, Array, *Object.
type Value interface{}

// Date is a timestamp value injected by the generator. Dialects render it
// with their date-constructor literal rather than as a bare string.
type Date time.Time

// ID is a synthesized primary-key value. Dialects that have a native id
// wrapper (ObjectId) render it accordingly; others quote it.
type ID string

// Array is an ordered sequence of values.
type Array []Value

// Field is a single key/value pair in an Object.
type Field struct {
	Key   string
	Value Value
}

// Object is a JSON object that preserves field insertion order.
type Object struct {
	fields []Field
}

// NewObject returns an empty object.
func NewObject() *Object {
	return &Object{}
}

// Len returns the number of fields.
func (o *Object) Len() int {
	return len(o.fields)
}

// Fields returns the fields in insertion order. The slice is shared; callers
// must not modify it.
func (o *Object) Fields() []Field {
	return o.fields
}

// Keys returns the field keys in insertion order.
func (o *Object) Keys() []string {
	keys := make([]string, len(o.fields))
	for i, f := range o.fields {
		keys[i] = f.Key
	}
	return keys
}

// Get returns the value for key and whether it exists.
func (o *Object) Get(key string) (Value, bool) {
	for _, f := range o.fields {
		if f.Key == key {
			return f.Value, true
		}
	}
	return nil, false
}

// Has reports whether key exists.
func (o *Object) Has(key string) bool {
	_, ok := o.Get(key)
	return ok
}

// Set replaces the value for key if present, otherwise appends a new field.
func (o *Object) Set(key string, v Value) {
	for i, f := range o.fields {
		if f.Key == key {
			o.fields[i].Value = v
			return
		}
	}
	o.fields = append(o.fields, Field{Key: key, Value: v})
}

// Prepend inserts the field at the front, replacing an existing field with
// the same key. Used for id fields, which lead the document by convention.
func (o *Object) Prepend(key string, v Value) {
	o.Delete(key)
	o.fields = append([]Field{{Key: key, Value: v}}, o.fields...)
}

// Replace swaps the field with oldKey for a new key/value pair at the same
// position. No-op when oldKey is absent.
func (o *Object) Replace(oldKey, newKey string, v Value) {
	for i, f := range o.fields {
		if f.Key == oldKey {
			o.fields[i] = Field{Key: newKey, Value: v}
			return
		}
	}
}

// Delete removes the field with the given key, if present.
func (o *Object) Delete(key string) {
	for i, f := range o.fields {
		if f.Key == key {
			o.fields = append(o.fields[:i], o.fields[i+1:]...)
			return
		}
	}
}

// Clone returns a deep copy of the value. The generator never mutates
// caller-held input; every transform works on a clone.
func Clone(v Value) Value {
	switch val := v.(type) {
	case *Object:
		out := &Object{fields: make([]Field, len(val.fields))}
		for i, f := range val.fields {
			out.fields[i] = Field{Key: f.Key, Value: Clone(f.Value)}
		}
		return out
	case Array:
		out := make(Array, len(val))
		for i, e := range val {
			out[i] = Clone(e)
		}
		return out
	default:
		// nil, bool, string, json.Number, Date, ID are immutable.
		return v
	}
}

// ValidateRoot checks that v can be shaped into NoSQL documents.
func ValidateRoot(v Value) error {
	switch v.(type) {
	case *Object, Array:
		return nil
	default:
		return ErrInvalidInput
	}
}

// FirstKey returns the first field key of a root object, or "" when the
// root is not an object or has no fields. Used for default naming.
func FirstKey(v Value) string {
	if obj, ok := v.(*Object); ok && obj.Len() > 0 {
		return obj.fields[0].Key
	}
	return ""
}

// Number is a convenience constructor for numeric literal values.
func Number(lit string) json.Number {
	return json.Number(lit)
}

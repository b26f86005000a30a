// Package target applies suggested indexes to a live MongoDB. Generation
// itself never touches a database; this is the one opt-in surface
// (`indexes --apply`) that does.
package target

import "context"

// Operator defines the operations performed on the live target.
type Operator interface {
	CreateIndex(ctx context.Context, collection string, index IndexDefinition) error
	CreateIndexes(ctx context.Context, indexes []CollectionIndex) error
	ListIndexes(ctx context.Context, collection string) ([]string, error)
	Close(ctx context.Context) error
}

// IndexDefinition describes a single index.
type IndexDefinition struct {
	Keys   []IndexKey `yaml:"keys"`
	Name   string     `yaml:"name"`
	Unique bool       `yaml:"unique,omitempty"`
}

// IndexKey is a single field in a compound index.
type IndexKey struct {
	Field string `yaml:"field"`
	Order int    `yaml:"order"` // 1 or -1
}

// CollectionIndex pairs a collection name with an index definition.
type CollectionIndex struct {
	Collection string          `yaml:"collection"`
	Index      IndexDefinition `yaml:"index"`
}

package emit

import (
	"fmt"
	"strings"

	"github.com/docuforge/docuforge/internal/advisor"
)

// emitMongo produces a mongosh script: one insertMany (or insertOne) call
// per collection.
func (g *Generator) emitMongo(units []insertUnit) (string, error) {
	data := scriptData{
		Header: fmt.Sprintf("// MongoDB insert script\n// Generated by docuforge\n// Target collection: %s\n", units[0].Name),
	}

	for _, u := range units {
		block, err := g.mongoInsertBlock(u)
		if err != nil {
			return "", err
		}
		data.Blocks = append(data.Blocks, block)
	}

	return renderScript(data)
}

func (g *Generator) mongoInsertBlock(u insertUnit) (string, error) {
	if len(u.Docs) == 0 {
		return fmt.Sprintf("db.%s.insertMany([]);", u.Name), nil
	}

	if len(u.Docs) == 1 {
		doc, err := g.Dialect.Serialize(u.Docs[0], 0)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("db.%s.insertOne(%s);", u.Name, doc), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "db.%s.insertMany([\n", u.Name)
	for i, doc := range u.Docs {
		s, err := g.Dialect.Serialize(doc, 2)
		if err != nil {
			return "", err
		}
		b.WriteString("  " + s)
		if i < len(u.Docs)-1 {
			b.WriteString(",")
		}
		b.WriteString("\n")
	}
	b.WriteString("]);")
	return b.String(), nil
}

// renderMongoIndexes emits createIndex shell commands for each candidate
// plus a compound index over the first two.
func renderMongoIndexes(name string, s advisor.Suggestion) string {
	var b strings.Builder
	b.WriteString("\n// Suggested indexes\n")
	if s.Empty() {
		b.WriteString("// No index candidates found.\n")
		return b.String()
	}
	for _, f := range s.Fields {
		fmt.Fprintf(&b, "db.%s.createIndex({ %q: 1 });\n", name, f)
	}
	if len(s.Compound) == 2 {
		fmt.Fprintf(&b, "db.%s.createIndex({ %q: 1, %q: 1 });\n", name, s.Compound[0], s.Compound[1])
	}
	return b.String()
}

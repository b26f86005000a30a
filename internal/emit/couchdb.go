package emit

import (
	"fmt"
	"strings"

	"github.com/docuforge/docuforge/internal/advisor"
)

const couchHeader = `// CouchDB insert script
// Generated by docuforge

const nano = require("nano")("http://localhost:5984");

async function importData() {`

const couchFooter = `  console.log("Import complete.");
}

importData().catch(console.error);`

// emitCouch produces a Node script using nano: one bulk insert per
// database. Reference-extracted collections each get their own database.
func (g *Generator) emitCouch(units []insertUnit) (string, error) {
	data := scriptData{Header: couchHeader + "\n", Footer: couchFooter}

	for _, u := range units {
		var b strings.Builder
		fmt.Fprintf(&b, "  const %s = nano.db.use(%q);\n", dbVar(u.Name), u.Name)
		fmt.Fprintf(&b, "  await %s.bulk({\n    docs: [\n", dbVar(u.Name))
		for i, doc := range u.Docs {
			s, err := g.Dialect.Serialize(doc, 6)
			if err != nil {
				return "", err
			}
			b.WriteString("      " + s)
			if i < len(u.Docs)-1 {
				b.WriteString(",")
			}
			b.WriteString("\n")
		}
		b.WriteString("    ]\n  });")
		data.Blocks = append(data.Blocks, b.String())
	}

	return renderScript(data)
}

// dbVar derives a JS identifier from a database name.
func dbVar(name string) string {
	v := strings.NewReplacer("-", "_", ".", "_", " ", "_").Replace(name)
	return v + "_db"
}

// renderCouchIndexes emits mango createIndex calls.
func renderCouchIndexes(s advisor.Suggestion) string {
	var b strings.Builder
	b.WriteString("\n// Suggested indexes\n")
	if s.Empty() {
		b.WriteString("// No index candidates found.\n")
		return b.String()
	}
	for _, f := range s.Fields {
		fmt.Fprintf(&b, "// await db.createIndex({ index: { fields: [%q] }, name: %q });\n", f, f+"-index")
	}
	if len(s.Compound) == 2 {
		fmt.Fprintf(&b, "// await db.createIndex({ index: { fields: [%q, %q] }, name: %q });\n",
			s.Compound[0], s.Compound[1], s.Compound[0]+"-"+s.Compound[1]+"-index")
	}
	return b.String()
}

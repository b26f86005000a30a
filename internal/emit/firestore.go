package emit

import (
	"fmt"
	"strings"

	"github.com/docuforge/docuforge/internal/advisor"
)

const firestoreHeader = `// Firestore import script
// Generated by docuforge

const admin = require("firebase-admin");

admin.initializeApp({
  credential: admin.credential.applicationDefault()
});

const db = admin.firestore();

async function importData() {`

const firestoreFooter = `  console.log("Import complete.");
}

importData().catch(console.error);`

// emitFirestore produces a Node script using the firebase-admin SDK: one
// add() call per document inside a single async function.
func (g *Generator) emitFirestore(units []insertUnit) (string, error) {
	data := scriptData{Header: firestoreHeader + "\n", Footer: firestoreFooter}

	for _, u := range units {
		var b strings.Builder
		fmt.Fprintf(&b, "  // %s\n", u.Name)
		if len(u.Docs) == 0 {
			fmt.Fprintf(&b, "  // (no documents)")
			data.Blocks = append(data.Blocks, b.String())
			continue
		}
		for i, doc := range u.Docs {
			s, err := g.Dialect.Serialize(doc, 2)
			if err != nil {
				return "", err
			}
			fmt.Fprintf(&b, "  await db.collection(%q).add(%s);", u.Name, s)
			if i < len(u.Docs)-1 {
				b.WriteString("\n")
			}
		}
		data.Blocks = append(data.Blocks, b.String())
	}

	return renderScript(data)
}

// renderFirestoreIndexes emits a firestore.indexes.json snippet. Single
// field indexes are automatic in Firestore, so only the composite pair gets
// a definition; candidates are still listed for reference.
func renderFirestoreIndexes(name string, s advisor.Suggestion) string {
	var b strings.Builder
	b.WriteString("\n// Suggested indexes\n")
	if s.Empty() {
		b.WriteString("// No index candidates found.\n")
		return b.String()
	}
	fmt.Fprintf(&b, "// Candidate fields: %s\n", strings.Join(s.Fields, ", "))
	b.WriteString("// Single-field indexes are created automatically by Firestore.\n")
	if len(s.Compound) == 2 {
		b.WriteString("// Composite index (add to firestore.indexes.json):\n")
		b.WriteString("// {\n")
		b.WriteString("//   \"indexes\": [\n")
		b.WriteString("//     {\n")
		fmt.Fprintf(&b, "//       \"collectionGroup\": %q,\n", name)
		b.WriteString("//       \"queryScope\": \"COLLECTION\",\n")
		b.WriteString("//       \"fields\": [\n")
		fmt.Fprintf(&b, "//         { \"fieldPath\": %q, \"order\": \"ASCENDING\" },\n", s.Compound[0])
		fmt.Fprintf(&b, "//         { \"fieldPath\": %q, \"order\": \"ASCENDING\" }\n", s.Compound[1])
		b.WriteString("//       ]\n")
		b.WriteString("//     }\n")
		b.WriteString("//   ]\n")
		b.WriteString("// }\n")
	}
	return b.String()
}

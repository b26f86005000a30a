package emit

import (
	"fmt"
	"strings"

	"github.com/docuforge/docuforge/internal/advisor"
)

// dynamoBatchLimit is DynamoDB's BatchWriteItem ceiling. Above it the
// emitter falls back to one put call per item.
const dynamoBatchLimit = 25

const dynamoHeader = `// DynamoDB insert script
// Generated by docuforge

const AWS = require("aws-sdk");

const docClient = new AWS.DynamoDB.DocumentClient({ region: "us-east-1" });`

// emitDynamo produces a Node script using the AWS SDK DocumentClient: a
// single batchWrite for up to 25 items per table, per-item put calls beyond
// that.
func (g *Generator) emitDynamo(units []insertUnit) (string, error) {
	data := scriptData{Header: dynamoHeader + "\n"}

	for _, u := range units {
		var block string
		var err error
		if len(u.Docs) > dynamoBatchLimit {
			block, err = g.dynamoPutBlock(u)
		} else {
			block, err = g.dynamoBatchBlock(u)
		}
		if err != nil {
			return "", err
		}
		data.Blocks = append(data.Blocks, block)
	}

	return renderScript(data)
}

func (g *Generator) dynamoBatchBlock(u insertUnit) (string, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "// Table: %s (%d items, batch write)\n", u.Name, len(u.Docs))
	b.WriteString("const params = {\n")
	b.WriteString("  RequestItems: {\n")
	fmt.Fprintf(&b, "    %q: [\n", u.Name)
	for i, doc := range u.Docs {
		s, err := g.Dialect.Serialize(doc, 10)
		if err != nil {
			return "", err
		}
		b.WriteString("      {\n")
		b.WriteString("        PutRequest: {\n")
		fmt.Fprintf(&b, "          Item: %s\n", s)
		b.WriteString("        }\n")
		b.WriteString("      }")
		if i < len(u.Docs)-1 {
			b.WriteString(",")
		}
		b.WriteString("\n")
	}
	b.WriteString("    ]\n")
	b.WriteString("  }\n")
	b.WriteString("};\n\n")
	b.WriteString("docClient.batchWrite(params, (err) => {\n")
	fmt.Fprintf(&b, "  if (err) console.error(\"Batch write failed:\", err);\n")
	fmt.Fprintf(&b, "  else console.log(\"Wrote %d items to %s\");\n", len(u.Docs), u.Name)
	b.WriteString("});")
	return b.String(), nil
}

func (g *Generator) dynamoPutBlock(u insertUnit) (string, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "// Table: %s (%d items, exceeds the %d-item batch limit; per-item puts)\n",
		u.Name, len(u.Docs), dynamoBatchLimit)
	for i, doc := range u.Docs {
		s, err := g.Dialect.Serialize(doc, 2)
		if err != nil {
			return "", err
		}
		fmt.Fprintf(&b, "docClient.put({\n  TableName: %q,\n  Item: %s\n}, (err) => {\n", u.Name, s)
		b.WriteString("  if (err) console.error(\"Put failed:\", err);\n")
		b.WriteString("});")
		if i < len(u.Docs)-1 {
			b.WriteString("\n\n")
		}
	}
	return b.String(), nil
}

// renderDynamoIndexes emits aws CLI snippets creating one global secondary
// index per candidate field.
func renderDynamoIndexes(name string, s advisor.Suggestion) string {
	var b strings.Builder
	b.WriteString("\n// Suggested indexes\n")
	if s.Empty() {
		b.WriteString("// No index candidates found.\n")
		return b.String()
	}
	for _, f := range s.Fields {
		fmt.Fprintf(&b, "// aws dynamodb update-table --table-name %s \\\n", name)
		fmt.Fprintf(&b, "//   --attribute-definitions AttributeName=%s,AttributeType=S \\\n", f)
		fmt.Fprintf(&b, "//   --global-secondary-index-updates '[{\"Create\": {\"IndexName\": \"%s-index\", \"KeySchema\": [{\"AttributeName\": \"%s\", \"KeyType\": \"HASH\"}], \"Projection\": {\"ProjectionType\": \"ALL\"}}}]'\n", f, f)
	}
	if len(s.Compound) == 2 {
		fmt.Fprintf(&b, "// Compound access pattern: consider a GSI with %s as the partition key and %s as the sort key.\n",
			s.Compound[0], s.Compound[1])
	}
	return b.String()
}

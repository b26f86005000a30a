package emit

import (
	"bytes"
	"fmt"
	"text/template"
)

// scriptData is the common assembly shape: a header followed by ordered,
// pre-rendered code blocks.
type scriptData struct {
	Header string
	Blocks []string
	Footer string
}

var scriptTemplate = template.Must(template.New("script").Parse(
	`{{ .Header }}{{ range .Blocks }}
{{ . }}
{{ end }}{{ if .Footer }}
{{ .Footer }}
{{ end }}`))

func renderScript(data scriptData) (string, error) {
	var buf bytes.Buffer
	if err := scriptTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("executing script template: %w", err)
	}
	return buf.String(), nil
}

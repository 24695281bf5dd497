package plugin

import (
	"bytes"
	"embed"
	"fmt"
	"text/template"
)

//go:embed templates/*.tmpl
var templatesFS embed.FS

// TemplateEngine renders the editor markup shared by all node kinds. It uses
// [[ ]] delimiters so the editor's own {{ }} bindings pass through untouched.
type TemplateEngine struct {
	templates *template.Template
}

// TemplateData selects the kind-specific parts of the layout.
type TemplateData struct {
	Kind       string
	HasOutputs bool
}

func NewTemplateEngine() (*TemplateEngine, error) {
	tmpl, err := template.New("nodes").Delims("[[", "]]").ParseFS(templatesFS, "templates/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	return &TemplateEngine{
		templates: tmpl,
	}, nil
}

func MustTemplateEngine() *TemplateEngine {
	e, err := NewTemplateEngine()
	if err != nil {
		panic(err)
	}
	return e
}

// Render executes the node layout for one kind.
func (e *TemplateEngine) Render(data TemplateData) (string, error) {
	var buf bytes.Buffer
	if err := e.templates.ExecuteTemplate(&buf, "node", data); err != nil {
		return "", fmt.Errorf("failed to execute node template for %s: %w", data.Kind, err)
	}
	return buf.String(), nil
}

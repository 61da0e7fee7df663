package render

import (
	"bytes"
	"embed"
	"fmt"
	"text/template"

	"github.com/FocuswithJustin/CedarDoc/core/ir"
)

//go:embed templates/*.adoc.tmpl
var templatesFS embed.FS

// Engine renders one named template with the given bindings.
// TemplateEngine is the default; tests substitute simpler engines.
type Engine interface {
	Render(template string, bindings map[string]any) (string, error)
}

// TemplateEngine renders the embedded AsciiDoc templates with
// text/template.
type TemplateEngine struct {
	set *template.Template
}

// NewEngine parses the embedded template set.
func NewEngine() (*TemplateEngine, error) {
	set, err := template.New("pages").Funcs(funcMap()).ParseFS(templatesFS, "templates/*.adoc.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parsing page templates: %w", err)
	}
	return &TemplateEngine{set: set}, nil
}

// Render executes the named template.
func (e *TemplateEngine) Render(name string, bindings map[string]any) (string, error) {
	var buf bytes.Buffer
	if err := e.set.ExecuteTemplate(&buf, name, bindings); err != nil {
		return "", fmt.Errorf("rendering %s: %w", name, err)
	}
	return buf.String(), nil
}

func funcMap() template.FuncMap {
	return template.FuncMap{
		"qualified":   ir.FullyQualifiedName,
		"page":        ir.OutputFile,
		"kindOf":      ir.KindOf,
		"blocks":      Blocks,
		"phrase":      PhraseText,
		"declaration": Declaration,
		"add":         func(a, b int) int { return a + b },
		"restricted":  restrictedMembers,
	}
}

// restrictedMembers returns the entity's protected and private members
// in declaration order.
func restrictedMembers(e ir.Entity) []ir.Entity {
	owner, ok := e.(ir.HasMembers)
	if !ok {
		return nil
	}
	var result []ir.Entity
	for _, m := range owner.Members().Entities() {
		if m.EntityCore().Access() != ir.AccessPublic {
			result = append(result, m)
		}
	}
	return result
}

package render

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/FocuswithJustin/CedarDoc/core/ir"
	"github.com/FocuswithJustin/CedarDoc/internal/config"
	"github.com/FocuswithJustin/CedarDoc/internal/logging"
)

// QuickrefFile is the name of the reference overview page.
const QuickrefFile = "reference.adoc"

// Page is one planned output document.
type Page struct {
	// Path is the output location relative to the output directory,
	// with forward slashes.
	Path     string
	Template string
	Bindings map[string]any
}

// Planner decides which entities get a page. Classes and overload sets
// are restricted to public access unless include_private is set; type
// aliases, enums, and namespace constants always get pages. The plan
// closes with a quickref page indexing the namespace-level API.
type Planner struct {
	Options *config.Options
}

func (p *Planner) include(access ir.Access) bool {
	return access == ir.AccessPublic || p.Options.IncludePrivate()
}

// Pages builds the page plan for one resolved symbol table. Pages come
// out in registration order within each category, so the plan is
// deterministic for identical input.
func (p *Planner) Pages(idx *ir.Index) []Page {
	cfg := p.Options.Values()

	var classes, enums, aliases, constants []ir.Entity
	var sets []*ir.OverloadSet
	seen := make(map[*ir.OverloadSet]bool)

	for _, e := range idx.Entities() {
		switch v := e.(type) {
		case *ir.Class:
			if p.include(v.Access()) {
				classes = append(classes, v)
			}
		case *ir.Enum:
			enums = append(enums, v)
		case *ir.TypeAlias:
			aliases = append(aliases, v)
		case *ir.Namespace:
			for _, m := range v.Members().Entities() {
				if c, ok := m.(*ir.Variable); ok {
					constants = append(constants, c)
				}
			}
		}

		// Overload sets live in member tables, not the symbol table.
		// An entity can surface the same set through its scope and
		// its groups, so sets are deduplicated.
		if owner, ok := e.(ir.HasMembers); ok {
			for _, m := range owner.Members().Entities() {
				set, ok := m.(*ir.OverloadSet)
				if !ok || seen[set] || !p.include(set.Access()) {
					continue
				}
				seen[set] = true
				sets = append(sets, set)
			}
		}
	}

	var pages []Page
	entityPage := func(tmpl string, e ir.Entity) {
		pages = append(pages, Page{
			Path:     ir.OutputFile(e),
			Template: tmpl,
			Bindings: map[string]any{"Entity": e, "Config": cfg},
		})
	}
	for _, e := range classes {
		entityPage("class.adoc.tmpl", e)
	}
	for _, set := range sets {
		entityPage("overload-set.adoc.tmpl", set)
	}
	for _, e := range aliases {
		entityPage("type-alias.adoc.tmpl", e)
	}
	for _, e := range enums {
		entityPage("enum.adoc.tmpl", e)
	}
	for _, e := range constants {
		entityPage("variable.adoc.tmpl", e)
	}

	pages = append(pages, Page{
		Path:     QuickrefFile,
		Template: "quickref.adoc.tmpl",
		Bindings: map[string]any{
			"Classes":       classes,
			"Enums":         enums,
			"FreeFunctions": namespaceScoped(setEntities(sets)),
			"TypeAliases":   namespaceScoped(aliases),
			"Constants":     constants,
			"Config":        cfg,
		},
	})
	return pages
}

func setEntities(sets []*ir.OverloadSet) []ir.Entity {
	result := make([]ir.Entity, len(sets))
	for i, set := range sets {
		result[i] = set
	}
	return result
}

func namespaceScoped(entities []ir.Entity) []ir.Entity {
	var result []ir.Entity
	for _, e := range entities {
		if _, ok := e.EntityCore().Scope().(*ir.Namespace); ok {
			result = append(result, e)
		}
	}
	return result
}

// WritePages renders each page and writes it under outDir, creating
// directories as needed.
func WritePages(outDir string, pages []Page, eng Engine) error {
	for _, pg := range pages {
		text, err := eng.Render(pg.Template, pg.Bindings)
		if err != nil {
			return err
		}
		path := filepath.Join(outDir, filepath.FromSlash(pg.Path))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
		if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
			return fmt.Errorf("writing page %s: %w", pg.Path, err)
		}
		logging.ArtifactWritten("page", path, int64(len(text)))
	}
	return nil
}

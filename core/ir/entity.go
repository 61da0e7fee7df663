package ir

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/FocuswithJustin/CedarDoc/core/doxml"
)

// Entity is implemented by every node of the symbol graph. The concrete
// variants share a single *Core; capability interfaces (HasMembers,
// HasTemplateParameters, Type) expose what each variant additionally
// declares.
type Entity interface {
	// EntityCore returns the shared identity/documentation record.
	EntityCore() *Core

	// Resolve replaces the entity's raw XML fragments with parsed
	// Block/Phrase trees, looking references up in the given table.
	Resolve(idx *Index) error
}

// HasMembers is implemented by entities that own a member table
// (namespaces, classes, groups, enums).
type HasMembers interface {
	Entity
	Members() *MemberTable
}

// HasTemplateParameters is implemented by entities that may carry a
// template parameter list.
type HasTemplateParameters interface {
	Entity
	TemplateParameterList() []*Parameter
}

// Type is implemented by entities that denote a C++ type.
type Type interface {
	Entity
	// Declarator returns the introducing keyword ("class", "enum", ...).
	Declarator() string
}

// Location is a source position, possibly partial.
type Location struct {
	File   string
	Line   int
	Column int
}

func newLocation(elem *doxml.Element) (*Location, error) {
	loc := &Location{File: elem.Attr("file")}
	var err error
	if s := elem.Attr("line"); s != "" {
		if loc.Line, err = strconv.Atoi(s); err != nil {
			return nil, fmt.Errorf("bad location line %q: %w", s, err)
		}
	}
	if s := elem.Attr("column"); s != "" {
		if loc.Column, err = strconv.Atoi(s); err != nil {
			return nil, fmt.Errorf("bad location column %q: %w", s, err)
		}
	}
	return loc, nil
}

// Core is the shared part of every entity: identity, naming, scope
// back-reference, access level, source location, group memberships, and
// the documentation fragments in their raw or resolved state.
type Core struct {
	id     string
	name   string
	scope  Entity
	access Access
	groups []Entity
	loc    *Location

	rawBrief *doxml.Element
	rawDesc  *doxml.Element

	// Brief and Description are populated by Resolve.
	Brief       []Block
	Description []Block

	resolved bool
}

// EntityCore returns the core itself, satisfying half of Entity for every
// variant that embeds Core.
func (c *Core) EntityCore() *Core { return c }

// ID returns the entity's opaque, globally unique identifier.
func (c *Core) ID() string { return c.id }

// Name returns the declared (normalized, for scopes) name.
func (c *Core) Name() string { return c.name }

// Scope returns the owning parent entity, or nil at top level.
func (c *Core) Scope() Entity { return c.scope }

// Access returns the entity's access level.
func (c *Core) Access() Access { return c.access }

// Groups returns the groups this entity belongs to.
func (c *Core) Groups() []Entity { return c.groups }

// Resolved reports whether Resolve has completed for this entity.
func (c *Core) Resolved() bool { return c.resolved }

// Location returns the entity's own source location, or the enclosing
// scope's when the entity has none.
func (c *Core) Location() *Location {
	if c.loc != nil {
		return c.loc
	}
	if c.scope != nil {
		return c.scope.EntityCore().Location()
	}
	return nil
}

// init populates the core from a compound or member element and registers
// the entity in the table. The name is taken from the nametag child's full
// text. An empty or missing id is a fatal input error.
func (c *Core) init(elem *doxml.Element, nametag string, scope Entity, idx *Index, self Entity) error {
	c.id = elem.Attr("id")
	if c.id == "" {
		return fmt.Errorf("<%s> element has an empty id", elem.Name())
	}
	c.scope = scope
	c.access = AccessPublic

	nameElem := elem.Find(nametag)
	if nameElem == nil {
		return fmt.Errorf("entity %s: missing <%s> child", c.id, nametag)
	}
	c.name = nameElem.InnerText()

	if loc := elem.Find("location"); loc != nil {
		parsed, err := newLocation(loc)
		if err != nil {
			return fmt.Errorf("entity %s: %w", c.id, err)
		}
		c.loc = parsed
	}

	c.rawBrief = elem.Find("briefdescription")
	c.rawDesc = elem.Find("detaileddescription")

	return idx.Register(self)
}

// rawBriefText returns the plain text of the unresolved brief fragment.
// The overload organizer keys its clustering on this during the build pass.
func (c *Core) rawBriefText() string {
	if c.rawBrief == nil {
		return ""
	}
	return c.rawBrief.InnerText()
}

// resolveDescriptions parses the raw brief and detailed fragments into
// block trees and drops the raw state. Resolving twice is an error.
func (c *Core) resolveDescriptions(idx *Index) error {
	if c.resolved {
		return fmt.Errorf("entity %s: resolved twice", c.id)
	}
	brief, err := MakeBlocks(c.rawBrief, idx)
	if err != nil {
		return fmt.Errorf("entity %s: brief: %w", c.id, err)
	}
	desc, err := MakeBlocks(c.rawDesc, idx)
	if err != nil {
		return fmt.Errorf("entity %s: description: %w", c.id, err)
	}
	c.Brief = brief
	c.Description = desc
	c.rawBrief = nil
	c.rawDesc = nil
	c.resolved = true
	return nil
}

// Path returns the chain of entities from the outermost scope down to e.
func Path(e Entity) []Entity {
	c := e.EntityCore()
	var result []Entity
	if c.scope != nil {
		result = Path(c.scope)
	}
	return append(result, e)
}

// FullyQualifiedName joins the names along the entity's path with "::".
func FullyQualifiedName(e Entity) string {
	parts := Path(e)
	names := make([]string, len(parts))
	for i, p := range parts {
		names[i] = p.EntityCore().Name()
	}
	return strings.Join(names, "::")
}

// KindOf names the entity's variant for artifact consumers. Classes
// report their declarator so structs and unions keep their keyword.
func KindOf(e Entity) string {
	switch v := e.(type) {
	case *Namespace:
		return "namespace"
	case *Class:
		return v.Declarator()
	case *Group:
		return "group"
	case *Enum:
		return "enum"
	case *Enumerator:
		return "enumerator"
	case *TypeAlias:
		return "typealias"
	case *Function:
		return "function"
	case *Variable:
		return "variable"
	default:
		return "entity"
	}
}

// Index is the shared symbol table for one build, keyed by entity id.
// Iteration order is registration order, which keeps every pass and the
// IR boundary deterministic.
type Index struct {
	entities map[string]Entity
	order    []string
}

// NewIndex returns an empty symbol table.
func NewIndex() *Index {
	return &Index{entities: make(map[string]Entity)}
}

// Register adds an entity under its id. Registering an empty id or the
// same id twice is a fatal consistency error.
func (t *Index) Register(e Entity) error {
	id := e.EntityCore().ID()
	if id == "" {
		return fmt.Errorf("registering entity with empty id")
	}
	if _, dup := t.entities[id]; dup {
		return fmt.Errorf("entity id %s registered twice", id)
	}
	t.entities[id] = e
	t.order = append(t.order, id)
	return nil
}

// Get returns the entity registered under id.
func (t *Index) Get(id string) (Entity, bool) {
	e, ok := t.entities[id]
	return e, ok
}

// Len returns the number of registered entities.
func (t *Index) Len() int { return len(t.order) }

// Entities returns all registered entities in registration order.
func (t *Index) Entities() []Entity {
	result := make([]Entity, len(t.order))
	for i, id := range t.order {
		result[i] = t.entities[id]
	}
	return result
}

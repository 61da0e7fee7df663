package ir

import (
	"fmt"
	"strings"

	"github.com/FocuswithJustin/CedarDoc/core/doxml"
)

// Wirer is implemented by compounds that take part in the scope wiring
// pass.
type Wirer interface {
	Entity
	Wire(idx *Index) error
}

// nestedRef records one inner compound declared as (access, refid) until
// the scope wiring pass attaches the real entity.
type nestedRef struct {
	access Access
	refid  string
}

// Compound is the shared part of entities that own members and declare
// nested compounds (namespaces, classes, groups).
type Compound struct {
	Core
	members *MemberTable
	nested  []nestedRef
	wired   bool
}

// Members returns the compound's member table.
func (c *Compound) Members() *MemberTable { return c.members }

// initCompound collects the inner-compound declarations. The member table
// is created empty; scope-qualified members are added by the caller and
// nested compounds by the wiring pass.
func (c *Compound) initCompound(elem *doxml.Element) {
	c.members = NewMemberTable()
	for _, child := range elem.Children() {
		switch child.Name() {
		case "innerclass", "innernamespace", "innergroup":
			access := Access(child.Attr("prot"))
			if access == "" {
				access = AccessPublic
			}
			c.nested = append(c.nested, nestedRef{access: access, refid: child.Attr("refid")})
		}
	}
}

// WireNested attaches each recorded inner compound. A lexical parent
// becomes the child's scope and fixes its access level; a group only
// records a membership, since an entity can belong to many groups but
// has exactly one owning scope. Either way the child lands in this
// compound's member table under its name. A refid missing from the
// index or a member-name collision aborts the build.
func (c *Compound) WireNested(self Entity, idx *Index) error {
	if c.wired {
		return nil
	}
	_, isGroup := self.(*Group)
	for _, ref := range c.nested {
		entity, ok := idx.Get(ref.refid)
		if !ok {
			return fmt.Errorf("compound %s: dangling inner reference %q", c.id, ref.refid)
		}
		ec := entity.EntityCore()
		if isGroup {
			ec.groups = append(ec.groups, self)
		} else {
			ec.scope = self
			ec.access = ref.access
		}
		if err := c.members.Insert(ec.Name(), entity); err != nil {
			return fmt.Errorf("compound %s: %w", c.id, err)
		}
	}
	c.nested = nil
	c.wired = true
	return nil
}

// PublicTypes returns the public type members in declaration order.
func (c *Compound) PublicTypes() []Type {
	var result []Type
	for _, m := range c.members.Entities() {
		t, ok := m.(Type)
		if ok && m.EntityCore().Access() == AccessPublic {
			result = append(result, t)
		}
	}
	return result
}

// PublicMemberFunctions returns the public non-static overload sets.
func (c *Compound) PublicMemberFunctions() []*OverloadSet {
	return c.publicOverloads(FuncNonStatic)
}

// PublicStaticFunctions returns the public static overload sets.
func (c *Compound) PublicStaticFunctions() []*OverloadSet {
	return c.publicOverloads(FuncStatic)
}

// Friends returns the friend overload sets.
func (c *Compound) Friends() []*OverloadSet {
	return c.publicOverloads(FuncFriend)
}

// PublicDataMembers returns the public variable members in declaration
// order.
func (c *Compound) PublicDataMembers() []*Variable {
	var result []*Variable
	for _, m := range c.members.Entities() {
		v, ok := m.(*Variable)
		if ok && v.Access() == AccessPublic {
			result = append(result, v)
		}
	}
	return result
}

func (c *Compound) publicOverloads(kind FunctionKind) []*OverloadSet {
	var result []*OverloadSet
	for _, m := range c.members.Entities() {
		set, ok := m.(*OverloadSet)
		if ok && set.Access() == AccessPublic && set.Kind() == kind {
			result = append(result, set)
		}
	}
	return result
}

// Namespace is a C++ namespace compound.
type Namespace struct {
	Compound
}

// NewNamespace builds a namespace from its compounddef element and
// registers it and all its declared members in the index.
func NewNamespace(elem *doxml.Element, idx *Index) (*Namespace, error) {
	ns := &Namespace{}
	if err := ns.init(elem, "compoundname", nil, idx, ns); err != nil {
		return nil, err
	}
	ns.name = normalizeScopeName(ns.name)
	ns.initCompound(elem)
	if err := parseSectionMembers(elem, ns, ns.members, idx); err != nil {
		return nil, err
	}
	return ns, nil
}

// Declarator returns "namespace".
func (ns *Namespace) Declarator() string { return "namespace" }

// Wire runs the scope wiring pass for the namespace.
func (ns *Namespace) Wire(idx *Index) error { return ns.WireNested(ns, idx) }

// Resolve resolves the namespace's documentation and marks every member
// function free. Free functions keep the overload-set key they were
// built under.
func (ns *Namespace) Resolve(idx *Index) error {
	if err := ns.WireNested(ns, idx); err != nil {
		return err
	}
	if err := ns.resolveDescriptions(idx); err != nil {
		return err
	}
	for _, m := range ns.members.Entities() {
		if set, ok := m.(*OverloadSet); ok {
			for _, fn := range set.Funcs {
				fn.isFree = true
			}
		}
	}
	return nil
}

// Generalization is one base-class edge of a class.
type Generalization struct {
	IsVirtual bool
	Access    Access
	// Base is an EntityRef phrase when the base resolved, otherwise the
	// plain text of the base specifier.
	Base Phrase
}

// Class is a C++ class, struct, or union compound.
type Class struct {
	Compound
	templatable
	kind     string
	rawBases []*doxml.Element

	// Bases is populated by Resolve.
	Bases []*Generalization
}

// NewClass builds a class-like compound ("class", "struct", or "union")
// from its compounddef element.
func NewClass(elem *doxml.Element, kind string, idx *Index) (*Class, error) {
	cl := &Class{kind: kind}
	if err := cl.init(elem, "compoundname", nil, idx, cl); err != nil {
		return nil, err
	}
	cl.name = normalizeScopeName(cl.name)
	cl.initCompound(elem)
	cl.initTemplatable(elem, cl.name)
	cl.rawBases = elem.FindAll("basecompoundref")
	if err := parseSectionMembers(elem, cl, cl.members, idx); err != nil {
		return nil, err
	}
	return cl, nil
}

// Declarator returns "class", "struct", or "union".
func (cl *Class) Declarator() string { return cl.kind }

// Wire runs the scope wiring pass for the class.
func (cl *Class) Wire(idx *Index) error { return cl.WireNested(cl, idx) }

// Resolve resolves documentation, template parameters, and base classes.
// A base specifier without an explicit refid falls back to qualified-name
// lookup from this class; an unresolvable base degrades to plain text.
func (cl *Class) Resolve(idx *Index) error {
	if err := cl.WireNested(cl, idx); err != nil {
		return err
	}
	if err := cl.resolveDescriptions(idx); err != nil {
		return err
	}
	if err := cl.resolveTemplateParams(cl, idx); err != nil {
		return err
	}
	for _, raw := range cl.rawBases {
		gen, err := newGeneralization(raw, cl, idx)
		if err != nil {
			return fmt.Errorf("class %s: %w", cl.id, err)
		}
		cl.Bases = append(cl.Bases, gen)
	}
	cl.rawBases = nil
	return nil
}

func newGeneralization(elem *doxml.Element, derived *Class, idx *Index) (*Generalization, error) {
	gen := &Generalization{
		IsVirtual: elem.Attr("virt") == "virtual",
		Access:    Access(elem.Attr("prot")),
	}
	if gen.Access == "" {
		return nil, fmt.Errorf("base specifier without access level")
	}

	refid := elem.Attr("refid")
	if refid == "" {
		if target := Lookup(derived, strings.TrimSpace(elem.InnerText())); target != nil {
			refid = target.EntityCore().ID()
		}
	}

	if refid != "" {
		ref, err := makeEntityRef(elem, idx, refid, false)
		if err != nil {
			return nil, err
		}
		gen.Base = Phrase{Parts: []Inline{ref}}
	} else {
		base, err := textWithRefs(elem, idx)
		if err != nil {
			return nil, err
		}
		gen.Base = base
	}
	return gen, nil
}

// Group is a topical grouping compound. Its name comes from the group
// title and its members are attached entirely by the wiring pass.
type Group struct {
	Compound
}

// NewGroup builds a group from its compounddef element.
func NewGroup(elem *doxml.Element, idx *Index) (*Group, error) {
	g := &Group{}
	if err := g.init(elem, "title", nil, idx, g); err != nil {
		return nil, err
	}
	g.initCompound(elem)
	return g, nil
}

// Wire runs the scope wiring pass for the group.
func (g *Group) Wire(idx *Index) error { return g.WireNested(g, idx) }

// Resolve resolves the group's documentation.
func (g *Group) Resolve(idx *Index) error {
	if err := g.WireNested(g, idx); err != nil {
		return err
	}
	return g.resolveDescriptions(idx)
}

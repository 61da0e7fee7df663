package ir

import (
	"fmt"
	"strings"

	"github.com/FocuswithJustin/CedarDoc/core/doxml"
)

// normalizeScopeName strips the leading qualification the input format
// repeats on every scope-qualified compound name, keeping only the final
// top-level segment. Template-argument content passes through verbatim:
// an explicit angle-bracket nesting counter suspends "::" handling, so
// "Foo<Bar::Baz>" is untouched while "ns::Foo" becomes "Foo". A name
// ending in a single dangling ":" retains it.
func normalizeScopeName(raw string) string {
	var name strings.Builder
	nesting := 0
	colon := false
	for _, c := range raw {
		if colon {
			colon = false
			if c == ':' {
				name.Reset()
				continue
			}
			name.WriteByte(':')
		}

		if nesting > 0 {
			switch c {
			case '<':
				nesting++
			case '>':
				nesting--
			}
			name.WriteRune(c)
		} else if c == ':' {
			colon = true
		} else {
			if c == '<' {
				nesting++
			}
			name.WriteRune(c)
		}
	}
	if colon {
		name.WriteByte(':')
	}
	return name.String()
}

// MemberKey identifies one member within a scope. Plain members key on
// the name alone; overload sets key on (name, access, kind), so a
// function and a non-function member of the same name can coexist.
type MemberKey struct {
	Name   string
	Access Access
	Kind   FunctionKind
}

// MemberTable is an insertion-ordered member mapping. The order keeps
// qualified-name lookup and the IR boundary deterministic.
type MemberTable struct {
	order   []MemberKey
	entries map[MemberKey]Entity
}

// NewMemberTable returns an empty member table.
func NewMemberTable() *MemberTable {
	return &MemberTable{entries: make(map[MemberKey]Entity)}
}

// Insert adds a plain (non-overloaded) member under its name. Two
// distinct members under the same name key indicate malformed input.
func (m *MemberTable) Insert(name string, e Entity) error {
	key := MemberKey{Name: name}
	if _, dup := m.entries[key]; dup {
		return fmt.Errorf("member name collision: %q", name)
	}
	m.order = append(m.order, key)
	m.entries[key] = e
	return nil
}

// Get returns the plain member registered under name.
func (m *MemberTable) Get(name string) (Entity, bool) {
	e, ok := m.entries[MemberKey{Name: name}]
	return e, ok
}

// overloads returns the overload set registered under key.
func (m *MemberTable) overloads(key MemberKey) (*OverloadSet, bool) {
	e, ok := m.entries[key]
	if !ok {
		return nil, false
	}
	set, ok := e.(*OverloadSet)
	return set, ok
}

// putOverloads registers an overload set under its composite key.
func (m *MemberTable) putOverloads(key MemberKey, set *OverloadSet) {
	if _, exists := m.entries[key]; !exists {
		m.order = append(m.order, key)
	}
	m.entries[key] = set
}

// Len returns the number of member entries.
func (m *MemberTable) Len() int { return len(m.order) }

// Entities returns all member entries in insertion order.
func (m *MemberTable) Entities() []Entity {
	result := make([]Entity, len(m.order))
	for i, key := range m.order {
		result[i] = m.entries[key]
	}
	return result
}

// FindByName returns the first member whose declared name matches,
// scanning in insertion order. A non-overload-set entity wins over an
// overload set at the same level, which makes the qualified-name lookup
// deterministic when a nested type and an overload set share a name.
func (m *MemberTable) FindByName(name string) Entity {
	var setMatch Entity
	for _, key := range m.order {
		e := m.entries[key]
		if e.EntityCore().Name() != name {
			continue
		}
		if _, isSet := e.(*OverloadSet); isSet {
			if setMatch == nil {
				setMatch = e
			}
			continue
		}
		return e
	}
	return setMatch
}

// parseSectionMembers walks the element's sectiondef blocks and builds one
// member entity per memberdef, inserting each into the member table. The
// member kind vocabulary is closed; an unrecognized kind is a fatal input
// error. Friend declarations whose type is literally "class" are forward
// declarations, not members, and are dropped.
func parseSectionMembers(elem *doxml.Element, owner Entity, members *MemberTable, idx *Index) error {
	for _, section := range elem.Children() {
		if section.Name() != "sectiondef" {
			continue
		}
		for _, memberDef := range section.Children() {
			if memberDef.Name() != "memberdef" {
				return fmt.Errorf("unexpected <%s> inside sectiondef of %s",
					memberDef.Name(), owner.EntityCore().ID())
			}

			kind := memberDef.Attr("kind")
			if kind == "friend" {
				typeElem := memberDef.Find("type")
				if typeElem != nil && typeElem.Text() == "class" {
					continue
				}
			}

			switch kind {
			case "function", "friend":
				if _, err := CreateOverload(memberDef, section, owner, members, idx); err != nil {
					return err
				}
			case "variable":
				v, err := NewVariable(memberDef, owner, idx)
				if err != nil {
					return err
				}
				if err := members.Insert(v.Name(), v); err != nil {
					return fmt.Errorf("in %s: %w", owner.EntityCore().ID(), err)
				}
			case "typedef":
				a, err := NewTypeAlias(memberDef, owner, idx)
				if err != nil {
					return err
				}
				if err := members.Insert(a.Name(), a); err != nil {
					return fmt.Errorf("in %s: %w", owner.EntityCore().ID(), err)
				}
			case "enum":
				e, err := NewEnum(memberDef, owner, members, idx)
				if err != nil {
					return err
				}
				if err := members.Insert(e.Name(), e); err != nil {
					return fmt.Errorf("in %s: %w", owner.EntityCore().ID(), err)
				}
			default:
				return fmt.Errorf("unrecognized member kind %q in %s",
					kind, owner.EntityCore().ID())
			}
		}
	}
	return nil
}

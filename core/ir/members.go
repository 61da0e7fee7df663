package ir

import (
	"fmt"
	"strings"

	"github.com/FocuswithJustin/CedarDoc/core/doxml"
)

// templatable carries an optional template parameter list.
type templatable struct {
	rawTemplateParams *doxml.Element

	// TemplateParameters is populated by Resolve.
	TemplateParameters []*Parameter
	IsSpecialization   bool
}

func (t *templatable) initTemplatable(elem *doxml.Element, name string) {
	t.rawTemplateParams = elem.Find("templateparamlist")
	t.IsSpecialization = strings.Index(name, "<") > 0 && strings.Index(name, ">") > 0
}

// TemplateParameterList returns the resolved template parameters.
func (t *templatable) TemplateParameterList() []*Parameter {
	return t.TemplateParameters
}

func (t *templatable) resolveTemplateParams(owner Entity, idx *Index) error {
	if t.rawTemplateParams != nil {
		for _, p := range t.rawTemplateParams.FindAll("param") {
			param, err := NewParameter(p, idx)
			if err != nil {
				return fmt.Errorf("entity %s: template parameter: %w",
					owner.EntityCore().ID(), err)
			}
			t.TemplateParameters = append(t.TemplateParameters, param)
		}
	}
	t.rawTemplateParams = nil
	return nil
}

// ValueFlags are the C++ declaration flags shared by variables and
// functions.
type ValueFlags struct {
	IsStatic    bool
	IsConstexpr bool
	IsVolatile  bool
	IsConst     bool
	IsInline    bool
}

func parseValueFlags(elem *doxml.Element) ValueFlags {
	return ValueFlags{
		IsStatic:    elem.Attr("static") == "yes",
		IsConstexpr: elem.Attr("constexpr") == "yes",
		IsVolatile:  elem.Attr("volatile") == "yes",
		IsConst:     elem.Attr("const") == "yes" || elem.Attr("mutable") == "no",
		IsInline:    elem.Attr("inline") == "yes",
	}
}

func memberAccess(elem *doxml.Element) Access {
	if prot := elem.Attr("prot"); prot != "" {
		return Access(prot)
	}
	return AccessPublic
}

// Parameter is one function or template parameter.
type Parameter struct {
	Type         Phrase
	DefaultValue Phrase
	Description  []Block
	Name         string
	Array        Phrase
}

// NewParameter builds a parameter from a param element. An array suffix
// trims the trailing "(&)" adjustment from the parameter's type text.
func NewParameter(elem *doxml.Element, idx *Index) (*Parameter, error) {
	p := &Parameter{}

	var err error
	if p.Type, err = textWithRefs(elem.Find("type"), idx); err != nil {
		return nil, err
	}
	if p.DefaultValue, err = textWithRefs(elem.Find("defval"), idx); err != nil {
		return nil, err
	}
	if p.Description, err = MakeBlocks(elem.Find("briefdescription"), idx); err != nil {
		return nil, err
	}
	if name := elem.Find("declname"); name != nil {
		p.Name = name.Text()
	}
	if p.Array, err = textWithRefs(elem.Find("array"), idx); err != nil {
		return nil, err
	}
	if !p.Array.IsEmpty() {
		last := len(p.Type.Parts) - 1
		if last < 0 {
			return nil, fmt.Errorf("array parameter %q: missing type", p.Name)
		}
		run, ok := p.Type.Parts[last].(TextRun)
		if !ok || !strings.HasSuffix(string(run), "(&)") {
			return nil, fmt.Errorf("array parameter %q: type does not end in \"(&)\"", p.Name)
		}
		p.Type.Parts[last] = run[:len(run)-3]
	}
	return p, nil
}

// Variable is a variable or data member.
type Variable struct {
	Core
	templatable
	ValueFlags

	rawValue *doxml.Element
	rawType  *doxml.Element

	// Value and Type are populated by Resolve.
	Value Phrase
	Type  Phrase
}

// NewVariable builds a variable from a memberdef element.
func NewVariable(elem *doxml.Element, owner Entity, idx *Index) (*Variable, error) {
	v := &Variable{}
	if err := v.init(elem, "name", owner, idx, v); err != nil {
		return nil, err
	}
	v.access = memberAccess(elem)
	v.ValueFlags = parseValueFlags(elem)
	v.initTemplatable(elem, v.name)
	v.rawValue = elem.Find("initializer")
	v.rawType = elem.Find("type")
	return v, nil
}

// Resolve resolves the variable's documentation, initializer, and type.
func (v *Variable) Resolve(idx *Index) error {
	if err := v.resolveDescriptions(idx); err != nil {
		return err
	}
	if err := v.resolveTemplateParams(v, idx); err != nil {
		return err
	}
	var err error
	if v.Value, err = textWithRefs(v.rawValue, idx); err != nil {
		return fmt.Errorf("variable %s: initializer: %w", v.id, err)
	}
	if v.Type, err = resolveType(v.rawType, idx); err != nil {
		return fmt.Errorf("variable %s: type: %w", v.id, err)
	}
	v.rawValue = nil
	v.rawType = nil
	return nil
}

// TypeAlias is a typedef or using alias.
type TypeAlias struct {
	Core
	templatable

	rawAliased *doxml.Element

	// Aliased is populated by Resolve.
	Aliased Phrase
}

// NewTypeAlias builds a type alias from a memberdef element.
func NewTypeAlias(elem *doxml.Element, owner Entity, idx *Index) (*TypeAlias, error) {
	a := &TypeAlias{}
	if err := a.init(elem, "name", owner, idx, a); err != nil {
		return nil, err
	}
	a.access = memberAccess(elem)
	a.initTemplatable(elem, a.name)
	a.rawAliased = elem.Find("type")
	if a.rawAliased == nil {
		return nil, fmt.Errorf("type alias %s: missing <type> child", a.id)
	}
	return a, nil
}

// Declarator returns "using".
func (a *TypeAlias) Declarator() string { return "using" }

// Resolve resolves the alias's documentation and aliased type.
func (a *TypeAlias) Resolve(idx *Index) error {
	if err := a.resolveDescriptions(idx); err != nil {
		return err
	}
	if err := a.resolveTemplateParams(a, idx); err != nil {
		return err
	}
	var err error
	if a.Aliased, err = textWithRefs(a.rawAliased, idx); err != nil {
		return fmt.Errorf("type alias %s: %w", a.id, err)
	}
	a.rawAliased = nil
	return nil
}

// Enum is an enumeration. A scoped enum (enum class) owns its
// enumerators in its own member table; an unscoped enum inserts them
// into the enclosing scope's table, so they are referenced as bare
// names rather than as EnumName::Value.
type Enum struct {
	Core
	templatable

	members  *MemberTable
	IsScoped bool

	rawUnderlying *doxml.Element

	// Underlying is populated by Resolve.
	Underlying  Phrase
	Enumerators []*Enumerator
}

// NewEnum builds an enum and one Enumerator per declared value.
// enclosing is the enclosing scope's member table, the insertion target
// for unscoped enumerators.
func NewEnum(elem *doxml.Element, owner Entity, enclosing *MemberTable, idx *Index) (*Enum, error) {
	e := &Enum{members: NewMemberTable()}
	if err := e.init(elem, "name", owner, idx, e); err != nil {
		return nil, err
	}
	e.access = memberAccess(elem)
	e.name = normalizeScopeName(e.name)
	e.initTemplatable(elem, e.name)
	e.IsScoped = elem.Attr("strong") == "yes"
	e.rawUnderlying = elem.Find("type")

	for _, child := range elem.FindAll("enumvalue") {
		enumerator, err := NewEnumerator(child, e, idx)
		if err != nil {
			return nil, err
		}
		e.Enumerators = append(e.Enumerators, enumerator)

		table := enclosing
		if e.IsScoped {
			table = e.members
		}
		if err := table.Insert(enumerator.Name(), enumerator); err != nil {
			return nil, fmt.Errorf("enum %s: %w", e.id, err)
		}
	}
	return e, nil
}

// Members returns the enum's own member table (scoped enumerators).
func (e *Enum) Members() *MemberTable { return e.members }

// Declarator returns "enum class" for scoped enums, "enum" otherwise.
func (e *Enum) Declarator() string {
	if e.IsScoped {
		return "enum class"
	}
	return "enum"
}

// Resolve resolves the enum's documentation and underlying type.
func (e *Enum) Resolve(idx *Index) error {
	if err := e.resolveDescriptions(idx); err != nil {
		return err
	}
	if err := e.resolveTemplateParams(e, idx); err != nil {
		return err
	}
	var err error
	if e.Underlying, err = textWithRefs(e.rawUnderlying, idx); err != nil {
		return fmt.Errorf("enum %s: underlying type: %w", e.id, err)
	}
	e.rawUnderlying = nil
	return nil
}

// Enumerator is one declared enum value. Its scope is the enum itself
// when the enum is scoped, the enum's enclosing scope otherwise.
type Enumerator struct {
	Variable
	Enum *Enum
}

// NewEnumerator builds an enumerator from an enumvalue element.
func NewEnumerator(elem *doxml.Element, enum *Enum, idx *Index) (*Enumerator, error) {
	en := &Enumerator{Enum: enum}
	if err := en.init(elem, "name", enum, idx, en); err != nil {
		return nil, err
	}
	en.access = memberAccess(elem)
	en.ValueFlags = parseValueFlags(elem)
	en.IsConstexpr = true
	en.IsConst = true
	en.IsStatic = true
	en.rawValue = elem.Find("initializer")
	en.rawType = elem.Find("type")

	if enum.IsScoped {
		en.scope = enum
	} else {
		en.scope = enum.Scope()
	}
	if en.scope == nil {
		return nil, fmt.Errorf("enumerator %s: enum %s has no enclosing scope", en.id, enum.id)
	}
	return en, nil
}

// Resolve resolves the enumerator like a variable, then binds its type
// to the owning enum.
func (en *Enumerator) Resolve(idx *Index) error {
	if err := en.Variable.Resolve(idx); err != nil {
		return err
	}
	en.Type = Phrase{Parts: []Inline{
		EntityRef{
			Phrase: Phrase{Parts: []Inline{TextRun(en.Enum.Name())}},
			Target: en.Enum,
		},
	}}
	return nil
}

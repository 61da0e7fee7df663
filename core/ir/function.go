package ir

import (
	"fmt"
	"strings"

	"github.com/FocuswithJustin/CedarDoc/core/doxml"
)

// Function is a member, friend, or free function.
type Function struct {
	Core
	templatable
	ValueFlags

	IsExplicit    bool
	RefQual       string
	VirtualKind   VirtualKind
	IsConstructor bool
	IsDestructor  bool
	IsNoexcept    bool
	IsDeleted     bool
	IsDefaulted   bool

	isFriend bool
	isFree   bool

	rawReturnType *doxml.Element
	rawParams     []*doxml.Element
	overloadSet   *OverloadSet

	// OverloadSpecific, ReturnType, and Parameters are populated by
	// Resolve.
	OverloadSpecific []Block
	ReturnType       Phrase
	Parameters       []*Parameter
}

// NewFunction builds a function from a memberdef element. The enclosing
// sectiondef's kind decides friend and free classification.
func NewFunction(elem, section *doxml.Element, owner Entity, idx *Index) (*Function, error) {
	fn := &Function{}
	if err := fn.init(elem, "name", owner, idx, fn); err != nil {
		return nil, err
	}
	fn.access = memberAccess(elem)
	fn.ValueFlags = parseValueFlags(elem)
	fn.initTemplatable(elem, fn.name)

	fn.IsExplicit = elem.Attr("explicit") == "yes"
	fn.RefQual = elem.Attr("refqual")

	fn.VirtualKind = VirtualKind(elem.Attr("virt"))
	if fn.VirtualKind == "" {
		fn.VirtualKind = VirtualNone
	}
	if !fn.VirtualKind.IsValid() {
		return nil, fmt.Errorf("function %s: unrecognized virtual kind %q", fn.id, fn.VirtualKind)
	}

	fn.isFriend = section.Attr("kind") == "friend"
	fn.isFree = section.Attr("kind") == "related"

	ownerName := owner.EntityCore().Name()
	fn.IsConstructor = fn.name == ownerName
	fn.IsDestructor = fn.name == "~"+ownerName

	if noexcept := elem.Attr("noexcept"); noexcept != "" {
		fn.IsNoexcept = noexcept == "yes"
	} else {
		fn.IsNoexcept = fn.IsDestructor
	}

	var args string
	if argsElem := elem.Find("argsstring"); argsElem != nil {
		args = argsElem.Text()
	}
	fn.IsDeleted = strings.HasSuffix(args, "=delete")
	fn.IsDefaulted = strings.HasSuffix(args, "=default")

	fn.rawReturnType = elem.Find("type")
	if fn.rawReturnType == nil && !fn.IsConstructor && !fn.IsDestructor {
		return nil, fmt.Errorf("function %s: missing return type", fn.id)
	}

	fn.rawParams = elem.FindAll("param")
	return fn, nil
}

// Kind classifies the function within its enclosing scope. The
// classification is dynamic: the resolve pass marks namespace members
// free after their overload sets were keyed.
func (fn *Function) Kind() FunctionKind {
	switch {
	case fn.isFriend:
		return FuncFriend
	case fn.isFree:
		return FuncFree
	case fn.IsStatic:
		return FuncStatic
	default:
		return FuncNonStatic
	}
}

// IsFriend reports whether the function is a friend declaration.
func (fn *Function) IsFriend() bool { return fn.isFriend }

// IsFree reports whether the function is a free (namespace-level or
// related) function.
func (fn *Function) IsFree() bool { return fn.isFree }

// OverloadSet returns the set this function belongs to.
func (fn *Function) OverloadSet() *OverloadSet { return fn.overloadSet }

// IsSoleOverload reports whether the function is its set's only member.
func (fn *Function) IsSoleOverload() bool {
	return fn.overloadSet != nil && len(fn.overloadSet.Funcs) == 1
}

// OverloadIndex returns the function's display position within its
// overload set, or -1 when the distinction does not apply.
func (fn *Function) OverloadIndex() int {
	if fn.overloadSet == nil || fn.IsSoleOverload() {
		return -1
	}
	for n, overload := range fn.overloadSet.Funcs {
		if overload == fn {
			return n
		}
	}
	return -1
}

// Resolve extracts the overload_specific marker, then resolves the
// documentation, return type, and parameters.
//
// The marker is an xrefsect block anywhere inside the detailed
// description distinguishing text that applies to one overload only. When
// present it must match the expected structural shape exactly: an
// xreftitle reading "overload_specific" and an xrefdescription body. The
// block is extracted into OverloadSpecific and removed before the general
// description is parsed.
func (fn *Function) Resolve(idx *Index) error {
	var marker *doxml.Element
	var err error
	if fn.rawDesc != nil {
		if marker, err = fn.rawDesc.Query(".//xrefsect"); err != nil {
			return fmt.Errorf("function %s: %w", fn.id, err)
		}
	}
	if marker != nil {
		parent := marker.Parent()
		sub := parent.Find("xrefsect")
		if sub == nil {
			return fmt.Errorf("function %s: malformed overload_specific marker", fn.id)
		}
		title := sub.Find("xreftitle")
		if title == nil {
			return fmt.Errorf("function %s: overload_specific marker without xreftitle", fn.id)
		}
		if title.InnerText() != "overload_specific" {
			return fmt.Errorf("function %s: unexpected xrefsect title %q", fn.id, title.InnerText())
		}
		desc := sub.Find("xrefdescription")
		if desc == nil {
			return fmt.Errorf("function %s: overload_specific marker without xrefdescription", fn.id)
		}
		if fn.OverloadSpecific, err = MakeBlocks(desc, idx); err != nil {
			return fmt.Errorf("function %s: overload_specific: %w", fn.id, err)
		}
		if err := parent.RemoveChild(sub); err != nil {
			return fmt.Errorf("function %s: %w", fn.id, err)
		}
	}

	if err := fn.resolveDescriptions(idx); err != nil {
		return err
	}
	if err := fn.resolveTemplateParams(fn, idx); err != nil {
		return err
	}

	if fn.ReturnType, err = resolveType(fn.rawReturnType, idx); err != nil {
		return fmt.Errorf("function %s: return type: %w", fn.id, err)
	}
	fn.rawReturnType = nil

	for _, raw := range fn.rawParams {
		param, err := NewParameter(raw, idx)
		if err != nil {
			return fmt.Errorf("function %s: parameter: %w", fn.id, err)
		}
		fn.Parameters = append(fn.Parameters, param)
	}
	fn.rawParams = nil
	return nil
}

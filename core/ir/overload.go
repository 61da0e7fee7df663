package ir

import (
	"github.com/FocuswithJustin/CedarDoc/core/doxml"
)

// OverloadSet clusters the functions of one scope that share a name,
// access level, and function kind. The set acts as a single entity in
// its scope's member table; its identity delegates to its primary
// overload.
type OverloadSet struct {
	key   MemberKey
	Funcs []*Function
}

// EntityCore returns the primary overload's core.
func (s *OverloadSet) EntityCore() *Core { return s.Funcs[0].EntityCore() }

// Resolve is a no-op. Each overload is registered in the index on its
// own and resolved there.
func (s *OverloadSet) Resolve(idx *Index) error { return nil }

// Name returns the shared function name.
func (s *OverloadSet) Name() string { return s.key.Name }

// Access returns the access level the set was keyed under.
func (s *OverloadSet) Access() Access { return s.key.Access }

// Kind returns the current kind of the primary overload. Unlike the
// member-table key, which is fixed at creation, the reported kind
// follows the functions: namespace members reclassified as free during
// resolution report the free kind.
func (s *OverloadSet) Kind() FunctionKind { return s.Funcs[0].Kind() }

// Primary returns the first overload in display order.
func (s *OverloadSet) Primary() *Function { return s.Funcs[0] }

// resort reorders the overloads so that functions sharing an identical
// brief sit next to each other while the relative order of first
// appearances is preserved. The working list is built back to front:
// each function is inserted just before the newest overload with the
// same raw brief text, or at the front when its brief is new, and the
// list is reversed at the end.
func (s *OverloadSet) resort() {
	funcs := make([]*Function, 0, len(s.Funcs))
	briefs := make([]string, 0, len(s.Funcs))
	for _, fn := range s.Funcs {
		brief := fn.rawBriefText()
		n := 0
		for i, b := range briefs {
			if b == brief {
				n = i
				break
			}
		}
		funcs = append(funcs, nil)
		copy(funcs[n+1:], funcs[n:])
		funcs[n] = fn
		briefs = append(briefs, "")
		copy(briefs[n+1:], briefs[n:])
		briefs[n] = brief
	}
	for i, j := 0, len(funcs)-1; i < j; i, j = i+1, j-1 {
		funcs[i], funcs[j] = funcs[j], funcs[i]
	}
	s.Funcs = funcs
}

// CreateOverload builds a function from a memberdef element and merges
// it into its scope's matching overload set, creating the set on first
// use. The set key combines name, access, and kind, so same-named
// functions at different access levels form distinct sets.
func CreateOverload(elem, section *doxml.Element, owner Entity, members *MemberTable, idx *Index) (*Function, error) {
	fn, err := NewFunction(elem, section, owner, idx)
	if err != nil {
		return nil, err
	}

	key := MemberKey{Name: fn.name, Access: fn.access, Kind: fn.Kind()}
	set, ok := members.overloads(key)
	if !ok {
		set = &OverloadSet{key: key}
		members.putOverloads(key, set)
	}
	set.Funcs = append(set.Funcs, fn)
	fn.overloadSet = set
	set.resort()
	return fn, nil
}

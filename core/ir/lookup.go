package ir

import "strings"

// findMember returns the named member of scope, or nil when scope owns
// no members or none match.
func findMember(scope Entity, name string) Entity {
	owner, ok := scope.(HasMembers)
	if !ok {
		return nil
	}
	return owner.Members().FindByName(name)
}

// Lookup resolves a possibly qualified name relative to a starting
// entity, the way a C++ compiler resolves an identifier written inside
// that entity's scope.
//
// The walk has two phases. First it ascends from the starting entity
// until it finds a scope that either is named like the first segment or
// directly contains a member named like it. Then it descends segment by
// segment: a segment naming the current scope itself is skipped, any
// other segment selects a member. Returns nil when either phase fails.
func Lookup(from Entity, qname string) Entity {
	if qname == "" {
		return nil
	}
	parts := strings.Split(qname, "::")

	scope := from
	for scope != nil {
		if scope.EntityCore().Name() == parts[0] {
			break
		}
		if findMember(scope, parts[0]) != nil {
			break
		}
		scope = scope.EntityCore().Scope()
	}
	if scope == nil {
		return nil
	}

	for _, part := range parts {
		if scope.EntityCore().Name() == part {
			continue
		}
		scope = findMember(scope, part)
		if scope == nil {
			break
		}
	}
	return scope
}

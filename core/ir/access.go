package ir

// Access represents a C++ access level.
type Access string

// Access level constants.
const (
	AccessPublic    Access = "public"
	AccessProtected Access = "protected"
	AccessPrivate   Access = "private"
)

// validAccess is the set of valid access levels.
var validAccess = map[Access]bool{
	AccessPublic:    true,
	AccessProtected: true,
	AccessPrivate:   true,
}

// IsValid returns true if the access level is valid.
func (a Access) IsValid() bool {
	return validAccess[a]
}

// FunctionKind classifies a function within its enclosing scope.
type FunctionKind string

// Function kind constants.
const (
	FuncStatic    FunctionKind = "static"
	FuncNonStatic FunctionKind = "nonstatic"
	FuncFriend    FunctionKind = "friend"
	FuncFree      FunctionKind = "free"
)

// validFunctionKinds is the set of valid function kinds.
var validFunctionKinds = map[FunctionKind]bool{
	FuncStatic:    true,
	FuncNonStatic: true,
	FuncFriend:    true,
	FuncFree:      true,
}

// IsValid returns true if the function kind is valid.
func (k FunctionKind) IsValid() bool {
	return validFunctionKinds[k]
}

// VirtualKind represents the virtual-ness of a member function.
type VirtualKind string

// Virtual kind constants.
const (
	VirtualNone VirtualKind = "non-virtual"
	VirtualPure VirtualKind = "pure-virtual"
	VirtualYes  VirtualKind = "virtual"
)

// validVirtualKinds is the set of valid virtual kinds.
var validVirtualKinds = map[VirtualKind]bool{
	VirtualNone: true,
	VirtualPure: true,
	VirtualYes:  true,
}

// IsValid returns true if the virtual kind is valid.
func (k VirtualKind) IsValid() bool {
	return validVirtualKinds[k]
}

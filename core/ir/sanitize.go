package ir

import "strings"

// pathSubstitutions maps the C++ declarator characters that are hostile
// to file systems and URLs onto stable mnemonic tokens. The pairs apply
// in order over the whole segment, so multi-character operators
// ("<=>", "->", "operator>") must come before the single characters
// they contain.
var pathSubstitutions = [...]struct{ old, new string }{
	{"[", "-lb"},
	{"]", "-rb"},
	{"(", "-lp"},
	{")", "-rp"},
	{"<=>", "-spshp"},
	{"->", "-arrow"},
	{"operator>", "operator-gt"},
	{"operator~", "operator-bnot"},
	{"=", "-eq"},
	{"!", "-not"},
	{"+", "-plus"},
	{"&", "-and"},
	{"|", "-or"},
	{"^", "-xor"},
	{"*", "-star"},
	{"/", "-slash"},
	{"%", "-mod"},
	{"<", "-lt"},
	{">", "-gt"},
	{"~", "dtor-"},
	{",", "-comma"},
	{":", "-"},
	{" ", "-"},
}

// SanitizePathSegment rewrites one entity name into a form safe for use
// as a path segment.
func SanitizePathSegment(s string) string {
	for _, sub := range pathSubstitutions {
		s = strings.ReplaceAll(s, sub.old, sub.new)
	}
	return s
}

// OutputFile returns the relative output path of the entity's page: the
// sanitized names along its scope path joined with slashes, plus the
// AsciiDoc extension.
func OutputFile(e Entity) string {
	parts := Path(e)
	segments := make([]string, len(parts))
	for i, p := range parts {
		segments[i] = SanitizePathSegment(p.EntityCore().Name())
	}
	return strings.Join(segments, "/") + ".adoc"
}

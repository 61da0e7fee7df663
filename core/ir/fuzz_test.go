package ir

import (
	"strings"
	"testing"
)

func FuzzSanitizePathSegment(f *testing.F) {
	// Seed corpus with operator names and qualified identifiers
	f.Add("operator<=>")
	f.Add("operator->")
	f.Add("operator()")
	f.Add("operator[]")
	f.Add("~basic_widget")
	f.Add("basic_widget<char, std::char_traits<char>>")
	f.Add("std::size_t")
	f.Add("a b c")
	f.Add("")

	f.Fuzz(func(t *testing.T, name string) {
		got := SanitizePathSegment(name)

		// Output must be usable as a single path segment.
		if strings.ContainsAny(got, "/ ") {
			t.Errorf("SanitizePathSegment(%q) = %q still contains a separator", name, got)
		}

		// Replacements introduce no characters the chain rewrites, so a
		// second pass must be a no-op.
		if again := SanitizePathSegment(got); again != got {
			t.Errorf("SanitizePathSegment not idempotent: %q -> %q -> %q", name, got, again)
		}
	})
}

func FuzzNormalizeScopeName(f *testing.F) {
	f.Add("boost::mysql::blob")
	f.Add("format_arg<Ctx::char_type>")
	f.Add("ns::outer<T::U>::inner")
	f.Add("::blob")
	f.Add("odd:")
	f.Add("")

	f.Fuzz(func(t *testing.T, raw string) {
		got := normalizeScopeName(raw)

		// The normalized name never grows.
		if len(got) > len(raw) {
			t.Errorf("normalizeScopeName(%q) = %q grew", raw, got)
		}
	})
}

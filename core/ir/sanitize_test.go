package ir

import "testing"

func TestSanitizePathSegment(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "widget", "widget"},
		{"spaceship", "operator<=>", "operator-spshp"},
		{"arrow", "operator->", "operator-arrow"},
		{"greater", "operator>", "operator-gt"},
		{"greater equal", "operator>=", "operator-gt-eq"},
		{"bitwise not", "operator~", "operator-bnot"},
		{"destructor", "~widget", "dtor-widget"},
		{"call", "operator()", "operator-lp-rp"},
		{"subscript", "operator[]", "operator-lb-rb"},
		{"less", "operator<", "operator-lt"},
		{"shift left", "operator<<", "operator-lt-lt"},
		{"equality", "operator==", "operator-eq-eq"},
		{"inequality", "operator!=", "operator-not-eq"},
		{"spaces", "unsigned int", "unsigned-int"},
		{"scope", "std::size_t", "std--size_t"},
		{"template args", "basic_widget<char, traits>", "basic_widget-lt-char-comma-traits-gt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SanitizePathSegment(tt.in); got != tt.want {
				t.Errorf("SanitizePathSegment(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestOutputFile(t *testing.T) {
	ns := &Namespace{}
	ns.name = "mylib"
	cl := &Class{kind: "class"}
	cl.name = "widget"
	cl.scope = ns
	fn := &Function{}
	fn.name = "operator=="
	fn.scope = cl

	if got := OutputFile(ns); got != "mylib.adoc" {
		t.Errorf("namespace file = %q, want %q", got, "mylib.adoc")
	}
	if got := OutputFile(cl); got != "mylib/widget.adoc" {
		t.Errorf("class file = %q, want %q", got, "mylib/widget.adoc")
	}
	if got := OutputFile(fn); got != "mylib/widget/operator-eq-eq.adoc" {
		t.Errorf("function file = %q, want %q", got, "mylib/widget/operator-eq-eq.adoc")
	}
}

package ir

import "testing"

// buildScopeTree wires namespace lib containing class widget, which in
// turn declares a nested type and member functions.
func buildScopeTree(t *testing.T) (*Index, *Namespace, *Class) {
	t.Helper()
	idx := NewIndex()

	cl := buildClass(t, `<compounddef id="classlib_1_1widget" kind="class" prot="public">`+
		`<compoundname>lib::widget</compoundname><sectiondef kind="public-type">`+
		`<memberdef kind="typedef" id="t1" prot="public">`+
		`<type>int</type><name>size_type</name><briefdescription/><detaileddescription/></memberdef>`+
		`</sectiondef><sectiondef kind="public-func">`+
		memberFunc("f1", "clear", "Clear.", "public", "no")+
		`</sectiondef></compounddef>`, idx)

	elem := parseFragment(t, `<compounddef id="namespacelib" kind="namespace">`+
		`<compoundname>lib</compoundname>`+
		`<innerclass refid="classlib_1_1widget" prot="public"/>`+
		`<sectiondef kind="typedef">`+
		`<memberdef kind="typedef" id="t2" prot="public">`+
		`<type>widget</type><name>default_widget</name><briefdescription/><detaileddescription/></memberdef>`+
		`</sectiondef></compounddef>`)
	ns, err := NewNamespace(elem, idx)
	if err != nil {
		t.Fatalf("NewNamespace failed: %v", err)
	}
	if err := ns.Wire(idx); err != nil {
		t.Fatalf("Wire failed: %v", err)
	}
	return idx, ns, cl
}

func TestLookup(t *testing.T) {
	_, ns, cl := buildScopeTree(t)

	sizeType, _ := cl.Members().Get("size_type")
	aliasInNs, _ := ns.Members().Get("default_widget")

	tests := []struct {
		name  string
		from  Entity
		qname string
		want  Entity
	}{
		{"member from own scope", cl, "size_type", sizeType},
		{"sibling type walks up", cl, "default_widget", aliasInNs},
		{"qualified from leaf", cl, "lib::widget::size_type", sizeType},
		{"self by name", cl, "widget", cl},
		{"namespace by name", cl, "lib", ns},
		{"qualified class", ns, "lib::widget", cl},
		{"missing", cl, "no_such_thing", nil},
		{"missing tail", cl, "lib::widget::nothing", nil},
		{"empty", cl, "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Lookup(tt.from, tt.qname)
			if got != tt.want {
				t.Errorf("Lookup(%q) = %v, want %v", tt.qname, got, tt.want)
			}
		})
	}
}

func TestLookupFindsOverloadSet(t *testing.T) {
	_, _, cl := buildScopeTree(t)

	got := Lookup(cl, "clear")
	set, ok := got.(*OverloadSet)
	if !ok {
		t.Fatalf("Lookup(clear) = %T, want *OverloadSet", got)
	}
	if set.Name() != "clear" {
		t.Errorf("set name = %q", set.Name())
	}
}

func TestLookupFromMemberFunction(t *testing.T) {
	idx, _, cl := buildScopeTree(t)

	e, _ := idx.Get("f1")
	fn := e.(*Function)
	fn.scope = cl

	sizeType, _ := cl.Members().Get("size_type")
	if got := Lookup(fn, "size_type"); got != sizeType {
		t.Errorf("Lookup from function = %v, want the nested type", got)
	}
}

package doxml

import (
	"strings"
	"testing"
)

func mustParse(t *testing.T, data string) *Element {
	t.Helper()
	doc, err := Parse([]byte(data))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	root := doc.Root()
	if root == nil {
		t.Fatal("document has no root element")
	}
	return root
}

func TestParseInvalidXML(t *testing.T) {
	tests := []struct {
		name string
		xml  string
	}{
		{"unclosed tag", "<root><element></root>"},
		{"mismatched tags", "<root></other>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.xml))
			if err == nil {
				t.Error("Parse should fail for invalid XML")
			}
		})
	}
}

func TestRoot(t *testing.T) {
	root := mustParse(t, `<?xml version="1.0"?><doxygen version="1.9"><compounddef/></doxygen>`)
	if root.Name() != "doxygen" {
		t.Errorf("root name = %q, want %q", root.Name(), "doxygen")
	}
	if root.Attr("version") != "1.9" {
		t.Errorf("version = %q, want %q", root.Attr("version"), "1.9")
	}
}

// TestTextAndTail verifies the mixed-content split: Text is the run
// before the first child element, Tail the run after the end tag.
func TestTextAndTail(t *testing.T) {
	root := mustParse(t, `<para>leading <ref>name</ref> middle <bold>b</bold> trailing</para>`)

	if got := root.Text(); got != "leading " {
		t.Errorf("Text() = %q, want %q", got, "leading ")
	}

	children := root.Children()
	if len(children) != 2 {
		t.Fatalf("got %d children, want 2", len(children))
	}
	if got := children[0].Tail(); got != " middle " {
		t.Errorf("first tail = %q, want %q", got, " middle ")
	}
	if got := children[1].Tail(); got != " trailing" {
		t.Errorf("second tail = %q, want %q", got, " trailing")
	}
	if got := children[0].Text(); got != "name" {
		t.Errorf("child text = %q, want %q", got, "name")
	}
}

func TestTailStopsAtNextElement(t *testing.T) {
	root := mustParse(t, `<p><a/>one<b/>two</p>`)
	children := root.Children()
	if got := children[0].Tail(); got != "one" {
		t.Errorf("tail = %q, want %q", got, "one")
	}
}

func TestFindAndFindAll(t *testing.T) {
	root := mustParse(t, `<memberdef><name>f</name><param>one</param><param>two</param></memberdef>`)

	name := root.Find("name")
	if name == nil || name.Text() != "f" {
		t.Fatalf("Find(name) = %v", name)
	}
	if root.Find("missing") != nil {
		t.Error("Find for an absent tag should return nil")
	}

	params := root.FindAll("param")
	if len(params) != 2 {
		t.Fatalf("got %d params, want 2", len(params))
	}
	if params[1].Text() != "two" {
		t.Errorf("second param = %q, want %q", params[1].Text(), "two")
	}
}

func TestFindIsDirectChildrenOnly(t *testing.T) {
	root := mustParse(t, `<a><b><c/></b></a>`)
	if root.Find("c") != nil {
		t.Error("Find should not descend into grandchildren")
	}
}

func TestQueryDescendants(t *testing.T) {
	root := mustParse(t, `<desc><para><xrefsect id="x1"><xreftitle>t</xreftitle></xrefsect></para></desc>`)

	found, err := root.Query(".//xrefsect")
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	if found == nil {
		t.Fatal("Query found nothing")
	}
	if found.Attr("id") != "x1" {
		t.Errorf("id = %q, want %q", found.Attr("id"), "x1")
	}
	if found.Parent().Name() != "para" {
		t.Errorf("parent = %q, want %q", found.Parent().Name(), "para")
	}

	missing, err := root.Query(".//nothing")
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	if missing != nil {
		t.Error("Query for an absent element should return nil")
	}
}

func TestQueryInvalidExpression(t *testing.T) {
	root := mustParse(t, `<a/>`)
	if _, err := root.Query("///"); err == nil {
		t.Error("Query should reject a malformed expression")
	}
}

// TestRemoveChild verifies that removal takes the element's tail text
// with it, so the remaining content joins up cleanly.
func TestRemoveChild(t *testing.T) {
	root := mustParse(t, `<para>a<x/>tail<b/>end</para>`)

	x := root.Find("x")
	if err := root.RemoveChild(x); err != nil {
		t.Fatalf("RemoveChild failed: %v", err)
	}

	if got := root.InnerText(); got != "aend" {
		t.Errorf("InnerText after removal = %q, want %q", got, "aend")
	}
	if root.Find("x") != nil {
		t.Error("removed element still present")
	}
	if root.Find("b") == nil {
		t.Error("sibling element lost during removal")
	}
}

func TestRemoveChildNotAChild(t *testing.T) {
	root := mustParse(t, `<a><b><c/></b></a>`)
	c := root.Find("b").Find("c")
	if err := root.RemoveChild(c); err == nil {
		t.Error("RemoveChild should reject a non-direct child")
	}
	if !strings.Contains(root.InnerText(), "") {
		t.Error("unexpected content change")
	}
}

func TestHasAttr(t *testing.T) {
	root := mustParse(t, `<m prot="public" static=""/>`)
	if !root.HasAttr("prot") {
		t.Error("HasAttr(prot) = false")
	}
	if !root.HasAttr("static") {
		t.Error("HasAttr should see empty-valued attributes")
	}
	if root.HasAttr("virt") {
		t.Error("HasAttr(virt) = true for an absent attribute")
	}
}

func TestSame(t *testing.T) {
	root := mustParse(t, `<a><b/></a>`)
	if !root.Find("b").Same(root.Children()[0]) {
		t.Error("Same = false for the same node")
	}
	if root.Find("b").Same(nil) {
		t.Error("Same(nil) = true")
	}
}

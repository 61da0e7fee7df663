package render

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/FocuswithJustin/CedarDoc/core/doxml"
	"github.com/FocuswithJustin/CedarDoc/core/ir"
	"github.com/FocuswithJustin/CedarDoc/internal/config"
)

const classXML = `<compounddef id="classlib_1_1widget" kind="class" prot="public">
	<compoundname>lib::widget</compoundname>
	<location file="widget.hpp" line="10" column="1"/>
	<briefdescription><para>A widget.</para></briefdescription>
	<detaileddescription><para>Widget details.</para></detaileddescription>
	<sectiondef kind="public-func">
		<memberdef kind="function" id="f1" prot="public" virt="non-virtual">
			<type>void</type><name>clear</name><argsstring>()</argsstring>
			<briefdescription><para>Clears the widget.</para></briefdescription>
			<detaileddescription/>
		</memberdef>
	</sectiondef>
	<sectiondef kind="private-func">
		<memberdef kind="function" id="f2" prot="private" virt="non-virtual">
			<type>void</type><name>impl</name><argsstring>()</argsstring>
			<briefdescription><para>Implementation detail.</para></briefdescription>
			<detaileddescription/>
		</memberdef>
	</sectiondef>
</compounddef>`

const namespaceXML = `<compounddef id="namespacelib" kind="namespace">
	<compoundname>lib</compoundname>
	<innerclass refid="classlib_1_1widget" prot="public"/>
	<briefdescription/><detaileddescription/>
	<sectiondef kind="func">
		<memberdef kind="function" id="fn1" prot="public" virt="non-virtual">
			<type>int</type><name>checksum</name><argsstring>(int x)</argsstring>
			<param><type>int</type><declname>x</declname></param>
			<briefdescription><para>Sums bytes.</para></briefdescription>
			<detaileddescription/>
		</memberdef>
	</sectiondef>
	<sectiondef kind="typedef">
		<memberdef kind="typedef" id="t1" prot="public">
			<type>std::vector&lt;unsigned char&gt;</type><name>blob</name>
			<briefdescription><para>Byte buffer.</para></briefdescription>
			<detaileddescription/>
		</memberdef>
	</sectiondef>
	<sectiondef kind="enum">
		<memberdef kind="enum" id="e1" prot="public" strong="yes">
			<type/><name>mode</name>
			<enumvalue id="ev1" prot="public">
				<name>fast</name><initializer>= 0</initializer>
				<briefdescription/><detaileddescription/>
			</enumvalue>
			<briefdescription><para>Speed mode.</para></briefdescription>
			<detaileddescription/>
		</memberdef>
	</sectiondef>
	<sectiondef kind="var">
		<memberdef kind="variable" id="v1" prot="public" static="yes" constexpr="yes">
			<type>constexpr int</type><name>max_depth</name>
			<initializer>= 64</initializer>
			<briefdescription><para>Depth limit.</para></briefdescription>
			<detaileddescription/>
		</memberdef>
	</sectiondef>
</compounddef>`

// buildSite assembles a small resolved graph: a namespace owning a
// class, a free function, a type alias, a scoped enum, and a constant.
func buildSite(t *testing.T) *ir.Index {
	t.Helper()
	idx := ir.NewIndex()

	classDoc, err := doxml.Parse([]byte(classXML))
	if err != nil {
		t.Fatalf("parsing class: %v", err)
	}
	if _, err := ir.NewClass(classDoc.Root(), "class", idx); err != nil {
		t.Fatalf("NewClass failed: %v", err)
	}

	nsDoc, err := doxml.Parse([]byte(namespaceXML))
	if err != nil {
		t.Fatalf("parsing namespace: %v", err)
	}
	if _, err := ir.NewNamespace(nsDoc.Root(), idx); err != nil {
		t.Fatalf("NewNamespace failed: %v", err)
	}

	for _, e := range idx.Entities() {
		if w, ok := e.(ir.Wirer); ok {
			if err := w.Wire(idx); err != nil {
				t.Fatalf("Wire failed: %v", err)
			}
		}
	}
	for _, e := range idx.Entities() {
		if err := e.Resolve(idx); err != nil {
			t.Fatalf("Resolve %s failed: %v", e.EntityCore().ID(), err)
		}
	}
	return idx
}

func TestPlannerPages(t *testing.T) {
	idx := buildSite(t)
	planner := &Planner{Options: config.Default()}

	pages := planner.Pages(idx)
	wantPaths := []string{
		"lib/widget.adoc",
		"lib/widget/clear.adoc",
		"lib/checksum.adoc",
		"lib/blob.adoc",
		"lib/mode.adoc",
		"lib/max_depth.adoc",
		"reference.adoc",
	}
	if len(pages) != len(wantPaths) {
		t.Fatalf("got %d pages, want %d: %+v", len(pages), len(wantPaths), pages)
	}
	for i, want := range wantPaths {
		if pages[i].Path != want {
			t.Errorf("page %d = %q, want %q", i, pages[i].Path, want)
		}
	}

	// The private overload set is excluded by default.
	for _, pg := range pages {
		if pg.Path == "lib/widget/impl.adoc" {
			t.Error("private overload set planned without include_private")
		}
	}
}

func TestPlannerIncludePrivate(t *testing.T) {
	idx := buildSite(t)
	opts := config.Default()
	if err := opts.Merge([]byte(`{"include_private": true}`)); err != nil {
		t.Fatalf("Merge failed: %v", err)
	}
	planner := &Planner{Options: opts}

	var found bool
	for _, pg := range planner.Pages(idx) {
		if pg.Path == "lib/widget/impl.adoc" {
			found = true
		}
	}
	if !found {
		t.Error("include_private should plan the private overload set")
	}
}

func TestDeclaration(t *testing.T) {
	idx := buildSite(t)

	get := func(id string) ir.Entity {
		e, ok := idx.Get(id)
		if !ok {
			t.Fatalf("entity %s missing", id)
		}
		return e
	}

	tests := []struct {
		id   string
		want string
	}{
		{"classlib_1_1widget", "class widget;"},
		{"t1", "using blob = std::vector<unsigned char>;"},
		{"e1", "enum class mode;"},
		{"v1", "static constexpr int max_depth = 64;"},
		{"fn1", "int checksum(int x);"},
	}
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			if got := Declaration(get(tt.id)); got != tt.want {
				t.Errorf("Declaration = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestWritePages(t *testing.T) {
	idx := buildSite(t)
	planner := &Planner{Options: config.Default()}
	eng, err := NewEngine()
	if err != nil {
		t.Fatalf("NewEngine failed: %v", err)
	}

	outDir := t.TempDir()
	if err := WritePages(outDir, planner.Pages(idx), eng); err != nil {
		t.Fatalf("WritePages failed: %v", err)
	}

	read := func(rel string) string {
		data, err := os.ReadFile(filepath.Join(outDir, filepath.FromSlash(rel)))
		if err != nil {
			t.Fatalf("reading %s: %v", rel, err)
		}
		return string(data)
	}

	classPage := read("lib/widget.adoc")
	for _, want := range []string{
		"= lib::widget",
		"A widget.",
		"Declared in `<widget.hpp>`.",
		"class widget;",
		"xref:lib/widget/clear.adoc[`clear`]",
		"Widget details.",
	} {
		if !strings.Contains(classPage, want) {
			t.Errorf("class page missing %q:\n%s", want, classPage)
		}
	}
	if strings.Contains(classPage, "Protected and Private Members") {
		t.Error("class page lists private members without include_private")
	}

	setPage := read("lib/widget/clear.adoc")
	for _, want := range []string{"= lib::widget::clear", "void clear();", "Clears the widget."} {
		if !strings.Contains(setPage, want) {
			t.Errorf("overload set page missing %q:\n%s", want, setPage)
		}
	}

	enumPage := read("lib/mode.adoc")
	for _, want := range []string{"= lib::mode", "enum class mode;", "`fast`", "`= 0`"} {
		if !strings.Contains(enumPage, want) {
			t.Errorf("enum page missing %q:\n%s", want, enumPage)
		}
	}

	quickref := read("reference.adoc")
	for _, want := range []string{
		"= Reference",
		"xref:lib/widget.adoc[`lib::widget`]",
		"xref:lib/checksum.adoc[`lib::checksum`]",
		"xref:lib/blob.adoc[`lib::blob`]",
		"xref:lib/max_depth.adoc[`lib::max_depth`]",
	} {
		if !strings.Contains(quickref, want) {
			t.Errorf("quickref missing %q:\n%s", want, quickref)
		}
	}
}

package archive

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/FocuswithJustin/CedarDoc/core/doxml"
	"github.com/FocuswithJustin/CedarDoc/core/ir"
)

func buildGraph(t *testing.T) *ir.Index {
	t.Helper()
	idx := ir.NewIndex()

	data := `<compounddef id="classlib_1_1widget" kind="class" prot="public">
		<compoundname>lib::widget</compoundname>
		<location file="widget.hpp" line="12" column="1"/>
		<sectiondef kind="public-func">
			<memberdef kind="function" id="f1" prot="public" virt="non-virtual">
				<type>void</type><name>clear</name><argsstring>()</argsstring>
				<briefdescription/><detaileddescription/>
			</memberdef>
		</sectiondef>
	</compounddef>`
	doc, err := doxml.Parse([]byte(data))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if _, err := ir.NewClass(doc.Root(), "class", idx); err != nil {
		t.Fatalf("NewClass failed: %v", err)
	}
	return idx
}

func TestDumpRoundTrip(t *testing.T) {
	idx := buildGraph(t)
	meta := Metadata{
		BuildID:     "b-1",
		Fingerprint: "abc123",
		CreatedAt:   time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}

	for _, name := range []string{"ir.json", "ir.json.xz"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)
			if err := WriteDump(path, idx, meta); err != nil {
				t.Fatalf("WriteDump failed: %v", err)
			}

			snap, err := ReadDump(path)
			if err != nil {
				t.Fatalf("ReadDump failed: %v", err)
			}
			if snap.BuildID != "b-1" || snap.Fingerprint != "abc123" {
				t.Errorf("metadata = %q/%q", snap.BuildID, snap.Fingerprint)
			}
			if !snap.CreatedAt.Equal(meta.CreatedAt) {
				t.Errorf("created_at = %v, want %v", snap.CreatedAt, meta.CreatedAt)
			}
			if len(snap.Symbols) != 2 {
				t.Fatalf("got %d symbols, want 2", len(snap.Symbols))
			}

			cl := snap.Symbols[0]
			if cl.ID != "classlib_1_1widget" || cl.Kind != "class" {
				t.Errorf("class record = %+v", cl)
			}
			if cl.QualifiedName != "widget" || cl.Page != "widget.adoc" {
				t.Errorf("class naming = %q page %q", cl.QualifiedName, cl.Page)
			}
			if cl.File != "widget.hpp" || cl.Line != 12 {
				t.Errorf("class location = %s:%d", cl.File, cl.Line)
			}

			fn := snap.Symbols[1]
			if fn.ID != "f1" || fn.Kind != "function" {
				t.Errorf("function record = %+v", fn)
			}
			if fn.QualifiedName != "widget::clear" || fn.Scope != "classlib_1_1widget" {
				t.Errorf("function naming = %q scope %q", fn.QualifiedName, fn.Scope)
			}
		})
	}
}

// TestDumpCompression verifies that the .xz artifact is actually an xz
// stream and not plain JSON with a misleading name.
func TestDumpCompression(t *testing.T) {
	idx := buildGraph(t)
	path := filepath.Join(t.TempDir(), "ir.json.xz")
	if err := WriteDump(path, idx, Metadata{BuildID: "b-1", CreatedAt: time.Now()}); err != nil {
		t.Fatalf("WriteDump failed: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading dump: %v", err)
	}
	magic := []byte{0xfd, '7', 'z', 'X', 'Z', 0x00}
	if len(raw) < len(magic) || string(raw[:len(magic)]) != string(magic) {
		t.Errorf("dump does not start with the xz magic: % x", raw[:min(len(raw), 6)])
	}
	if json.Valid(raw) {
		t.Error("compressed dump decodes as plain JSON")
	}
}

func TestReadDumpMissing(t *testing.T) {
	if _, err := ReadDump(filepath.Join(t.TempDir(), "absent.json")); err == nil {
		t.Error("ReadDump should fail for a missing file")
	}
}

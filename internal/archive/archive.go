// Package archive writes and reads the IR dump artifact: a JSON
// snapshot of the resolved symbol graph, xz-compressed when the target
// path ends in ".xz". The dump is flat by design. Each entity becomes
// one record carrying its identity, kind, scope link, and output page,
// which is enough for diffing two builds or feeding external tooling
// without reparsing the corpus.
package archive

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/ulikunitz/xz"

	"github.com/FocuswithJustin/CedarDoc/core/ir"
)

// Snapshot is the serialized form of one build.
type Snapshot struct {
	BuildID     string    `json:"build_id"`
	Fingerprint string    `json:"fingerprint"`
	CreatedAt   time.Time `json:"created_at"`
	Symbols     []Symbol  `json:"symbols"`
}

// Symbol is one entity record. Scope and Groups reference other
// records by entity id.
type Symbol struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	QualifiedName string   `json:"qualified_name"`
	Kind          string   `json:"kind"`
	Access        string   `json:"access"`
	Page          string   `json:"page"`
	Scope         string   `json:"scope,omitempty"`
	Groups        []string `json:"groups,omitempty"`
	File          string   `json:"file,omitempty"`
	Line          int      `json:"line,omitempty"`
}

// Metadata describes the build that produced the dump.
type Metadata struct {
	BuildID     string
	Fingerprint string
	CreatedAt   time.Time
}

// NewSnapshot flattens the symbol table into a Snapshot, in
// registration order.
func NewSnapshot(idx *ir.Index, meta Metadata) *Snapshot {
	snap := &Snapshot{
		BuildID:     meta.BuildID,
		Fingerprint: meta.Fingerprint,
		CreatedAt:   meta.CreatedAt.UTC(),
		Symbols:     make([]Symbol, 0, idx.Len()),
	}
	for _, e := range idx.Entities() {
		core := e.EntityCore()
		sym := Symbol{
			ID:            core.ID(),
			Name:          core.Name(),
			QualifiedName: ir.FullyQualifiedName(e),
			Kind:          ir.KindOf(e),
			Access:        string(core.Access()),
			Page:          ir.OutputFile(e),
		}
		if scope := core.Scope(); scope != nil {
			sym.Scope = scope.EntityCore().ID()
		}
		for _, g := range core.Groups() {
			sym.Groups = append(sym.Groups, g.EntityCore().ID())
		}
		if loc := core.Location(); loc != nil {
			sym.File = loc.File
			sym.Line = loc.Line
		}
		snap.Symbols = append(snap.Symbols, sym)
	}
	return snap
}

// WriteDump serializes the symbol table to path. A ".xz" suffix
// selects compressed output.
func WriteDump(path string, idx *ir.Index, meta Metadata) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating dump %s: %w", path, err)
	}
	defer f.Close()

	var w io.Writer = f
	var compressor io.Closer
	if strings.HasSuffix(path, ".xz") {
		xzw, err := xz.NewWriter(f)
		if err != nil {
			return fmt.Errorf("xz writer: %w", err)
		}
		w = xzw
		compressor = xzw
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(NewSnapshot(idx, meta)); err != nil {
		return fmt.Errorf("encoding dump: %w", err)
	}
	if compressor != nil {
		if err := compressor.Close(); err != nil {
			return fmt.Errorf("closing xz stream: %w", err)
		}
	}
	return f.Close()
}

// ReadDump loads a snapshot written by WriteDump, detecting
// compression from the path suffix.
func ReadDump(path string) (*Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening dump %s: %w", path, err)
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(path, ".xz") {
		xzr, err := xz.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("xz reader: %w", err)
		}
		r = xzr
	}

	var snap Snapshot
	if err := json.NewDecoder(r).Decode(&snap); err != nil {
		return nil, fmt.Errorf("decoding dump %s: %w", path, err)
	}
	return &snap, nil
}

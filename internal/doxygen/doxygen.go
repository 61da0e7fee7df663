// Package doxygen loads a Doxygen-style XML corpus and drives the
// compile pipeline: an index document names the compounds, one document
// per compound carries its structure, and the passes over the shared
// symbol table turn them into the resolved entity graph.
package doxygen

import (
	"context"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/zeebo/blake3"

	"github.com/FocuswithJustin/CedarDoc/core/doxml"
	"github.com/FocuswithJustin/CedarDoc/core/ir"
	"github.com/FocuswithJustin/CedarDoc/internal/logging"
)

// CompoundRef is one entry of the index document.
type CompoundRef struct {
	RefID string
	Kind  string
}

// CollectCompoundRefs reads the index document and returns the refs of
// every compound that participates in the build. File and directory
// entries describe the source layout, not the API, and are skipped. A
// compound entry without a kind or refid is malformed input.
func CollectCompoundRefs(r io.Reader) ([]CompoundRef, error) {
	doc, err := doxml.ParseReader(r)
	if err != nil {
		return nil, fmt.Errorf("index document: %w", err)
	}
	root := doc.Root()
	if root == nil {
		return nil, fmt.Errorf("index document has no root element")
	}

	var refs []CompoundRef
	for _, child := range root.Children() {
		if child.Name() != "compound" {
			continue
		}
		kind := child.Attr("kind")
		if kind == "" {
			return nil, fmt.Errorf("index entry without a kind")
		}
		if kind == "file" || kind == "dir" {
			continue
		}
		refid := child.Attr("refid")
		if refid == "" {
			return nil, fmt.Errorf("index entry of kind %q without a refid", kind)
		}
		refs = append(refs, CompoundRef{RefID: refid, Kind: kind})
	}
	return refs, nil
}

// Build is the result of one compile run.
type Build struct {
	// ID uniquely identifies this run in logs and artifacts.
	ID string
	// Fingerprint is the BLAKE3 hash over every loaded compound
	// document, in load order. Two builds over identical input share a
	// fingerprint.
	Fingerprint string
	// Index is the resolved symbol table.
	Index *ir.Index
}

// Compiler runs the compile pipeline over a corpus directory.
type Compiler struct {
	// DataDir is the directory holding <refid>.xml compound documents.
	DataDir string
}

// Compile loads each referenced compound document, builds the entity
// graph, then runs the wiring and resolution passes. Unknown compound
// kinds are skipped; every structural violation aborts with an error.
func (c *Compiler) Compile(ctx context.Context, refs []CompoundRef) (*Build, error) {
	build := &Build{
		ID:    uuid.New().String(),
		Index: ir.NewIndex(),
	}
	ctx = logging.WithBuildID(ctx, build.ID)

	hasher := blake3.New()

	start := time.Now()
	for _, ref := range refs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := c.loadCompound(ref, build.Index, hasher); err != nil {
			logging.InputError(ref.RefID, err)
			return nil, err
		}
		logging.CompoundLoaded(ref.RefID, ref.Kind)
	}
	logging.CompileStage("build", build.Index.Len(), time.Since(start))

	start = time.Now()
	for _, e := range build.Index.Entities() {
		if w, ok := e.(ir.Wirer); ok {
			if err := w.Wire(build.Index); err != nil {
				return nil, err
			}
		}
	}
	logging.CompileStage("wire", build.Index.Len(), time.Since(start))

	start = time.Now()
	for _, e := range build.Index.Entities() {
		if err := e.Resolve(build.Index); err != nil {
			return nil, err
		}
	}
	logging.CompileStage("resolve", build.Index.Len(), time.Since(start))

	sum := hasher.Sum(nil)
	build.Fingerprint = hex.EncodeToString(sum)
	logging.InfoContext(ctx, "compile_done",
		"entities", build.Index.Len(),
		"fingerprint", build.Fingerprint)
	return build, nil
}

// loadCompound parses one compound document and dispatches its root by
// kind. The document must contain exactly one compounddef element.
func (c *Compiler) loadCompound(ref CompoundRef, idx *ir.Index, hasher io.Writer) error {
	path := filepath.Join(c.DataDir, ref.RefID+".xml")
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("compound %s: %w", ref.RefID, err)
	}
	if _, err := hasher.Write(data); err != nil {
		return err
	}

	doc, err := doxml.Parse(data)
	if err != nil {
		return fmt.Errorf("compound %s: %w", ref.RefID, err)
	}
	root := doc.Root()
	if root == nil {
		return fmt.Errorf("compound %s: empty document", ref.RefID)
	}
	children := root.Children()
	if len(children) != 1 {
		return fmt.Errorf("compound %s: expected one compounddef, found %d children", ref.RefID, len(children))
	}
	elem := children[0]
	if elem.Name() != "compounddef" {
		return fmt.Errorf("compound %s: unexpected root child <%s>", ref.RefID, elem.Name())
	}

	switch kind := elem.Attr("kind"); kind {
	case "class", "struct", "union":
		_, err = ir.NewClass(elem, kind, idx)
	case "namespace":
		_, err = ir.NewNamespace(elem, idx)
	case "group":
		_, err = ir.NewGroup(elem, idx)
	default:
		// Pages, files, and other compound kinds carry no API structure.
		return nil
	}
	return err
}

// CompileFile is a convenience wrapper: read the index document at
// path, then compile against its directory (or dataDir if given).
func CompileFile(ctx context.Context, path, dataDir string) (*Build, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening index %s: %w", path, err)
	}
	defer file.Close()

	refs, err := CollectCompoundRefs(file)
	if err != nil {
		return nil, err
	}
	if dataDir == "" {
		dataDir = filepath.Dir(path)
	}
	c := &Compiler{DataDir: dataDir}
	return c.Compile(ctx, refs)
}

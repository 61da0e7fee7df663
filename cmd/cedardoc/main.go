// Command cedardoc compiles Doxygen XML output into AsciiDoc reference
// pages. It reads the index document, loads one document per compound,
// builds the cross-referenced symbol graph, and renders a page per
// documented entity plus a quickref overview.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/alecthomas/kong"

	"github.com/FocuswithJustin/CedarDoc/internal/archive"
	"github.com/FocuswithJustin/CedarDoc/internal/config"
	"github.com/FocuswithJustin/CedarDoc/internal/doxygen"
	"github.com/FocuswithJustin/CedarDoc/internal/logging"
	"github.com/FocuswithJustin/CedarDoc/internal/render"
	"github.com/FocuswithJustin/CedarDoc/internal/search"
)

const version = "0.1.0"

// CLI defines the command-line interface for cedardoc.
var CLI struct {
	// Global flags
	LogLevel  string `name:"log-level" default:"info" enum:"debug,info,warn,error" help:"Log level"`
	LogFormat string `name:"log-format" default:"text" enum:"text,json" help:"Log output format"`

	Generate GenerateCmd `cmd:"" help:"Compile Doxygen XML into AsciiDoc pages"`
	Version  VersionCmd  `cmd:"" help:"Print version information"`
}

// GenerateCmd runs the full pipeline: collect, build, wire, resolve,
// render, and write the optional index and dump artifacts.
type GenerateCmd struct {
	Input   string   `short:"i" help:"Doxygen index document; read from stdin when omitted" type:"path"`
	Output  string   `short:"o" required:"" help:"Output directory" type:"path"`
	Config  []string `short:"c" help:"Configuration files, merged in order" type:"existingfile"`
	DataDir string   `short:"D" name:"directory" help:"Directory with the compound documents; defaults to the index document's directory, or the working directory when reading stdin" type:"path"`
	Index   string   `name:"index" help:"Write a SQLite symbol index to this path" type:"path"`
	Dump    string   `name:"dump" help:"Write an IR dump to this path; a .xz suffix compresses it" type:"path"`
}

func (c *GenerateCmd) Run() error {
	ctx := context.Background()

	opts, err := config.Load(c.Config...)
	if err != nil {
		return err
	}

	build, err := c.compile(ctx)
	if err != nil {
		return err
	}

	eng, err := render.NewEngine()
	if err != nil {
		return err
	}
	planner := &render.Planner{Options: opts}
	if err := render.WritePages(c.Output, planner.Pages(build.Index), eng); err != nil {
		return err
	}

	now := time.Now()
	if c.Index != "" {
		meta := search.Metadata{BuildID: build.ID, Fingerprint: build.Fingerprint, CreatedAt: now}
		if err := search.WriteIndex(c.Index, build.Index, meta); err != nil {
			return err
		}
		logging.ArtifactWritten("symbol-index", c.Index, 0)
	}
	if c.Dump != "" {
		meta := archive.Metadata{BuildID: build.ID, Fingerprint: build.Fingerprint, CreatedAt: now}
		if err := archive.WriteDump(c.Dump, build.Index, meta); err != nil {
			return err
		}
		logging.ArtifactWritten("ir-dump", c.Dump, 0)
	}
	return nil
}

func (c *GenerateCmd) compile(ctx context.Context) (*doxygen.Build, error) {
	if c.Input != "" {
		return doxygen.CompileFile(ctx, c.Input, c.DataDir)
	}

	dataDir := c.DataDir
	if dataDir == "" {
		dataDir = "."
	}
	refs, err := doxygen.CollectCompoundRefs(os.Stdin)
	if err != nil {
		return nil, err
	}
	compiler := &doxygen.Compiler{DataDir: dataDir}
	return compiler.Compile(ctx, refs)
}

type VersionCmd struct{}

func (c *VersionCmd) Run() error {
	fmt.Printf("cedardoc version %s\n", version)
	return nil
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("cedardoc"),
		kong.Description("CedarDoc - C++ reference documentation compiler"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
	)
	logging.InitLogger(logging.ParseLevel(CLI.LogLevel), logging.ParseFormat(CLI.LogFormat))
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}

// Package search writes the SQLite symbol index artifact. The index
// lets downstream tooling answer "where is this symbol documented"
// without reparsing the corpus: one row per entity with its qualified
// name, kind, access level, output page, and source location.
//
// Build modes follow the dual-driver pattern:
//   - Default (CGO_ENABLED=0): pure Go modernc.org/sqlite
//   - CGO mode (-tags cgo_sqlite): mattn/go-sqlite3
package search

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/FocuswithJustin/CedarDoc/core/ir"
)

// DriverType identifies the underlying implementation, "purego" or
// "cgo".
func DriverType() string {
	return driverType
}

// Open opens a SQLite database using the compiled-in driver.
func Open(dataSourceName string) (*sql.DB, error) {
	return sql.Open(driverName, dataSourceName)
}

// Metadata describes the build that produced the index.
type Metadata struct {
	BuildID     string
	Fingerprint string
	CreatedAt   time.Time
}

const schema = `
CREATE TABLE IF NOT EXISTS build_info (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS symbols (
	id             TEXT PRIMARY KEY,
	name           TEXT NOT NULL,
	qualified_name TEXT NOT NULL,
	kind           TEXT NOT NULL,
	access         TEXT NOT NULL,
	page           TEXT NOT NULL,
	file           TEXT,
	line           INTEGER
);
CREATE INDEX IF NOT EXISTS idx_symbols_name ON symbols(name);
CREATE INDEX IF NOT EXISTS idx_symbols_qualified ON symbols(qualified_name);
`

// WriteIndex creates (or replaces the contents of) the symbol index at
// path from the resolved symbol table. Rows are inserted in
// registration order inside one transaction.
func WriteIndex(path string, idx *ir.Index, meta Metadata) error {
	db, err := Open(path)
	if err != nil {
		return fmt.Errorf("opening symbol index %s: %w", path, err)
	}
	defer db.Close()

	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("creating symbol index schema: %w", err)
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("starting symbol index transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM symbols`); err != nil {
		return err
	}
	if _, err := tx.Exec(`DELETE FROM build_info`); err != nil {
		return err
	}

	info, err := tx.Prepare(`INSERT INTO build_info (key, value) VALUES (?, ?)`)
	if err != nil {
		return err
	}
	defer info.Close()
	for _, kv := range [][2]string{
		{"build_id", meta.BuildID},
		{"fingerprint", meta.Fingerprint},
		{"created_at", meta.CreatedAt.UTC().Format(time.RFC3339)},
		{"driver", driverType},
	} {
		if _, err := info.Exec(kv[0], kv[1]); err != nil {
			return err
		}
	}

	insert, err := tx.Prepare(`INSERT INTO symbols
		(id, name, qualified_name, kind, access, page, file, line)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer insert.Close()

	for _, e := range idx.Entities() {
		core := e.EntityCore()
		var file string
		var line int
		if loc := core.Location(); loc != nil {
			file = loc.File
			line = loc.Line
		}
		_, err := insert.Exec(
			core.ID(),
			core.Name(),
			ir.FullyQualifiedName(e),
			ir.KindOf(e),
			string(core.Access()),
			ir.OutputFile(e),
			file,
			line,
		)
		if err != nil {
			return fmt.Errorf("indexing symbol %s: %w", core.ID(), err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("writing symbol index: %w", err)
	}
	return nil
}

// Package ir holds the render-ready intermediate representation of a C++
// API: the typed entity graph (namespaces, classes, functions, variables,
// enums, type aliases), the shared symbol table, the rich-text content
// model (blocks and phrases), and the passes that turn raw XML fragments
// into fully cross-referenced structures.
//
// Entities are built in a "raw" state holding only the unparsed fragments
// needed later; Resolve replaces those fragments with parsed trees. All
// construction and resolution threads the symbol table explicitly.
package ir

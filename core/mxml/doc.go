// Package mxml reads the game's structured-property export documents
// (MXML/EXML) into an in-memory property tree.
//
// Every table in the export format shares the same recursive shape: a
// Property element with a name, an optional scalar value, and an ordered
// list of child Property elements. Arrays are repeated children with the
// same name. The package provides typed accessors over that shape plus a
// modification-time aware document cache so the same table can be consulted
// by several extractors without re-parsing.
//
// Scalar values arrive as text; Coerce converts them to bool/int/float64
// with fixed precedence and never fails.
package mxml

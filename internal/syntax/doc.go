// Package syntax defines the queryable syntax-tree capability that text
// objects resolve against.
//
// The editor never parses source itself. A host (an IDE plugin bridge, a
// tree-sitter parser, a test fixture) supplies a Tree whose nodes expose a
// grammar kind label, a language identifier, a byte range and their
// structural links. Everything in internal/textobject is written against
// these interfaces only, so the same resolution logic runs unchanged over
// real parse trees and over the in-memory trees in package memtree.
//
// # Offsets
//
// All offsets are byte offsets into the UTF-8 source. Ranges are half open:
// [Start, End). OffsetAt converts a 0-based line and grapheme column into an
// offset for callers that address text by position.
package syntax

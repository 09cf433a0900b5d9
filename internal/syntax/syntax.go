package syntax

import "fmt"

// Range represents a byte range in a source file.
// Start is inclusive, End is exclusive: [Start, End).
type Range struct {
	Start int
	End   int
}

// NewRange creates a new Range from start and end offsets.
func NewRange(start, end int) Range {
	return Range{Start: start, End: end}
}

// String returns a human-readable representation of the range.
func (r Range) String() string {
	return fmt.Sprintf("[%d:%d)", r.Start, r.End)
}

// Len returns the length of the range in bytes.
func (r Range) Len() int {
	return r.End - r.Start
}

// IsEmpty returns true if the range has zero length.
func (r Range) IsEmpty() bool {
	return r.Start == r.End
}

// IsValid returns true if the range is valid (Start <= End).
func (r Range) IsValid() bool {
	return r.Start <= r.End
}

// Contains returns true if the given offset is within the range.
func (r Range) Contains(offset int) bool {
	return offset >= r.Start && offset < r.End
}

// ContainsRange returns true if the given range is entirely within this range.
func (r Range) ContainsRange(other Range) bool {
	return other.Start >= r.Start && other.End <= r.End
}

// Node is a node of a parsed syntax tree.
//
// The tree owns every node; Parent is a back-reference. A node's range
// contains the ranges of all its children.
type Node interface {
	// Kind returns the grammar category label (e.g. "function_declaration",
	// "BLOCK"). An empty kind means the node has no underlying grammar node.
	Kind() string

	// Language returns the source language identifier (e.g. "go", "python").
	Language() string

	// Range returns the node's byte range.
	Range() Range

	// Text returns the source text covered by the node. Hosts that cannot
	// supply text return "".
	Text() string

	// Parent returns the enclosing node, or nil at the root.
	Parent() Node

	// Children returns the node's direct children in source order.
	Children() []Node
}

// Tree is an immutable parsed representation of one source file.
type Tree interface {
	// Root returns the root node, or nil for an empty tree.
	Root() Node

	// Len returns the length of the source in bytes.
	Len() int

	// NodeAt returns the leaf node at offset, or nil.
	NodeAt(offset int) Node
}

// Detach copies n's kind, language, range and text into a node that stays
// valid after n's tree is closed. The copy has no parent or children.
func Detach(n Node) Node {
	if n == nil {
		return nil
	}
	return &detached{kind: n.Kind(), lang: n.Language(), r: n.Range(), text: n.Text()}
}

type detached struct {
	kind, lang, text string
	r                Range
}

func (d *detached) Kind() string     { return d.kind }
func (d *detached) Language() string { return d.lang }
func (d *detached) Range() Range     { return d.r }
func (d *detached) Text() string     { return d.text }
func (d *detached) Parent() Node     { return nil }
func (d *detached) Children() []Node { return nil }

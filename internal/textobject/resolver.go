package textobject

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dshills/funcobj/internal/syntax"
)

// ErrInvalidMode is returned when a mode name is not recognized.
var ErrInvalidMode = errors.New("invalid text object mode")

// Mode selects which extent of a text object is produced.
type Mode uint8

const (
	// Inner selects the content only (the function body).
	Inner Mode = iota
	// Outer selects the whole construct (the full declaration).
	Outer
)

// String returns a string representation of the mode.
func (m Mode) String() string {
	switch m {
	case Inner:
		return "inner"
	case Outer:
		return "outer"
	default:
		return "unknown"
	}
}

// ParseMode parses a mode name: "inner" or "i", "outer", "around" or "a".
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "inner", "i":
		return Inner, nil
	case "outer", "around", "a":
		return Outer, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidMode, s)
	}
}

// MissReason explains why resolution produced nothing.
type MissReason uint8

const (
	// MissNone indicates resolution succeeded.
	MissNone MissReason = iota
	// MissNoTree indicates no syntax tree was available.
	MissNoTree
	// MissOutOfRange indicates the offset lies outside the file.
	MissOutOfRange
	// MissNoNode indicates no node exists at the offset.
	MissNoNode
	// MissNoFunction indicates the offset is not inside a function.
	MissNoFunction
	// MissBrokenLink indicates a node without an underlying grammar node was
	// met during the walk.
	MissBrokenLink
)

// String returns a string representation of the reason.
func (r MissReason) String() string {
	switch r {
	case MissNone:
		return "none"
	case MissNoTree:
		return "no syntax tree"
	case MissOutOfRange:
		return "offset out of range"
	case MissNoNode:
		return "no node at offset"
	case MissNoFunction:
		return "no enclosing function"
	case MissBrokenLink:
		return "broken tree link"
	default:
		return "unknown"
	}
}

// Selection is a resolved function text object.
type Selection struct {
	// Function is the enclosing function node.
	Function syntax.Node

	// Body is the function's body node, or nil if none was found.
	Body syntax.Node

	// Mode is the mode the range was computed for.
	Mode Mode

	// Range is the final range to select.
	Range syntax.Range
}

// Resolver resolves function text objects against syntax trees.
// It holds no per-call state and is safe for concurrent use.
type Resolver struct {
	tables Tables
}

// NewResolver creates a resolver over the given tables.
func NewResolver(tables Tables) *Resolver {
	return &Resolver{tables: tables}
}

// NewDefaultResolver creates a resolver over the built-in tables.
func NewDefaultResolver() *Resolver {
	return NewResolver(DefaultTables())
}

// Tables returns the resolver's classification tables.
func (r *Resolver) Tables() Tables {
	return r.tables
}

// IsFunction reports whether a kind label denotes a function-like node.
func (r *Resolver) IsFunction(kind string) bool {
	return r.tables.Functions.Match(kind)
}

// IsBody reports whether a kind label denotes a function body.
func (r *Resolver) IsBody(kind string) bool {
	return r.tables.Bodies.Match(kind) && !r.tables.Ignore.Match(kind)
}

// FindEnclosingFunction returns the innermost function-like node enclosing
// offset, or nil.
func (r *Resolver) FindEnclosingFunction(tree syntax.Tree, offset int) syntax.Node {
	fn, _ := r.findEnclosingFunction(tree, offset)
	return fn
}

func (r *Resolver) findEnclosingFunction(tree syntax.Tree, offset int) (syntax.Node, MissReason) {
	if tree == nil {
		return nil, MissNoTree
	}
	if offset < 0 || offset > tree.Len() {
		return nil, MissOutOfRange
	}

	leaf := tree.NodeAt(offset)
	if leaf == nil {
		return nil, MissNoNode
	}
	if leaf.Kind() == "" {
		return nil, MissBrokenLink
	}

	// A leaf is a token, never a declaration; start at its parent. An
	// offset in a gap yields the inner node holding it, which is checked
	// itself.
	start := leaf
	if len(leaf.Children()) == 0 {
		start = leaf.Parent()
	}
	for n := start; n != nil; n = n.Parent() {
		kind := n.Kind()
		if kind == "" {
			return nil, MissBrokenLink
		}
		if r.tables.Functions.Match(kind) {
			return n, MissNone
		}
	}
	return nil, MissNoFunction
}

// FindFunctionBody returns the first direct child of fn classified as a
// body, or nil. Only direct children are scanned so that the body of a
// nested function is never mistaken for fn's own.
func (r *Resolver) FindFunctionBody(fn syntax.Node) syntax.Node {
	if fn == nil {
		return nil
	}
	for _, c := range fn.Children() {
		if c != nil && r.IsBody(c.Kind()) {
			return c
		}
	}
	return nil
}

// Resolve finds the function text object at offset and computes its range
// for mode. On a miss the returned reason is not MissNone.
func (r *Resolver) Resolve(tree syntax.Tree, offset int, mode Mode) (Selection, MissReason) {
	fn, reason := r.findEnclosingFunction(tree, offset)
	if reason != MissNone {
		return Selection{}, reason
	}

	var body syntax.Node
	if mode == Inner {
		body = r.FindFunctionBody(fn)
	}

	return Selection{
		Function: fn,
		Body:     body,
		Mode:     mode,
		Range:    r.ComputeRange(fn, body, mode),
	}, MissNone
}

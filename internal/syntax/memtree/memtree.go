// Package memtree provides an in-memory syntax.Tree built from explicit node
// descriptions. It backs tests and hosts that already have structure in hand
// (for example a tree shipped over a plugin bridge) without a real parser.
package memtree

import (
	"fmt"

	"github.com/dshills/funcobj/internal/syntax"
)

// Spec describes one node to build.
type Spec struct {
	Kind     string
	Start    int
	End      int
	Children []Spec
}

// N is shorthand for building a Spec.
func N(kind string, start, end int, children ...Spec) Spec {
	return Spec{Kind: kind, Start: start, End: end, Children: children}
}

// Tree is an immutable in-memory syntax tree over a source string.
type Tree struct {
	lang string
	src  string
	root *Node
}

// New builds a tree for src in the given language.
// It returns an error if a child's range escapes its parent's range or
// children overlap or are out of order.
func New(lang, src string, root Spec) (*Tree, error) {
	t := &Tree{lang: lang, src: src}
	if root.End > len(src) || root.Start < 0 {
		return nil, fmt.Errorf("root range [%d:%d) outside source of %d bytes", root.Start, root.End, len(src))
	}
	n, err := t.build(root, nil)
	if err != nil {
		return nil, err
	}
	t.root = n
	return t, nil
}

// MustNew is like New but panics on error. Intended for fixtures.
func MustNew(lang, src string, root Spec) *Tree {
	t, err := New(lang, src, root)
	if err != nil {
		panic(err)
	}
	return t
}

func (t *Tree) build(s Spec, parent *Node) (*Node, error) {
	if s.Start > s.End {
		return nil, fmt.Errorf("node %q: start %d after end %d", s.Kind, s.Start, s.End)
	}
	n := &Node{
		tree:   t,
		kind:   s.Kind,
		r:      syntax.NewRange(s.Start, s.End),
		parent: parent,
	}
	prevEnd := s.Start
	for _, cs := range s.Children {
		if cs.Start < prevEnd || cs.End > s.End {
			return nil, fmt.Errorf("node %q: child %q [%d:%d) not ordered within [%d:%d)",
				s.Kind, cs.Kind, cs.Start, cs.End, s.Start, s.End)
		}
		c, err := t.build(cs, n)
		if err != nil {
			return nil, err
		}
		n.children = append(n.children, c)
		prevEnd = cs.End
	}
	return n, nil
}

// Root implements syntax.Tree.
func (t *Tree) Root() syntax.Node {
	if t.root == nil {
		return nil
	}
	return t.root
}

// Len implements syntax.Tree.
func (t *Tree) Len() int {
	return len(t.src)
}

// NodeAt implements syntax.Tree.
func (t *Tree) NodeAt(offset int) syntax.Node {
	if t.root == nil || offset < 0 || offset > len(t.src) {
		return nil
	}
	return syntax.LeafAt(t.root, offset)
}

// Source returns the source text.
func (t *Tree) Source() string {
	return t.src
}

// Find returns the first node of the given kind in depth-first order, or nil.
func (t *Tree) Find(kind string) *Node {
	if t.root == nil {
		return nil
	}
	return t.root.find(kind)
}

// Node is a node of an in-memory tree.
type Node struct {
	tree     *Tree
	kind     string
	r        syntax.Range
	parent   *Node
	children []*Node
}

func (n *Node) find(kind string) *Node {
	if n.kind == kind {
		return n
	}
	for _, c := range n.children {
		if f := c.find(kind); f != nil {
			return f
		}
	}
	return nil
}

// Kind implements syntax.Node.
func (n *Node) Kind() string { return n.kind }

// Language implements syntax.Node.
func (n *Node) Language() string { return n.tree.lang }

// Range implements syntax.Node.
func (n *Node) Range() syntax.Range { return n.r }

// Text implements syntax.Node.
func (n *Node) Text() string {
	return n.tree.src[n.r.Start:n.r.End]
}

// Parent implements syntax.Node.
func (n *Node) Parent() syntax.Node {
	if n.parent == nil {
		return nil
	}
	return n.parent
}

// Children implements syntax.Node.
func (n *Node) Children() []syntax.Node {
	out := make([]syntax.Node, len(n.children))
	for i, c := range n.children {
		out[i] = c
	}
	return out
}

package treesitter

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/dshills/funcobj/internal/syntax"
)

// Tree is a parsed source file. It implements syntax.Tree.
type Tree struct {
	t    *sitter.Tree
	lang string
	src  []byte
}

// Root implements syntax.Tree.
func (t *Tree) Root() syntax.Node {
	if t.t == nil {
		return nil
	}
	return t.wrap(t.t.RootNode())
}

// Len implements syntax.Tree.
func (t *Tree) Len() int {
	return len(t.src)
}

// NodeAt implements syntax.Tree.
func (t *Tree) NodeAt(offset int) syntax.Node {
	if offset < 0 || offset > len(t.src) {
		return nil
	}
	root := t.Root()
	if root == nil {
		return nil
	}
	// Some grammars end the root before trailing whitespace; the end of
	// the source still means the end of the root.
	if end := root.Range().End; offset == len(t.src) && offset > end {
		offset = end
	}
	return syntax.LeafAt(root, offset)
}

// Language returns the tree's language identifier.
func (t *Tree) Language() string {
	return t.lang
}

// Source returns the parsed source.
func (t *Tree) Source() []byte {
	return t.src
}

// Close releases the tree's resources.
func (t *Tree) Close() {
	if t.t != nil {
		t.t.Close()
		t.t = nil
	}
}

// wrap returns nil for null nodes so callers can compare against nil.
func (t *Tree) wrap(n *sitter.Node) syntax.Node {
	if n == nil || n.IsNull() {
		return nil
	}
	return &node{n: n, tree: t}
}

type node struct {
	n    *sitter.Node
	tree *Tree
}

func (n *node) Kind() string {
	return n.n.Type()
}

func (n *node) Language() string {
	return n.tree.lang
}

func (n *node) Range() syntax.Range {
	return syntax.NewRange(int(n.n.StartByte()), int(n.n.EndByte()))
}

func (n *node) Text() string {
	return n.n.Content(n.tree.src)
}

func (n *node) Parent() syntax.Node {
	return n.tree.wrap(n.n.Parent())
}

func (n *node) Children() []syntax.Node {
	kids := children(n.n)
	if n.tree.lang == LangRuby && isRubyMethod(n.n.Type()) {
		if lo, hi, ok := rubyBodySpan(n.n, kids); ok {
			out := n.tree.wrapAll(kids[:lo])
			out = append(out, &bodyNode{parent: n, kids: kids[lo:hi]})
			return append(out, n.tree.wrapAll(kids[hi:])...)
		}
	}
	return n.tree.wrapAll(kids)
}

func (t *Tree) wrapAll(kids []*sitter.Node) []syntax.Node {
	out := make([]syntax.Node, 0, len(kids))
	for _, k := range kids {
		if c := t.wrap(k); c != nil {
			out = append(out, c)
		}
	}
	return out
}

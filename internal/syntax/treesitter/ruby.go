package treesitter

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/dshills/funcobj/internal/syntax"
)

// KindRubyBody labels the body node synthesized for Ruby methods. The Ruby
// grammar places a method's statements directly under the method node.
const KindRubyBody = "body_statement"

func isRubyMethod(kind string) bool {
	return kind == "method" || kind == "singleton_method"
}

// children returns the non-null children of n in source order.
func children(n *sitter.Node) []*sitter.Node {
	count := int(n.ChildCount())
	kids := make([]*sitter.Node, 0, count)
	for i := 0; i < count; i++ {
		if c := n.Child(i); c != nil && !c.IsNull() {
			kids = append(kids, c)
		}
	}
	return kids
}

// rubyBodySpan returns the half-open index span of kids forming the body of
// method m: the named children after its name and parameters. The closing
// "end" keyword and terminators are anonymous and stay outside.
func rubyBodySpan(m *sitter.Node, kids []*sitter.Node) (lo, hi int, ok bool) {
	sigEnd := m.StartByte()
	for _, field := range []string{"name", "parameters"} {
		if f := m.ChildByFieldName(field); f != nil && f.EndByte() > sigEnd {
			sigEnd = f.EndByte()
		}
	}

	lo, hi = -1, -1
	for i, k := range kids {
		if k.StartByte() < sigEnd || !k.IsNamed() {
			continue
		}
		if lo < 0 {
			lo = i
		}
		hi = i + 1
	}
	return lo, hi, lo >= 0
}

// bodyNode groups the statements of a Ruby method.
type bodyNode struct {
	parent *node
	kids   []*sitter.Node
}

func (b *bodyNode) Kind() string {
	return KindRubyBody
}

func (b *bodyNode) Language() string {
	return b.parent.tree.lang
}

func (b *bodyNode) Range() syntax.Range {
	return syntax.NewRange(int(b.kids[0].StartByte()), int(b.kids[len(b.kids)-1].EndByte()))
}

func (b *bodyNode) Text() string {
	r := b.Range()
	return string(b.parent.tree.src[r.Start:r.End])
}

func (b *bodyNode) Parent() syntax.Node {
	return b.parent
}

func (b *bodyNode) Children() []syntax.Node {
	return b.parent.tree.wrapAll(b.kids)
}

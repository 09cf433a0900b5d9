package textobject_test

import (
	"testing"

	"github.com/dshills/funcobj/internal/syntax"
	"github.com/dshills/funcobj/internal/syntax/memtree"
	"github.com/dshills/funcobj/internal/textobject"
)

// bareNode is a host node that cannot supply its text.
type bareNode struct {
	kind string
	lang string
	r    syntax.Range
}

func (n *bareNode) Kind() string            { return n.kind }
func (n *bareNode) Language() string        { return n.lang }
func (n *bareNode) Range() syntax.Range     { return n.r }
func (n *bareNode) Text() string            { return "" }
func (n *bareNode) Parent() syntax.Node     { return nil }
func (n *bareNode) Children() []syntax.Node { return nil }

func tablesWithTrim(p textobject.TrimPolicy) textobject.Tables {
	tables := textobject.DefaultTables()
	tables.Trim = p
	return tables
}

func TestComputeRangeModes(t *testing.T) {
	tree := goSimpleTree()
	r := textobject.NewDefaultResolver()
	fn := tree.Find("function_declaration")
	body := tree.Find("block")

	if got := r.ComputeRange(fn, body, textobject.Outer); got != syntax.NewRange(0, 25) {
		t.Errorf("outer = %v, want [0:25)", got)
	}
	if got := r.ComputeRange(fn, nil, textobject.Inner); got != syntax.NewRange(0, 25) {
		t.Errorf("inner without body = %v, want [0:25)", got)
	}
	if got := r.ComputeRange(fn, body, textobject.Inner); got != syntax.NewRange(12, 24) {
		t.Errorf("inner = %v, want [12:24)", got)
	}
	if got := r.ComputeRange(nil, nil, textobject.Outer); got != (syntax.Range{}) {
		t.Errorf("nil function = %v, want zero range", got)
	}
}

func TestComputeRangeTrimPolicies(t *testing.T) {
	tree := goSimpleTree()
	fn := tree.Find("function_declaration")
	body := tree.Find("block")
	pyFn := pythonTree().Find("function_definition")
	pyBody := pythonTree().Find("block")

	tests := []struct {
		name   string
		policy textobject.TrimPolicy
		fn     syntax.Node
		body   syntax.Node
		want   syntax.Range
	}{
		{"text brace body", textobject.TrimByText, fn, body, syntax.NewRange(12, 24)},
		{"text indentation body", textobject.TrimByText, pyFn, pyBody, syntax.NewRange(13, 21)},
		{"language brace body", textobject.TrimByLanguage, fn, body, syntax.NewRange(12, 24)},
		{"language indentation body", textobject.TrimByLanguage, pyFn, pyBody, syntax.NewRange(13, 21)},
		{"none", textobject.TrimNone, fn, body, syntax.NewRange(11, 25)},
		{
			"text unavailable brace language", textobject.TrimByText, fn,
			&bareNode{kind: "block", lang: "go", r: syntax.NewRange(11, 25)},
			syntax.NewRange(12, 24),
		},
		{
			"text unavailable indentation language", textobject.TrimByText, pyFn,
			&bareNode{kind: "block", lang: "python", r: syntax.NewRange(13, 21)},
			syntax.NewRange(13, 21),
		},
		{
			"single byte body", textobject.TrimByLanguage, fn,
			&bareNode{kind: "block", lang: "go", r: syntax.NewRange(11, 12)},
			syntax.NewRange(11, 12),
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := textobject.NewResolver(tablesWithTrim(tc.policy))
			if got := r.ComputeRange(tc.fn, tc.body, textobject.Inner); got != tc.want {
				t.Errorf("inner = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestInnerRangeBraceStatementBody(t *testing.T) {
	// An indentation body holding only a set literal starts with '{' and
	// ends with '}' but has no brace tokens of its own.
	src := "def k():\n    {1}"
	N := memtree.N
	tree := memtree.MustNew("python", src,
		N("module", 0, 16,
			N("function_definition", 0, 16,
				N("def", 0, 3),
				N("identifier", 4, 5),
				N("parameters", 5, 7),
				N(":", 7, 8),
				N("block", 13, 16,
					N("expression_statement", 13, 16,
						N("set", 13, 16,
							N("{", 13, 14),
							N("integer", 14, 15),
							N("}", 15, 16),
						),
					),
				),
			),
		),
	)

	r := textobject.NewDefaultResolver()
	fn := tree.Find("function_definition")
	if got := r.ComputeRange(fn, tree.Find("block"), textobject.Inner); got != syntax.NewRange(13, 16) {
		t.Errorf("inner = %v, want untrimmed [13:16)", got)
	}

	sel, miss := r.Resolve(tree, 14, textobject.Inner)
	if miss != textobject.MissNone {
		t.Fatalf("unexpected miss %v", miss)
	}
	if got := src[sel.Range.Start:sel.Range.End]; got != "{1}" {
		t.Errorf("inner text = %q, want %q", got, "{1}")
	}
}

func TestParseTrimPolicy(t *testing.T) {
	tests := []struct {
		in      string
		want    textobject.TrimPolicy
		wantErr bool
	}{
		{"", textobject.TrimByText, false},
		{"text", textobject.TrimByText, false},
		{"Language", textobject.TrimByLanguage, false},
		{"none", textobject.TrimNone, false},
		{"kind", 0, true},
	}

	for _, tc := range tests {
		got, err := textobject.ParseTrimPolicy(tc.in)
		if (err != nil) != tc.wantErr {
			t.Errorf("ParseTrimPolicy(%q) error = %v, wantErr %v", tc.in, err, tc.wantErr)
			continue
		}
		if !tc.wantErr && got != tc.want {
			t.Errorf("ParseTrimPolicy(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

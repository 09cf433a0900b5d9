package memtree_test

import (
	"testing"

	"github.com/dshills/funcobj/internal/syntax/memtree"
)

func TestNewValidatesRanges(t *testing.T) {
	N := memtree.N

	tests := []struct {
		name string
		root memtree.Spec
	}{
		{"root past source", N("root", 0, 10)},
		{"inverted node", N("root", 0, 4, N("x", 3, 2))},
		{"child escapes parent", N("root", 0, 4, N("x", 2, 5))},
		{"overlapping children", N("root", 0, 4, N("x", 0, 3), N("y", 2, 4))},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := memtree.New("go", "abcd", tc.root); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestNodeLinks(t *testing.T) {
	N := memtree.N
	tree := memtree.MustNew("go", "f()", N("root", 0, 3,
		N("call", 0, 3,
			N("identifier", 0, 1),
			N("args", 1, 3),
		),
	))

	call := tree.Find("call")
	if call == nil {
		t.Fatal("expected call node")
	}
	if call.Text() != "f()" {
		t.Errorf("Text() = %q, want %q", call.Text(), "f()")
	}
	if call.Language() != "go" {
		t.Errorf("Language() = %q, want go", call.Language())
	}
	if p := call.Parent(); p == nil || p.Kind() != "root" {
		t.Errorf("Parent() = %v, want root", p)
	}
	if tree.Root().Parent() != nil {
		t.Error("root Parent() should be an untyped nil")
	}

	kids := call.Children()
	if len(kids) != 2 || kids[0].Kind() != "identifier" || kids[1].Kind() != "args" {
		t.Errorf("Children() = %v", kids)
	}
	if tree.Find("missing") != nil {
		t.Error("Find for a missing kind should return nil")
	}
	if tree.Len() != 3 || tree.Source() != "f()" {
		t.Errorf("Len()/Source() mismatch: %d %q", tree.Len(), tree.Source())
	}
}

package execctx_test

import (
	"errors"
	"testing"

	"github.com/dshills/funcobj/internal/dispatcher/execctx"
	"github.com/dshills/funcobj/internal/input"
	"github.com/dshills/funcobj/internal/syntax"
	"github.com/dshills/funcobj/internal/syntax/memtree"
)

type stubEditor struct{}

func (stubEditor) CursorOffset() int     { return 0 }
func (stubEditor) SetSelection(_, _ int) {}
func (stubEditor) MoveCaret(int)         {}

type stubModes struct{ name string }

func (m *stubModes) CurrentName() string { return m.name }
func (m *stubModes) Switch(name string) error {
	m.name = name
	return nil
}

type stubOperator struct{}

func (stubOperator) RegisterTarget(syntax.Range) {}

type stubSyntax map[string]syntax.Tree

func (s stubSyntax) SyntaxTree(path string) (syntax.Tree, bool) {
	t, ok := s[path]
	return t, ok
}

func TestNew(t *testing.T) {
	ctx := execctx.New(nil)
	if ctx.Count != 1 {
		t.Errorf("Count = %d, want 1", ctx.Count)
	}
	if ctx.OperatorPending() {
		t.Error("nil input context cannot have a pending operator")
	}
}

func TestNewFromInput(t *testing.T) {
	in := &input.Context{
		Mode:            "operator-pending",
		PendingCount:    5,
		PendingOperator: "d",
		FilePath:        "/path/to/file.go",
		FileType:        "go",
	}

	ctx := execctx.New(in)

	if ctx.Count != 5 {
		t.Errorf("Count = %d, want 5", ctx.Count)
	}
	if ctx.FilePath != "/path/to/file.go" || ctx.FileType != "go" {
		t.Errorf("file metadata not copied: %q %q", ctx.FilePath, ctx.FileType)
	}
	if ctx.Input != in {
		t.Error("Input not kept")
	}
	if !ctx.OperatorPending() {
		t.Error("OperatorPending() = false")
	}

	in.PendingCount = 0
	if got := execctx.New(in).Count; got != 1 {
		t.Errorf("Count without a typed count = %d, want 1", got)
	}
}

func TestMode(t *testing.T) {
	ctx := execctx.New(nil)
	if ctx.Mode() != "" {
		t.Error("empty context should have no mode")
	}

	ctx.Modes = &stubModes{name: "visual"}
	if ctx.Mode() != "visual" {
		t.Errorf("Mode() = %q, want the mode manager's", ctx.Mode())
	}

	ctx.Input = &input.Context{Mode: "operator-pending"}
	if ctx.Mode() != "operator-pending" {
		t.Errorf("Mode() = %q, want the input context's", ctx.Mode())
	}
}

func TestSyntaxTree(t *testing.T) {
	tree := memtree.MustNew("go", "x", memtree.N("source_file", 0, 1))

	ctx := execctx.New(nil)
	if _, ok := ctx.SyntaxTree(); ok {
		t.Error("tree without a syntax source")
	}

	ctx.Syntax = stubSyntax{"a.go": tree, "nil.go": nil}
	tests := []struct {
		path string
		ok   bool
	}{
		{"a.go", true},
		{"b.go", false},
		{"nil.go", false},
	}
	for _, tt := range tests {
		ctx.FilePath = tt.path
		if got, ok := ctx.SyntaxTree(); ok != tt.ok || (ok && got != tree) {
			t.Errorf("SyntaxTree(%s) = %v, %v", tt.path, got, ok)
		}
	}
}

func TestRequire(t *testing.T) {
	full := func() *execctx.ExecutionContext {
		ctx := execctx.New(nil)
		ctx.Editor = stubEditor{}
		ctx.Syntax = stubSyntax{}
		ctx.Modes = &stubModes{}
		ctx.Operator = stubOperator{}
		return ctx
	}
	all := execctx.NeedEditor | execctx.NeedSyntax | execctx.NeedModes | execctx.NeedOperator

	tests := []struct {
		name   string
		mutate func(*execctx.ExecutionContext)
		needs  execctx.Need
		want   []error
	}{
		{"complete", func(*execctx.ExecutionContext) {}, all, nil},
		{"no editor", func(c *execctx.ExecutionContext) { c.Editor = nil }, all, []error{execctx.ErrMissingEditor}},
		{"no syntax", func(c *execctx.ExecutionContext) { c.Syntax = nil }, all, []error{execctx.ErrMissingSyntax}},
		{"no modes", func(c *execctx.ExecutionContext) { c.Modes = nil }, all, []error{execctx.ErrMissingModes}},
		{"no operator", func(c *execctx.ExecutionContext) { c.Operator = nil }, all, []error{execctx.ErrMissingOperator}},
		{"unneeded", func(c *execctx.ExecutionContext) { c.Syntax, c.Operator = nil, nil }, execctx.NeedEditor | execctx.NeedModes, nil},
		{"several", func(c *execctx.ExecutionContext) { c.Editor, c.Operator = nil, nil }, all, []error{execctx.ErrMissingEditor, execctx.ErrMissingOperator}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := full()
			tt.mutate(ctx)
			err := ctx.Require(tt.needs)
			if (err == nil) != (len(tt.want) == 0) {
				t.Fatalf("Require() = %v, want %v", err, tt.want)
			}
			for _, want := range tt.want {
				if !errors.Is(err, want) {
					t.Errorf("Require() = %v, missing %v", err, want)
				}
			}
		})
	}
}

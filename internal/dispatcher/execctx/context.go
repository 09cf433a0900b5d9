// Package execctx carries what a handler needs to act on the editor.
package execctx

import (
	"errors"

	"github.com/dshills/funcobj/internal/input"
	"github.com/dshills/funcobj/internal/syntax"
)

// SyntaxSource supplies the parsed tree of a buffer. ok is false when the
// buffer is unknown or has not been parsed.
type SyntaxSource interface {
	SyntaxTree(path string) (tree syntax.Tree, ok bool)
}

// Editor is the caret and selection of the active buffer, in byte
// offsets.
type Editor interface {
	CursorOffset() int
	// SetSelection selects [anchor, head) with the caret at head.
	SetSelection(anchor, head int)
	// MoveCaret moves the caret and drops any selection.
	MoveCaret(offset int)
}

type Modes interface {
	CurrentName() string
	Switch(name string) error
}

// OperatorSink receives the target range of a pending operator.
type OperatorSink interface {
	RegisterTarget(r syntax.Range)
}

// ExecutionContext is built by the dispatcher for a single action.
type ExecutionContext struct {
	Syntax   SyntaxSource
	Editor   Editor
	Modes    Modes
	Operator OperatorSink

	// Input is the key-level state the action was typed in; nil for
	// actions from scripts or the command line.
	Input *input.Context

	FilePath string
	FileType string

	// Count is the repeat count, at least 1.
	Count int
}

// New returns a context seeded from in, which may be nil.
func New(in *input.Context) *ExecutionContext {
	ctx := &ExecutionContext{Input: in, Count: 1}
	if in != nil {
		ctx.Count = in.Count()
		ctx.FilePath = in.FilePath
		ctx.FileType = in.FileType
	}
	return ctx
}

// Mode is the mode the action was typed in, falling back to the mode
// manager's current mode.
func (ctx *ExecutionContext) Mode() string {
	switch {
	case ctx.Input != nil && ctx.Input.Mode != "":
		return ctx.Input.Mode
	case ctx.Modes != nil:
		return ctx.Modes.CurrentName()
	}
	return ""
}

func (ctx *ExecutionContext) OperatorPending() bool {
	return ctx.Input != nil && ctx.Input.HasPendingOperator()
}

// SyntaxTree returns the tree for FilePath.
func (ctx *ExecutionContext) SyntaxTree() (syntax.Tree, bool) {
	if ctx.Syntax == nil {
		return nil, false
	}
	tree, ok := ctx.Syntax.SyntaxTree(ctx.FilePath)
	return tree, ok && tree != nil
}

// Require reports every collaborator in needs that is not set. The
// result matches the ErrMissing errors with errors.Is.
func (ctx *ExecutionContext) Require(needs Need) error {
	have := map[Need]bool{
		NeedEditor:   ctx.Editor != nil,
		NeedSyntax:   ctx.Syntax != nil,
		NeedModes:    ctx.Modes != nil,
		NeedOperator: ctx.Operator != nil,
	}
	var errs []error
	for n := NeedEditor; n <= NeedOperator; n <<= 1 {
		if needs&n != 0 && !have[n] {
			errs = append(errs, n.err())
		}
	}
	return errors.Join(errs...)
}

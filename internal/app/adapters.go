package app

import (
	"github.com/dshills/funcobj/internal/dispatcher/execctx"
	"github.com/dshills/funcobj/internal/input"
	"github.com/dshills/funcobj/internal/input/mode"
	"github.com/dshills/funcobj/internal/plugin/api"
	"github.com/dshills/funcobj/internal/syntax"
	"github.com/dshills/funcobj/internal/textobject"
)

// EditorAdapter adapts the active document to execctx.Editor.
// With no active document the caret reads as 0 and writes are dropped.
type EditorAdapter struct {
	docs *DocumentManager
}

// NewEditorAdapter creates an editor adapter over docs.
func NewEditorAdapter(docs *DocumentManager) *EditorAdapter {
	return &EditorAdapter{docs: docs}
}

// CursorOffset returns the caret offset of the active document.
func (a *EditorAdapter) CursorOffset() int {
	if doc := a.docs.Active(); doc != nil {
		return doc.Caret()
	}
	return 0
}

// SetSelection selects [anchor, head) in the active document.
func (a *EditorAdapter) SetSelection(anchor, head int) {
	if doc := a.docs.Active(); doc != nil {
		doc.setSelection(anchor, head)
	}
}

// MoveCaret moves the caret of the active document.
func (a *EditorAdapter) MoveCaret(offset int) {
	if doc := a.docs.Active(); doc != nil {
		doc.moveCaret(offset)
	}
}

// OperatorAdapter records operator targets on the active document.
type OperatorAdapter struct {
	docs *DocumentManager
}

// NewOperatorAdapter creates an operator adapter over docs.
func NewOperatorAdapter(docs *DocumentManager) *OperatorAdapter {
	return &OperatorAdapter{docs: docs}
}

// RegisterTarget records r as the pending operator's target.
func (a *OperatorAdapter) RegisterTarget(r syntax.Range) {
	if doc := a.docs.Active(); doc != nil {
		doc.setTarget(r)
	}
}

// scriptTextObjects exposes the application's text objects to scripts.
type scriptTextObjects struct {
	app *Application
}

func (s scriptTextObjects) Caret() (int, bool) {
	doc := s.app.documents.Active()
	if doc == nil {
		return 0, false
	}
	return doc.Caret(), true
}

func (s scriptTextObjects) SelectFunction(offset int, m textobject.Mode) (textobject.Selection, textobject.MissReason) {
	return s.app.SelectFunction(offset, m)
}

// ApplyTextObject reports the resulting selection in visual modes and the
// operator target otherwise.
func (s scriptTextObjects) ApplyTextObject(m textobject.Mode) (syntax.Range, bool, error) {
	result := s.app.ApplyTextObject(m, input.SourcePlugin)
	if result.IsError() {
		return syntax.Range{}, false, result.Error
	}
	if !result.IsOK() || result.Range == nil {
		return syntax.Range{}, false, nil
	}
	return *result.Range, true, nil
}

// scriptModes adapts the mode manager to api.ModeProvider.
type scriptModes struct {
	modes *mode.Manager
}

func (s scriptModes) Current() string          { return s.modes.CurrentName() }
func (s scriptModes) Switch(name string) error { return s.modes.Switch(name) }
func (s scriptModes) Is(name string) bool      { return s.modes.IsMode(name) }

var (
	_ api.TextObjectProvider = scriptTextObjects{}
	_ api.ModeProvider       = scriptModes{}

	_ execctx.Editor       = (*EditorAdapter)(nil)
	_ execctx.OperatorSink = (*OperatorAdapter)(nil)
	_ execctx.SyntaxSource = (*DocumentManager)(nil)
)

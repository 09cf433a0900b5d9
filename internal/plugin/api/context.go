package api

import (
	"github.com/dshills/funcobj/internal/input/keymap"
	"github.com/dshills/funcobj/internal/syntax"
	"github.com/dshills/funcobj/internal/textobject"
)

// Context is what the modules can reach in the host. Any field may be nil;
// the affected functions then report nothing or raise an error.
type Context struct {
	TextObject TextObjectProvider
	Mode       ModeProvider
	Keymap     KeymapProvider
}

// TextObjectProvider resolves and applies the function text objects in
// the active document.
type TextObjectProvider interface {
	Caret() (int, bool)

	// SelectFunction resolves without changing caret, selection or mode.
	SelectFunction(offset int, m textobject.Mode) (textobject.Selection, textobject.MissReason)

	// ApplyTextObject acts at the caret as typing the keys would. ok is
	// false on a miss.
	ApplyTextObject(m textobject.Mode) (r syntax.Range, ok bool, err error)
}

type ModeProvider interface {
	Current() string
	Switch(mode string) error
	Is(mode string) bool
}

// KeymapProvider is satisfied by *keymap.Registry.
type KeymapProvider interface {
	Register(km *keymap.Keymap) error
	Unregister(name string)
	Get(name string) *keymap.Keymap
	AllBindings(mode string) []keymap.Binding
	Resolve(keys, mode string) (string, bool)
}

var _ KeymapProvider = (*keymap.Registry)(nil)

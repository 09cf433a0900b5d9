package keymap

import (
	"fmt"

	"github.com/dshills/funcobj/internal/input/mode"
	"github.com/dshills/funcobj/internal/input/vim"
)

// Plug names for the function text object.
const (
	PlugInnerFunction = PlugPrefix + "InnerFunction"
	PlugOuterFunction = PlugPrefix + "OuterFunction"
)

// TextObjectModes are the modes text objects are bound in: every visual
// mode plus operator-pending.
var TextObjectModes = []string{
	mode.ModeVisual,
	mode.ModeVisualLine,
	mode.ModeVisualBlock,
	mode.ModeOperatorPending,
}

// PlugKeymap returns the <Plug> aliases for the function text object in m.
func PlugKeymap(m string) *Keymap {
	return &Keymap{
		Name:   "textobject-plug-" + m,
		Mode:   m,
		Source: "default",
		Bindings: []Binding{
			{Keys: PlugInnerFunction, Action: vim.ActionInnerFunction, Description: "Select inner function", Category: "Text Objects"},
			{Keys: PlugOuterFunction, Action: vim.ActionOuterFunction, Description: "Select outer function", Category: "Text Objects"},
		},
	}
}

// DefaultFunctionKeymap returns the default "i<key>" / "a<key>" bindings in
// m, forwarding to the <Plug> aliases.
func DefaultFunctionKeymap(m string, key rune) *Keymap {
	return &Keymap{
		Name:   "textobject-default-" + m,
		Mode:   m,
		Source: "default",
		Bindings: []Binding{
			{Keys: fmt.Sprintf("%c %c", vim.PrefixInner.Key(), key), Action: PlugInnerFunction, Description: "Inner function", Category: "Text Objects"},
			{Keys: fmt.Sprintf("%c %c", vim.PrefixAround.Key(), key), Action: PlugOuterFunction, Description: "Around function", Category: "Text Objects"},
		},
	}
}

// LoadDefaults registers the function text object in every text-object mode.
// The <Plug> aliases are always registered; the default keys are only added
// where neither the keys nor the alias are already mapped, so user and
// plugin mappings registered earlier take precedence.
func LoadDefaults(r *Registry, key rune) error {
	for _, m := range TextObjectModes {
		if err := r.Register(PlugKeymap(m)); err != nil {
			return err
		}
		if _, err := r.AddIfMissing(DefaultFunctionKeymap(m, key)); err != nil {
			return err
		}
	}
	return nil
}

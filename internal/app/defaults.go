package app

import (
	modehandler "github.com/dshills/funcobj/internal/dispatcher/handlers/mode"
	"github.com/dshills/funcobj/internal/input/keymap"
	"github.com/dshills/funcobj/internal/input/mode"
)

// defaultModeKeymaps returns the mode switching keys: v, V and <C-v> to
// enter (or toggle) the visual modes and <Esc> to return to normal.
func defaultModeKeymaps() []*keymap.Keymap {
	visualKeys := []keymap.Binding{
		{Keys: "v", Action: modehandler.ActionVisual, Description: "Visual mode", Category: "Mode"},
		{Keys: "V", Action: modehandler.ActionVisualLine, Description: "Visual line mode", Category: "Mode"},
		{Keys: "<C-v>", Action: modehandler.ActionVisualBlock, Description: "Visual block mode", Category: "Mode"},
	}
	escape := keymap.Binding{Keys: "<Esc>", Action: modehandler.ActionNormal, Description: "Normal mode", Category: "Mode"}

	keymaps := []*keymap.Keymap{
		{Name: "mode-default-" + mode.ModeNormal, Mode: mode.ModeNormal, Source: "default", Bindings: visualKeys},
		{Name: "mode-default-" + mode.ModeOperatorPending, Mode: mode.ModeOperatorPending, Source: "default", Bindings: []keymap.Binding{escape}},
	}
	for _, m := range []string{mode.ModeVisual, mode.ModeVisualLine, mode.ModeVisualBlock} {
		bindings := append([]keymap.Binding{escape}, visualKeys...)
		keymaps = append(keymaps, &keymap.Keymap{
			Name:     "mode-default-" + m,
			Mode:     m,
			Source:   "default",
			Bindings: bindings,
		})
	}
	return keymaps
}

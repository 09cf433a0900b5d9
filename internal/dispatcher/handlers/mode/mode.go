package mode

import (
	"github.com/dshills/funcobj/internal/dispatcher/execctx"
	"github.com/dshills/funcobj/internal/dispatcher/handler"
	"github.com/dshills/funcobj/internal/input"
	inputmode "github.com/dshills/funcobj/internal/input/mode"
)

const (
	ActionNormal      = "mode.normal"      // <Esc>
	ActionVisual      = "mode.visual"      // v
	ActionVisualLine  = "mode.visualLine"  // V
	ActionVisualBlock = "mode.visualBlock" // <C-v>
)

// visualTargets maps each toggle action to the mode it enters.
var visualTargets = map[string]string{
	ActionVisual:      inputmode.ModeVisual,
	ActionVisualLine:  inputmode.ModeVisualLine,
	ActionVisualBlock: inputmode.ModeVisualBlock,
}

const needs = execctx.NeedEditor | execctx.NeedModes

// ModeHandler is the "mode" namespace.
type ModeHandler struct {
	*handler.Actions
}

func NewModeHandler() *ModeHandler {
	actions := handler.NewActions("mode")
	actions.Register(ActionNormal, func(_ input.Action, ctx *execctx.ExecutionContext) handler.Result {
		if err := ctx.Require(needs); err != nil {
			return handler.Error(err)
		}
		return toNormal(ctx)
	})
	for action, target := range visualTargets {
		actions.Register(action, func(_ input.Action, ctx *execctx.ExecutionContext) handler.Result {
			if err := ctx.Require(needs); err != nil {
				return handler.Error(err)
			}
			return toggleVisual(ctx, target)
		})
	}
	return &ModeHandler{Actions: actions}
}

// toNormal collapses the selection onto the caret, drops any pending
// operator or count and enters normal mode.
func toNormal(ctx *execctx.ExecutionContext) handler.Result {
	ctx.Editor.MoveCaret(ctx.Editor.CursorOffset())
	if ctx.Input != nil {
		ctx.Input.ClearPending()
	}
	return enter(ctx, inputmode.ModeNormal)
}

// toggleVisual enters target with the selection anchored at the caret.
// Pressing the key of the active visual mode again returns to normal;
// moving between visual kinds keeps the selection.
func toggleVisual(ctx *execctx.ExecutionContext, target string) handler.Result {
	current := ctx.Modes.CurrentName()
	switch {
	case current == target:
		return toNormal(ctx)
	case !inputmode.IsVisual(current):
		caret := ctx.Editor.CursorOffset()
		ctx.Editor.SetSelection(caret, caret)
	}
	return enter(ctx, target)
}

func enter(ctx *execctx.ExecutionContext, name string) handler.Result {
	if err := ctx.Modes.Switch(name); err != nil {
		return handler.Error(err)
	}
	return handler.Success().WithModeChange(name)
}

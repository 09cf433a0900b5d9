package textobject

import (
	"github.com/dshills/funcobj/internal/dispatcher/execctx"
	"github.com/dshills/funcobj/internal/dispatcher/handler"
	"github.com/dshills/funcobj/internal/input"
	"github.com/dshills/funcobj/internal/input/mode"
	"github.com/dshills/funcobj/internal/input/vim"
	"github.com/dshills/funcobj/internal/logging"
	"github.com/dshills/funcobj/internal/syntax"
	textobj "github.com/dshills/funcobj/internal/textobject"
)

// Action names for function text objects.
const (
	ActionInnerFunction = vim.ActionInnerFunction // if - function body
	ActionOuterFunction = vim.ActionOuterFunction // af - whole declaration
)

// Result detail keys.
const (
	DetailKind = "kind" // grammar kind of the selected function
	DetailMode = "mode" // "inner" or "outer"
	DetailMiss = "miss" // reason a resolution produced nothing
)

// FunctionHandler selects function text objects.
type FunctionHandler struct {
	resolver *textobj.Resolver
	log      *logging.Logger
}

// NewFunctionHandler creates a handler resolving with resolver.
// A nil resolver uses the built-in tables; a nil logger discards output.
func NewFunctionHandler(resolver *textobj.Resolver, log *logging.Logger) *FunctionHandler {
	if resolver == nil {
		resolver = textobj.NewDefaultResolver()
	}
	if log == nil {
		log = logging.Discard()
	}
	return &FunctionHandler{
		resolver: resolver,
		log:      log.WithComponent("textobject"),
	}
}

// Namespace returns the textobject namespace.
func (h *FunctionHandler) Namespace() string {
	return "textobject"
}

// CanHandle returns true if this handler can process the action.
func (h *FunctionHandler) CanHandle(actionName string) bool {
	switch actionName {
	case ActionInnerFunction, ActionOuterFunction:
		return true
	}
	return false
}

// HandleAction processes a function text-object action.
func (h *FunctionHandler) HandleAction(action input.Action, ctx *execctx.ExecutionContext) handler.Result {
	switch action.Name {
	case ActionInnerFunction:
		return h.apply(action, ctx, textobj.Inner)
	case ActionOuterFunction:
		return h.apply(action, ctx, textobj.Outer)
	default:
		return handler.Errorf("unknown textobject action: %s", action.Name)
	}
}

// apply resolves the function around the caret and hands the range to the
// pending operator, or selects it. Nothing is touched on a miss.
func (h *FunctionHandler) apply(action input.Action, ctx *execctx.ExecutionContext, m textobj.Mode) handler.Result {
	operatorPending := ctx.OperatorPending()

	needs := execctx.NeedEditor | execctx.NeedSyntax | execctx.NeedModes
	if operatorPending {
		needs = execctx.NeedEditor | execctx.NeedSyntax | execctx.NeedOperator
	}
	if err := ctx.Require(needs); err != nil {
		return handler.Error(err)
	}

	offset := ctx.Editor.CursorOffset()
	if action.Args.Offset != nil {
		offset = *action.Args.Offset
	}

	tree, ok := ctx.SyntaxTree()
	if !ok {
		return h.miss(ctx, m, offset, textobj.MissNoTree)
	}

	sel, reason := h.resolver.Resolve(tree, offset, m)
	if reason != textobj.MissNone {
		return h.miss(ctx, m, offset, reason)
	}

	result := handler.Success().
		WithRange(sel.Range).
		WithDetail(DetailKind, sel.Function.Kind()).
		WithDetail(DetailMode, m.String())

	if operatorPending {
		return h.feedOperator(ctx, sel.Range, result)
	}
	return h.selectRange(ctx, sel.Range, result)
}

// feedOperator registers r as the pending operator's target and parks the
// caret at its start.
func (h *FunctionHandler) feedOperator(ctx *execctx.ExecutionContext, r syntax.Range, result handler.Result) handler.Result {
	ctx.Operator.RegisterTarget(r)
	ctx.Editor.MoveCaret(r.Start)
	return result
}

// selectRange selects r with the caret at its end and enters
// character-wise visual mode.
func (h *FunctionHandler) selectRange(ctx *execctx.ExecutionContext, r syntax.Range, result handler.Result) handler.Result {
	ctx.Editor.SetSelection(r.Start, r.End)
	if ctx.Modes.CurrentName() != mode.ModeVisual {
		if err := ctx.Modes.Switch(mode.ModeVisual); err != nil {
			return handler.Error(err)
		}
	}
	return result.WithModeChange(mode.ModeVisual)
}

func (h *FunctionHandler) miss(ctx *execctx.ExecutionContext, m textobj.Mode, offset int, reason textobj.MissReason) handler.Result {
	h.log.WithFields(map[string]any{
		"file":   ctx.FilePath,
		"offset": offset,
		"mode":   m.String(),
		"miss":   reason.String(),
	}).Debug("no function text object")
	return handler.NoOp().WithDetail(DetailMiss, reason.String())
}

package dispatcher

import (
	"github.com/dshills/funcobj/internal/dispatcher/execctx"
	"github.com/dshills/funcobj/internal/dispatcher/handler"
	"github.com/dshills/funcobj/internal/input"
	"github.com/dshills/funcobj/internal/logging"
)

// Hook observes every dispatch. Before runs ahead of the handler, may
// rewrite the action and returns false to cancel it. After sees, and may
// replace, the result.
type Hook interface {
	Before(action *input.Action, ctx *execctx.ExecutionContext) bool
	After(action input.Action, ctx *execctx.ExecutionContext, result *handler.Result)
}

// HookFuncs builds a Hook from plain functions. Either may be nil.
type HookFuncs struct {
	BeforeFunc func(action *input.Action, ctx *execctx.ExecutionContext) bool
	AfterFunc  func(action input.Action, ctx *execctx.ExecutionContext, result *handler.Result)
}

func (h HookFuncs) Before(action *input.Action, ctx *execctx.ExecutionContext) bool {
	return h.BeforeFunc == nil || h.BeforeFunc(action, ctx)
}

func (h HookFuncs) After(action input.Action, ctx *execctx.ExecutionContext, result *handler.Result) {
	if h.AfterFunc != nil {
		h.AfterFunc(action, ctx, result)
	}
}

// LogHook logs each dispatch and its outcome at debug level.
func LogHook(log *logging.Logger) Hook {
	if log == nil {
		log = logging.Discard()
	}
	log = log.WithComponent("dispatch")

	return HookFuncs{
		BeforeFunc: func(action *input.Action, ctx *execctx.ExecutionContext) bool {
			log.WithFields(map[string]any{
				"action": action.Name,
				"source": action.Source.String(),
				"mode":   ctx.Mode(),
				"count":  ctx.Count,
			}).Debug("dispatching")
			return true
		},
		AfterFunc: func(action input.Action, _ *execctx.ExecutionContext, result *handler.Result) {
			fields := map[string]any{
				"action": action.Name,
				"status": result.Status.String(),
			}
			if result.Range != nil {
				fields["range"] = result.Range.String()
			}
			if miss := result.Detail("miss"); miss != "" {
				fields["miss"] = miss
			}
			log.WithFields(fields).Debug("dispatched")
		},
	}
}

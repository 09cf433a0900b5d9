package dispatcher

import (
	"errors"
	"fmt"
	"runtime"
	"slices"
	"sync"

	"github.com/dshills/funcobj/internal/dispatcher/execctx"
	"github.com/dshills/funcobj/internal/dispatcher/handler"
	"github.com/dshills/funcobj/internal/input"
	"github.com/dshills/funcobj/internal/logging"
)

// Dispatch errors.
var (
	ErrNoHandler     = errors.New("no handler for action")
	ErrPanic         = errors.New("handler panicked")
	ErrInvalidAction = errors.New("action has no name")
)

// Dispatcher routes actions to handlers. The editor collaborators it
// copies into every execution context are fixed at construction.
type Dispatcher struct {
	mu     sync.RWMutex
	routes *routes
	hooks  []Hook

	syntax   execctx.SyntaxSource
	editor   execctx.Editor
	modes    execctx.Modes
	operator execctx.OperatorSink

	recoverPanics bool
	maxCount      int
	log           *logging.Logger
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithSyntax sets the syntax tree provider.
func WithSyntax(p execctx.SyntaxSource) Option {
	return func(d *Dispatcher) { d.syntax = p }
}

// WithEditor sets the caret and selection owner.
func WithEditor(e execctx.Editor) Option {
	return func(d *Dispatcher) { d.editor = e }
}

// WithModes sets the mode manager.
func WithModes(m execctx.Modes) Option {
	return func(d *Dispatcher) { d.modes = m }
}

// WithOperator sets the pending-operator sink.
func WithOperator(o execctx.OperatorSink) Option {
	return func(d *Dispatcher) { d.operator = o }
}

// WithLogger sets the logger. A nil logger discards output.
func WithLogger(log *logging.Logger) Option {
	return func(d *Dispatcher) {
		if log == nil {
			log = logging.Discard()
		}
		d.log = log.WithComponent("dispatcher")
	}
}

// WithPanicRecovery turns handler panics into error results. On by
// default.
func WithPanicRecovery(on bool) Option {
	return func(d *Dispatcher) { d.recoverPanics = on }
}

// WithMaxCount caps the count handed to handlers. Zero means no cap.
func WithMaxCount(n int) Option {
	return func(d *Dispatcher) { d.maxCount = n }
}

// New creates a dispatcher.
func New(opts ...Option) *Dispatcher {
	d := &Dispatcher{
		routes:        newRoutes(),
		recoverPanics: true,
		maxCount:      10000,
		log:           logging.Discard(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// ModeManager returns the mode manager.
func (d *Dispatcher) ModeManager() execctx.Modes {
	return d.modes
}

// Dispatch executes an action synchronously.
func (d *Dispatcher) Dispatch(action input.Action) handler.Result {
	return d.dispatchInternal(action, nil)
}

// DispatchWithContext executes an action with explicit input context.
func (d *Dispatcher) DispatchWithContext(action input.Action, inputCtx *input.Context) handler.Result {
	return d.dispatchInternal(action, inputCtx)
}

func (d *Dispatcher) dispatchInternal(action input.Action, inputCtx *input.Context) handler.Result {
	if action.Name == "" {
		return handler.Error(ErrInvalidAction)
	}

	ctx := d.buildContext(inputCtx)

	if action.Count > 0 {
		ctx.Count = action.Count
	}
	if d.maxCount > 0 && ctx.Count > d.maxCount {
		ctx.Count = d.maxCount
	}

	hooks := d.snapshotHooks()
	for _, hook := range hooks {
		if !hook.Before(&action, ctx) {
			return handler.Cancelled("cancelled by hook")
		}
	}

	h := d.routes.lookup(action)
	if h == nil {
		return handler.Error(fmt.Errorf("%w: %s", ErrNoHandler, action.Name))
	}

	var result handler.Result
	if d.recoverPanics {
		result = d.executeWithRecovery(h, action, ctx)
	} else {
		result = h.Handle(action, ctx)
	}

	d.processResult(action, result, ctx)
	for _, hook := range hooks {
		hook.After(action, ctx, &result)
	}

	return result
}

// executeWithRecovery executes a handler with panic recovery.
func (d *Dispatcher) executeWithRecovery(h handler.Handler, action input.Action, ctx *execctx.ExecutionContext) (result handler.Result) {
	defer func() {
		if r := recover(); r != nil {
			stack := make([]byte, 4096)
			n := runtime.Stack(stack, false)

			d.log.WithField("action", action.Name).Error("handler panic: %v\n%s", r, stack[:n])
			result = handler.Error(fmt.Errorf("%w: %s: %v", ErrPanic, action.Name, r))
		}
	}()

	return h.Handle(action, ctx)
}

func (d *Dispatcher) buildContext(inputCtx *input.Context) *execctx.ExecutionContext {
	ctx := execctx.New(inputCtx)
	ctx.Syntax = d.syntax
	ctx.Editor = d.editor
	ctx.Modes = d.modes
	ctx.Operator = d.operator
	return ctx
}

// processResult applies a requested mode change the handler did not make
// itself.
func (d *Dispatcher) processResult(action input.Action, result handler.Result, ctx *execctx.ExecutionContext) {
	if result.ModeChange == "" || ctx.Modes == nil {
		return
	}
	if ctx.Modes.CurrentName() == result.ModeChange {
		return
	}
	if err := ctx.Modes.Switch(result.ModeChange); err != nil {
		d.log.WithFields(map[string]any{
			"action": action.Name,
			"mode":   result.ModeChange,
		}).Warn("mode change failed: %v", err)
	}
}

// RegisterHandler adds h for the exact action name. Namespace handlers
// take precedence over it.
func (d *Dispatcher) RegisterHandler(actionName string, h handler.Handler) {
	d.routes.add(actionName, h)
}

func (d *Dispatcher) RegisterHandlerFunc(actionName string, fn handler.Func) {
	d.routes.add(actionName, fn)
}

// UnregisterHandler drops every exact handler for actionName.
func (d *Dispatcher) UnregisterHandler(actionName string) {
	d.routes.remove(actionName)
}

// RegisterNamespace routes every action in h's namespace to h, replacing
// an earlier handler of the same namespace.
func (d *Dispatcher) RegisterNamespace(h handler.NamespaceHandler) {
	d.routes.addNamespace(h)
}

func (d *Dispatcher) UnregisterNamespace(ns string) {
	d.routes.removeNamespace(ns)
}

// SetFallback handles actions nothing else accepts.
func (d *Dispatcher) SetFallback(h handler.Handler) {
	d.routes.setFallback(h)
}

// CanDispatch reports whether some handler would accept the action.
func (d *Dispatcher) CanDispatch(actionName string) bool {
	return d.routes.lookup(input.Action{Name: actionName}) != nil
}

// Routes lists the registered namespaces and exact action names.
func (d *Dispatcher) Routes() (namespaces, actions []string) {
	return d.routes.names()
}

// Use appends a hook. Hooks run in the order they were added.
func (d *Dispatcher) Use(h Hook) {
	d.mu.Lock()
	d.hooks = append(d.hooks, h)
	d.mu.Unlock()
}

func (d *Dispatcher) snapshotHooks() []Hook {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return slices.Clone(d.hooks)
}

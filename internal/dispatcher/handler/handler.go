// Package handler defines what the dispatcher routes actions to.
package handler

import (
	"github.com/dshills/funcobj/internal/dispatcher/execctx"
	"github.com/dshills/funcobj/internal/input"
)

// Handler processes actions.
type Handler interface {
	Handle(action input.Action, ctx *execctx.ExecutionContext) Result

	// CanHandle lets a registered handler decline an action.
	CanHandle(actionName string) bool
}

// Prioritized is implemented by handlers that should be tried ahead of
// others registered for the same action. Higher wins; the default is 0.
type Prioritized interface {
	Priority() int
}

// PriorityOf returns h's priority, or 0.
func PriorityOf(h Handler) int {
	if p, ok := h.(Prioritized); ok {
		return p.Priority()
	}
	return 0
}

// Func adapts a function to Handler. It accepts every action.
type Func func(action input.Action, ctx *execctx.ExecutionContext) Result

// Handle calls f.
func (f Func) Handle(action input.Action, ctx *execctx.ExecutionContext) Result {
	if f == nil {
		return Errorf("nil handler function for %s", action.Name)
	}
	return f(action, ctx)
}

// CanHandle always returns true.
func (f Func) CanHandle(string) bool { return true }

// Exact handles a single action name at a fixed priority.
type Exact struct {
	Action string
	Fn     Func
	Prio   int
}

// Handle calls Fn.
func (h *Exact) Handle(action input.Action, ctx *execctx.ExecutionContext) Result {
	return h.Fn.Handle(action, ctx)
}

// CanHandle reports whether name is the handled action.
func (h *Exact) CanHandle(name string) bool { return name == h.Action }

// Priority returns Prio.
func (h *Exact) Priority() int { return h.Prio }

// NamespaceHandler handles the actions of one namespace, the prefix before
// the first dot ("textobject" in "textobject.innerFunction").
type NamespaceHandler interface {
	HandleAction(action input.Action, ctx *execctx.ExecutionContext) Result
	CanHandle(actionName string) bool
	Namespace() string
}

// AsHandler adapts a NamespaceHandler to Handler.
func AsHandler(h NamespaceHandler) Handler {
	return namespaceHandler{h}
}

type namespaceHandler struct{ NamespaceHandler }

func (n namespaceHandler) Handle(action input.Action, ctx *execctx.ExecutionContext) Result {
	return n.HandleAction(action, ctx)
}

// Actions is a NamespaceHandler backed by a table of functions.
type Actions struct {
	namespace string
	fns       map[string]Func
}

// NewActions creates an empty action table for namespace.
func NewActions(namespace string) *Actions {
	return &Actions{namespace: namespace, fns: make(map[string]Func)}
}

// Register sets the function for an action name.
func (a *Actions) Register(name string, fn Func) {
	a.fns[name] = fn
}

// Namespace returns the namespace.
func (a *Actions) Namespace() string { return a.namespace }

// CanHandle reports whether name is registered.
func (a *Actions) CanHandle(name string) bool {
	_, ok := a.fns[name]
	return ok
}

// HandleAction runs the registered function.
func (a *Actions) HandleAction(action input.Action, ctx *execctx.ExecutionContext) Result {
	fn, ok := a.fns[action.Name]
	if !ok {
		return Errorf("%s: unknown action %s", a.namespace, action.Name)
	}
	return fn(action, ctx)
}

package handler_test

import (
	"testing"

	"github.com/dshills/funcobj/internal/dispatcher/execctx"
	"github.com/dshills/funcobj/internal/dispatcher/handler"
	"github.com/dshills/funcobj/internal/input"
)

func ok(msg string) handler.Func {
	return func(action input.Action, ctx *execctx.ExecutionContext) handler.Result {
		return handler.SuccessWithMessage(msg)
	}
}

func TestFunc(t *testing.T) {
	var f handler.Func = ok("ran")

	if !f.CanHandle("anything") {
		t.Error("Func should accept every action")
	}
	if got := f.Handle(input.Action{Name: "x"}, execctx.New(nil)); got.Message != "ran" {
		t.Errorf("Message = %q", got.Message)
	}
	if handler.PriorityOf(f) != 0 {
		t.Errorf("PriorityOf(Func) = %d, want 0", handler.PriorityOf(f))
	}

	var nilFn handler.Func
	if got := nilFn.Handle(input.Action{Name: "x"}, execctx.New(nil)); got.Status != handler.StatusError {
		t.Errorf("nil Func status = %v, want error", got.Status)
	}
}

func TestExact(t *testing.T) {
	h := &handler.Exact{Action: "textobject.innerFunction", Fn: ok("inner"), Prio: 50}

	tests := []struct {
		name string
		want bool
	}{
		{"textobject.innerFunction", true},
		{"textobject.outerFunction", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := h.CanHandle(tt.name); got != tt.want {
			t.Errorf("CanHandle(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
	if handler.PriorityOf(h) != 50 {
		t.Errorf("PriorityOf = %d, want 50", handler.PriorityOf(h))
	}
	if got := h.Handle(input.Action{Name: "textobject.innerFunction"}, execctx.New(nil)); got.Message != "inner" {
		t.Errorf("Message = %q", got.Message)
	}
	if got := (&handler.Exact{Action: "a"}).Handle(input.Action{Name: "a"}, execctx.New(nil)); got.Status != handler.StatusError {
		t.Errorf("Exact without Fn status = %v, want error", got.Status)
	}
}

func TestActions(t *testing.T) {
	a := handler.NewActions("textobject")
	a.Register("textobject.outerFunction", ok("outer"))

	if a.Namespace() != "textobject" {
		t.Errorf("Namespace() = %q", a.Namespace())
	}
	if !a.CanHandle("textobject.outerFunction") || a.CanHandle("textobject.innerWord") {
		t.Error("CanHandle should follow the table")
	}
	if got := a.HandleAction(input.Action{Name: "textobject.outerFunction"}, execctx.New(nil)); got.Message != "outer" {
		t.Errorf("Message = %q", got.Message)
	}
	if got := a.HandleAction(input.Action{Name: "textobject.innerWord"}, execctx.New(nil)); got.Status != handler.StatusError {
		t.Errorf("unknown action status = %v, want error", got.Status)
	}
}

func TestAsHandler(t *testing.T) {
	a := handler.NewActions("mode")
	a.Register("mode.visual", ok("visual"))

	h := handler.AsHandler(a)
	if !h.CanHandle("mode.visual") || h.CanHandle("mode.insert") {
		t.Error("adapter should forward CanHandle")
	}
	if handler.PriorityOf(h) != 0 {
		t.Errorf("PriorityOf(adapter) = %d", handler.PriorityOf(h))
	}
	if got := h.Handle(input.Action{Name: "mode.visual"}, execctx.New(nil)); got.Message != "visual" {
		t.Errorf("Message = %q", got.Message)
	}
}

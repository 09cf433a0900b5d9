package api

import (
	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/funcobj/internal/plugin/security"
	"github.com/dshills/funcobj/internal/syntax"
	"github.com/dshills/funcobj/internal/textobject"
)

// TextObjectModule is ks.textobject.
type TextObjectModule struct {
	ctx *Context
}

func NewTextObjectModule(ctx *Context) *TextObjectModule { return &TextObjectModule{ctx: ctx} }

func (m *TextObjectModule) Name() string { return "textobject" }

func (m *TextObjectModule) RequiredCapability() security.Capability {
	return security.CapabilityTextObject
}

// Open builds the table. "function" is an alias of find so scripts can
// write ks.textobject["function"](offset).
func (m *TextObjectModule) Open(L *lua.LState) *lua.LTable {
	tbl := newModuleTable(L, map[string]lua.LGFunction{
		"caret":  m.caret,
		"find":   m.find,
		"select": m.selectObject,
	}, map[string]string{
		"INNER": textobject.Inner.String(),
		"OUTER": textobject.Outer.String(),
	})
	tbl.RawSetString("function", tbl.RawGetString("find"))
	return tbl
}

// caret() -> offset or nil
func (m *TextObjectModule) caret(L *lua.LState) int {
	if m.ctx.TextObject == nil {
		L.Push(lua.LNil)
		return 1
	}
	offset, ok := m.ctx.TextObject.Caret()
	if !ok {
		L.Push(lua.LNil)
		return 1
	}
	L.Push(lua.LNumber(offset))
	return 1
}

// find(offset?, mode?) -> {start, end, kind, function, body} or nil, reason
// Resolves without changing the caret, selection or mode. offset defaults
// to the caret and mode to "inner".
func (m *TextObjectModule) find(L *lua.LState) int {
	if m.ctx.TextObject == nil {
		L.RaiseError("find: no text object provider available")
		return 0
	}

	offset := -1
	if L.Get(1) != lua.LNil {
		offset = L.CheckInt(1)
	} else if caret, ok := m.ctx.TextObject.Caret(); ok {
		offset = caret
	}
	mode := m.checkMode(L, 2)

	if offset < 0 {
		L.Push(lua.LNil)
		L.Push(lua.LString(textobject.MissNoTree.String()))
		return 2
	}

	sel, reason := m.ctx.TextObject.SelectFunction(offset, mode)
	if reason != textobject.MissNone {
		L.Push(lua.LNil)
		L.Push(lua.LString(reason.String()))
		return 2
	}

	tbl := rangeTable(L, sel.Range)
	L.SetField(tbl, "mode", lua.LString(sel.Mode.String()))
	if sel.Function != nil {
		fn := rangeTable(L, sel.Function.Range())
		L.SetField(fn, "kind", lua.LString(sel.Function.Kind()))
		L.SetField(tbl, "kind", lua.LString(sel.Function.Kind()))
		L.SetField(tbl, "function", fn)
	}
	if sel.Body != nil {
		body := rangeTable(L, sel.Body.Range())
		L.SetField(body, "kind", lua.LString(sel.Body.Kind()))
		L.SetField(tbl, "body", body)
	}
	L.Push(tbl)
	return 1
}

// select(mode?) -> {start, end} or nil, reason
// Applies the text object at the caret in the current mode.
func (m *TextObjectModule) selectObject(L *lua.LState) int {
	if m.ctx.TextObject == nil {
		L.RaiseError("select: no text object provider available")
		return 0
	}
	mode := m.checkMode(L, 1)

	r, ok, err := m.ctx.TextObject.ApplyTextObject(mode)
	if err != nil {
		L.RaiseError("select: %v", err)
		return 0
	}
	if !ok {
		L.Push(lua.LNil)
		L.Push(lua.LString("miss"))
		return 2
	}
	L.Push(rangeTable(L, r))
	return 1
}

func (m *TextObjectModule) checkMode(L *lua.LState, n int) textobject.Mode {
	mode, err := textobject.ParseMode(L.OptString(n, textobject.Inner.String()))
	if err != nil {
		L.ArgError(n, err.Error())
	}
	return mode
}

func rangeTable(L *lua.LState, r syntax.Range) *lua.LTable {
	tbl := L.NewTable()
	L.SetField(tbl, "start", lua.LNumber(r.Start))
	L.SetField(tbl, "end", lua.LNumber(r.End))
	return tbl
}

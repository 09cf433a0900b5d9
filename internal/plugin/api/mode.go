package api

import (
	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/funcobj/internal/input/mode"
	"github.com/dshills/funcobj/internal/plugin/security"
)

// ModeModule is ks.mode. Without a mode provider scripts see a permanent
// normal mode they cannot leave.
type ModeModule struct {
	ctx *Context
}

func NewModeModule(ctx *Context) *ModeModule { return &ModeModule{ctx: ctx} }

func (m *ModeModule) Name() string { return "mode" }

func (m *ModeModule) RequiredCapability() security.Capability { return security.CapabilityMode }

func (m *ModeModule) Open(L *lua.LState) *lua.LTable {
	return newModuleTable(L, map[string]lua.LGFunction{
		"current":   m.current,
		"switch":    m.switchMode,
		"is":        m.is,
		"is_visual": m.isVisual,
	}, map[string]string{
		"NORMAL":           mode.ModeNormal,
		"VISUAL":           mode.ModeVisual,
		"VISUAL_LINE":      mode.ModeVisualLine,
		"VISUAL_BLOCK":     mode.ModeVisualBlock,
		"OPERATOR_PENDING": mode.ModeOperatorPending,
	})
}

// current() -> string
func (m *ModeModule) current(L *lua.LState) int {
	L.Push(lua.LString(m.currentName()))
	return 1
}

// switch(mode) -> nil
func (m *ModeModule) switchMode(L *lua.LState) int {
	name := L.CheckString(1)
	if name == "" {
		L.ArgError(1, "mode cannot be empty")
		return 0
	}
	if m.ctx.Mode == nil {
		L.RaiseError("switch: no mode manager available")
		return 0
	}
	if err := m.ctx.Mode.Switch(name); err != nil {
		L.RaiseError("switch: %v", err)
	}
	return 0
}

// is(mode) -> bool
func (m *ModeModule) is(L *lua.LState) int {
	name := L.CheckString(1)
	if m.ctx.Mode == nil {
		L.Push(lua.LBool(name == mode.ModeNormal))
		return 1
	}
	L.Push(lua.LBool(m.ctx.Mode.Is(name)))
	return 1
}

// is_visual() -> bool
// True in any of the three visual modes.
func (m *ModeModule) isVisual(L *lua.LState) int {
	L.Push(lua.LBool(mode.IsVisual(m.currentName())))
	return 1
}

func (m *ModeModule) currentName() string {
	if m.ctx.Mode == nil {
		return mode.ModeNormal
	}
	return m.ctx.Mode.Current()
}

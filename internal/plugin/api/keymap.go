package api

import (
	"fmt"
	"strings"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/funcobj/internal/input/keymap"
	"github.com/dshills/funcobj/internal/plugin/security"
)

// KeymapModule is ks.keymap. A script only sees and edits the bindings it
// made itself, except through list and resolve.
type KeymapModule struct {
	ctx    *Context
	script string
}

// NewKeymapModule tags every keymap it registers with the source
// "script:<script>".
func NewKeymapModule(ctx *Context, script string) *KeymapModule {
	return &KeymapModule{ctx: ctx, script: script}
}

func (m *KeymapModule) Name() string { return "keymap" }

func (m *KeymapModule) RequiredCapability() security.Capability { return security.CapabilityKeymap }

func (m *KeymapModule) Open(L *lua.LState) *lua.LTable {
	return newModuleTable(L, map[string]lua.LGFunction{
		"set":     m.set,
		"del":     m.del,
		"get":     m.get,
		"list":    m.list,
		"resolve": m.resolve,
	}, map[string]string{
		"PLUG_INNER": keymap.PlugInnerFunction,
		"PLUG_OUTER": keymap.PlugOuterFunction,
	})
}

// keysArgs reads the (mode, keys) pair every function starts with.
func keysArgs(L *lua.LState) (mode, keys string) {
	mode, keys = L.CheckString(1), L.CheckString(2)
	if keys == "" {
		L.ArgError(2, "keys cannot be empty")
	}
	return mode, keys
}

// set(mode, keys, action [, {desc=, category=, priority=}])
// action is an action name or a <Plug> name.
func (m *KeymapModule) set(L *lua.LState) int {
	mode, keys := keysArgs(L)
	action := L.CheckString(3)
	if action == "" {
		L.ArgError(3, "action cannot be empty")
	}
	reg := m.registry(L, "set")

	b := keymap.Binding{Keys: keys, Action: action}
	if opts := L.OptTable(4, nil); opts != nil {
		b.Description = tableString(opts, "desc")
		b.Category = tableString(opts, "category")
		b.Priority = int(lua.LVAsNumber(opts.RawGetString("priority")))
	}

	km := keymap.New(m.keymapName(mode, keys), mode, b)
	km.Source = "script:" + m.script
	if err := reg.Register(km); err != nil {
		L.RaiseError("set: %v", err)
	}
	return 0
}

// del(mode, keys)
func (m *KeymapModule) del(L *lua.LState) int {
	mode, keys := keysArgs(L)
	m.registry(L, "del").Unregister(m.keymapName(mode, keys))
	return 0
}

// get(mode, keys) -> binding table or nil
func (m *KeymapModule) get(L *lua.LState) int {
	mode, keys := keysArgs(L)
	var km *keymap.Keymap
	if m.ctx.Keymap != nil {
		km = m.ctx.Keymap.Get(m.keymapName(mode, keys))
	}
	if km == nil || len(km.Bindings) == 0 {
		L.Push(lua.LNil)
		return 1
	}
	tbl := bindingTable(L, km.Bindings[0])
	tbl.RawSetString("mode", lua.LString(km.Mode))
	L.Push(tbl)
	return 1
}

// list(mode) -> array of binding tables, sorted by keys
func (m *KeymapModule) list(L *lua.LState) int {
	mode := L.CheckString(1)
	out := L.NewTable()
	if m.ctx.Keymap != nil {
		for _, b := range m.ctx.Keymap.AllBindings(mode) {
			out.Append(bindingTable(L, b))
		}
	}
	L.Push(out)
	return 1
}

// resolve(mode, keys) -> action or nil, following <Plug> names
func (m *KeymapModule) resolve(L *lua.LState) int {
	mode, keys := L.CheckString(1), L.CheckString(2)
	if m.ctx.Keymap != nil {
		if action, ok := m.ctx.Keymap.Resolve(keys, mode); ok {
			L.Push(lua.LString(action))
			return 1
		}
	}
	L.Push(lua.LNil)
	return 1
}

func (m *KeymapModule) registry(L *lua.LState, fn string) KeymapProvider {
	if m.ctx.Keymap == nil {
		L.RaiseError("%s: no keymap registry available", fn)
	}
	return m.ctx.Keymap
}

// keymapName is unique per script, mode and normalized key sequence, so
// set replaces an earlier binding of the same keys.
func (m *KeymapModule) keymapName(mode, keys string) string {
	return m.script + "_" + mode + "_" + nameSafe(keymap.NormalizeKeys(keys))
}

func bindingTable(L *lua.LState, b keymap.Binding) *lua.LTable {
	tbl := L.NewTable()
	tbl.RawSetString("keys", lua.LString(b.Keys))
	tbl.RawSetString("action", lua.LString(b.Action))
	tbl.RawSetString("desc", lua.LString(b.Description))
	tbl.RawSetString("priority", lua.LNumber(b.Priority))
	tbl.RawSetString("category", lua.LString(b.Category))
	return tbl
}

// nameSafe keeps letters, digits, '-' and '_', turns spaces into '_' and
// hex-escapes every other byte as xNN.
func nameSafe(s string) string {
	var sb strings.Builder
	for i := 0; i < len(s); i++ {
		switch c := s[i]; {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9', c == '-', c == '_':
			sb.WriteByte(c)
		case c == ' ':
			sb.WriteByte('_')
		default:
			fmt.Fprintf(&sb, "x%02x", c)
		}
	}
	return sb.String()
}

func tableString(tbl *lua.LTable, field string) string {
	if s, ok := tbl.RawGetString(field).(lua.LString); ok {
		return string(s)
	}
	return ""
}

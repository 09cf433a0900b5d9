package api

import (
	"fmt"
	"slices"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/funcobj/internal/plugin/security"
)

// APIVersion is reported to scripts as ks.api_version.
const APIVersion = 1

// Module is one table of the ks namespace.
type Module interface {
	Name() string

	// RequiredCapability is "" for modules every script may load.
	RequiredCapability() security.Capability

	// Open builds the module table in L.
	Open(L *lua.LState) *lua.LTable
}

// Registry is the ordered set of modules offered to one script run.
type Registry struct {
	modules []Module
}

func NewRegistry() *Registry { return &Registry{} }

// Register appends mod. Names must be unique.
func (r *Registry) Register(mod Module) error {
	if _, ok := r.Get(mod.Name()); ok {
		return fmt.Errorf("module %q already registered", mod.Name())
	}
	r.modules = append(r.modules, mod)
	return nil
}

func (r *Registry) Get(name string) (Module, bool) {
	i := slices.IndexFunc(r.modules, func(m Module) bool { return m.Name() == name })
	if i < 0 {
		return nil, false
	}
	return r.modules[i], true
}

// Names lists the registered modules in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.modules))
	for i, m := range r.modules {
		names[i] = m.Name()
	}
	slices.Sort(names)
	return names
}

// Install opens every module grants allows and makes them reachable as
// require("ks") and require("ks.<name>"). It returns the installed names.
func (r *Registry) Install(L *lua.LState, grants security.Grants) []string {
	var allowed []Module
	for _, m := range r.modules {
		if grants.Allows(m.RequiredCapability()) {
			allowed = append(allowed, m)
		}
	}
	return install(L, allowed)
}

// InstallNamed is Install restricted to names. Unlike Install it fails on
// an unknown or ungranted module, before anything is installed.
func (r *Registry) InstallNamed(L *lua.LState, grants security.Grants, names ...string) error {
	mods := make([]Module, 0, len(names))
	for _, name := range names {
		m, ok := r.Get(name)
		if !ok {
			return fmt.Errorf("module %q not found", name)
		}
		if err := grants.Check(m.RequiredCapability(), "load module "+name); err != nil {
			return err
		}
		mods = append(mods, m)
	}
	install(L, mods)
	return nil
}

func install(L *lua.LState, mods []Module) []string {
	ks := L.NewTable()
	ks.RawSetString("api_version", lua.LNumber(APIVersion))

	names := make([]string, 0, len(mods))
	for _, m := range mods {
		tbl := m.Open(L)
		ks.RawSetString(m.Name(), tbl)
		L.PreloadModule("ks."+m.Name(), returning(tbl))
		names = append(names, m.Name())
	}
	L.PreloadModule("ks", returning(ks))
	return names
}

func returning(v lua.LValue) lua.LGFunction {
	return func(L *lua.LState) int {
		L.Push(v)
		return 1
	}
}

// DefaultRegistry offers the textobject, mode and keymap modules.
// Keymaps a script registers are tagged with scriptName.
func DefaultRegistry(ctx *Context, scriptName string) *Registry {
	return &Registry{modules: []Module{
		NewTextObjectModule(ctx),
		NewModeModule(ctx),
		NewKeymapModule(ctx, scriptName),
	}}
}

// newModuleTable builds a table of functions plus string constants.
func newModuleTable(L *lua.LState, funcs map[string]lua.LGFunction, consts map[string]string) *lua.LTable {
	tbl := L.SetFuncs(L.NewTable(), funcs)
	for k, v := range consts {
		tbl.RawSetString(k, lua.LString(v))
	}
	return tbl
}

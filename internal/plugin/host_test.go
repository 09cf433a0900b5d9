package plugin

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/dshills/funcobj/internal/input/keymap"
	"github.com/dshills/funcobj/internal/plugin/api"
	plua "github.com/dshills/funcobj/internal/plugin/lua"
	"github.com/dshills/funcobj/internal/plugin/security"
)

type stubModes struct{ current string }

func (s *stubModes) Current() string          { return s.current }
func (s *stubModes) Switch(mode string) error { s.current = mode; return nil }
func (s *stubModes) Is(mode string) bool      { return s.current == mode }

func newTestHost(t *testing.T, opts ...HostOption) (*Host, *bytes.Buffer, *stubModes) {
	t.Helper()

	modes := &stubModes{current: "normal"}
	apiCtx := &api.Context{Mode: modes, Keymap: keymap.NewRegistry()}

	var out bytes.Buffer
	opts = append([]HostOption{WithOutput(&out)}, opts...)
	host, err := NewHost(apiCtx, opts...)
	if err != nil {
		t.Fatalf("NewHost() error = %v", err)
	}
	return host, &out, modes
}

func TestNewHostWithoutAPI(t *testing.T) {
	if _, err := NewHost(nil); !errors.Is(err, ErrNoAPI) {
		t.Errorf("NewHost(nil) error = %v, want ErrNoAPI", err)
	}
}

func TestHostDefaultGrants(t *testing.T) {
	host, _, _ := newTestHost(t)
	grants := host.Grants()
	if len(grants) != 1 || grants[0] != security.CapabilityEditor {
		t.Errorf("Grants() = %v, want [editor]", grants)
	}
}

func TestHostRun(t *testing.T) {
	host, out, modes := newTestHost(t)

	err := host.Run(context.Background(), "switcher", `
		local ks = require("ks")
		print(ks.mode.current())
		ks.mode.switch(ks.mode.VISUAL)
	`)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if out.String() != "normal\n" {
		t.Errorf("output = %q, want normal", out.String())
	}
	if modes.current != "visual" {
		t.Errorf("mode = %q, want visual", modes.current)
	}
}

func TestHostRunRespectsGrants(t *testing.T) {
	host, _, _ := newTestHost(t, WithGrants(security.CapabilityMode))

	err := host.Run(context.Background(), "limited", `
		local ks = require("ks")
		assert(ks.mode ~= nil)
		assert(ks.keymap == nil)
		assert(ks.textobject == nil)
	`)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if err := host.Run(context.Background(), "limited", `require("ks.keymap")`); err == nil {
		t.Error("require of an ungranted module should fail")
	}
}

func TestHostRunError(t *testing.T) {
	host, _, _ := newTestHost(t)

	err := host.Run(context.Background(), "broken", `error("boom")`)
	var scriptErr *ScriptError
	if !errors.As(err, &scriptErr) || scriptErr.Script != "broken" {
		t.Errorf("Run() error = %v, want ScriptError for broken", err)
	}

	if _, err := uuid.Parse(scriptErr.RunID); err != nil {
		t.Errorf("RunID %q is not a UUID: %v", scriptErr.RunID, err)
	}

	var again *ScriptError
	if errors.As(host.Run(context.Background(), "broken", `error("boom")`), &again) && again.RunID == scriptErr.RunID {
		t.Error("each run should get its own RunID")
	}

	err = host.Run(context.Background(), "empty", "  \n")
	if !errors.Is(err, ErrInvalidScript) {
		t.Errorf("empty script error = %v, want ErrInvalidScript", err)
	}
	if errors.As(err, &scriptErr) && scriptErr.RunID != "" {
		t.Errorf("rejected script has RunID %q", scriptErr.RunID)
	}
}

func TestHostRunTimeout(t *testing.T) {
	host, _, _ := newTestHost(t, WithExecutionTimeout(50*time.Millisecond))

	err := host.Run(context.Background(), "spin", `while true do end`)
	if !errors.Is(err, plua.ErrExecutionTimeout) {
		t.Errorf("Run() error = %v, want ErrExecutionTimeout", err)
	}
}

func TestHostRunIsolatesGlobals(t *testing.T) {
	host, _, _ := newTestHost(t)

	if err := host.Run(context.Background(), "first", `leaked = 1`); err != nil {
		t.Fatal(err)
	}
	if err := host.Run(context.Background(), "second", `assert(leaked == nil)`); err != nil {
		t.Errorf("globals leaked between runs: %v", err)
	}
}

func TestHostRunFile(t *testing.T) {
	host, out, _ := newTestHost(t)
	dir := t.TempDir()

	path := filepath.Join(dir, "hello.lua")
	if err := os.WriteFile(path, []byte(`print("hello")`), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := host.RunFile(context.Background(), path); err != nil {
		t.Fatalf("RunFile() error = %v", err)
	}
	if out.String() != "hello\n" {
		t.Errorf("output = %q", out.String())
	}

	if err := host.RunFile(context.Background(), filepath.Join(dir, "missing.lua")); !errors.Is(err, ErrScriptNotFound) {
		t.Errorf("missing file error = %v, want ErrScriptNotFound", err)
	}
	if err := host.RunFile(context.Background(), filepath.Join(dir, "notes.txt")); !errors.Is(err, ErrInvalidScript) {
		t.Errorf("non-lua file error = %v, want ErrInvalidScript", err)
	}
}

func TestHostKeymapSource(t *testing.T) {
	reg := keymap.NewRegistry()
	host, err := NewHost(&api.Context{Keymap: reg})
	if err != nil {
		t.Fatal(err)
	}

	err = host.Run(context.Background(), "binder", `
		require("ks.keymap").set("visual", "i m", "<Plug>InnerFunction")
	`)
	if err != nil {
		t.Fatal(err)
	}
	km := reg.Get("binder_visual_i_m")
	if km == nil || km.Source != "script:binder" {
		t.Errorf("keymap = %+v, want source script:binder", km)
	}
}

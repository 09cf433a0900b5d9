package lua

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	lua "github.com/yuin/gopher-lua"
)

// DefaultTimeout bounds a single Exec.
const DefaultTimeout = 5 * time.Second

// Config configures a State.
type Config struct {
	// Timeout bounds each Exec. Zero leaves only the caller's context.
	Timeout time.Duration

	// Output receives print output. Nil discards it.
	Output io.Writer
}

// State is one sandboxed interpreter. gopher-lua states are not safe for
// concurrent use, so Exec and Close are serialized.
type State struct {
	mu     sync.Mutex
	l      *lua.LState
	cfg    Config
	closed bool
}

// NewState opens the base, package, table, string and math libraries and
// installs the sandbox. io, os and debug are never opened.
func NewState(cfg Config) *State {
	if cfg.Output == nil {
		cfg.Output = io.Discard
	}

	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	for _, open := range []lua.LGFunction{lua.OpenBase, lua.OpenPackage, lua.OpenTable, lua.OpenString, lua.OpenMath} {
		open(L)
	}
	NewSandbox(L, cfg.Output).Install()

	return &State{l: L, cfg: cfg}
}

// Lua returns the interpreter for installing modules. Calls made through
// it are not serialized.
func (s *State) Lua() *lua.LState { return s.l }

// Exec compiles code as the chunk named chunk and runs it. Error positions
// are reported against chunk, as in "name:3: message".
func (s *State) Exec(ctx context.Context, chunk, code string) error {
	return s.guard(ctx, func(L *lua.LState) error {
		fn, err := L.Load(strings.NewReader(code), chunk)
		if err != nil {
			return err
		}
		L.Push(fn)
		return L.PCall(0, 0, nil)
	})
}

// guard runs fn under the lock with ctx and the timeout attached to the
// interpreter. A Go panic raised from a host function becomes an error.
func (s *State) guard(ctx context.Context, fn func(*lua.LState) error) (err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStateClosed
	}
	if ctx.Err() != nil {
		return interruption(ctx.Err())
	}
	if s.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.Timeout)
		defer cancel()
	}

	s.l.SetContext(ctx)
	defer s.l.RemoveContext()

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("lua panic: %v", r)
		}
		if err != nil && ctx.Err() != nil {
			err = fmt.Errorf("%w: %v", interruption(ctx.Err()), err)
		}
	}()
	return fn(s.l)
}

// Close releases the interpreter. Later calls do nothing.
func (s *State) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.closed {
		s.l.Close()
		s.closed = true
	}
}

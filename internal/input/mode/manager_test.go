package mode

import (
	"errors"
	"testing"
)

type recordingMode struct {
	basicMode
	entered, exited int
	enterErr        error
	lastCtx         Context
}

func (m *recordingMode) Enter(ctx *Context) error {
	m.entered++
	m.lastCtx = *ctx
	return m.enterErr
}

func (m *recordingMode) Exit(ctx *Context) error {
	m.exited++
	return nil
}

func TestDefaultManager(t *testing.T) {
	m := NewDefaultManager()

	if m.CurrentName() != ModeNormal {
		t.Errorf("CurrentName() = %q, want %q", m.CurrentName(), ModeNormal)
	}

	want := []string{ModeNormal, ModeOperatorPending, ModeVisual, ModeVisualBlock, ModeVisualLine}
	got := m.Modes()
	if len(got) != len(want) {
		t.Fatalf("Modes() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Modes()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestManagerSwitch(t *testing.T) {
	m := NewDefaultManager()

	var from, to string
	m.OnChange(func(prev, next Mode) {
		from, to = prev.Name(), next.Name()
	})

	if err := m.Switch(ModeVisual); err != nil {
		t.Fatalf("Switch: %v", err)
	}
	if !m.IsMode(ModeVisual) {
		t.Errorf("current mode = %q, want visual", m.CurrentName())
	}
	if m.CurrentSelection() != SelectChar {
		t.Errorf("CurrentSelection() = %v, want char", m.CurrentSelection())
	}
	if m.Previous().Name() != ModeNormal {
		t.Errorf("Previous() = %q, want normal", m.Previous().Name())
	}
	if from != ModeNormal || to != ModeVisual {
		t.Errorf("callback saw %q -> %q", from, to)
	}
	if !m.IsMode(ModeVisualLine, ModeVisual) {
		t.Error("IsMode should match any listed name")
	}
}

func TestManagerSwitchUnknown(t *testing.T) {
	m := NewDefaultManager()
	if err := m.Switch("insert"); !errors.Is(err, ErrUnknownMode) {
		t.Fatalf("Switch(insert) error = %v, want ErrUnknownMode", err)
	}
	if m.CurrentName() != ModeNormal {
		t.Errorf("failed switch changed mode to %q", m.CurrentName())
	}
}

func TestManagerEnterExitContext(t *testing.T) {
	m := NewManager()
	a := &recordingMode{basicMode: basicMode{name: "a"}}
	b := &recordingMode{basicMode: basicMode{name: "b"}}
	m.Register(a)
	m.Register(b)

	if err := m.SetInitialMode("a"); err != nil {
		t.Fatalf("SetInitialMode: %v", err)
	}
	if err := m.Switch("b"); err != nil {
		t.Fatalf("Switch: %v", err)
	}

	if a.exited != 1 || b.entered != 1 {
		t.Errorf("a.exited=%d b.entered=%d, want 1 and 1", a.exited, b.entered)
	}
	if b.lastCtx.PreviousMode != "a" {
		t.Errorf("PreviousMode = %q, want a", b.lastCtx.PreviousMode)
	}
}

func TestManagerEnterError(t *testing.T) {
	m := NewManager()
	m.Register(NewNormalMode())
	m.Register(&recordingMode{basicMode: basicMode{name: "bad"}, enterErr: errors.New("boom")})
	_ = m.SetInitialMode(ModeNormal)

	if err := m.Switch("bad"); err == nil {
		t.Fatal("expected enter error")
	}
	if m.CurrentName() != ModeNormal {
		t.Errorf("mode changed despite error: %q", m.CurrentName())
	}
}

func TestListenerMaySwitch(t *testing.T) {
	m := NewDefaultManager()
	m.OnChange(func(_, to Mode) {
		if to.Name() == ModeOperatorPending {
			_ = m.Switch(ModeNormal)
		}
	})

	if err := m.Switch(ModeOperatorPending); err != nil {
		t.Fatalf("Switch: %v", err)
	}
	if m.CurrentName() != ModeNormal {
		t.Errorf("mode = %q, want normal", m.CurrentName())
	}
	if m.Previous().Name() != ModeOperatorPending {
		t.Errorf("Previous() = %q", m.Previous().Name())
	}
}

func TestListenerOrder(t *testing.T) {
	m := NewDefaultManager()
	var order []int
	for i := range 3 {
		m.OnChange(func(_, _ Mode) { order = append(order, i) })
	}
	_ = m.Switch(ModeVisual)

	if len(order) != 3 || order[0] != 0 || order[1] != 1 || order[2] != 2 {
		t.Errorf("listener order = %v", order)
	}
}

func TestManagerUnregisterCurrent(t *testing.T) {
	m := NewDefaultManager()
	if err := m.Unregister(ModeNormal); err == nil {
		t.Error("expected error unregistering the current mode")
	}
	if err := m.Unregister(ModeVisualBlock); err != nil {
		t.Errorf("Unregister: %v", err)
	}
	if m.Get(ModeVisualBlock) != nil {
		t.Error("visual-block still registered")
	}
}

func TestOnChangeUnsubscribe(t *testing.T) {
	m := NewDefaultManager()
	calls := 0
	off := m.OnChange(func(_, _ Mode) { calls++ })

	_ = m.Switch(ModeVisual)
	off()
	_ = m.Switch(ModeNormal)

	if calls != 1 {
		t.Errorf("callback called %d times, want 1", calls)
	}
}

func TestSelectionModeString(t *testing.T) {
	tests := map[SelectionMode]string{
		SelectNone:        "none",
		SelectChar:        "char",
		SelectLine:        "line",
		SelectBlock:       "block",
		SelectionMode(42): "unknown",
	}
	for s, want := range tests {
		if s.String() != want {
			t.Errorf("%d.String() = %q, want %q", s, s.String(), want)
		}
	}
}

func TestIsVisual(t *testing.T) {
	for _, name := range []string{ModeVisual, ModeVisualLine, ModeVisualBlock} {
		if !IsVisual(name) {
			t.Errorf("IsVisual(%q) = false", name)
		}
	}
	for _, name := range []string{ModeNormal, ModeOperatorPending, ""} {
		if IsVisual(name) {
			t.Errorf("IsVisual(%q) = true", name)
		}
	}
}

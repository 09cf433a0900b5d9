package mode

import (
	"errors"
	"fmt"
	"slices"
	"sort"
	"sync"
)

// ErrUnknownMode is returned when a transition names an unregistered mode.
var ErrUnknownMode = errors.New("unknown mode")

// ChangeFunc observes a completed transition.
type ChangeFunc func(from, to Mode)

// Manager holds the registered modes and the active one.
//
// Listeners run after the transition has been committed and outside the
// manager's lock, so they may query or switch the manager themselves.
type Manager struct {
	mu        sync.RWMutex
	modes     map[string]Mode
	current   Mode
	previous  Mode
	listeners map[int]ChangeFunc
	nextID    int
}

// NewManager returns a manager with no modes registered.
func NewManager() *Manager {
	return &Manager{
		modes:     make(map[string]Mode),
		listeners: make(map[int]ChangeFunc),
	}
}

// NewDefaultManager returns a manager with the normal, visual and
// operator-pending modes registered and normal mode active.
func NewDefaultManager() *Manager {
	m := NewManager()
	for _, md := range []Mode{
		NewNormalMode(),
		NewVisualMode(),
		NewVisualLineMode(),
		NewVisualBlockMode(),
		NewOperatorPendingMode(),
	} {
		m.Register(md)
	}
	_ = m.SetInitialMode(ModeNormal)
	return m
}

// Register adds md, replacing any mode of the same name.
func (m *Manager) Register(md Mode) {
	m.mu.Lock()
	m.modes[md.Name()] = md
	m.mu.Unlock()
}

// Unregister removes the named mode. The active mode cannot be removed.
func (m *Manager) Unregister(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.current != nil && m.current.Name() == name {
		return fmt.Errorf("mode %s is active", name)
	}
	delete(m.modes, name)
	return nil
}

// Get returns the named mode or nil.
func (m *Manager) Get(name string) Mode {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.modes[name]
}

// Modes returns the registered mode names in sorted order.
func (m *Manager) Modes() []string {
	m.mu.RLock()
	names := make([]string, 0, len(m.modes))
	for name := range m.modes {
		names = append(names, name)
	}
	m.mu.RUnlock()
	sort.Strings(names)
	return names
}

func (m *Manager) Current() Mode {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

// CurrentName is the active mode's name, or "" before initialization.
func (m *Manager) CurrentName() string {
	if cur := m.Current(); cur != nil {
		return cur.Name()
	}
	return ""
}

func (m *Manager) Previous() Mode {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.previous
}

// IsMode reports whether one of names is active.
func (m *Manager) IsMode(names ...string) bool {
	return slices.Contains(names, m.CurrentName())
}

// CurrentSelection is the selection granularity of the active mode.
func (m *Manager) CurrentSelection() SelectionMode {
	if cur := m.Current(); cur != nil {
		return cur.Selection()
	}
	return SelectNone
}

// SetInitialMode activates name without running any Exit hook or
// notifying listeners.
func (m *Manager) SetInitialMode(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	md, ok := m.modes[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownMode, name)
	}
	if err := md.Enter(&Context{}); err != nil {
		return err
	}
	m.current = md
	return nil
}

// Switch leaves the active mode and enters name. A failing Exit or Enter
// hook leaves the active mode unchanged.
func (m *Manager) Switch(name string) error {
	m.mu.Lock()
	from, to, err := m.transition(name)
	listeners := m.snapshotListeners()
	m.mu.Unlock()
	if err != nil {
		return err
	}

	for _, fn := range listeners {
		fn(from, to)
	}
	return nil
}

// transition must be called with mu held.
func (m *Manager) transition(name string) (from, to Mode, err error) {
	to, ok := m.modes[name]
	if !ok {
		return nil, nil, fmt.Errorf("%w: %s", ErrUnknownMode, name)
	}

	from = m.current
	var fromName string
	if from != nil {
		fromName = from.Name()
		if err := from.Exit(&Context{NextMode: name}); err != nil {
			return nil, nil, fmt.Errorf("exit %s: %w", fromName, err)
		}
	}
	if err := to.Enter(&Context{PreviousMode: fromName}); err != nil {
		return nil, nil, fmt.Errorf("enter %s: %w", name, err)
	}

	m.previous, m.current = from, to
	return from, to, nil
}

func (m *Manager) snapshotListeners() []ChangeFunc {
	ids := make([]int, 0, len(m.listeners))
	for id := range m.listeners {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	fns := make([]ChangeFunc, len(ids))
	for i, id := range ids {
		fns[i] = m.listeners[id]
	}
	return fns
}

// OnChange registers fn and returns a function that removes it. Listeners
// run in registration order.
func (m *Manager) OnChange(fn ChangeFunc) (remove func()) {
	m.mu.Lock()
	id := m.nextID
	m.nextID++
	m.listeners[id] = fn
	m.mu.Unlock()

	return func() {
		m.mu.Lock()
		delete(m.listeners, id)
		m.mu.Unlock()
	}
}

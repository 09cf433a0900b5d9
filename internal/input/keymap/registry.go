package keymap

import (
	"fmt"
	"sort"
	"sync"
)

// maxPlugDepth bounds <Plug> indirection so a mapping cycle cannot loop.
const maxPlugDepth = 8

// Registry manages all keymaps and provides binding lookup.
type Registry struct {
	mu sync.RWMutex

	// keymaps holds all registered keymaps by name.
	keymaps map[string]*Keymap

	// order records registration order; later keymaps win ties.
	order []string
}

// NewRegistry creates a new keymap registry.
func NewRegistry() *Registry {
	return &Registry{
		keymaps: make(map[string]*Keymap),
	}
}

// Register adds a keymap to the registry.
// If a keymap with the same name already exists, it is replaced.
func (r *Registry) Register(km *Keymap) error {
	if km == nil {
		return fmt.Errorf("cannot register nil keymap")
	}
	if err := km.Validate(); err != nil {
		return fmt.Errorf("keymap %q: %w", km.Name, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.unregisterLocked(km.Name)
	r.keymaps[km.Name] = km.Clone()
	r.order = append(r.order, km.Name)
	return nil
}

// Unregister removes a keymap from the registry.
func (r *Registry) Unregister(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.unregisterLocked(name)
}

// unregisterLocked removes a keymap without acquiring the lock.
// Caller must hold the write lock.
func (r *Registry) unregisterLocked(name string) {
	if _, ok := r.keymaps[name]; !ok {
		return
	}
	delete(r.keymaps, name)
	for i, n := range r.order {
		if n == name {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
}

// Get returns a copy of a keymap by name, or nil.
func (r *Registry) Get(name string) *Keymap {
	r.mu.RLock()
	defer r.mu.RUnlock()
	km, ok := r.keymaps[name]
	if !ok {
		return nil
	}
	return km.Clone()
}

// Names returns the registered keymap names in registration order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, len(r.order))
	copy(names, r.order)
	return names
}

// Lookup finds the best matching binding for a key sequence in a mode.
// Mode-specific keymaps are consulted together with global ones.
// Returns nil if nothing matches.
func (r *Registry) Lookup(keys, mode string) *Binding {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.lookupLocked(NormalizeKeys(keys), mode)
}

// Resolve looks up a key sequence and follows <Plug> indirection until it
// reaches a concrete action. ok is false if any step has no binding or
// the chain does not terminate.
func (r *Registry) Resolve(keys, mode string) (action string, ok bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seq := NormalizeKeys(keys)
	for depth := 0; depth < maxPlugDepth; depth++ {
		b := r.lookupLocked(seq, mode)
		if b == nil {
			return "", false
		}
		if !b.IsPlug() {
			return b.Action, true
		}
		seq = NormalizeKeys(b.Action)
	}
	return "", false
}

// HasBinding reports whether keys are bound in mode.
func (r *Registry) HasBinding(keys, mode string) bool {
	return r.Lookup(keys, mode) != nil
}

// HasMappingTo reports whether any binding in mode targets action, either
// directly or as a <Plug> name.
func (r *Registry) HasMappingTo(action, mode string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.hasMappingToLocked(action, mode)
}

// AddIfMissing registers the bindings of km that do not collide with what
// is already there: a binding is skipped when its keys are already bound in
// the keymap's mode, or when its target already has a mapping in that mode.
// The keymap is registered with the surviving bindings and the number of
// bindings added is returned.
func (r *Registry) AddIfMissing(km *Keymap) (int, error) {
	if km == nil {
		return 0, fmt.Errorf("cannot register nil keymap")
	}
	if err := km.Validate(); err != nil {
		return 0, fmt.Errorf("keymap %q: %w", km.Name, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	kept := km.Clone()
	kept.Bindings = kept.Bindings[:0]
	for _, b := range km.Bindings {
		if r.lookupLocked(b.Sequence(), km.Mode) != nil {
			continue
		}
		if r.hasMappingToLocked(b.Action, km.Mode) {
			continue
		}
		kept.Bindings = append(kept.Bindings, b)
	}

	added := len(kept.Bindings)
	if added == 0 {
		return 0, nil
	}

	if existing, ok := r.keymaps[kept.Name]; ok {
		merged := existing.Clone()
		merged.Bindings = append(merged.Bindings, kept.Bindings...)
		kept = merged
	}
	r.unregisterLocked(kept.Name)
	r.keymaps[kept.Name] = kept
	r.order = append(r.order, kept.Name)
	return added, nil
}

// AllBindings returns all bindings that apply to mode, sorted by keys.
func (r *Registry) AllBindings(mode string) []Binding {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []Binding
	for _, name := range r.order {
		km := r.keymaps[name]
		if !appliesTo(km, mode) {
			continue
		}
		out = append(out, km.Bindings...)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Keys < out[j].Keys })
	return out
}

func (r *Registry) hasMappingToLocked(action, mode string) bool {
	for _, km := range r.keymaps {
		if !appliesTo(km, mode) {
			continue
		}
		for _, b := range km.Bindings {
			if b.Action == action {
				return true
			}
		}
	}
	return false
}

// lookupLocked finds the winning binding for a normalized sequence.
// Caller must hold the lock.
func (r *Registry) lookupLocked(seq, mode string) *Binding {
	var (
		best      *Binding
		bestScore int
	)
	for _, name := range r.order {
		km := r.keymaps[name]
		if !appliesTo(km, mode) {
			continue
		}
		b := km.Find(seq)
		if b == nil {
			continue
		}
		score := km.Priority*100 + b.Priority
		if km.Mode != "" {
			score += 50
		}
		// Later registrations win ties.
		if best == nil || score >= bestScore {
			found := *b
			best, bestScore = &found, score
		}
	}
	return best
}

func appliesTo(km *Keymap, mode string) bool {
	return km.Mode == "" || km.Mode == mode
}

package keymap

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"unicode/utf8"
)

// PlugPrefix marks a named mapping target ("<Plug>InnerFunction") that
// users can rebind without knowing the action name behind it.
const PlugPrefix = "<Plug>"

// Binding maps a key sequence to an action or to a <Plug> name.
// Keys are separated by spaces: "i f", "<Esc>", "<Plug>InnerFunction".
type Binding struct {
	Keys        string `yaml:"keys"`
	Action      string `yaml:"action"`
	Description string `yaml:"description,omitempty"`
	Category    string `yaml:"category,omitempty"`
	Priority    int    `yaml:"priority,omitempty"`
}

// IsPlug reports whether the binding forwards to a <Plug> name.
func (b Binding) IsPlug() bool { return strings.HasPrefix(b.Action, PlugPrefix) }

// Sequence is the normalized form of Keys.
func (b Binding) Sequence() string { return NormalizeKeys(b.Keys) }

// Keymap is a named set of bindings for one mode. An empty Mode applies
// the keymap in every mode.
type Keymap struct {
	Name     string    `yaml:"name"`
	Mode     string    `yaml:"mode,omitempty"`
	Priority int       `yaml:"priority,omitempty"`
	Source   string    `yaml:"source,omitempty"` // "default", "user", "script:<name>"
	Bindings []Binding `yaml:"bindings"`
}

// New returns a keymap for mode holding bindings.
func New(name, mode string, bindings ...Binding) *Keymap {
	return &Keymap{Name: name, Mode: mode, Bindings: bindings}
}

// Bind appends a binding of keys to action and returns k.
func (k *Keymap) Bind(keys, action string) *Keymap {
	k.Bindings = append(k.Bindings, Binding{Keys: keys, Action: action})
	return k
}

// Find returns the binding for keys, or nil.
func (k *Keymap) Find(keys string) *Binding {
	seq := NormalizeKeys(keys)
	i := slices.IndexFunc(k.Bindings, func(b Binding) bool { return b.Sequence() == seq })
	if i < 0 {
		return nil
	}
	return &k.Bindings[i]
}

// Validate reports every malformed binding, not just the first.
func (k *Keymap) Validate() error {
	if k.Name == "" {
		return errors.New("keymap has no name")
	}
	var errs []error
	for i, b := range k.Bindings {
		if b.Action == "" {
			errs = append(errs, fmt.Errorf("binding %d (%s): empty action", i, b.Keys))
			continue
		}
		if err := ValidateKeys(b.Keys); err != nil {
			errs = append(errs, fmt.Errorf("binding %d: %w", i, err))
		}
	}
	return errors.Join(errs...)
}

// Clone returns a copy that shares no bindings with k.
func (k *Keymap) Clone() *Keymap {
	c := *k
	c.Bindings = slices.Clone(k.Bindings)
	return &c
}

// NormalizeKeys collapses runs of whitespace so "i  f" and "i f" compare equal.
func NormalizeKeys(keys string) string {
	return strings.Join(strings.Fields(keys), " ")
}

// ValidateKeys checks a key sequence. Each key is a single character or a
// bracketed name such as <Esc> or <Plug>InnerFunction.
func ValidateKeys(keys string) error {
	fields := strings.Fields(keys)
	if len(fields) == 0 {
		return errors.New("empty key sequence")
	}
	for _, key := range fields {
		if !validKey(key) {
			return fmt.Errorf("invalid key %q in %q", key, keys)
		}
	}
	return nil
}

func validKey(key string) bool {
	if utf8.RuneCountInString(key) == 1 {
		return true
	}
	return len(key) > 2 && key[0] == '<' && strings.Contains(key[1:], ">")
}

package vim

import (
	"fmt"
	"sort"
	"sync"
	"unicode/utf8"

	"github.com/dshills/funcobj/internal/input"
)

// TextObject represents a Vim text object.
// Text objects select regions of text based on structure rather than motion.
type TextObject struct {
	// Name is the text object identifier (e.g., "function").
	Name string

	// Key is the key that identifies this text object type.
	Key rune

	// InnerAction is the action to dispatch for the "inner" variant.
	InnerAction string

	// AroundAction is the action for the "around" variant.
	AroundAction string
}

// Action names for the function text object.
const (
	ActionInnerFunction = "textobject.innerFunction"
	ActionOuterFunction = "textobject.outerFunction"
)

// DefaultFunctionKey is the key used for the function text object when no
// valid key is configured.
const DefaultFunctionKey = 'f'

// TextObjFunction is the function text object with its default key.
var TextObjFunction = TextObject{
	Name:         "function",
	Key:          DefaultFunctionKey,
	InnerAction:  ActionInnerFunction,
	AroundAction: ActionOuterFunction,
}

// FunctionKey returns the key for the function text object from a
// configured string. Anything other than exactly one character falls back
// to DefaultFunctionKey.
func FunctionKey(configured string) rune {
	if utf8.RuneCountInString(configured) != 1 {
		return DefaultFunctionKey
	}
	r, _ := utf8.DecodeRuneInString(configured)
	if r == utf8.RuneError || r == ' ' {
		return DefaultFunctionKey
	}
	return r
}

// Table maps text object keys to their definitions.
type Table struct {
	mu      sync.RWMutex
	objects map[rune]*TextObject
}

// NewTable creates a table holding the given text objects.
func NewTable(objs ...TextObject) (*Table, error) {
	t := &Table{objects: make(map[rune]*TextObject, len(objs))}
	for _, obj := range objs {
		if err := t.Register(obj); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// DefaultTable returns a table with the function text object bound to key.
func DefaultTable(key rune) *Table {
	obj := TextObjFunction
	obj.Key = key
	t, _ := NewTable(obj)
	return t
}

// Register adds a text object. A key can only be claimed once.
func (t *Table) Register(obj TextObject) error {
	if obj.Key == 0 {
		return fmt.Errorf("text object %q: missing key", obj.Name)
	}
	if obj.InnerAction == "" || obj.AroundAction == "" {
		return fmt.Errorf("text object %q: missing action", obj.Name)
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if existing, ok := t.objects[obj.Key]; ok {
		return fmt.Errorf("text object %q: key %q already used by %q", obj.Name, obj.Key, existing.Name)
	}
	t.objects[obj.Key] = &obj
	return nil
}

// Get returns the text object for the given key.
// Returns nil if the key is not a text object.
func (t *Table) Get(key rune) *TextObject {
	t.mu.RLock()
	defer t.mu.RUnlock()
	obj, ok := t.objects[key]
	if !ok {
		return nil
	}
	copy := *obj
	return &copy
}

// IsTextObject returns true if the key is a text object.
func (t *Table) IsTextObject(key rune) bool {
	return t.Get(key) != nil
}

// Keys returns all text object key characters in sorted order.
func (t *Table) Keys() []rune {
	t.mu.RLock()
	defer t.mu.RUnlock()
	keys := make([]rune, 0, len(t.objects))
	for k := range t.objects {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// Resolve turns a prefix key and an object key ("i", "f") into the action
// to dispatch. ok is false if either key is not recognised.
func (t *Table) Resolve(prefix, key rune) (action input.Action, ok bool) {
	p := GetTextObjectPrefix(prefix)
	if p == PrefixNone {
		return input.Action{}, false
	}
	obj := t.Get(key)
	if obj == nil {
		return input.Action{}, false
	}

	name := obj.AroundAction
	if p == PrefixInner {
		name = obj.InnerAction
	}
	return input.Action{Name: name}.WithTextObject(&input.TextObject{
		Name:  obj.Name,
		Inner: p == PrefixInner,
	}), true
}

// TextObjectPrefix represents the prefix for text object selection.
type TextObjectPrefix uint8

const (
	// PrefixNone indicates no text object prefix.
	PrefixNone TextObjectPrefix = iota

	// PrefixInner indicates "inner" selection (i).
	PrefixInner

	// PrefixAround indicates "around" selection (a).
	PrefixAround
)

// String returns a string representation of the prefix.
func (p TextObjectPrefix) String() string {
	switch p {
	case PrefixInner:
		return "inner"
	case PrefixAround:
		return "around"
	default:
		return "none"
	}
}

// Key returns the key that produces the prefix, or 0 for PrefixNone.
func (p TextObjectPrefix) Key() rune {
	switch p {
	case PrefixInner:
		return 'i'
	case PrefixAround:
		return 'a'
	default:
		return 0
	}
}

// IsTextObjectPrefix returns true if the key is 'i' or 'a'.
func IsTextObjectPrefix(key rune) bool {
	return key == 'i' || key == 'a'
}

// GetTextObjectPrefix returns the prefix type for the key.
func GetTextObjectPrefix(key rune) TextObjectPrefix {
	switch key {
	case 'i':
		return PrefixInner
	case 'a':
		return PrefixAround
	default:
		return PrefixNone
	}
}

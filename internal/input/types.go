package input

import "strings"

// ActionSource records who asked for an action.
type ActionSource uint8

const (
	SourceKeyboard ActionSource = iota
	SourcePlugin
	SourceAPI // the command line and other programmatic callers
)

func (s ActionSource) String() string {
	switch s {
	case SourceKeyboard:
		return "keyboard"
	case SourcePlugin:
		return "plugin"
	case SourceAPI:
		return "api"
	}
	return "unknown"
}

// TextObject identifies the object an action operates on.
type TextObject struct {
	Name  string // "function"
	Inner bool   // inner (i) rather than around (a)
}

// ActionArgs are the optional inputs of an action.
type ActionArgs struct {
	TextObject *TextObject

	// Offset replaces the caret as the position to act on. Callers
	// without a live caret, such as scripts, set it.
	Offset *int
}

// Action is a named command for the dispatcher, such as
// "textobject.innerFunction".
type Action struct {
	Name   string
	Args   ActionArgs
	Source ActionSource
	Count  int
}

// Namespace is the part of the name before the first dot, or "".
func (a Action) Namespace() string {
	ns, _, found := strings.Cut(a.Name, ".")
	if !found {
		return ""
	}
	return ns
}

func (a Action) WithTextObject(obj *TextObject) Action {
	a.Args.TextObject = obj
	return a
}

func (a Action) WithOffset(offset int) Action {
	a.Args.Offset = &offset
	return a
}

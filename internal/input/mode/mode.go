package mode

// Mode defines the interface for editor modes.
type Mode interface {
	// Name returns the unique mode identifier (e.g., "normal", "visual").
	Name() string

	// DisplayName returns a human-readable name for the status line.
	DisplayName() string

	// Selection returns the selection granularity the mode works with.
	// Non-visual modes report SelectNone.
	Selection() SelectionMode

	// Enter is called when entering this mode.
	Enter(ctx *Context) error

	// Exit is called when leaving this mode.
	Exit(ctx *Context) error
}

// Context provides information during mode transitions.
type Context struct {
	// PreviousMode is the mode being transitioned from (for Enter).
	PreviousMode string

	// NextMode is the mode being transitioned to (for Exit).
	NextMode string
}

// SelectionMode defines the type of selection.
type SelectionMode uint8

const (
	// SelectNone means the mode holds no selection.
	SelectNone SelectionMode = iota

	// SelectChar is character-wise selection (visual mode).
	SelectChar

	// SelectLine is line-wise selection (visual line mode).
	SelectLine

	// SelectBlock is block/column selection (visual block mode).
	SelectBlock
)

// String returns a human-readable selection mode name.
func (s SelectionMode) String() string {
	switch s {
	case SelectNone:
		return "none"
	case SelectChar:
		return "char"
	case SelectLine:
		return "line"
	case SelectBlock:
		return "block"
	default:
		return "unknown"
	}
}

// Standard mode names.
const (
	ModeNormal          = "normal"
	ModeVisual          = "visual"
	ModeVisualLine      = "visual-line"
	ModeVisualBlock     = "visual-block"
	ModeOperatorPending = "operator-pending"
)

// basicMode is a mode with no enter/exit behaviour of its own.
type basicMode struct {
	name      string
	display   string
	selection SelectionMode
}

func (m *basicMode) Name() string             { return m.name }
func (m *basicMode) DisplayName() string      { return m.display }
func (m *basicMode) Selection() SelectionMode { return m.selection }
func (m *basicMode) Enter(*Context) error     { return nil }
func (m *basicMode) Exit(*Context) error      { return nil }

// NewNormalMode returns the normal mode.
func NewNormalMode() Mode {
	return &basicMode{name: ModeNormal, display: "NORMAL"}
}

// NewVisualMode returns the character-wise visual mode.
func NewVisualMode() Mode {
	return &basicMode{name: ModeVisual, display: "VISUAL", selection: SelectChar}
}

// NewVisualLineMode returns the line-wise visual mode.
func NewVisualLineMode() Mode {
	return &basicMode{name: ModeVisualLine, display: "VISUAL LINE", selection: SelectLine}
}

// NewVisualBlockMode returns the block visual mode.
func NewVisualBlockMode() Mode {
	return &basicMode{name: ModeVisualBlock, display: "VISUAL BLOCK", selection: SelectBlock}
}

// NewOperatorPendingMode returns the operator-pending mode.
func NewOperatorPendingMode() Mode {
	return &basicMode{name: ModeOperatorPending, display: "O-PENDING"}
}

// IsVisual reports whether the named mode is one of the visual modes.
func IsVisual(name string) bool {
	switch name {
	case ModeVisual, ModeVisualLine, ModeVisualBlock:
		return true
	}
	return false
}

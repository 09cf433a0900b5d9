package input

// Context is the key-handling state an action is dispatched with. It
// tells the text-object handlers whether to select or to hand a range to
// a pending operator.
type Context struct {
	Mode     string
	FileType string
	FilePath string

	HasSelection bool

	// PendingOperator is the operator typed before the text object, such
	// as "d" in "dif". Empty outside operator-pending mode.
	PendingOperator string

	// PendingCount is the count typed so far; zero means none.
	PendingCount int
}

// NewContext returns a context in normal mode with nothing pending.
func NewContext() *Context {
	return &Context{Mode: "normal"}
}

func (c *Context) Clone() *Context {
	cp := *c
	return &cp
}

// ClearPending forgets the pending operator and count.
func (c *Context) ClearPending() {
	c.PendingOperator, c.PendingCount = "", 0
}

func (c *Context) HasPendingOperator() bool { return c.PendingOperator != "" }

// Count is the pending count, or 1 when none was typed.
func (c *Context) Count() int {
	return max(c.PendingCount, 1)
}

// TypeDigit appends a decimal digit to the pending count. Anything other
// than 0-9 is ignored.
func (c *Context) TypeDigit(d int) {
	if d >= 0 && d <= 9 {
		c.PendingCount = c.PendingCount*10 + d
	}
}

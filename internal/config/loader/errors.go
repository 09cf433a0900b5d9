package loader

import (
	"fmt"
	"strconv"
)

// ParseError reports malformed configuration. Line and Column are 1-based
// and zero when the decoder did not say.
type ParseError struct {
	Path    string
	Format  string
	Line    int
	Column  int
	Message string
	Err     error
}

func (e *ParseError) Error() string {
	loc := e.Path
	if e.Line > 0 {
		loc += ":" + strconv.Itoa(e.Line)
		if e.Column > 0 {
			loc += ":" + strconv.Itoa(e.Column)
		}
	}
	return fmt.Sprintf("invalid %s in %s: %s", e.Format, loc, e.Message)
}

func (e *ParseError) Unwrap() error { return e.Err }

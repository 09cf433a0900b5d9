package textobject

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dshills/funcobj/internal/syntax"
)

// ErrInvalidTrimPolicy is returned when a trim policy name is not recognized.
var ErrInvalidTrimPolicy = errors.New("invalid trim policy")

// TrimPolicy selects how a body is judged delimiter-wrapped.
type TrimPolicy uint8

const (
	// TrimByText trims when the body starts with a '{' token and ends with
	// a '}' token. If the host supplies no text, the brace-language list
	// decides.
	TrimByText TrimPolicy = iota
	// TrimByLanguage trims whenever the body's language is brace-using.
	TrimByLanguage
	// TrimNone never trims.
	TrimNone
)

// String returns the policy name used in configuration files.
func (p TrimPolicy) String() string {
	switch p {
	case TrimByText:
		return "text"
	case TrimByLanguage:
		return "language"
	case TrimNone:
		return "none"
	default:
		return "unknown"
	}
}

// ParseTrimPolicy parses a policy name.
func ParseTrimPolicy(s string) (TrimPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "text", "":
		return TrimByText, nil
	case "language":
		return TrimByLanguage, nil
	case "none":
		return TrimNone, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidTrimPolicy, s)
	}
}

// Delimiters wrapping brace-style bodies.
const (
	openDelim  = '{'
	closeDelim = '}'
)

// ComputeRange returns the range to select for a resolved function.
//
// Outer yields the function's full range. Inner yields the body's range,
// narrowed by one byte on each side when the body is delimiter-wrapped; if
// body is nil, Inner falls back to the function's range.
func (r *Resolver) ComputeRange(fn, body syntax.Node, mode Mode) syntax.Range {
	if fn == nil {
		return syntax.Range{}
	}
	full := fn.Range()
	if mode == Outer || body == nil {
		return full
	}

	br := body.Range()
	if br.Len() >= 2 && r.isDelimited(body) {
		return syntax.NewRange(br.Start+1, br.End-1)
	}
	return br
}

func (r *Resolver) isDelimited(body syntax.Node) bool {
	switch r.tables.Trim {
	case TrimNone:
		return false
	case TrimByLanguage:
		return r.tables.BraceLanguages.Has(body.Language())
	}

	text := body.Text()
	if text == "" {
		return r.tables.BraceLanguages.Has(body.Language())
	}
	if text[0] != openDelim || text[len(text)-1] != closeDelim {
		return false
	}

	// The braces must be the body's own tokens, not the edges of a single
	// statement such as a set literal in an indentation body.
	kids := body.Children()
	if len(kids) == 0 {
		return true
	}
	first, last := kids[0], kids[len(kids)-1]
	return len(kids) >= 2 && first != nil && last != nil &&
		first.Range() == syntax.NewRange(body.Range().Start, body.Range().Start+1) &&
		last.Range() == syntax.NewRange(body.Range().End-1, body.Range().End)
}

package execctx

import (
	"errors"
	"math/bits"
)

// Need names a collaborator a handler requires.
type Need uint8

const (
	NeedEditor Need = 1 << iota
	NeedSyntax
	NeedModes
	NeedOperator
)

var (
	ErrMissingEditor   = errors.New("execution context: no editor")
	ErrMissingSyntax   = errors.New("execution context: no syntax source")
	ErrMissingModes    = errors.New("execution context: no mode manager")
	ErrMissingOperator = errors.New("execution context: no operator")
)

// missing is indexed by the bit position of a Need.
var missing = [...]error{ErrMissingEditor, ErrMissingSyntax, ErrMissingModes, ErrMissingOperator}

func (n Need) err() error {
	return missing[bits.TrailingZeros8(uint8(n))]
}

package lua

import (
	"context"
	"errors"
)

var (
	ErrStateClosed      = errors.New("lua: state closed")
	ErrExecutionTimeout = errors.New("lua: execution timed out")
	ErrCanceled         = errors.New("lua: execution canceled")
)

// interruption maps a context error to ErrExecutionTimeout or ErrCanceled.
func interruption(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return ErrExecutionTimeout
	}
	return ErrCanceled
}

package config

import (
	"errors"
	"fmt"

	"github.com/dshills/funcobj/internal/config/loader"
)

var (
	ErrSettingNotFound  = errors.New("setting not found")
	ErrTypeMismatch     = errors.New("type mismatch")
	ErrValidationFailed = errors.New("validation failed")

	// ErrFileNotFound is returned only for files named explicitly; the
	// default settings path may be absent.
	ErrFileNotFound = errors.New("config file not found")

	ErrNotLoaded = errors.New("configuration not loaded")
)

// ParseError reports a settings file or rule pack that failed to decode.
type ParseError = loader.ParseError

// ValidationError is a well-typed setting with an unacceptable value. It
// matches ErrValidationFailed and unwraps to the cause, if any.
type ValidationError struct {
	Path    string
	Message string
	Value   any
	Err     error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Path, e.Message, e.Value)
}

func (e *ValidationError) Unwrap() error { return e.Err }

func (e *ValidationError) Is(target error) bool { return target == ErrValidationFailed }

// TypeError is a setting holding the wrong kind of value. It matches
// ErrTypeMismatch.
type TypeError struct {
	Path     string
	Expected string
	Value    any
}

func (e *TypeError) Error() string {
	actual := "nothing"
	if e.Value != nil {
		actual = fmt.Sprintf("%T", e.Value)
	}
	return fmt.Sprintf("%s: want %s, have %s", e.Path, e.Expected, actual)
}

func (e *TypeError) Is(target error) bool { return target == ErrTypeMismatch }

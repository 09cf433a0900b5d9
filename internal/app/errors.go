// Package app hosts the function text objects headlessly: it loads the
// configuration, parses documents and routes key sequences through the
// keymaps and dispatcher to the text-object handlers.
package app

import (
	"errors"
	"fmt"
	"strings"
)

// Application errors.
var (
	ErrNoActiveDocument = errors.New("no active document")
	ErrDocumentNotFound = errors.New("document not found")
	ErrUnsupportedFile  = errors.New("unsupported file type")
	ErrInitialization   = errors.New("initialization failed")
	ErrInvalidOperation = errors.New("invalid operation")
	ErrClosed           = errors.New("application closed")

	// ErrUnboundKeys indicates a key sequence has no binding in the
	// current mode.
	ErrUnboundKeys = errors.New("no binding for keys")
)

// OperationError is a failed document operation such as open, parse,
// reload or watch.
type OperationError struct {
	Op     string
	Path   string
	Detail string
	Err    error
}

// NewOperationError creates an OperationError.
func NewOperationError(op, path string, err error) *OperationError {
	return &OperationError{Op: op, Path: path, Err: err}
}

// WithDetail attaches a short explanation.
func (e *OperationError) WithDetail(detail string) *OperationError {
	e.Detail = detail
	return e
}

func (e *OperationError) Error() string {
	var b strings.Builder
	b.WriteString(e.Op)
	if e.Path != "" {
		b.WriteString(" ")
		b.WriteString(e.Path)
	}
	if e.Detail != "" {
		fmt.Fprintf(&b, " (%s)", e.Detail)
	}
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	return b.String()
}

func (e *OperationError) Unwrap() error { return e.Err }

// ComponentError is a failed bootstrap step.
type ComponentError struct {
	Component string
	Step      string
	Err       error
}

func (e *ComponentError) Error() string {
	msg := e.Component
	if e.Step != "" {
		msg += " " + e.Step
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ComponentError) Unwrap() error { return e.Err }

func initError(component, step string, err error) error {
	return fmt.Errorf("%w: %w", ErrInitialization, &ComponentError{Component: component, Step: step, Err: err})
}

// errorList collects the failures of a batch so every one is reported.
type errorList []error

func (l errorList) Error() string {
	switch len(l) {
	case 0:
		return ""
	case 1:
		return l[0].Error()
	}
	return fmt.Sprintf("%v (and %d more)", l[0], len(l)-1)
}

func (l errorList) Unwrap() []error { return l }

// err returns nil for an empty list.
func (l errorList) err() error {
	if len(l) == 0 {
		return nil
	}
	return l
}

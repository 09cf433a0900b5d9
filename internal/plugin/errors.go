package plugin

import (
	"errors"
	"fmt"
)

// Script host errors.
var (
	// ErrScriptNotFound is returned when a script file cannot be read.
	ErrScriptNotFound = errors.New("script not found")

	// ErrInvalidScript is returned for an empty script or one without a
	// .lua extension.
	ErrInvalidScript = errors.New("invalid script")

	// ErrNoAPI is returned when a host is created without an API context.
	ErrNoAPI = errors.New("no script API context")
)

// ScriptError reports a failure while running a named script.
type ScriptError struct {
	Script string
	// RunID identifies the run in the host's log. Empty when the script
	// was rejected before it started.
	RunID string
	Err   error
}

// Error implements the error interface.
func (e *ScriptError) Error() string {
	return fmt.Sprintf("script %s: %v", e.Script, e.Err)
}

// Unwrap returns the underlying error.
func (e *ScriptError) Unwrap() error {
	return e.Err
}

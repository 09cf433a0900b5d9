package handler

import (
	"fmt"

	"github.com/dshills/funcobj/internal/syntax"
)

// ResultStatus is the outcome class of a handled action.
type ResultStatus uint8

const (
	StatusOK ResultStatus = iota
	StatusNoOp
	StatusError
	StatusCancelled
)

var statusNames = [...]string{
	StatusOK:        "ok",
	StatusNoOp:      "no-op",
	StatusError:     "error",
	StatusCancelled: "cancelled",
}

func (s ResultStatus) String() string {
	if int(s) < len(statusNames) {
		return statusNames[s]
	}
	return "unknown"
}

// Result is what a handler reports back to the dispatcher.
//
// Results are values; the With methods return modified copies and never
// share the Details map with the receiver.
type Result struct {
	Status  ResultStatus
	Error   error
	Message string

	// Range is the span the action selected or handed to an operator.
	Range *syntax.Range

	// ModeChange names the mode the dispatcher should enter afterwards.
	ModeChange string

	// Details carries handler-specific annotations such as the kind of
	// the selected function or the reason nothing was selected.
	Details map[string]string
}

func (r Result) IsOK() bool    { return r.Status == StatusOK }
func (r Result) IsNoOp() bool  { return r.Status == StatusNoOp }
func (r Result) IsError() bool { return r.Status == StatusError }

func Success() Result { return Result{Status: StatusOK} }

func SuccessWithMessage(msg string) Result {
	return Result{Status: StatusOK, Message: msg}
}

func NoOp() Result { return Result{Status: StatusNoOp} }

func Error(err error) Result { return Result{Status: StatusError, Error: err} }

func Errorf(format string, args ...any) Result {
	return Error(fmt.Errorf(format, args...))
}

// Cancelled reports an action stopped before its handler ran.
func Cancelled(reason string) Result {
	return Result{Status: StatusCancelled, Message: reason}
}

func (r Result) WithMessage(msg string) Result {
	r.Message = msg
	return r
}

func (r Result) WithModeChange(mode string) Result {
	r.ModeChange = mode
	return r
}

func (r Result) WithRange(rng syntax.Range) Result {
	r.Range = &rng
	return r
}

// WithDetail returns a copy of r with key set to value.
func (r Result) WithDetail(key, value string) Result {
	details := make(map[string]string, len(r.Details)+1)
	for k, v := range r.Details {
		details[k] = v
	}
	details[key] = value
	r.Details = details
	return r
}

// Detail returns the annotation stored under key, or "".
func (r Result) Detail(key string) string {
	return r.Details[key]
}

// Package errz defines the categories of errors raised while a Creek program
// runs. These are the errors a script can catch with try; host-level failures
// such as malformed bytecode are plain Go errors and live elsewhere.
package errz

import (
	"fmt"
	"strings"
)

// ErrorKind represents the category of an error.
type ErrorKind int

const (
	// ErrType indicates an operand of the wrong type.
	ErrType ErrorKind = iota
	// ErrUnsupported indicates a value that does not implement an operation.
	ErrUnsupported
	// ErrArity indicates a call with the wrong number of arguments.
	ErrArity
	// ErrName indicates an undefined or duplicate variable.
	ErrName
	// ErrValue indicates an invalid value for an operation.
	ErrValue
	// ErrRuntime indicates a general runtime error.
	ErrRuntime
	// ErrNative indicates a failure resolving a native library symbol.
	ErrNative
)

// String returns the string representation of the error kind.
func (k ErrorKind) String() string {
	switch k {
	case ErrType:
		return "type error"
	case ErrUnsupported:
		return "unsupported operation"
	case ErrArity:
		return "arity error"
	case ErrName:
		return "name error"
	case ErrValue:
		return "value error"
	case ErrRuntime:
		return "runtime error"
	case ErrNative:
		return "native error"
	default:
		return "error"
	}
}

// StructuredError is a categorized error with an optional cause and
// free-form hints appended to the message.
type StructuredError struct {
	Message string
	Kind    ErrorKind
	Hints   []string
	Cause   error
}

// Error implements the error interface.
func (e *StructuredError) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Kind, e.Message)
	if len(e.Hints) > 0 {
		msg += " (" + strings.Join(e.Hints, "; ") + ")"
	}
	return msg
}

// Unwrap returns the underlying cause of the error.
func (e *StructuredError) Unwrap() error {
	return e.Cause
}

// WithCause wraps the error with a cause.
func (e *StructuredError) WithCause(cause error) *StructuredError {
	e.Cause = cause
	return e
}

// WithHint appends a hint. Empty hints are ignored.
func (e *StructuredError) WithHint(hint string) *StructuredError {
	if hint != "" {
		e.Hints = append(e.Hints, hint)
	}
	return e
}

// New creates a StructuredError.
func New(kind ErrorKind, message string) *StructuredError {
	return &StructuredError{Kind: kind, Message: message}
}

// Errorf creates a StructuredError with a formatted message.
func Errorf(kind ErrorKind, format string, args ...any) *StructuredError {
	return &StructuredError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

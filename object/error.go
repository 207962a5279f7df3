package object

import (
	"cmp"
	"errors"
	"fmt"

	"github.com/creek-lang/creek/errz"
	"github.com/creek-lang/creek/symbol"
)

// Error is a language-level error. It is both a Go error, so it propagates
// through Eval, and a Value, so a catch clause can bind it.
type Error struct {
	base
	err *errz.StructuredError
}

var (
	attrMessage = symbol.Intern("message")
	attrKind    = symbol.Intern("kind")
)

// NewError wraps a structured error as a language error.
func NewError(err *errz.StructuredError) *Error {
	return &Error{base: base{ERROR}, err: err}
}

// Errorf creates a language error of the given kind.
func Errorf(kind errz.ErrorKind, format string, args ...any) *Error {
	return NewError(errz.Errorf(kind, format, args...))
}

func TypeErrorf(format string, args ...any) *Error {
	return Errorf(errz.ErrType, format, args...)
}

func NameErrorf(format string, args ...any) *Error {
	return Errorf(errz.ErrName, format, args...)
}

func ValueErrorf(format string, args ...any) *Error {
	return Errorf(errz.ErrValue, format, args...)
}

func RuntimeErrorf(format string, args ...any) *Error {
	return Errorf(errz.ErrRuntime, format, args...)
}

// Unsupported reports that values of type t do not implement op.
func Unsupported(t Type, op string) *Error {
	return Errorf(errz.ErrUnsupported, "%s does not support %s", t, op)
}

// NewArityError reports a call with the wrong number of arguments.
func NewArityError(expected, passed int) *Error {
	return Errorf(errz.ErrArity, "wrong number of arguments: expected %d, passed %d", expected, passed)
}

// NewArityAtLeastError reports a variadic call with too few arguments.
func NewArityAtLeastError(expected, passed int) *Error {
	return Errorf(errz.ErrArity, "wrong number of arguments: expected at least %d, passed %d", expected, passed)
}

// WrapError converts an arbitrary Go error into a language error. Language
// errors and thrown values are returned unchanged.
func WrapError(err error) error {
	if err == nil {
		return nil
	}
	var langErr *Error
	if errors.As(err, &langErr) {
		return err
	}
	var thrown *Thrown
	if errors.As(err, &thrown) {
		return err
	}
	var exit *ExitError
	if errors.As(err, &exit) {
		return err
	}
	return NewError(errz.New(errz.ErrNative, err.Error()).WithCause(err))
}

func (e *Error) Error() string {
	return e.err.Error()
}

func (e *Error) Unwrap() error {
	return e.err
}

// Kind returns the error category.
func (e *Error) Kind() errz.ErrorKind {
	return e.err.Kind
}

// Message returns the message without the kind prefix.
func (e *Error) Message() string {
	return e.err.Message
}

// Structured returns the underlying structured error.
func (e *Error) Structured() *errz.StructuredError {
	return e.err
}

func (e *Error) Inspect() string {
	return fmt.Sprintf("error(%q)", e.err.Error())
}

func (e *Error) Copy() Value {
	return e
}

func (e *Error) Bool() (bool, error) {
	return true, nil
}

func (e *Error) Compare(other Value) (int, error) {
	o, ok := other.(*Error)
	if !ok {
		return CompareTypes(e, other), nil
	}
	return cmp.Compare(e.err.Error(), o.err.Error()), nil
}

func (e *Error) GetAttr(name symbol.Name) (Value, error) {
	switch name {
	case attrMessage:
		return NewString(e.err.Message), nil
	case attrKind:
		return NewString(e.err.Kind.String()), nil
	}
	return nil, NameErrorf("error has no attribute %q", name.String())
}

// Thrown carries a value raised by a throw expression.
type Thrown struct {
	Value Value
}

func (t *Thrown) Error() string {
	return "uncaught exception: " + t.Value.Inspect()
}

// ExitError ends a program with a status code. It is a host failure, so
// try never catches it.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit status %d", e.Code)
}

// Catch returns the value a catch clause binds for err, and whether err is
// catchable at all. Thrown values bind as themselves; language errors bind
// as Error values. Anything else is a host failure.
func Catch(err error) (Value, bool) {
	var thrown *Thrown
	if errors.As(err, &thrown) {
		return thrown.Value, true
	}
	var langErr *Error
	if errors.As(err, &langErr) {
		return langErr, true
	}
	return nil, false
}

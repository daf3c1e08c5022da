package value

//go:generate go tool stringer --linecomment --type Kind --output kind_string.go

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
)

// Kind classifies an evaluation error.
type Kind int

const (
	KindNone                   Kind = iota // None
	KindParse                              // ParseError
	KindUndefinedVariable                  // UndefinedVariable
	KindUndefinedFunction                  // UndefinedFunction
	KindArityMismatch                      // ArityMismatch
	KindIncompatibleDimensions             // IncompatibleDimensions
	KindIncompatibleCurrencies             // IncompatibleCurrencies
	KindIncompatibleTypes                  // IncompatibleTypes
	KindLengthMismatch                     // LengthMismatch
	KindIndexOutOfRange                    // IndexOutOfRange
	KindInvalidRangeDirection              // InvalidRangeDirection
	KindDivisionByZero                     // DivisionByZero
	KindMaxCallDepthExceeded               // MaxCallDepthExceeded
	KindCircularDependency                 // CircularDependency
	KindRangeTooLarge                      // RangeTooLarge
	KindInvalidArgument                    // InvalidArgument
)

// Predefined errors (sentinel values). Match with [errors.Is], which compares
// kinds.
var (
	ErrParse                  = NewError(KindParse, "parse error")
	ErrUndefinedVariable      = NewError(KindUndefinedVariable, "undefined variable")
	ErrUndefinedFunction      = NewError(KindUndefinedFunction, "undefined function")
	ErrArityMismatch          = NewError(KindArityMismatch, "wrong number of arguments")
	ErrIncompatibleDimensions = NewError(KindIncompatibleDimensions, "incompatible dimensions")
	ErrIncompatibleCurrencies = NewError(KindIncompatibleCurrencies, "incompatible currencies")
	ErrIncompatibleTypes      = NewError(KindIncompatibleTypes, "incompatible operands")
	ErrLengthMismatch         = NewError(KindLengthMismatch, "list lengths differ")
	ErrIndexOutOfRange        = NewError(KindIndexOutOfRange, "index out of range")
	ErrInvalidRangeDirection  = NewError(KindInvalidRangeDirection, "invalid range direction")
	ErrDivisionByZero         = NewError(KindDivisionByZero, "division by zero")
	ErrMaxCallDepthExceeded   = NewError(KindMaxCallDepthExceeded, "maximum call depth exceeded")
	ErrCircularDependency     = NewError(KindCircularDependency, "circular dependency")
	ErrRangeTooLarge          = NewError(KindRangeTooLarge, "list too large")
	ErrInvalidArgument        = NewError(KindInvalidArgument, "invalid argument")
)

// Error is an evaluation error with a kind, a message, an optional detail,
// and optional structured logging attributes.
// It implements both error and slog.LogValuer interfaces.
type Error struct {
	kind   Kind
	msg    string
	detail string
	err    error       // Wrapped error (for errors.Unwrap)
	attrs  []slog.Attr // Attributes for structured logging
}

// NewError creates a new Error of the given kind.
func NewError(kind Kind, msg string) *Error {
	return &Error{kind: kind, msg: msg}
}

// AsError converts err into an *Error. Errors that are not already of this
// type are wrapped with [KindInvalidArgument].
func AsError(err error) *Error {
	ee := &Error{}
	if errors.As(err, &ee) {
		return ee
	}

	return ErrInvalidArgument.Wrap(err)
}

// Kind returns the error classification.
func (e *Error) Kind() Kind { return e.kind }

// Error implements the error interface as "<msg>: <detail>: <err>", omitting
// empty parts.
func (e *Error) Error() string {
	part := make([]string, 0, 3)

	if e.msg != "" {
		part = append(part, e.msg)
	}

	if e.detail != "" {
		part = append(part, e.detail)
	}

	if e.err != nil {
		part = append(part, e.err.Error())
	}

	return strings.Join(part, ": ")
}

// Message returns the user-facing text: the detail when present, otherwise
// the message, followed by any wrapped cause.
func (e *Error) Message() string {
	msg := e.detail
	if msg == "" {
		msg = e.msg
	}

	if e.err != nil {
		return msg + ": " + e.err.Error()
	}

	return msg
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *Error) Unwrap() error { return e.err }

// Is reports whether target is an *Error of the same kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)

	return ok && t.kind == e.kind
}

// LogValue implements slog.LogValuer for rich structured logging.
func (e *Error) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, len(e.attrs)+3)

	attrs = append(attrs, slog.String("kind", e.kind.String()))

	if e.msg != "" {
		attrs = append(attrs, slog.String("error", e.Error()))
	}

	if e.err != nil {
		attrs = append(attrs, slog.String("cause", e.err.Error()))
	}

	return slog.GroupValue(append(attrs, e.attrs...)...)
}

// Wrap creates a new Error wrapping another error.
func (e *Error) Wrap(err error) *Error {
	c := *e
	c.err = err

	return &c
}

// Detail creates a new Error whose message is extended by a formatted
// detail, e.g. the name of an undefined variable.
func (e *Error) Detail(format string, args ...any) *Error {
	c := *e
	c.detail = fmt.Sprintf(format, args...)

	return &c
}

// With adds attributes to the error for structured logging.
// This creates a new Error instance to maintain immutability.
func (e *Error) With(attrs ...slog.Attr) *Error {
	newAttrs := make([]slog.Attr, len(e.attrs)+len(attrs))
	copy(newAttrs, e.attrs)
	copy(newAttrs[len(e.attrs):], attrs)

	c := *e
	c.attrs = newAttrs

	return &c
}

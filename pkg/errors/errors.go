package errors

import (
	stderrors "errors"
	"fmt"
)

// Kind classifies the failures the archive pipeline can hit
type Kind string

const (
	KindNetwork    Kind = "network"
	KindDecode     Kind = "decode"
	KindRepository Kind = "repository"
	KindFilesystem Kind = "filesystem"
)

// Error is a classified pipeline error. Every kind is fatal to the run;
// classification exists for logging and for tests, not for retry decisions.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s error: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s error: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New creates an Error with the given kind and message
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Newf creates an Error with a formatted message
func Newf(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap annotates err with a kind and message, keeping err reachable
// through Unwrap
func Wrap(kind Kind, err error, message string) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// Wrapf annotates err with a kind and a formatted message
func Wrapf(kind Kind, err error, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Err: err}
}

// IsKind reports whether any error in err's chain carries the given kind
func IsKind(err error, kind Kind) bool {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}

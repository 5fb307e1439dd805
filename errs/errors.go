// Package errs defines the error kinds returned by the task engine and
// the mapping from those kinds to process exit codes.
//
// Every failure carries a Kind so callers can branch with errors.Is
// against the sentinel values without depending on message text:
//
//	if errors.Is(err, errs.ErrTaskNotFound) { ... }
package errs

import (
	"errors"
	"fmt"
	"maps"
)

// Kind classifies an error.
type Kind string

const (
	KindTaskNotFound           Kind = "task_not_found"
	KindAlreadyRunning         Kind = "already_running"
	KindNotRunning             Kind = "not_running"
	KindInvalidDurationLiteral Kind = "invalid_duration"
	KindPersistenceFailure     Kind = "persistence"
	KindConfirmationDeclined   Kind = "declined"
	KindInvalidInput           Kind = "invalid_input"
	KindConfig                 Kind = "config"
	KindInternal               Kind = "internal"
)

// Sentinels for errors.Is comparisons. They match any *Error of the same kind.
var (
	ErrTaskNotFound           = &Error{kind: KindTaskNotFound, message: "task not found"}
	ErrAlreadyRunning         = &Error{kind: KindAlreadyRunning, message: "task is already running"}
	ErrNotRunning             = &Error{kind: KindNotRunning, message: "task is not running"}
	ErrInvalidDurationLiteral = &Error{kind: KindInvalidDurationLiteral, message: "invalid duration literal"}
	ErrPersistenceFailure     = &Error{kind: KindPersistenceFailure, message: "persistence failure"}
	ErrConfirmationDeclined   = &Error{kind: KindConfirmationDeclined, message: "confirmation declined"}
	ErrInvalidInput           = &Error{kind: KindInvalidInput, message: "invalid input"}
	ErrConfig                 = &Error{kind: KindConfig, message: "invalid configuration"}
)

// Context holds structured key/value details attached to an error.
type Context map[string]any

// Error is a classified error with an optional cause and context.
type Error struct {
	kind    Kind
	message string
	cause   error
	context Context
}

// New creates an error of the given kind.
func New(kind Kind, format string, args ...any) *Error {
	return &Error{kind: kind, message: fmt.Sprintf(format, args...)}
}

// Wrap creates an error of the given kind around cause.
func Wrap(kind Kind, cause error, format string, args ...any) *Error {
	return &Error{kind: kind, message: fmt.Sprintf(format, args...), cause: cause}
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.message, e.cause)
	}
	return e.message
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.cause
}

// Is reports whether target is an *Error of the same kind.
func (e *Error) Is(target error) bool {
	var other *Error
	if !errors.As(target, &other) {
		return false
	}
	return e.kind == other.kind
}

// Kind returns the error kind.
func (e *Error) Kind() Kind {
	return e.kind
}

// Message returns the message without the cause.
func (e *Error) Message() string {
	return e.message
}

// Context returns the attached context, which may be nil.
func (e *Error) Context() Context {
	return e.context
}

// With returns a copy of e with key set in its context.
func (e *Error) With(key string, value any) *Error {
	ctx := make(Context, len(e.context)+1)
	maps.Copy(ctx, e.context)
	ctx[key] = value
	return &Error{kind: e.kind, message: e.message, cause: e.cause, context: ctx}
}

// KindOf returns the kind of the first *Error in err's chain, or
// KindInternal when err is not classified.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.kind
	}
	return KindInternal
}

// TaskNotFound reports a missing task id.
func TaskNotFound(id int) *Error {
	return New(KindTaskNotFound, "task with id %d does not exist", id).With("task_id", id)
}

// TaskNameNotFound reports a name lookup miss.
func TaskNameNotFound(name string) *Error {
	return New(KindTaskNotFound, "task named %q does not exist", name).With("task_name", name)
}

// AlreadyRunning reports a start on a running task.
func AlreadyRunning(id int) *Error {
	return New(KindAlreadyRunning, "task %d is already running", id).With("task_id", id)
}

// NotRunning reports a stop or cancel on a stopped task.
func NotRunning(id int) *Error {
	return New(KindNotRunning, "task %d is not currently running", id).With("task_id", id)
}

// InvalidDuration reports a malformed duration literal.
func InvalidDuration(literal, reason string) *Error {
	return New(KindInvalidDurationLiteral, "invalid duration %q: %s", literal, reason).With("literal", literal)
}

// Persistence wraps a storage failure for path.
func Persistence(cause error, op, path string) *Error {
	return Wrap(KindPersistenceFailure, cause, "failed to %s %s", op, path).With("path", path)
}

// Package pqlerrors is the compiler's structured error channel
// (spec.md §7), grounded on the teacher's tsqlruntime/errors.go typed-
// error catalogue.
package pqlerrors

import (
	"errors"
	"fmt"

	"github.com/ha1tch/preqlc/pqlast"
)

// Kind is the closed set of error kinds the compiler raises.
type Kind string

const (
	// TypeError covers type mismatches, cross-type operations without a
	// coercion rule, non-collection projected/selected/sliced operands,
	// non-string `~` operands, duplicate projection names, generic
	// application against a non-container, and struct arrays (not yet
	// supported).
	TypeError Kind = "TypeError"

	// SyntaxError covers a named or out-of-position ellipsis.
	SyntaxError Kind = "SyntaxError"

	// CompileError covers unreachable/invariant violations during
	// lowering.
	CompileError Kind = "CompileError"

	// InsufficientAccessLevel is raised when an unresolved compile-time
	// parameter is encountered while the caller requested evaluation.
	InsufficientAccessLevel Kind = "InsufficientAccessLevel"
)

// Error is the structured error every compiler-core failure is reported
// as: a kind, a human message, a source Meta region, and (for re-wrapped
// standard-library errors) the original cause.
type Error struct {
	Kind    Kind
	Message string
	Meta    pqlast.Meta
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Cause }

// New builds an Error with no cause.
func New(kind Kind, meta pqlast.Meta, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Meta: meta}
}

// Wrap re-raises cause under kind, replacing its source region with
// meta — the "Re-wrapped Preql-level errors" rule of spec.md §7: a
// standard-library error's region is replaced by the enclosing
// operator's region while the original cause is preserved.
func Wrap(kind Kind, meta pqlast.Meta, cause error) *Error {
	return &Error{Kind: kind, Message: cause.Error(), Meta: meta, Cause: cause}
}

// IsInsufficientAccessLevel reports whether err (or something it wraps)
// is an InsufficientAccessLevel error, the signal the outer orchestrator
// retries at a higher access level on (spec.md §4.2, §7).
func IsInsufficientAccessLevel(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == InsufficientAccessLevel
}

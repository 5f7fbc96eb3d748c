// Package errors defines typed errors with categories for user-friendly reporting.
// Every error raised by the gateway carries a machine-readable Kind, the name of
// the operation that failed and, when there is one, the underlying cause. This
// lets the CLI tell "what failed" apart from "why it failed" without parsing
// driver messages.
package errors

import (
	stderrors "errors"
	"fmt"
)

// Kind is a machine-readable error category.
type Kind string

const (
	// Configuration indicates a missing precondition, e.g. no tenant database selected.
	Configuration Kind = "configuration"
	// NotFound indicates an expected database or resource is absent.
	NotFound Kind = "not_found"
	// Execution indicates the store rejected a statement.
	Execution Kind = "execution"
	// Resource indicates the initialization script is missing or malformed.
	Resource Kind = "resource"
	// Input indicates caller-supplied text failed to parse.
	Input Kind = "input"
	// PermissionDenied indicates the session role may not run the operation.
	PermissionDenied Kind = "permission_denied"
)

// E wraps an error with kind, operation and human-friendly message.
type E struct {
	Kind    Kind
	Op      string
	Message string
	Err     error
}

func (e *E) Error() string {
	msg := e.Message
	if e.Op != "" {
		msg = e.Op + ": " + msg
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *E) Unwrap() error { return e.Err }

func Wrap(kind Kind, msg string, err error) *E { return &E{Kind: kind, Message: msg, Err: err} }
func New(kind Kind, msg string) *E             { return &E{Kind: kind, Message: msg} }

// Newf is New with a formatted message.
func Newf(kind Kind, format string, args ...any) *E {
	return &E{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// WithOp returns a copy of e attributed to op. An existing Op is kept.
func (e *E) WithOp(op string) *E {
	c := *e
	if c.Op == "" {
		c.Op = op
	}
	return &c
}

// Op attributes err to op. Typed errors keep their kind; anything else is
// treated as a store rejection.
func Op(op string, err error) error {
	if err == nil {
		return nil
	}
	var e *E
	if stderrors.As(err, &e) {
		return e.WithOp(op)
	}
	return &E{Kind: Execution, Op: op, Message: "store rejected the statement", Err: err}
}

// KindOf reports the kind of the first *E in err's chain, or "" if none.
func KindOf(err error) Kind {
	var e *E
	if stderrors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

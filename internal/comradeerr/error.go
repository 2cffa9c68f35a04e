// Package comradeerr implements Comrade's error taxonomy (spec.md §7):
// an error-kind enum plus message, the same shape as the teacher's
// scriptError(code, msg) helper in pkg/arkade, generalized from
// txscript.ErrorCode to Comrade's own Kind.
package comradeerr

import "fmt"

// Kind enumerates the error classes spec.md §7 defines.
type Kind int

const (
	// LookupError: a required key is absent in current/proposed.
	LookupError Kind = iota
	// TypeError: a key is present but not the required Bin/Str variant.
	TypeError
	// DecodeError: a multihash/multikey/multisig decode failed.
	DecodeError
	// StackUnderflow: the parameter stack lacks the required arity.
	StackUnderflow
	// VerificationFailure: signature invalid, preimage mismatch, or
	// value mismatch — the intended rejection.
	VerificationFailure
	// ScriptError: the embedded expression evaluator itself raised.
	ScriptError
	// NoScriptLoaded: evaluation was requested without a loaded
	// expression.
	NoScriptLoaded
)

func (k Kind) String() string {
	switch k {
	case LookupError:
		return "LookupError"
	case TypeError:
		return "TypeError"
	case DecodeError:
		return "DecodeError"
	case StackUnderflow:
		return "StackUnderflow"
	case VerificationFailure:
		return "VerificationFailure"
	case ScriptError:
		return "ScriptError"
	case NoScriptLoaded:
		return "NoScriptLoaded"
	default:
		return "UnknownError"
	}
}

// Error is Comrade's single error type: a Kind, a message, and an
// optional wrapped cause.
type Error struct {
	Kind  Kind
	Msg   string
	Cause error
}

// New builds an Error with no wrapped cause.
func New(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Msg: msg}
}

// Wrap builds an Error wrapping cause, with cause's message appended for
// context.
func Wrap(kind Kind, msg string, cause error) *Error {
	return &Error{Kind: kind, Msg: msg, Cause: cause}
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Msg, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

// Unwrap exposes the wrapped cause for errors.Is/errors.As.
func (e *Error) Unwrap() error { return e.Cause }

// Is reports whether target is a comradeerr.Error of the same Kind,
// supporting errors.Is(err, comradeerr.New(comradeerr.DecodeError, "")).
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

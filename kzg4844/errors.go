package kzg4844

import (
	"errors"
	"fmt"
)

// Kind classifies a KZGError by who is at fault.
type Kind int

const (
	// BadArgs: the failure is attributable to caller-provided bytes --
	// malformed length, out-of-range scalar, off-curve or wrong-subgroup
	// point, mismatched array sizes, duplicate or out-of-range cell
	// index, setup-file syntax error, non-power-of-two domain request.
	BadArgs Kind = iota
	// InternalError: an invariant we expect to hold was violated. Never
	// the caller's fault.
	InternalError
	// MemoryError: allocation failure in scratch or tables.
	MemoryError
)

// String names the Kind. Ok is represented by a nil error, not a Kind
// value.
func (k Kind) String() string {
	switch k {
	case BadArgs:
		return "BadArgs"
	case InternalError:
		return "InternalError"
	case MemoryError:
		return "MemoryError"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// KZGError wraps an underlying error with the Kind of failure it
// represents. Ok is simply a nil *KZGError (and, by extension, a nil
// error).
type KZGError struct {
	Kind Kind
	Err  error
}

func (e *KZGError) Error() string {
	return fmt.Sprintf("kzg4844: %s: %v", e.Kind, e.Err)
}

func (e *KZGError) Unwrap() error { return e.Err }

func badArgs(err error) error {
	return &KZGError{Kind: BadArgs, Err: err}
}

func badArgsf(format string, args ...any) error {
	return &KZGError{Kind: BadArgs, Err: fmt.Errorf(format, args...)}
}

func internalError(err error) error {
	return &KZGError{Kind: InternalError, Err: err}
}

func memoryError(err error) error {
	return &KZGError{Kind: MemoryError, Err: err}
}

// AsKind reports the Kind of err if it (or something it wraps) is a
// *KZGError, and whether such a wrapped error was found.
func AsKind(err error) (Kind, bool) {
	var kzgErr *KZGError
	if errors.As(err, &kzgErr) {
		return kzgErr.Kind, true
	}
	return 0, false
}

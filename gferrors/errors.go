// Package gferrors enumerates the error kinds the reaction-network engine
// can raise, per spec section 7 ("Error Handling Design"). Kinds are not
// Go types but a classification tag so callers can errors.As into a single
// *Error and branch on Kind, mirroring gofem's convention of returning
// plain wrapped errors from chk.Err rather than a taxonomy of exported
// struct types per failure site.
package gferrors

import (
	"errors"
	"fmt"
)

// Kind classifies why an operation failed.
type Kind int

const (
	// DataIntegrity: unknown species, conservation violation, malformed
	// file, inconsistent Q-value. Fatal to the call that detects it.
	DataIntegrity Kind = iota
	// Stale: a view method was called before update() cleared its stale flag.
	Stale
	// OutOfRange: a view index fell outside its index map. Programmer error.
	OutOfRange
	// Numerical: LM non-convergence, step-size collapse, non-finite state.
	Numerical
	// Config: unknown partition type, or (downgraded to warning elsewhere)
	// unsupported reverse-rate arity.
	Config
)

func (k Kind) String() string {
	switch k {
	case DataIntegrity:
		return "DataIntegrity"
	case Stale:
		return "Stale"
	case OutOfRange:
		return "OutOfRange"
	case Numerical:
		return "Numerical"
	case Config:
		return "Config"
	default:
		return "Unknown"
	}
}

// Error is the single concrete error type raised by this module. Use
// errors.As to recover it and inspect Kind.
type Error struct {
	Kind Kind
	Msg  string
	Err  error // wrapped cause, if any
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("gridfire: %s: %s: %v", e.Kind, e.Msg, e.Err)
	}
	return fmt.Sprintf("gridfire: %s: %s", e.Kind, e.Msg)
}

func (e *Error) Unwrap() error { return e.Err }

// New builds an *Error of the given kind with a formatted message.
func New(kind Kind, format string, args ...interface{}) error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// Wrap builds an *Error of the given kind around an existing cause.
func Wrap(kind Kind, cause error, format string, args ...interface{}) error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...), Err: cause}
}

// Is reports whether err is a gferrors.Error of the given kind.
func Is(err error, kind Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}

// NumericalError carries the diagnostic the spec requires for Numerical
// failures: the last successful step count and simulation time.
type NumericalError struct {
	Step int
	Time float64
	Err  error
}

func (e *NumericalError) Error() string {
	return fmt.Sprintf("gridfire: Numerical: integration aborted after %d steps at t=%.6e s: %v", e.Step, e.Time, e.Err)
}

func (e *NumericalError) Unwrap() error { return e.Err }

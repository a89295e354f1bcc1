// Package num declares the numeric trait that reaction-rate, screening, and
// partition-function formulas are written against so the same formula can be
// evaluated as a plain float64 or recorded onto an AD tape without
// duplication.
package num

// Scalar is the arithmetic trait required of any numeric type used inside
// the reaction-network formulas. Every branch driven by a physical
// threshold (density floor, abundance floor, ...) must go through CondGE so
// that an implementation backed by a recorded tape never has to re-record
// when a threshold is crossed at a different input value.
type Scalar interface {
	Add(Scalar) Scalar
	Sub(Scalar) Scalar
	Mul(Scalar) Scalar
	Div(Scalar) Scalar
	Neg() Scalar
	Recip() Scalar
	Pow(p float64) Scalar
	Exp() Scalar
	Log() Scalar

	// Value returns the concrete floating-point value. For tape-backed
	// scalars this is only meaningful after the tape has been replayed.
	Value() float64

	// Const builds a new Scalar of the same concrete kind holding the
	// literal v. Needed so generic formulas can introduce constants
	// (1/2, thresholds, ...) without type-switching on the caller.
	Const(v float64) Scalar

	// CondGE selects ifTrue when the receiver's value is >= threshold,
	// else ifFalse. Both branches must already be fully constructed
	// Scalars (never raw Go `if`) so a tape recording is structurally
	// identical no matter which branch is live at replay time.
	CondGE(threshold float64, ifTrue, ifFalse Scalar) Scalar
}

// The package declares no zero or one constants; build them from a sample
// scalar's Const method, e.g. x.Const(0).

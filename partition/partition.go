// Package partition evaluates nuclear partition functions G(Z,A,T9),
// using whichever of several strategies (table lookup, ground-state
// approximation, a prioritised composite of both) a caller wires up -
// mirroring the source's PartitionFunction hierarchy.
package partition

// Function is the interface every partition-function strategy implements
// (spec §4.2).
type Function interface {
	Evaluate(z, a int, t9 float64) float64
	EvaluateDerivative(z, a int, t9 float64) float64
	Supports(z, a int) bool
}

func key(z, a int) int { return z*1000 + a }

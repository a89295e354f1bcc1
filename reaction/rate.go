// Package reaction implements the REACLIB rate model, the Reaction and
// LogicalReaction types, order-independent ReactionSet/LogicalReactionSet
// collections, and the forward/reverse detailed-balance pairing (spec §3,
// §4.1). Numeric formulas are written against internal/num.Scalar so the
// same code can be replayed on the AD tape (see netgraph) or evaluated
// directly as the PrecomputedReaction fast path.
package reaction

import (
	"math"

	"github.com/tboudreaux/GridFire-sub000/internal/num"
)

// R7 holds the seven REACLIB parameterisation coefficients a0...a6.
type R7 [7]float64

// Rate evaluates the bare molar rate k(T9) = exp(a0 + a1/T9 + a2*T9^-1/3 +
// a3*T9^1/3 + a4*T9 + a5*T9^5/3 + a6*ln(T9)).
func (c R7) Rate(t9 float64) float64 {
	return math.Exp(c.logRate(t9))
}

func (c R7) logRate(t9 float64) float64 {
	return c[0] + c[1]/t9 + c[2]*math.Pow(t9, -1.0/3.0) + c[3]*math.Pow(t9, 1.0/3.0) +
		c[4]*t9 + c[5]*math.Pow(t9, 5.0/3.0) + c[6]*math.Log(t9)
}

// RateGeneric evaluates the same formula against any num.Scalar, allowing
// it to be recorded onto an AD tape when t9 is a *tape.Var.
func (c R7) RateGeneric(t9 num.Scalar) num.Scalar {
	return c.logRateGeneric(t9).Exp()
}

func (c R7) logRateGeneric(t9 num.Scalar) num.Scalar {
	one := t9.Const(1)
	third := 1.0 / 3.0
	negThird := -1.0 / 3.0
	fiveThirds := 5.0 / 3.0

	sum := t9.Const(c[0])
	sum = sum.Add(t9.Const(c[1]).Div(t9))
	sum = sum.Add(t9.Const(c[2]).Mul(powGeneric(t9, negThird)))
	sum = sum.Add(t9.Const(c[3]).Mul(powGeneric(t9, third)))
	sum = sum.Add(t9.Const(c[4]).Mul(t9))
	sum = sum.Add(t9.Const(c[5]).Mul(powGeneric(t9, fiveThirds)))
	sum = sum.Add(t9.Const(c[6]).Mul(t9.Log()))
	_ = one
	return sum
}

// powGeneric computes base^exp generically. Fractional/negative powers of a
// positive temperature are well defined; T9 is always > 0 in practice
// (guarded upstream), so Pow(p float64) on the Scalar trait is sufficient -
// the exponent is a plain float64 constant, never read back from a Scalar,
// so a tape recording carries the same exponent as the float path.
func powGeneric(base num.Scalar, exp float64) num.Scalar {
	return base.Pow(exp)
}

// LogDerivative returns d(ln k)/dT9 analytically:
// -a1/T9^2 - a2/3*T9^(-4/3) + a3/3*T9^(-2/3) + a4 + 5/3*a5*T9^(2/3) + a6/T9
func (c R7) LogDerivative(t9 float64) float64 {
	return -c[1]/(t9*t9) -
		(c[2]/3.0)*math.Pow(t9, -4.0/3.0) +
		(c[3]/3.0)*math.Pow(t9, -2.0/3.0) +
		c[4] +
		(5.0/3.0)*c[5]*math.Pow(t9, 2.0/3.0) +
		c[6]/t9
}

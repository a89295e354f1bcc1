package num

import "math"

// F64 is the plain float64 implementation of Scalar. It is used for the
// PrecomputedReaction fast path and for any one-off evaluation that does not
// need a recorded tape.
type F64 float64

func (x F64) Add(o Scalar) Scalar { return x + o.(F64) }
func (x F64) Sub(o Scalar) Scalar { return x - o.(F64) }
func (x F64) Mul(o Scalar) Scalar { return x * o.(F64) }
func (x F64) Div(o Scalar) Scalar { return x / o.(F64) }
func (x F64) Neg() Scalar         { return -x }
func (x F64) Recip() Scalar       { return 1 / x }
func (x F64) Pow(p float64) Scalar {
	return F64(math.Pow(float64(x), p))
}
func (x F64) Exp() Scalar { return F64(math.Exp(float64(x))) }
func (x F64) Log() Scalar { return F64(math.Log(float64(x))) }

func (x F64) Value() float64      { return float64(x) }
func (x F64) Const(v float64) Scalar { return F64(v) }

func (x F64) CondGE(threshold float64, ifTrue, ifFalse Scalar) Scalar {
	if float64(x) >= threshold {
		return ifTrue
	}
	return ifFalse
}

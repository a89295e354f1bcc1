package partition

import "github.com/tboudreaux/GridFire-sub000/gferrors"

// Composite tries a prioritised list of partition functions in order and
// delegates to the first that supports (Z,A); it is a Config error (spec
// §4.2, §7) if none does.
type Composite struct {
	chain []Function
}

// NewComposite builds a composite over chain, tried in the given order.
func NewComposite(chain ...Function) *Composite {
	return &Composite{chain: chain}
}

func (c *Composite) Supports(z, a int) bool {
	for _, f := range c.chain {
		if f.Supports(z, a) {
			return true
		}
	}
	return false
}

func (c *Composite) Evaluate(z, a int, t9 float64) float64 {
	for _, f := range c.chain {
		if f.Supports(z, a) {
			return f.Evaluate(z, a, t9)
		}
	}
	panic(gferrors.New(gferrors.Config, "no partition function supports Z=%d A=%d", z, a))
}

func (c *Composite) EvaluateDerivative(z, a int, t9 float64) float64 {
	for _, f := range c.chain {
		if f.Supports(z, a) {
			return f.EvaluateDerivative(z, a, t9)
		}
	}
	panic(gferrors.New(gferrors.Config, "no partition function supports Z=%d A=%d", z, a))
}

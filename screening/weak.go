package screening

import (
	"github.com/tboudreaux/GridFire-sub000/internal/num"
	"github.com/tboudreaux/GridFire-sub000/reaction"
	"github.com/tboudreaux/GridFire-sub000/species"
)

const lowTempThresholdT9 = 1e-9

// Weak is the Salpeter weak-screening model (spec §4.3): a composition-
// weighted charge-squared moment zeta feeds a prefactor shared by every
// reaction, then each reaction's screening exponent H is built from its
// reactants' charges (with a dedicated triple-alpha special case), capped
// at 2, and collapsed to zero below lowTempThresholdT9.
type Weak struct{}

func (Weak) Factors(reactions []*reaction.LogicalReaction, speciesList []species.Species, y []num.Scalar, t9, rho num.Scalar) []num.Scalar {
	zero := t9.Const(0)
	one := t9.Const(1)

	zeta := zero
	for i, s := range speciesList {
		z := t9.Const(float64(s.Z))
		zeta = zeta.Add(z.Mul(z).Add(z).Mul(y[i]))
	}

	t7 := t9.Mul(t9.Const(100))
	t7Safe := t7.CondGE(lowTempThresholdT9, t7, t9.Const(lowTempThresholdT9))
	prefactor := t9.Const(0.188).
		Mul(rho.Div(t7Safe.Pow(3)).Pow(0.5)).
		Mul(zeta.Pow(0.5))

	lowTFlag := t9.CondGE(lowTempThresholdT9, one, zero)

	factors := make([]num.Scalar, len(reactions))
	for i, r := range reactions {
		h12 := zero
		reactants := r.Reactants

		switch {
		case len(reactants) == 2:
			z1 := t9.Const(float64(reactants[0].Z))
			z2 := t9.Const(float64(reactants[1].Z))
			h12 = prefactor.Mul(z1).Mul(z2)
		case isTripleAlpha(reactants):
			zAlpha := t9.Const(2.0)
			hAlphaAlpha := prefactor.Mul(zAlpha).Mul(zAlpha)
			h12 = t9.Const(3.0).Mul(hAlphaAlpha)
		}

		h12 = h12.Mul(lowTFlag)
		h12 = h12.CondGE(2.0, t9.Const(2.0), h12)
		factors[i] = h12.Exp()
	}
	return factors
}

func isTripleAlpha(reactants []species.Species) bool {
	if len(reactants) != 3 {
		return false
	}
	if reactants[0].Z != 2 {
		return false
	}
	return reactants[0] == reactants[1] && reactants[1] == reactants[2]
}

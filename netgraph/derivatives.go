package netgraph

import (
	"sort"

	"github.com/tboudreaux/GridFire-sub000/internal/num"
	"github.com/tboudreaux/GridFire-sub000/internal/physconst"
	"github.com/tboudreaux/GridFire-sub000/reaction"
)

// calculateAllDerivatives is the num.Scalar-generic core of the engine
// (spec §4.1, §4.4): written once against num.Scalar, it is traced onto the
// AD tape at construction time (recordADTape). The non-precomputed path of
// CalculateRHSAndEnergy, and GetSpeciesTimescales through it, replay that
// tape rather than calling this function again.
func (e *Engine) calculateAllDerivatives(y []num.Scalar, t9, rho num.Scalar) (dydt []num.Scalar, energyRate num.Scalar) {
	screeningFactors := e.screeningModel.Factors(e.reactionSlice, e.speciesList, y, t9, rho)

	zero := t9.Const(0)
	one := t9.Const(1)

	// Below the density floor every reaction flow is zero (spec §4.1),
	// applied branch-free so the tape never needs to re-record when rho
	// crosses the threshold between evaluations.
	thresholdFlag := rho.CondGE(MinDensityThreshold, one, zero)

	yClamped := make([]num.Scalar, len(y))
	for i, v := range y {
		yClamped[i] = v.CondGE(0, v, zero)
	}

	dydt = make([]num.Scalar, len(e.speciesList))
	for i := range dydt {
		dydt[i] = zero
	}

	for j, lr := range e.reactionSlice {
		flow := screeningFactors[j].Mul(e.calculateMolarReactionFlow(lr, yClamped, t9, rho))
		for i := range e.speciesList {
			nu := e.stoichiometry.At(i, j)
			if nu == 0 {
				continue
			}
			contribution := thresholdFlag.Mul(t9.Const(nu)).Mul(flow).Div(rho)
			dydt[i] = dydt[i].Add(contribution)
		}
	}

	massProductionRate := zero
	for i, sp := range e.speciesList {
		massProductionRate = massProductionRate.Add(dydt[i].Mul(t9.Const(sp.AtomicMass * physconst.AtomicMassUnit)))
	}
	energyRate = massProductionRate.Mul(t9.Const(-physconst.Avogadro * physconst.SpeedOfLight * physconst.SpeedOfLight))

	return dydt, energyRate
}

// calculateMolarReactionFlow is R_j from spec §4.1: the bare rate times
// the screening-free part of the symmetry/abundance/density product. The
// screening factor itself is applied by the caller.
func (e *Engine) calculateMolarReactionFlow(lr *reaction.LogicalReaction, y []num.Scalar, t9, rho num.Scalar) num.Scalar {
	zero := t9.Const(0)
	one := t9.Const(1)

	counts := make(map[int]int, len(lr.Reactants))
	for _, s := range lr.Reactants {
		counts[e.speciesIndex[s]]++
	}
	indices := make([]int, 0, len(counts))
	for idx := range counts {
		indices = append(indices, idx)
	}
	sort.Ints(indices)

	k := lr.RateGeneric(t9)
	thresholdFlag := one
	molarConcProduct := one

	for _, idx := range indices {
		count := counts[idx]
		yi := y[idx]
		thresholdFlag = thresholdFlag.Mul(yi.CondGE(MinAbundanceThreshold, one, zero))

		molarConc := yi.Mul(rho)
		molarConcProduct = molarConcProduct.Mul(molarConc.Pow(float64(count)))
		if count > 1 {
			molarConcProduct = molarConcProduct.Div(t9.Const(factorial(count)))
		}
	}

	return molarConcProduct.Mul(k).Mul(thresholdFlag)
}

package netgraph

import (
	"math"
	"sort"

	"github.com/tboudreaux/GridFire-sub000/internal/num"
	"github.com/tboudreaux/GridFire-sub000/internal/physconst"
)

// precomputedReaction is the spec §3 PrecomputedReaction: everything about
// a reaction's contribution to dY/dt that depends only on network
// topology, not on the current state, computed once and reused every
// evaluation the fast path takes.
type precomputedReaction struct {
	reactionIndex               int
	uniqueReactantIndices       []int
	reactantPowers              []int
	symmetryFactor              float64
	affectedSpeciesIndices      []int
	stoichiometricCoefficients  []int
}

func (e *Engine) precomputeNetwork() {
	e.precomputed = make([]precomputedReaction, 0, len(e.reactionSlice))
	for j, lr := range e.reactionSlice {
		counts := make(map[int]int, len(lr.Reactants))
		for _, s := range lr.Reactants {
			counts[e.speciesIndex[s]]++
		}
		indices := make([]int, 0, len(counts))
		for idx := range counts {
			indices = append(indices, idx)
		}
		sort.Ints(indices)

		p := precomputedReaction{reactionIndex: j}
		symmetryDenominator := 1.0
		for _, idx := range indices {
			count := counts[idx]
			p.uniqueReactantIndices = append(p.uniqueReactantIndices, idx)
			p.reactantPowers = append(p.reactantPowers, count)
			symmetryDenominator *= 1.0 / factorial(count)
		}
		p.symmetryFactor = symmetryDenominator

		for s, coeff := range lr.Stoichiometry() {
			p.affectedSpeciesIndices = append(p.affectedSpeciesIndices, e.speciesIndex[s])
			p.stoichiometricCoefficients = append(p.stoichiometricCoefficients, coeff)
		}

		e.precomputed = append(e.precomputed, p)
	}
}

// calculateWithPrecomputation is the fast path of CalculateRHSAndEnergy:
// every per-reaction quantity that topology alone determines has already
// been computed by precomputeNetwork, so this is a direct float64
// evaluation with no tape replay (spec §4.4).
func (e *Engine) calculateWithPrecomputation(y []float64, t9, rho float64) StepDerivatives {
	dydt := make([]float64, len(e.speciesList))
	if rho >= MinDensityThreshold {
		bareRates := make([]float64, len(e.reactionSlice))
		for i, lr := range e.reactionSlice {
			bareRates[i] = lr.Rate(t9)
		}

		ys := make([]num.Scalar, len(y))
		for i, v := range y {
			ys[i] = num.F64(v)
		}
		screeningFactors := e.screeningModel.Factors(e.reactionSlice, e.speciesList, ys, num.F64(t9), num.F64(rho))

		for _, p := range e.precomputed {
			belowThreshold := false
			abundanceProduct := 1.0
			for k, idx := range p.uniqueReactantIndices {
				abundance := y[idx]
				if abundance < MinAbundanceThreshold {
					belowThreshold = true
					break
				}
				abundanceProduct *= math.Pow(abundance, float64(p.reactantPowers[k]))
			}
			if belowThreshold {
				continue
			}

			molarFlow := screeningFactors[p.reactionIndex].Value() *
				bareRates[p.reactionIndex] *
				p.symmetryFactor *
				abundanceProduct *
				math.Pow(rho, float64(len(e.reactionSlice[p.reactionIndex].Reactants)))

			for k, spIdx := range p.affectedSpeciesIndices {
				dydt[spIdx] += float64(p.stoichiometricCoefficients[k]) * molarFlow / rho
			}
		}
	}

	massProductionRate := 0.0
	for i, sp := range e.speciesList {
		massProductionRate += dydt[i] * sp.AtomicMass * physconst.AtomicMassUnit
	}
	energyRate := -massProductionRate * physconst.Avogadro * physconst.SpeedOfLight * physconst.SpeedOfLight

	return StepDerivatives{DYDT: dydt, EnergyRate: energyRate}
}

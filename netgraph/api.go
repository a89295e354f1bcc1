package netgraph

import (
	"math"

	"github.com/tboudreaux/GridFire-sub000/glog"
	"github.com/tboudreaux/GridFire-sub000/internal/num"
	"github.com/tboudreaux/GridFire-sub000/internal/physconst"
	"github.com/tboudreaux/GridFire-sub000/internal/sparse"
)

// NumSpecies reports the network's species count, |S|.
func (e *Engine) NumSpecies() int { return len(e.speciesList) }

// NumReactions reports the network's logical reaction count, |Rx|.
func (e *Engine) NumReactions() int { return len(e.reactionSlice) }

// CalculateRHSAndEnergy is spec §4.4's calculate_rhs_and_energy: dY/dt plus
// the specific nuclear energy generation rate at (y, T9, rho). Uses the
// PrecomputedReaction fast path when precomputation is enabled (the
// default), else replays the AD tape at zero order - both paths are
// numerically equivalent up to floating-point associativity.
func (e *Engine) CalculateRHSAndEnergy(y []float64, t9, rho float64) StepDerivatives {
	if e.usePrecomputation {
		return e.calculateWithPrecomputation(y, t9, rho)
	}
	packed := make([]float64, len(y)+2)
	copy(packed, y)
	packed[len(y)] = t9
	packed[len(y)+1] = rho
	outs := e.tape.Forward(packed)
	return StepDerivatives{
		DYDT:       append([]float64(nil), outs[:len(y)]...),
		EnergyRate: outs[len(y)],
	}
}

// GenerateJacobian replays the AD tape's reverse sweep at (y, T9, rho) and
// rebuilds the |S|x|S| Jacobian block, dropping entries with |value| <=
// MinJacobianThreshold (spec §4.4, §3).
func (e *Engine) GenerateJacobian(y []float64, t9, rho float64) {
	nSpecies := len(e.speciesList)
	packed := make([]float64, nSpecies+2)
	copy(packed, y)
	packed[nSpecies] = t9
	packed[nSpecies+1] = rho

	_, jac := e.tape.Jacobian(packed)

	fresh := sparse.New(nSpecies, nSpecies)
	for i := 0; i < nSpecies; i++ {
		row := jac[i]
		for k := 0; k < nSpecies; k++ {
			v := row[k]
			if math.Abs(v) > MinJacobianThreshold {
				fresh.Set(i, k, v)
			}
		}
	}
	e.jacobian = fresh
	glog.With("netgraph").Debugf("jacobian regenerated: %d nonzero entries", fresh.NNZ())
}

// GetSpeciesTimescales returns tau_i = |Y_i / Ydot_i| per species, +Inf
// where Ydot_i == 0 (spec §4.4, §8).
func (e *Engine) GetSpeciesTimescales(y []float64, t9, rho float64) []float64 {
	d := e.CalculateRHSAndEnergy(y, t9, rho)
	out := make([]float64, len(y))
	for i := range out {
		if d.DYDT[i] == 0 {
			out[i] = math.Inf(1)
			continue
		}
		out[i] = math.Abs(y[i] / d.DYDT[i])
	}
	return out
}

// ReactionFlows returns the screened molar flow R_j (spec §4.1) for every
// logical reaction in the network, keyed by reaction id. This is what
// AdaptiveEngineView.update uses to rank reactions for culling (spec
// §4.5 step 2) - it is computed directly in num.F64 rather than through
// the tape, since the view only needs values, never derivatives.
func (e *Engine) ReactionFlows(y []float64, t9, rho float64) map[string]float64 {
	ys := make([]num.Scalar, len(y))
	for i, v := range y {
		ys[i] = num.F64(v)
	}
	t9s, rhos := num.F64(t9), num.F64(rho)

	screeningFactors := e.screeningModel.Factors(e.reactionSlice, e.speciesList, ys, t9s, rhos)

	thresholdFlag := 1.0
	if rho < MinDensityThreshold {
		thresholdFlag = 0.0
	}

	out := make(map[string]float64, len(e.reactionSlice))
	for j, lr := range e.reactionSlice {
		flow := screeningFactors[j].Mul(e.calculateMolarReactionFlow(lr, ys, t9s, rhos)).Value() * thresholdFlag
		out[lr.ID] = flow
	}
	return out
}

// CalculateReactionEnergies returns the per-reaction Q-value-weighted
// contribution to epsilon-dot (erg s^-1 g^-1): supplements the aggregate-
// only formula of spec §4.4 for diagnostics and for testing the mass-
// balance invariant reaction by reaction (SPEC_FULL.md §4, "new").
func (e *Engine) CalculateReactionEnergies(y []float64, t9, rho float64) map[string]float64 {
	flows := e.ReactionFlows(y, t9, rho)
	out := make(map[string]float64, len(flows))
	const mevToErg = 1.602176634e-6
	for _, lr := range e.reactionSlice {
		out[lr.ID] = flows[lr.ID] * physconst.Avogadro * lr.QValue * mevToErg / rho
	}
	return out
}

package solver

import (
	"gonum.org/v1/gonum/mat"

	"github.com/tboudreaux/GridFire-sub000/composition"
	"github.com/tboudreaux/GridFire-sub000/config"
	"github.com/tboudreaux/GridFire-sub000/engine"
	"github.com/tboudreaux/GridFire-sub000/gridfire"
)

// DirectNetworkSolver integrates every species in its engine/view directly,
// the way approx8's fixed network does, but over an arbitrary species count
// and with controlled (not fixed) step size (spec C7).
type DirectNetworkSolver struct {
	Engine engine.Engine
	AbsTol float64
	RelTol float64
}

// NewDirectNetworkSolver builds a solver over eng with tolerances from
// config (spec §6, gridfire:solver:DirectNetworkSolver:{absTol,relTol}).
func NewDirectNetworkSolver(eng engine.Engine) *DirectNetworkSolver {
	return &DirectNetworkSolver{
		Engine: eng,
		AbsTol: config.Float64("gridfire:solver:DirectNetworkSolver:absTol"),
		RelTol: config.Float64("gridfire:solver:DirectNetworkSolver:relTol"),
	}
}

// Evaluate integrates in.Composition from t=0 to in.TMax at the fixed
// thermodynamic state (in.Temperature, in.Density), returning the resulting
// composition and accumulated energy. A zero or negative TMax is a
// zero-length integration: the input composition and energy pass through
// unchanged (spec §4.7).
func (s *DirectNetworkSolver) Evaluate(in gridfire.NetIn) (gridfire.NetOut, error) {
	if in.TMax <= 0 {
		return gridfire.NetOut{Composition: copyMap(in.Composition), Energy: in.Energy, StepCount: 0}, nil
	}

	speciesList := s.Engine.NetworkSpecies()
	n := len(speciesList) + 1 // last slot is the energy accumulator

	y := make([]float64, n)
	copy(y, composition.ToAbundance(in.Composition, speciesList))
	y[n-1] = in.Energy

	t9 := in.Temperature / 1e9
	rho := in.Density

	rhs := func(y []float64) ([]float64, error) {
		d, err := s.Engine.CalculateRHSAndEnergy(y[:n-1], t9, rho)
		if err != nil {
			return nil, err
		}
		out := make([]float64, n)
		copy(out, d.DYDT)
		out[n-1] = d.EnergyRate
		return out, nil
	}

	// The Jacobian functor reads the engine's species-by-species Jacobian
	// and zero-pads the energy row/column: the energy accumulator is
	// treated as a pure integral of the reaction flows, not fed back into
	// the linearly-implicit solve.
	jac := func(y []float64) (*mat.Dense, error) {
		if err := s.Engine.GenerateJacobian(y[:n-1], t9, rho); err != nil {
			return nil, err
		}
		j := mat.NewDense(n, n, nil)
		for i := 0; i < n-1; i++ {
			for k := 0; k < n-1; k++ {
				v, err := s.Engine.JacobianEntry(i, k)
				if err != nil {
					return nil, err
				}
				if v != 0 {
					j.Set(i, k, v)
				}
			}
		}
		return j, nil
	}

	steps, err := radau5Integrate(y, in.TMax, in.Dt0, s.AbsTol, s.RelTol, rhs, jac)
	if err != nil {
		return gridfire.NetOut{}, err
	}

	out := composition.ToMassFractions(y[:n-1], speciesList)
	out = composition.Normalize(out)

	return gridfire.NetOut{Composition: out, Energy: y[n-1], StepCount: steps}, nil
}

func copyMap(m map[string]float64) map[string]float64 {
	out := make(map[string]float64, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

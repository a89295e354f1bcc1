package solver

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/tboudreaux/GridFire-sub000/composition"
	"github.com/tboudreaux/GridFire-sub000/config"
	"github.com/tboudreaux/GridFire-sub000/engine"
	"github.com/tboudreaux/GridFire-sub000/gridfire"
	"github.com/tboudreaux/GridFire-sub000/netgraph"
	"github.com/tboudreaux/GridFire-sub000/screening"
)

// Thresholds that classify a species as QSE rather than dynamically
// integrated (spec §4.6 step C): a species whose fastest timescale is
// effectively instantaneous, or whose abundance is already negligible, is
// pinned by the algebraic solve instead of integrated.
const (
	qseTauFloor       = 1e-5 // s
	qseAbundanceFloor = 1e-15
)

// QSENetworkSolver implements spec §4.6: quasi-steady-state partitioning of
// the active network into an algebraically solved fast block and an
// integrated slow block, fronted by an ignition prepass that seeds Y0 at a
// forced high-temperature, bare-screening state.
type QSENetworkSolver struct {
	// Base is the underlying graph engine; only used to force BARE
	// screening for the ignition prepass and restore it afterward, since
	// screening is process-wide state on the graph engine, not per-view.
	Base *netgraph.Engine
	View engine.View

	AbsTol, RelTol                          float64
	IgnitionTemperature, IgnitionDensity     float64
	IgnitionTMax, IgnitionDt0                float64
	RefreshTempThreshold, RefreshRhoThreshold, RefreshFuelThreshold float64

	lastIn     gridfire.NetIn
	haveLastIn bool
}

// NewQSENetworkSolver builds a solver over the given base engine and the
// view it backs, with every tolerance/threshold pulled from config (spec
// §6).
func NewQSENetworkSolver(base *netgraph.Engine, view engine.View) *QSENetworkSolver {
	return &QSENetworkSolver{
		Base: base,
		View: view,

		AbsTol: config.Float64("gridfire:solver:DirectNetworkSolver:absTol"),
		RelTol: config.Float64("gridfire:solver:DirectNetworkSolver:relTol"),

		IgnitionTemperature: config.Float64("gridfire:solver:QSE:ignition:temperature"),
		IgnitionDensity:     config.Float64("gridfire:solver:QSE:ignition:density"),
		IgnitionTMax:        config.Float64("gridfire:solver:QSE:ignition:tMax"),
		IgnitionDt0:         config.Float64("gridfire:solver:QSE:ignition:dt0"),

		RefreshTempThreshold: config.Float64("gridfire:solver:policy:temp_threshold"),
		RefreshRhoThreshold:  config.Float64("gridfire:solver:policy:rho_threshold"),
		RefreshFuelThreshold: config.Float64("gridfire:solver:policy:fuel_threshold"),
	}
}

// Evaluate runs the full six-step QSE procedure of spec §4.6 and returns the
// resulting composition and accumulated energy.
func (s *QSENetworkSolver) Evaluate(in gridfire.NetIn) (gridfire.NetOut, error) {
	if err := s.refreshView(in); err != nil {
		return gridfire.NetOut{}, err
	}

	speciesList := s.View.NetworkSpecies()
	t9 := in.Temperature / 1e9
	rho := in.Density

	y0, err := s.ignitionPrepass(in)
	if err != nil {
		return gridfire.NetOut{}, err
	}

	dynIdx, qseIdx, err := s.classify(y0, t9, rho)
	if err != nil {
		return gridfire.NetOut{}, err
	}

	yQSE, err := s.solveQSEBlock(y0, dynIdx, qseIdx, t9, rho)
	if err != nil {
		return gridfire.NetOut{}, err
	}

	yDynFinal, energy, steps, err := s.integrateSlowManifold(y0, yQSE, dynIdx, qseIdx, in.Energy, in.TMax, in.Dt0, t9, rho)
	if err != nil {
		return gridfire.NetOut{}, err
	}

	yFull := assemble(len(speciesList), dynIdx, yDynFinal, qseIdx, yQSE)
	out := composition.ToMassFractions(yFull, speciesList)
	out = composition.Normalize(out)

	return gridfire.NetOut{Composition: out, Energy: energy, StepCount: steps}, nil
}

// refreshView implements Step A's view-refresh policy: the view is updated
// whenever it is stale, or the temperature, density, or H-1 (fuel) mass
// fraction have moved beyond their configured relative thresholds since the
// last evaluation.
func (s *QSENetworkSolver) refreshView(in gridfire.NetIn) error {
	needsUpdate := s.View.Stale() || !s.haveLastIn

	if s.haveLastIn && !needsUpdate {
		if relChange(in.Temperature, s.lastIn.Temperature) > s.RefreshTempThreshold {
			needsUpdate = true
		}
		if relChange(in.Density, s.lastIn.Density) > s.RefreshRhoThreshold {
			needsUpdate = true
		}
		if relChange(in.Composition["H-1"], s.lastIn.Composition["H-1"]) > s.RefreshFuelThreshold {
			needsUpdate = true
		}
	}

	if needsUpdate {
		if err := s.View.Update(in); err != nil {
			return err
		}
	}
	s.lastIn = in
	s.haveLastIn = true
	return nil
}

func relChange(a, b float64) float64 {
	denom := math.Max(math.Abs(a), math.Abs(b))
	if denom == 0 {
		return 0
	}
	return math.Abs(a-b) / denom
}

// ignitionPrepass implements Step B: integrate the current composition at a
// fixed high-temperature, bare-screening state to seed Y0 for the
// classification and algebraic steps. The screening model is restored
// before returning, whatever the outcome.
func (s *QSENetworkSolver) ignitionPrepass(in gridfire.NetIn) ([]float64, error) {
	prevModel := s.Base.ScreeningModel()
	if err := s.Base.SetScreeningModel(screening.Bare{}); err != nil {
		return nil, err
	}
	defer s.Base.SetScreeningModel(prevModel)

	ignitionIn := gridfire.NetIn{
		Composition: in.Composition,
		Temperature: s.IgnitionTemperature,
		Density:     s.IgnitionDensity,
		TMax:        s.IgnitionTMax,
		Dt0:         s.IgnitionDt0,
	}
	direct := NewDirectNetworkSolver(s.View)
	direct.AbsTol, direct.RelTol = s.AbsTol, s.RelTol

	out, err := direct.Evaluate(ignitionIn)
	if err != nil {
		return nil, err
	}
	return composition.ToAbundance(out.Composition, s.View.NetworkSpecies()), nil
}

// classify implements Step C: a species is QSE when its combined
// reaction/decay timescale is non-finite (never happens unless both are
// infinite) or below qseTauFloor, or when it is already depleted below
// qseAbundanceFloor; every other species is integrated dynamically.
func (s *QSENetworkSolver) classify(y0 []float64, t9, rho float64) (dynIdx, qseIdx []int, err error) {
	taus, err := s.View.GetSpeciesTimescales(y0, t9, rho)
	if err != nil {
		return nil, nil, err
	}
	speciesList := s.View.NetworkSpecies()

	for i, sp := range speciesList {
		tauDecay := math.Inf(1)
		if lambda := sp.DecayConstant(); lambda > 0 {
			tauDecay = 1 / lambda
		}
		tauFinal := math.Min(taus[i], tauDecay)

		isQSE := math.IsInf(tauFinal, 1) || tauFinal <= qseTauFloor || y0[i] < qseAbundanceFloor
		if isQSE {
			qseIdx = append(qseIdx, i)
		} else {
			dynIdx = append(dynIdx, i)
		}
	}
	return dynIdx, qseIdx, nil
}

// solveQSEBlock implements Step D: Levenberg-Marquardt in log-abundance
// space drives the full-network dY/dt restricted to the QSE species to
// zero, holding the dynamic species fixed at their ignition-prepass values.
func (s *QSENetworkSolver) solveQSEBlock(y0 []float64, dynIdx, qseIdx []int, t9, rho float64) ([]float64, error) {
	if len(qseIdx) == 0 {
		return nil, nil
	}
	n := s.View.NumSpecies()

	v0 := make([]float64, len(qseIdx))
	for i, idx := range qseIdx {
		y := y0[idx]
		if y < qseAbundanceFloor {
			y = qseAbundanceFloor
		}
		v0[i] = math.Log(y)
	}

	residual := func(v []float64) ([]float64, error) {
		yFull := assemble(n, dynIdx, gather(y0, dynIdx), qseIdx, expAll(v))
		d, err := s.View.CalculateRHSAndEnergy(yFull, t9, rho)
		if err != nil {
			return nil, err
		}
		r := make([]float64, len(qseIdx))
		for i, idx := range qseIdx {
			r[i] = d.DYDT[idx]
		}
		return r, nil
	}

	jacobian := func(v []float64) (*mat.Dense, error) {
		yFull := assemble(n, dynIdx, gather(y0, dynIdx), qseIdx, expAll(v))
		if err := s.View.GenerateJacobian(yFull, t9, rho); err != nil {
			return nil, err
		}
		m := len(qseIdx)
		j := mat.NewDense(m, m, nil)
		for i, ri := range qseIdx {
			for k, ck := range qseIdx {
				entry, err := s.View.JacobianEntry(ri, ck)
				if err != nil {
					return nil, err
				}
				j.Set(i, k, entry*math.Exp(v[k]))
			}
		}
		return j, nil
	}

	tol := s.AbsTol
	if tol <= 0 {
		tol = 1e-8
	}
	v, err := lmSolve(v0, tol, 200, residual, jacobian)
	if err != nil {
		return nil, err
	}
	return expAll(v), nil
}

// integrateSlowManifold implements Step E: the dynamic species (plus the
// energy accumulator) are integrated with gosl/ode's explicit Dopri5
// stepper (spec §4.6 step E: "Dopri5 controlled step"), with yQSE held
// fixed at Step D's solution for the whole integration window. Unlike the
// Direct solver's implicit Radau5 step, this never touches the engine's
// Jacobian: once the fast species are pinned, the slow manifold is well
// enough conditioned for an explicit adaptive method.
func (s *QSENetworkSolver) integrateSlowManifold(y0, yQSE []float64, dynIdx, qseIdx []int, energy0, tMax, dt0, t9, rho float64) ([]float64, float64, int, error) {
	n := s.View.NumSpecies()
	nDyn := len(dynIdx)
	state := make([]float64, nDyn+1)
	for i, idx := range dynIdx {
		state[i] = y0[idx]
	}
	state[nDyn] = energy0

	if tMax <= 0 {
		return state[:nDyn], state[nDyn], 0, nil
	}

	rhs := func(state []float64) ([]float64, error) {
		yFull := assemble(n, dynIdx, state[:nDyn], qseIdx, yQSE)
		d, err := s.View.CalculateRHSAndEnergy(yFull, t9, rho)
		if err != nil {
			return nil, err
		}
		out := make([]float64, nDyn+1)
		for i, idx := range dynIdx {
			out[i] = d.DYDT[idx]
		}
		out[nDyn] = d.EnergyRate
		return out, nil
	}

	steps, err := dopri5Integrate(state, tMax, dt0, s.AbsTol, s.RelTol, rhs)
	if err != nil {
		return nil, 0, steps, err
	}
	return state[:nDyn], state[nDyn], steps, nil
}

func gather(y []float64, idx []int) []float64 {
	out := make([]float64, len(idx))
	for i, id := range idx {
		out[i] = y[id]
	}
	return out
}

func expAll(v []float64) []float64 {
	out := make([]float64, len(v))
	for i, x := range v {
		out[i] = math.Exp(x)
	}
	return out
}

// assemble scatters the dynamic and QSE blocks back into a full-length
// view-space abundance vector.
func assemble(n int, dynIdx []int, yDyn []float64, qseIdx []int, yQSE []float64) []float64 {
	full := make([]float64, n)
	for i, idx := range dynIdx {
		full[idx] = yDyn[i]
	}
	for i, idx := range qseIdx {
		full[idx] = yQSE[i]
	}
	return full
}

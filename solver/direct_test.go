package solver

import (
	"testing"

	"github.com/tboudreaux/GridFire-sub000/engine"
	"github.com/tboudreaux/GridFire-sub000/gridfire"
	"github.com/tboudreaux/GridFire-sub000/internal/gftest"
)

func Test_directZeroLengthPassesThrough01(tst *testing.T) {
	base := engine.NewBase(buildSolverTestNetwork(tst))
	s := NewDirectNetworkSolver(base)

	in := gridfire.NetIn{Composition: map[string]float64{"H-1": 0.7, "H-2": 0.3}, Temperature: 1e7, Density: 100}
	out, err := s.Evaluate(in)
	if err != nil {
		tst.Fatalf("evaluate: %v", err)
	}
	if out.StepCount != 0 {
		tst.Errorf("expected 0 steps for a zero-length integration, got %d", out.StepCount)
	}
	if out.Energy != 0 {
		tst.Errorf("expected energy to pass through unchanged, got %v", out.Energy)
	}
	for name, want := range in.Composition {
		if got := out.Composition[name]; got != want {
			tst.Errorf("composition[%s] = %v, want %v unchanged", name, got, want)
		}
	}
}

func Test_directConservesMass01(tst *testing.T) {
	base := engine.NewBase(buildSolverTestNetwork(tst))
	s := NewDirectNetworkSolver(base)

	in := gridfire.NetIn{
		Composition: map[string]float64{"H-1": 0.9, "H-2": 0.08, "He-3": 0.02},
		Temperature: 5e7,
		Density:     100,
		TMax:        1e3,
		Dt0:         1,
	}
	out, err := s.Evaluate(in)
	if err != nil {
		tst.Fatalf("evaluate: %v", err)
	}

	sum := 0.0
	for _, x := range out.Composition {
		sum += x
	}
	gftest.CloseTo(tst, "mass fraction sum after normalization", 1e-9, sum, 1.0)
	if out.StepCount <= 0 {
		tst.Errorf("expected at least one accepted step, got %d", out.StepCount)
	}
}

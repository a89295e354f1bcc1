package solver

import (
	"math"
	"testing"

	"github.com/tboudreaux/GridFire-sub000/engine"
	"github.com/tboudreaux/GridFire-sub000/gridfire"
	"github.com/tboudreaux/GridFire-sub000/internal/gftest"
)

func Test_relChange01(tst *testing.T) {
	if got := relChange(5, 5); got != 0 {
		tst.Errorf("equal values: got %v want 0", got)
	}
	if got := relChange(0, 0); got != 0 {
		tst.Errorf("both zero: got %v want 0", got)
	}
	if got, want := relChange(110, 100), 0.1; math.Abs(got-want) > 1e-12 {
		tst.Errorf("relChange(110,100) = %v, want %v", got, want)
	}
}

func Test_assembleGatherExpAllRoundTrip01(tst *testing.T) {
	dynIdx := []int{0, 2}
	qseIdx := []int{1, 3}
	yDyn := []float64{10, 30}
	yQSE := []float64{20, 40}

	full := assemble(4, dynIdx, yDyn, qseIdx, yQSE)
	gftest.Vector(tst, "assemble", 0, full, []float64{10, 20, 30, 40})

	gathered := gather(full, dynIdx)
	gftest.Vector(tst, "gather", 0, gathered, yDyn)

	logs := []float64{0, math.Log(2)}
	gftest.Vector(tst, "expAll", 1e-12, expAll(logs), []float64{1, 2})
}

func Test_refreshViewUpdatesWhenStale01(tst *testing.T) {
	base := buildSolverTestNetwork(tst)
	v := engine.NewAdaptiveEngineView(engine.NewBase(base), 1e-10)
	s := NewQSENetworkSolver(base, v)

	in := gridfire.NetIn{Composition: map[string]float64{"H-1": 0.9, "H-2": 0.08, "He-3": 0.02}, Temperature: 5e7, Density: 100}
	if err := s.refreshView(in); err != nil {
		tst.Fatalf("refreshView: %v", err)
	}
	if v.Stale() {
		tst.Errorf("expected view to be refreshed (non-stale) after refreshView")
	}
	if !s.haveLastIn {
		tst.Errorf("expected haveLastIn to be set")
	}
}

func Test_qseEvaluateConservesMass01(tst *testing.T) {
	base := buildSolverTestNetwork(tst)
	v := engine.NewAdaptiveEngineView(engine.NewBase(base), 1e-10)
	s := NewQSENetworkSolver(base, v)

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
}

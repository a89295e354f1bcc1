package partition

import (
	"math"
	"testing"
)

func sampleRecord() IsotopeRecord {
	rec := IsotopeRecord{Z: 6, A: 12, GroundStateSpin: 0}
	for i := range rec.NormalizedG {
		rec.NormalizedG[i] = 1.0 + 0.1*float64(i)
	}
	return rec
}

func Test_rtInterpolationMiddle01(tst *testing.T) {
	rt := NewRauscherThielemann([]IsotopeRecord{sampleRecord()})
	if !rt.Supports(6, 12) {
		tst.Fatalf("expected RT table to support C-12")
	}
	// halfway between grid[0]=0.01 and grid[1]=0.15
	mid := (temperatureGridT9[0] + temperatureGridT9[1]) / 2
	got := rt.Evaluate(6, 12, mid)
	want := (sampleRecord().NormalizedG[0] + sampleRecord().NormalizedG[1]) / 2
	if math.Abs(got-want) > 1e-9 {
		tst.Errorf("interpolated g_norm = %v, want %v", got, want)
	}
}

func Test_rtFrontBackClamp01(tst *testing.T) {
	rt := NewRauscherThielemann([]IsotopeRecord{sampleRecord()})
	front := rt.Evaluate(6, 12, 1e-6)
	if math.Abs(front-sampleRecord().NormalizedG[0]) > 1e-12 {
		tst.Errorf("expected front clamp, got %v", front)
	}
	back := rt.Evaluate(6, 12, 50.0)
	if math.Abs(back-sampleRecord().NormalizedG[23]) > 1e-12 {
		tst.Errorf("expected back clamp, got %v", back)
	}
	if rt.EvaluateDerivative(6, 12, 1e-6) != 0 {
		tst.Errorf("expected zero derivative at front boundary")
	}
}

func Test_groundStateFallback01(tst *testing.T) {
	g := NewGroundState()
	if !g.Supports(1, 1) {
		tst.Fatalf("expected ground state to support H-1")
	}
	if g.EvaluateDerivative(1, 1, 5.0) != 0 {
		tst.Errorf("expected zero derivative")
	}
}

func Test_compositeFallsThrough01(tst *testing.T) {
	rt := NewRauscherThielemann(nil)
	gs := NewGroundState()
	c := NewComposite(rt, gs)
	if !c.Supports(1, 1) {
		tst.Fatalf("expected composite to fall through to ground state for H-1")
	}
}

func Test_compositePanicsWhenUnsupported01(tst *testing.T) {
	c := NewComposite(NewRauscherThielemann(nil))
	defer func() {
		if recover() == nil {
			tst.Fatalf("expected panic when no partition function in the chain supports the isotope")
		}
	}()
	c.Evaluate(999, 999, 1.0)
}

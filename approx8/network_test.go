package approx8

import (
	"math"
	"testing"

	"github.com/tboudreaux/GridFire-sub000/gridfire"
)

func smokeNetIn() gridfire.NetIn {
	return gridfire.NetIn{
		Composition: map[string]float64{
			"H-1": 0.708, "He-3": 2.94e-5, "He-4": 0.276, "C-12": 0.003,
			"N-14": 1.1e-3, "O-16": 9.62e-3, "Ne-20": 1.62e-3, "Mg-24": 5.16e-4,
		},
		Temperature: 1e7,
		Density:     100,
		TMax:        3.15e17,
		Dt0:         1e12,
	}
}

func Test_evaluateStiff01(tst *testing.T) {
	net := New(true)
	out, err := net.Evaluate(smokeNetIn())
	if err != nil {
		tst.Fatalf("unexpected error: %v", err)
	}

	sum := 0.0
	for _, x := range out.Composition {
		sum += x
	}
	if math.Abs(sum-1) > 1e-9 {
		tst.Errorf("mass fractions do not sum to 1: got %v", sum)
	}
	if out.Composition["H-1"] >= smokeNetIn().Composition["H-1"] {
		tst.Errorf("expected hydrogen to burn down over t_max, got X(H-1)=%v", out.Composition["H-1"])
	}
	if out.Energy <= 0 {
		tst.Errorf("expected positive specific energy release, got %v", out.Energy)
	}
	if out.StepCount <= 0 {
		tst.Errorf("expected a positive step count")
	}
}

func Test_evaluateNonStiff01(tst *testing.T) {
	net := New(false)
	in := smokeNetIn()
	in.TMax = 1e10
	in.Dt0 = 1e6
	out, err := net.Evaluate(in)
	if err != nil {
		tst.Fatalf("unexpected error: %v", err)
	}
	sum := 0.0
	for _, x := range out.Composition {
		sum += x
	}
	if math.Abs(sum-1) > 1e-9 {
		tst.Errorf("mass fractions do not sum to 1: got %v", sum)
	}
}

func Test_rateFitPositive01(tst *testing.T) {
	t9 := getT9Array(1.5e7)
	if ppRate(t9) <= 0 {
		tst.Errorf("expected positive pp rate at T9 derived from 1.5e7 K")
	}
}

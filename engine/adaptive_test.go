package engine

import (
	"math"
	"testing"

	"github.com/tboudreaux/GridFire-sub000/gferrors"
	"github.com/tboudreaux/GridFire-sub000/gridfire"
)

func testNetIn() gridfire.NetIn {
	return gridfire.NetIn{
		Composition: map[string]float64{"H-1": 0.7, "He-4": 0.3},
		Temperature: 1e7,
		Density:     100,
	}
}

func Test_staleBeforeUpdate01(tst *testing.T) {
	base := NewBase(buildTestNetwork(tst))
	v := NewAdaptiveEngineView(base, 1e-10)
	if !v.Stale() {
		tst.Fatalf("expected a freshly constructed view to be stale")
	}
	if _, err := v.CalculateRHSAndEnergy([]float64{1}, 1, 1); !gferrors.Is(err, gferrors.Stale) {
		tst.Errorf("expected Stale error before update, got %v", err)
	}
}

func Test_adaptiveCullsUnreachableSpecies01(tst *testing.T) {
	base := NewBase(buildTestNetwork(tst))
	v := NewAdaptiveEngineView(base, 1e-10)
	if err := v.Update(testNetIn()); err != nil {
		tst.Fatalf("update: %v", err)
	}
	if v.Stale() {
		tst.Fatalf("expected view to be clean after update")
	}

	for _, s := range v.NetworkSpecies() {
		if s.Name == "Mg-24" || s.Name == "Ne-20" {
			tst.Errorf("expected %s to be absent from the reachable active set, but it was present", s.Name)
		}
	}

	found := false
	for _, s := range v.NetworkSpecies() {
		if s.Name == "H-1" {
			found = true
		}
	}
	if !found {
		tst.Errorf("expected seed fuel H-1 to be present in the active species set")
	}
}

func Test_mapRoundTrip01(tst *testing.T) {
	base := NewBase(buildTestNetwork(tst))
	v := NewAdaptiveEngineView(base, 1e-10)
	if err := v.Update(testNetIn()); err != nil {
		tst.Fatalf("update: %v", err)
	}

	view := make([]float64, v.NumSpecies())
	for i := range view {
		view[i] = float64(i + 1)
	}

	full, err := v.MapViewToFull(view)
	if err != nil {
		tst.Fatalf("map view to full: %v", err)
	}
	back, err := v.MapFullToView(full)
	if err != nil {
		tst.Fatalf("map full to view: %v", err)
	}

	for i := range view {
		if math.Abs(back[i]-view[i]) > 1e-12 {
			tst.Errorf("round trip mismatch at %d: got %v want %v", i, back[i], view[i])
		}
	}
}

func Test_adaptiveRHSAgreesWithBase01(tst *testing.T) {
	baseEngine := buildTestNetwork(tst)
	base := NewBase(baseEngine)
	v := NewAdaptiveEngineView(base, 1e-10)
	if err := v.Update(testNetIn()); err != nil {
		tst.Fatalf("update: %v", err)
	}

	yView := make([]float64, v.NumSpecies())
	for i, s := range v.NetworkSpecies() {
		yView[i] = testNetIn().Composition[s.Name] / s.AtomicMass
	}

	viewOut, err := v.CalculateRHSAndEnergy(yView, 1.0, 100.0)
	if err != nil {
		tst.Fatalf("view RHS: %v", err)
	}

	yFull, err := v.MapViewToFull(yView)
	if err != nil {
		tst.Fatalf("map: %v", err)
	}
	baseOut := baseEngine.CalculateRHSAndEnergy(yFull, 1.0, 100.0)

	if math.Abs(viewOut.EnergyRate-baseOut.EnergyRate) > 1e-9*math.Abs(baseOut.EnergyRate)+1e-300 {
		tst.Errorf("view energy rate %v disagrees with base %v", viewOut.EnergyRate, baseOut.EnergyRate)
	}
}

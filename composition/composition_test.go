package composition

import (
	"math"
	"testing"

	"github.com/tboudreaux/GridFire-sub000/species"
)

func Test_roundTrip01(tst *testing.T) {
	list := []species.Species{species.MustLookup("H-1"), species.MustLookup("He-4")}
	x := map[string]float64{"H-1": 0.7, "He-4": 0.3}

	y := ToAbundance(x, list)
	back := ToMassFractions(y, list)

	for _, s := range list {
		if math.Abs(back[s.Name]-x[s.Name]) > 1e-9 {
			tst.Errorf("round trip mismatch for %s: got %v want %v", s.Name, back[s.Name], x[s.Name])
		}
	}
}

func Test_missingSpeciesIsZero01(tst *testing.T) {
	list := []species.Species{species.MustLookup("H-1"), species.MustLookup("C-12")}
	x := map[string]float64{"H-1": 1.0}

	y := ToAbundance(x, list)
	if y[1] != 0 {
		tst.Errorf("expected missing species to map to zero abundance, got %v", y[1])
	}
}

func Test_normalize01(tst *testing.T) {
	x := map[string]float64{"H-1": 1.0, "He-4": 1.0}
	Normalize(x)
	if math.Abs(Sum(x)-1) > 1e-12 {
		tst.Errorf("expected normalized sum of 1, got %v", Sum(x))
	}
}

func Test_normalizeZeroIsNoop01(tst *testing.T) {
	x := map[string]float64{"H-1": 0.0}
	Normalize(x)
	if x["H-1"] != 0 {
		tst.Errorf("expected all-zero composition to stay untouched")
	}
}

func Test_clampBelowFloor01(tst *testing.T) {
	list := []species.Species{species.MustLookup("H-1")}
	y := []float64{1e-30}
	out := ToMassFractions(y, list)
	if out["H-1"] != 0 {
		tst.Errorf("expected sub-floor mass fraction clamped to zero, got %v", out["H-1"])
	}
}

// Package composition implements the trusted external "Composition"
// collaborator named in spec §1: mass-fraction <-> molar-abundance
// conversion and normalization. Upstream callers (species, reaction,
// netgraph, engine, solver) never reach across this boundary - every
// formula in those packages operates on plain []float64 molar abundances,
// keeping this package the single place that knows about atomic masses as
// a bookkeeping concern rather than a physics one. Grounded on gofem's
// fem.Dof/fem.Solution split: the finite-element state vector and the
// physical quantities it represents are kept in separate, narrow types
// rather than one struct knowing how to do everything.
package composition

import (
	"github.com/tboudreaux/GridFire-sub000/species"
)

// ClampFloor is the abundance/mass-fraction floor below which a value is
// treated as exactly zero (spec §4.6: "clamps values below 1e-18 to
// zero").
const ClampFloor = 1e-18

// ToAbundance converts a mass-fraction map X (keyed by species name) to a
// molar-abundance vector Y ordered like speciesList. A species present in
// speciesList but absent from massFractions contributes Y=0 (spec §4.7:
// "missing species in composition... treated as abundance 0").
func ToAbundance(massFractions map[string]float64, speciesList []species.Species) []float64 {
	y := make([]float64, len(speciesList))
	for i, s := range speciesList {
		x, ok := massFractions[s.Name]
		if !ok {
			continue
		}
		y[i] = x / s.AtomicMass
	}
	return y
}

// ToMassFractions converts a molar-abundance vector Y ordered like
// speciesList back into a mass-fraction map, clamping values below
// ClampFloor to zero before the map is built (spec §4.6).
func ToMassFractions(y []float64, speciesList []species.Species) map[string]float64 {
	out := make(map[string]float64, len(speciesList))
	for i, s := range speciesList {
		x := y[i] * s.AtomicMass
		if x < ClampFloor {
			x = 0
		}
		out[s.Name] = x
	}
	return out
}

// Normalize rescales a mass-fraction map in place so its values sum to 1,
// leaving an all-zero or empty map untouched (there is nothing sensible to
// normalize to). Returns the same map for call chaining.
func Normalize(massFractions map[string]float64) map[string]float64 {
	sum := 0.0
	for _, x := range massFractions {
		sum += x
	}
	if sum <= 0 {
		return massFractions
	}
	for name, x := range massFractions {
		massFractions[name] = x / sum
	}
	return massFractions
}

// Sum returns the total mass fraction represented by a composition map.
func Sum(massFractions map[string]float64) float64 {
	sum := 0.0
	for _, x := range massFractions {
		sum += x
	}
	return sum
}

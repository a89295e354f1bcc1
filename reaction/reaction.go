package reaction

import (
	"fmt"
	"math"

	"github.com/tboudreaux/GridFire-sub000/gferrors"
	"github.com/tboudreaux/GridFire-sub000/species"
)

// Chapter is REACLIB's structural classification of a reaction by
// reactant/product counts (1 through 8).
type Chapter int

// Reaction is one evaluation of one physical reaction from one data
// source. Constructed once at network build time and never mutated
// thereafter (spec §3).
type Reaction struct {
	ID        string
	PEName    string // "projectile-ejectile" notation, e.g. "p(p,g)d"
	Chapter   Chapter
	Reactants []species.Species // duplicates allowed: multiplicity
	Products  []species.Species
	QValue    float64 // MeV
	Source    string  // data-source label, e.g. "st08"
	Coeffs    R7
	Reverse   bool
}

// New validates and constructs a Reaction. Mass number and atomic number
// conservation is checked here (spec §3 invariant); violations are fatal
// DataIntegrity errors raised at network-build time, never silently
// swallowed.
func New(id, peName string, chapter Chapter, reactants, products []species.Species, qValue float64, source string, coeffs R7, reverse bool) (*Reaction, error) {
	if len(reactants) < 1 || len(reactants) > 3 {
		return nil, gferrors.New(gferrors.DataIntegrity, "reaction %q: reactant count %d outside {1,2,3}", id, len(reactants))
	}
	var sumAr, sumZr, sumAp, sumZp int
	for _, s := range reactants {
		sumAr += s.A
		sumZr += s.Z
	}
	for _, s := range products {
		sumAp += s.A
		sumZp += s.Z
	}
	if sumAr != sumAp {
		return nil, gferrors.New(gferrors.DataIntegrity, "reaction %q: mass number not conserved (%d reactants vs %d products)", id, sumAr, sumAp)
	}
	if sumZr != sumZp {
		return nil, gferrors.New(gferrors.DataIntegrity, "reaction %q: atomic number not conserved (%d reactants vs %d products)", id, sumZr, sumZp)
	}
	return &Reaction{
		ID:        id,
		PEName:    peName,
		Chapter:   chapter,
		Reactants: append([]species.Species(nil), reactants...),
		Products:  append([]species.Species(nil), products...),
		QValue:    qValue,
		Source:    source,
		Coeffs:    coeffs,
		Reverse:   reverse,
	}, nil
}

// ReactantMultiplicities returns the unique reactant species of the
// reaction together with how many times each appears (e.g. 3-alpha yields
// one entry, {He-4: 3}).
func (r *Reaction) ReactantMultiplicities() map[species.Species]int {
	m := make(map[species.Species]int)
	for _, s := range r.Reactants {
		m[s]++
	}
	return m
}

// NumReactantParticles returns N_r = sum of reactant multiplicities.
func (r *Reaction) NumReactantParticles() int { return len(r.Reactants) }

// SymmetryFactor returns 1/prod_i(c_i!) over reactant multiplicities.
func (r *Reaction) SymmetryFactor() float64 {
	factor := 1.0
	for _, c := range r.ReactantMultiplicities() {
		factor /= factorial(c)
	}
	return factor
}

func factorial(n int) float64 {
	f := 1.0
	for i := 2; i <= n; i++ {
		f *= float64(i)
	}
	return f
}

// Stoichiometry returns the net coefficient (products - reactants, with
// multiplicity) for every species touched by this reaction.
func (r *Reaction) Stoichiometry() map[species.Species]int {
	m := make(map[species.Species]int)
	for _, s := range r.Reactants {
		m[s]--
	}
	for _, s := range r.Products {
		m[s]++
	}
	return m
}

// AllSpecies returns the union of reactants and products, each once.
func (r *Reaction) AllSpecies() []species.Species {
	seen := make(map[species.Species]bool)
	var out []species.Species
	for _, s := range r.Reactants {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	for _, s := range r.Products {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}

// Contains reports whether species s appears as a reactant or product.
func (r *Reaction) Contains(s species.Species) bool {
	for _, x := range r.Reactants {
		if x == s {
			return true
		}
	}
	for _, x := range r.Products {
		if x == s {
			return true
		}
	}
	return false
}

func (r *Reaction) String() string {
	return fmt.Sprintf("%s [%s] (Q=%.4f MeV, source=%s)", r.ID, r.PEName, r.QValue, r.Source)
}

// partitionFunctionValue is a partition-function seam returning a value and
// a supported flag; kept as a function type rather than an interface import
// to avoid reaction depending on package partition. Nothing in the package
// uses it: reverse.go takes a PartitionLookup instead.
type partitionFunctionValue func(z, a int, t9 float64) (float64, bool)

// epsilonEqual compares two MeV-scale floats with the spec's 1e-6 MeV
// tolerance for LogicalReaction contributor consistency.
func epsilonEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}

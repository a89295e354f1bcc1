package reaction

import (
	"sort"

	"github.com/tboudreaux/GridFire-sub000/gferrors"
	"github.com/tboudreaux/GridFire-sub000/internal/num"
	"github.com/tboudreaux/GridFire-sub000/species"
)

// contributor is one data source's rate coefficients inside a
// LogicalReaction.
type contributor struct {
	source string
	coeffs R7
}

// LogicalReaction aggregates rates from every data source sharing the same
// projectile-ejectile name (spec §3). Its rate at T9 is the sum over
// contributors of exp(poly_k(T9)).
type LogicalReaction struct {
	ID        string // uses the first contributor's id as its identity for set membership
	PEName    string
	Chapter   Chapter
	Reactants []species.Species
	Products  []species.Species
	QValue    float64

	contributors []contributor
}

// NewLogicalReaction seeds a LogicalReaction from its first contributing
// Reaction.
func NewLogicalReaction(first *Reaction) *LogicalReaction {
	return &LogicalReaction{
		ID:        first.ID,
		PEName:    first.PEName,
		Chapter:   first.Chapter,
		Reactants: append([]species.Species(nil), first.Reactants...),
		Products:  append([]species.Species(nil), first.Products...),
		QValue:    first.QValue,
		contributors: []contributor{
			{source: first.Source, coeffs: first.Coeffs},
		},
	}
}

// AddContributor folds another data source's rate into this logical
// reaction. Fatal DataIntegrity if the peName/Q-value mismatch the
// existing contributors, or if the source label is a duplicate (spec §3,
// §4.7).
func (lr *LogicalReaction) AddContributor(r *Reaction) error {
	if r.PEName != lr.PEName {
		return gferrors.New(gferrors.DataIntegrity, "logical reaction %q: peName mismatch %q vs %q", lr.ID, r.PEName, lr.PEName)
	}
	if !epsilonEqual(r.QValue, lr.QValue) {
		return gferrors.New(gferrors.DataIntegrity, "logical reaction %q: Q-value mismatch %.9f vs %.9f MeV", lr.ID, r.QValue, lr.QValue)
	}
	for _, c := range lr.contributors {
		if c.source == r.Source {
			return gferrors.New(gferrors.DataIntegrity, "logical reaction %q: duplicate source label %q", lr.ID, r.Source)
		}
	}
	lr.contributors = append(lr.contributors, contributor{source: r.Source, coeffs: r.Coeffs})
	return nil
}

// Rate returns sum_k exp(poly_k(T9)) over contributors.
func (lr *LogicalReaction) Rate(t9 float64) float64 {
	sum := 0.0
	for _, c := range lr.contributors {
		sum += c.coeffs.Rate(t9)
	}
	return sum
}

// RateGeneric is the num.Scalar-generic form of Rate, used both for direct
// num.F64 evaluation (e.g. netgraph's ReactionFlows) and for AD tape
// recording. The PrecomputedReaction fast path calls Rate instead.
func (lr *LogicalReaction) RateGeneric(t9 num.Scalar) num.Scalar {
	sum := t9.Const(0)
	for _, c := range lr.contributors {
		sum = sum.Add(c.coeffs.RateGeneric(t9))
	}
	return sum
}

// LogRateDerivative returns d(ln k)/dT9 for the aggregate rate, i.e.
// (sum_k k_k * dlnk_k/dT9) / (sum_k k_k), required by reverse-rate
// derivatives (spec §4.1).
func (lr *LogicalReaction) LogRateDerivative(t9 float64) float64 {
	var weighted, total float64
	for _, c := range lr.contributors {
		k := c.coeffs.Rate(t9)
		weighted += k * c.coeffs.LogDerivative(t9)
		total += k
	}
	if total == 0 {
		return 0
	}
	return weighted / total
}

// Sources returns the contributing data-source labels, in insertion order.
func (lr *LogicalReaction) Sources() []string {
	out := make([]string, len(lr.contributors))
	for i, c := range lr.contributors {
		out[i] = c.source
	}
	return out
}

// ReactantMultiplicities, NumReactantParticles, SymmetryFactor,
// Stoichiometry, AllSpecies and Contains mirror Reaction's helpers, since a
// LogicalReaction has its own reactant/product lists independent of its
// contributors.
func (lr *LogicalReaction) ReactantMultiplicities() map[species.Species]int {
	m := make(map[species.Species]int)
	for _, s := range lr.Reactants {
		m[s]++
	}
	return m
}

func (lr *LogicalReaction) NumReactantParticles() int { return len(lr.Reactants) }

func (lr *LogicalReaction) SymmetryFactor() float64 {
	factor := 1.0
	for _, c := range lr.ReactantMultiplicities() {
		factor /= factorial(c)
	}
	return factor
}

func (lr *LogicalReaction) Stoichiometry() map[species.Species]int {
	m := make(map[species.Species]int)
	for _, s := range lr.Reactants {
		m[s]--
	}
	for _, s := range lr.Products {
		m[s]++
	}
	return m
}

func (lr *LogicalReaction) AllSpecies() []species.Species {
	seen := make(map[species.Species]bool)
	var out []species.Species
	for _, s := range lr.Reactants {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	for _, s := range lr.Products {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}

func (lr *LogicalReaction) Contains(s species.Species) bool {
	for _, x := range lr.Reactants {
		if x == s {
			return true
		}
	}
	for _, x := range lr.Products {
		if x == s {
			return true
		}
	}
	return false
}

// LogicalReactionSet groups raw Reactions sharing a peName into
// LogicalReactions. Which peNames end up in the set does not depend on
// insertion order, but each logical reaction takes its ID from the first
// raw Reaction added for its peName, and its contributors keep insertion
// order.
type LogicalReactionSet struct {
	byID map[string]*LogicalReaction
	byPE map[string]*LogicalReaction
}

// NewLogicalReactionSet builds an empty set.
func NewLogicalReactionSet() *LogicalReactionSet {
	return &LogicalReactionSet{
		byID: make(map[string]*LogicalReaction),
		byPE: make(map[string]*LogicalReaction),
	}
}

// AddRawReaction folds r into the logical reaction sharing its peName,
// creating one if this is the first contributor seen for that name.
func (s *LogicalReactionSet) AddRawReaction(r *Reaction) error {
	if lr, ok := s.byPE[r.PEName]; ok {
		if err := lr.AddContributor(r); err != nil {
			return err
		}
		return nil
	}
	lr := NewLogicalReaction(r)
	s.byPE[r.PEName] = lr
	s.byID[lr.ID] = lr
	return nil
}

// AddLogicalReaction inserts an already-built logical reaction directly
// (used when composing a set from a file-defined subset, for instance).
func (s *LogicalReactionSet) AddLogicalReaction(lr *LogicalReaction) {
	s.byPE[lr.PEName] = lr
	s.byID[lr.ID] = lr
}

// Get resolves a logical reaction by its id.
func (s *LogicalReactionSet) Get(id string) (*LogicalReaction, bool) {
	lr, ok := s.byID[id]
	return lr, ok
}

// GetByPEName resolves a logical reaction by its projectile-ejectile name.
func (s *LogicalReactionSet) GetByPEName(pe string) (*LogicalReaction, bool) {
	lr, ok := s.byPE[pe]
	return lr, ok
}

// Len reports the number of logical reactions in the set.
func (s *LogicalReactionSet) Len() int { return len(s.byID) }

// Slice returns the logical reactions sorted by id, for deterministic
// iteration (index-map construction, tests).
func (s *LogicalReactionSet) Slice() []*LogicalReaction {
	out := make([]*LogicalReaction, 0, len(s.byID))
	for _, lr := range s.byID {
		out = append(out, lr)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Hash returns the order-independent hash of this set (see hash.go).
func (s *LogicalReactionSet) Hash() uint64 {
	hashes := make([]uint64, 0, len(s.byID))
	for _, lr := range s.byID {
		hashes = append(hashes, hashReaction(lr.ID))
	}
	return combineOrderIndependent(hashes)
}

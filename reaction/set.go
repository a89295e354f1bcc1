package reaction

import (
	"sort"

	"github.com/tboudreaux/GridFire-sub000/gferrors"
)

// ReactionSet is an order-irrelevant collection of raw Reactions keyed by
// id (spec §3).
type ReactionSet struct {
	byID map[string]*Reaction
}

// NewReactionSet builds an empty set.
func NewReactionSet() *ReactionSet {
	return &ReactionSet{byID: make(map[string]*Reaction)}
}

// Add inserts r, keyed by id. A duplicate id is a DataIntegrity error.
func (s *ReactionSet) Add(r *Reaction) error {
	if _, exists := s.byID[r.ID]; exists {
		return gferrors.New(gferrors.DataIntegrity, "reaction set: duplicate reaction id %q", r.ID)
	}
	s.byID[r.ID] = r
	return nil
}

// Get resolves a reaction by id.
func (s *ReactionSet) Get(id string) (*Reaction, bool) {
	r, ok := s.byID[id]
	return r, ok
}

// Len reports the number of reactions in the set.
func (s *ReactionSet) Len() int { return len(s.byID) }

// Slice returns the reactions sorted by id.
func (s *ReactionSet) Slice() []*Reaction {
	out := make([]*Reaction, 0, len(s.byID))
	for _, r := range s.byID {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// ToLogical groups this set's reactions into a LogicalReactionSet by
// peName.
func (s *ReactionSet) ToLogical() (*LogicalReactionSet, error) {
	ls := NewLogicalReactionSet()
	for _, r := range s.Slice() {
		if err := ls.AddRawReaction(r); err != nil {
			return nil, err
		}
	}
	return ls, nil
}

// Hash returns the order-independent hash of this set (see hash.go):
// the hash of the sorted vector of per-reaction hashes.
func (s *ReactionSet) Hash() uint64 {
	hashes := make([]uint64, 0, len(s.byID))
	for id := range s.byID {
		hashes = append(hashes, hashReaction(id))
	}
	return combineOrderIndependent(hashes)
}

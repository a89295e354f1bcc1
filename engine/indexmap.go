package engine

import (
	"sort"

	"github.com/tboudreaux/GridFire-sub000/gferrors"
	"github.com/tboudreaux/GridFire-sub000/reaction"
	"github.com/tboudreaux/GridFire-sub000/species"
)

// indexMaps is the shared species_map/reaction_map bookkeeping of spec §3's
// EngineView state: two index vectors mapping view indices to base-engine
// indices, built fresh on every rebuild (views never patch maps
// incrementally).
type indexMaps struct {
	activeSpecies    []species.Species
	speciesIndex     map[species.Species]int
	speciesToBase    []int // view species index -> base species index
	activeReactions  []*reaction.LogicalReaction
	reactionToBase   []int // view reaction index -> base reaction index (base.NetworkReactions().Slice() order)
}

// buildIndexMaps derives a view's active species (union of reactants and
// products of the kept reactions, sorted by atomic mass per spec §4.5 step
// 5) and both index maps, against a given base engine.
func buildIndexMaps(base Engine, kept []*reaction.LogicalReaction) (indexMaps, error) {
	sort.Slice(kept, func(i, j int) bool { return kept[i].ID < kept[j].ID })

	seen := make(map[species.Species]bool)
	var activeSpecies []species.Species
	for _, lr := range kept {
		for _, s := range lr.AllSpecies() {
			if !seen[s] {
				seen[s] = true
				activeSpecies = append(activeSpecies, s)
			}
		}
	}
	sort.Slice(activeSpecies, func(i, j int) bool { return activeSpecies[i].AtomicMass < activeSpecies[j].AtomicMass })

	speciesIndex := make(map[species.Species]int, len(activeSpecies))
	speciesToBase := make([]int, len(activeSpecies))
	for i, s := range activeSpecies {
		speciesIndex[s] = i
		bi, ok := base.SpeciesIndex(s)
		if !ok {
			return indexMaps{}, gferrors.New(gferrors.OutOfRange, "engine view: active species %q not present in base engine", s.Name)
		}
		speciesToBase[i] = bi
	}

	baseAll := base.NetworkReactions().Slice()
	baseIndexByID := make(map[string]int, len(baseAll))
	for i, lr := range baseAll {
		baseIndexByID[lr.ID] = i
	}
	reactionToBase := make([]int, len(kept))
	for i, lr := range kept {
		bi, ok := baseIndexByID[lr.ID]
		if !ok {
			return indexMaps{}, gferrors.New(gferrors.OutOfRange, "engine view: active reaction %q not present in base engine", lr.ID)
		}
		reactionToBase[i] = bi
	}

	return indexMaps{
		activeSpecies:   activeSpecies,
		speciesIndex:    speciesIndex,
		speciesToBase:   speciesToBase,
		activeReactions: kept,
		reactionToBase:  reactionToBase,
	}, nil
}

// mapViewToFull scatters a view-space vector into a zero-filled
// base-engine-space vector (spec §4.5's map_view_to_full).
func (m indexMaps) mapViewToFull(yView []float64, baseSize int) ([]float64, error) {
	if len(yView) != len(m.speciesToBase) {
		return nil, gferrors.New(gferrors.OutOfRange, "engine view: view vector length %d does not match active species count %d", len(yView), len(m.speciesToBase))
	}
	full := make([]float64, baseSize)
	for i, bi := range m.speciesToBase {
		full[bi] = yView[i]
	}
	return full, nil
}

// mapFullToView gathers a base-engine-space vector down to view space
// (spec §4.5's map_full_to_view).
func (m indexMaps) mapFullToView(yFull []float64) ([]float64, error) {
	out := make([]float64, len(m.speciesToBase))
	for i, bi := range m.speciesToBase {
		if bi < 0 || bi >= len(yFull) {
			return nil, gferrors.New(gferrors.OutOfRange, "engine view: base index %d out of range for vector of length %d", bi, len(yFull))
		}
		out[i] = yFull[bi]
	}
	return out, nil
}

func (m indexMaps) networkReactions() *reaction.LogicalReactionSet {
	ls := reaction.NewLogicalReactionSet()
	for _, lr := range m.activeReactions {
		ls.AddLogicalReaction(lr)
	}
	return ls
}

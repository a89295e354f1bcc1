package engine

import (
	"github.com/tboudreaux/GridFire-sub000/composition"
	"github.com/tboudreaux/GridFire-sub000/config"
	"github.com/tboudreaux/GridFire-sub000/gferrors"
	"github.com/tboudreaux/GridFire-sub000/glog"
	"github.com/tboudreaux/GridFire-sub000/gridfire"
	"github.com/tboudreaux/GridFire-sub000/netgraph"
	"github.com/tboudreaux/GridFire-sub000/reaction"
	"github.com/tboudreaux/GridFire-sub000/species"
)

// FuelFloor is the mass fraction above which a species seeds the
// reachability analysis as already present "fuel" (spec §4.5 step 3).
const FuelFloor = 1e-12

// OnRampAbundanceFloor is the abundance below which a reachable reactant is
// still considered to be "just ignited", so its reaction is kept even when
// the flow-based cull would otherwise drop it (spec §4.5 step 4, §9).
const OnRampAbundanceFloor = 1e-99

// AdaptiveEngineView implements spec §4.5's AdaptiveEngineView: on every
// Update it computes per-reaction molar flow from the base engine, grows a
// reachable-species set from the current fuel, culls reactions whose flow
// is negligible relative to the network's peak flow (with the on-ramp
// exception for freshly-ignited fuel), and rebuilds its active
// species/reaction set and index maps from what survives.
type AdaptiveEngineView struct {
	base             Engine
	cullingThreshold float64

	maps  indexMaps
	stale bool
	lastIn gridfire.NetIn
}

// NewAdaptiveEngineView builds a view over base. A cullingThreshold <= 0
// falls back to the configured default (spec §6,
// gridfire:AdaptiveEngineView:RelativeCullingThreshold). The view is stale
// until the first Update call.
func NewAdaptiveEngineView(base Engine, cullingThreshold float64) *AdaptiveEngineView {
	if cullingThreshold <= 0 {
		cullingThreshold = config.Float64("gridfire:AdaptiveEngineView:RelativeCullingThreshold")
	}
	return &AdaptiveEngineView{base: base, cullingThreshold: cullingThreshold, stale: true}
}

func (v *AdaptiveEngineView) Stale() bool { return v.stale }

// Update runs the five-step culling/reachability procedure of spec §4.5
// and rebuilds the view's active set and index maps.
func (v *AdaptiveEngineView) Update(in gridfire.NetIn) error {
	log := glog.With("engine.adaptive")

	baseSpecies := v.base.NetworkSpecies()
	yFull := composition.ToAbundance(in.Composition, baseSpecies)
	t9 := in.Temperature / 1e9
	rho := in.Density

	flows, err := v.base.ReactionFlows(yFull, t9, rho)
	if err != nil {
		return err
	}

	allReactions := v.base.NetworkReactions().Slice()

	fMax := 0.0
	for _, lr := range allReactions {
		if f := flows[lr.ID]; f > fMax {
			fMax = f
		}
	}

	reachable := make(map[species.Species]bool, len(baseSpecies))
	for _, s := range baseSpecies {
		if in.Composition[s.Name] > FuelFloor {
			reachable[s] = true
		}
	}
	for changed := true; changed; {
		changed = false
		for _, lr := range allReactions {
			if !allReachable(lr.Reactants, reachable) {
				continue
			}
			for _, p := range lr.Products {
				if !reachable[p] {
					reachable[p] = true
					changed = true
				}
			}
		}
	}

	threshold := v.cullingThreshold
	if in.CullingThreshold > 0 {
		threshold = in.CullingThreshold
	}

	var kept []*reaction.LogicalReaction
	for _, lr := range allReactions {
		flow := flows[lr.ID]
		if flow > threshold*fMax {
			kept = append(kept, lr)
			continue
		}
		if onRamp(lr, reachable, baseSpecies, yFull, v.base) {
			kept = append(kept, lr)
		}
	}

	maps, err := buildIndexMaps(v.base, kept)
	if err != nil {
		return err
	}

	log.Debugf("update: %d/%d reactions kept, %d active species, Fmax=%.3e", len(kept), len(allReactions), len(maps.activeSpecies), fMax)

	v.maps = maps
	v.lastIn = in
	v.stale = false
	return nil
}

// allReachable reports whether every species in reactants is reachable.
func allReachable(reactants []species.Species, reachable map[species.Species]bool) bool {
	for _, s := range reactants {
		if !reachable[s] {
			return false
		}
	}
	return true
}

// onRamp reports whether lr should be kept despite failing the flow
// threshold, because one of its reachable reactants currently has an
// abundance below OnRampAbundanceFloor (spec §4.5 step 4, §9: preserves the
// on-ramp for freshly ignited fuel).
func onRamp(lr *reaction.LogicalReaction, reachable map[species.Species]bool, baseSpecies []species.Species, yFull []float64, base Engine) bool {
	for _, r := range lr.Reactants {
		if !reachable[r] {
			continue
		}
		idx, ok := base.SpeciesIndex(r)
		if !ok {
			continue
		}
		if yFull[idx] < OnRampAbundanceFloor {
			return true
		}
	}
	return false
}

func (v *AdaptiveEngineView) checkStale() error {
	if v.stale {
		return gferrors.New(gferrors.Stale, "adaptive engine view used before update")
	}
	return nil
}

func (v *AdaptiveEngineView) NetworkSpecies() []species.Species { return v.maps.activeSpecies }

func (v *AdaptiveEngineView) NetworkReactions() *reaction.LogicalReactionSet {
	return v.maps.networkReactions()
}

func (v *AdaptiveEngineView) SpeciesIndex(s species.Species) (int, bool) {
	i, ok := v.maps.speciesIndex[s]
	return i, ok
}

func (v *AdaptiveEngineView) NumSpecies() int { return len(v.maps.activeSpecies) }

func (v *AdaptiveEngineView) MapViewToFull(yView []float64) ([]float64, error) {
	if err := v.checkStale(); err != nil {
		return nil, err
	}
	return v.maps.mapViewToFull(yView, len(v.base.NetworkSpecies()))
}

func (v *AdaptiveEngineView) MapFullToView(yFull []float64) ([]float64, error) {
	if err := v.checkStale(); err != nil {
		return nil, err
	}
	return v.maps.mapFullToView(yFull)
}

func (v *AdaptiveEngineView) CalculateRHSAndEnergy(yView []float64, t9, rho float64) (netgraph.StepDerivatives, error) {
	if err := v.checkStale(); err != nil {
		return netgraph.StepDerivatives{}, err
	}
	full, err := v.maps.mapViewToFull(yView, len(v.base.NetworkSpecies()))
	if err != nil {
		return netgraph.StepDerivatives{}, err
	}
	d, err := v.base.CalculateRHSAndEnergy(full, t9, rho)
	if err != nil {
		return netgraph.StepDerivatives{}, err
	}
	dView, err := v.maps.mapFullToView(d.DYDT)
	if err != nil {
		return netgraph.StepDerivatives{}, err
	}
	return netgraph.StepDerivatives{DYDT: dView, EnergyRate: d.EnergyRate}, nil
}

func (v *AdaptiveEngineView) GenerateJacobian(yView []float64, t9, rho float64) error {
	if err := v.checkStale(); err != nil {
		return err
	}
	full, err := v.maps.mapViewToFull(yView, len(v.base.NetworkSpecies()))
	if err != nil {
		return err
	}
	return v.base.GenerateJacobian(full, t9, rho)
}

func (v *AdaptiveEngineView) JacobianEntry(i, j int) (float64, error) {
	if err := v.checkStale(); err != nil {
		return 0, err
	}
	if i < 0 || i >= len(v.maps.speciesToBase) || j < 0 || j >= len(v.maps.speciesToBase) {
		return 0, gferrors.New(gferrors.OutOfRange, "adaptive view: jacobian index (%d,%d) out of range", i, j)
	}
	return v.base.JacobianEntry(v.maps.speciesToBase[i], v.maps.speciesToBase[j])
}

func (v *AdaptiveEngineView) StoichiometryEntry(i, j int) (int, error) {
	if err := v.checkStale(); err != nil {
		return 0, err
	}
	if i < 0 || i >= len(v.maps.speciesToBase) || j < 0 || j >= len(v.maps.reactionToBase) {
		return 0, gferrors.New(gferrors.OutOfRange, "adaptive view: stoichiometry index (%d,%d) out of range", i, j)
	}
	return v.base.StoichiometryEntry(v.maps.speciesToBase[i], v.maps.reactionToBase[j])
}

func (v *AdaptiveEngineView) ReactionFlows(yView []float64, t9, rho float64) (map[string]float64, error) {
	if err := v.checkStale(); err != nil {
		return nil, err
	}
	full, err := v.maps.mapViewToFull(yView, len(v.base.NetworkSpecies()))
	if err != nil {
		return nil, err
	}
	allFlows, err := v.base.ReactionFlows(full, t9, rho)
	if err != nil {
		return nil, err
	}
	out := make(map[string]float64, len(v.maps.activeReactions))
	for _, lr := range v.maps.activeReactions {
		out[lr.ID] = allFlows[lr.ID]
	}
	return out, nil
}

func (v *AdaptiveEngineView) GetSpeciesTimescales(yView []float64, t9, rho float64) ([]float64, error) {
	if err := v.checkStale(); err != nil {
		return nil, err
	}
	full, err := v.maps.mapViewToFull(yView, len(v.base.NetworkSpecies()))
	if err != nil {
		return nil, err
	}
	tausFull, err := v.base.GetSpeciesTimescales(full, t9, rho)
	if err != nil {
		return nil, err
	}
	return v.maps.mapFullToView(tausFull)
}

var _ View = (*AdaptiveEngineView)(nil)

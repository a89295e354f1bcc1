package engine

import (
	"bufio"
	"os"
	"strings"

	"github.com/tboudreaux/GridFire-sub000/gferrors"
	"github.com/tboudreaux/GridFire-sub000/glog"
	"github.com/tboudreaux/GridFire-sub000/gridfire"
	"github.com/tboudreaux/GridFire-sub000/netgraph"
	"github.com/tboudreaux/GridFire-sub000/reaction"
	"github.com/tboudreaux/GridFire-sub000/species"
)

// FileDefinedEngineView implements spec §4.5's FileDefinedEngineView: its
// active reaction set is exactly the reactions whose projectile-ejectile
// name appears in a simple text file (spec §6). Unlike
// AdaptiveEngineView, the active set does not depend on NetIn - Update
// only re-validates and rebuilds the index maps against the current base
// engine.
type FileDefinedEngineView struct {
	base Engine

	wantedNames []string
	maps        indexMaps
	stale       bool
}

// NewFileDefinedEngineView builds a view over base and immediately loads
// networkFile. An unknown reaction name in the file is a fatal
// construction error (spec §4.5, §4.7).
func NewFileDefinedEngineView(base Engine, networkFile string) (*FileDefinedEngineView, error) {
	v := &FileDefinedEngineView{base: base, stale: true}
	if err := v.SetNetworkFile(networkFile); err != nil {
		return nil, err
	}
	return v, nil
}

// SetNetworkFile loads (or reloads) the reaction name list from path,
// validating every name against the base engine's known reactions, and
// marks the view stale (spec §4.5: "set_network_file re-marks the view
// stale").
func (v *FileDefinedEngineView) SetNetworkFile(path string) error {
	names, err := parseReactionListFile(path)
	if err != nil {
		return err
	}

	byPE := make(map[string]bool)
	for _, lr := range v.base.NetworkReactions().Slice() {
		byPE[lr.PEName] = true
	}
	for _, name := range names {
		if !byPE[name] {
			return gferrors.New(gferrors.DataIntegrity, "file-defined engine view: unknown reaction name %q in %s", name, path)
		}
	}

	v.wantedNames = names
	v.stale = true
	glog.With("engine.filedefined").Infof("loaded %d reaction names from %s", len(names), path)
	return nil
}

// parseReactionListFile implements spec §6's simple reaction-list text
// format: UTF-8, one pe_name per non-blank, non-'#' line, surrounding
// whitespace ignored.
func parseReactionListFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, gferrors.Wrap(gferrors.DataIntegrity, err, "file-defined engine view: cannot open %s", path)
	}
	defer f.Close()

	var names []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		names = append(names, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, gferrors.Wrap(gferrors.DataIntegrity, err, "file-defined engine view: error reading %s", path)
	}
	return names, nil
}

// Update rebuilds the active reaction/species set and index maps from the
// currently loaded file and the base engine; NetIn is accepted for
// interface uniformity with AdaptiveEngineView but does not affect the
// active set (spec §4.5).
func (v *FileDefinedEngineView) Update(_ gridfire.NetIn) error {
	byPE := make(map[string]*reaction.LogicalReaction)
	for _, lr := range v.base.NetworkReactions().Slice() {
		byPE[lr.PEName] = lr
	}

	kept := make([]*reaction.LogicalReaction, 0, len(v.wantedNames))
	for _, name := range v.wantedNames {
		lr, ok := byPE[name]
		if !ok {
			return gferrors.New(gferrors.DataIntegrity, "file-defined engine view: reaction name %q no longer present in base engine", name)
		}
		kept = append(kept, lr)
	}

	maps, err := buildIndexMaps(v.base, kept)
	if err != nil {
		return err
	}
	v.maps = maps
	v.stale = false
	return nil
}

func (v *FileDefinedEngineView) Stale() bool { return v.stale }

func (v *FileDefinedEngineView) checkStale() error {
	if v.stale {
		return gferrors.New(gferrors.Stale, "file-defined engine view used before update")
	}
	return nil
}

func (v *FileDefinedEngineView) NetworkSpecies() []species.Species { return v.maps.activeSpecies }

func (v *FileDefinedEngineView) NetworkReactions() *reaction.LogicalReactionSet {
	return v.maps.networkReactions()
}

func (v *FileDefinedEngineView) SpeciesIndex(s species.Species) (int, bool) {
	i, ok := v.maps.speciesIndex[s]
	return i, ok
}

func (v *FileDefinedEngineView) NumSpecies() int { return len(v.maps.activeSpecies) }

func (v *FileDefinedEngineView) MapViewToFull(yView []float64) ([]float64, error) {
	if err := v.checkStale(); err != nil {
		return nil, err
	}
	return v.maps.mapViewToFull(yView, len(v.base.NetworkSpecies()))
}

func (v *FileDefinedEngineView) MapFullToView(yFull []float64) ([]float64, error) {
	if err := v.checkStale(); err != nil {
		return nil, err
	}
	return v.maps.mapFullToView(yFull)
}

func (v *FileDefinedEngineView) CalculateRHSAndEnergy(yView []float64, t9, rho float64) (netgraph.StepDerivatives, error) {
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

func (v *FileDefinedEngineView) GenerateJacobian(yView []float64, t9, rho float64) error {
	if err := v.checkStale(); err != nil {
		return err
	}
	full, err := v.maps.mapViewToFull(yView, len(v.base.NetworkSpecies()))
	if err != nil {
		return err
	}
	return v.base.GenerateJacobian(full, t9, rho)
}

func (v *FileDefinedEngineView) JacobianEntry(i, j int) (float64, error) {
	if err := v.checkStale(); err != nil {
		return 0, err
	}
	if i < 0 || i >= len(v.maps.speciesToBase) || j < 0 || j >= len(v.maps.speciesToBase) {
		return 0, gferrors.New(gferrors.OutOfRange, "file-defined view: jacobian index (%d,%d) out of range", i, j)
	}
	return v.base.JacobianEntry(v.maps.speciesToBase[i], v.maps.speciesToBase[j])
}

func (v *FileDefinedEngineView) StoichiometryEntry(i, j int) (int, error) {
	if err := v.checkStale(); err != nil {
		return 0, err
	}
	if i < 0 || i >= len(v.maps.speciesToBase) || j < 0 || j >= len(v.maps.reactionToBase) {
		return 0, gferrors.New(gferrors.OutOfRange, "file-defined view: stoichiometry index (%d,%d) out of range", i, j)
	}
	return v.base.StoichiometryEntry(v.maps.speciesToBase[i], v.maps.reactionToBase[j])
}

func (v *FileDefinedEngineView) ReactionFlows(yView []float64, t9, rho float64) (map[string]float64, error) {
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

func (v *FileDefinedEngineView) GetSpeciesTimescales(yView []float64, t9, rho float64) ([]float64, error) {
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

var _ View = (*FileDefinedEngineView)(nil)

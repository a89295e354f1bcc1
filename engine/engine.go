// Package engine implements the engine-view layer (spec §4.5, C6): views
// that dynamically restrict the active species/reaction set presented to a
// solver, delegating every actual computation back to a base engine through
// index remapping. A view is itself an Engine (spec §9's "EngineView is a
// decorator over Engine"), so views can be stacked - a FileDefinedEngineView
// can sit on top of an AdaptiveEngineView exactly as it can sit directly on
// a *netgraph.Engine.
package engine

import (
	"github.com/tboudreaux/GridFire-sub000/gridfire"
	"github.com/tboudreaux/GridFire-sub000/netgraph"
	"github.com/tboudreaux/GridFire-sub000/reaction"
	"github.com/tboudreaux/GridFire-sub000/species"
)

// Engine is the contract satisfied by the base graph engine and by every
// view in this package. Heavy operations return an error so a view can
// report Stale without changing the shape callers code against; *Base
// (wrapping *netgraph.Engine, which can never be stale) always returns a
// nil error from these.
type Engine interface {
	NetworkSpecies() []species.Species
	NetworkReactions() *reaction.LogicalReactionSet
	SpeciesIndex(s species.Species) (int, bool)
	NumSpecies() int

	CalculateRHSAndEnergy(y []float64, t9, rho float64) (netgraph.StepDerivatives, error)
	GenerateJacobian(y []float64, t9, rho float64) error
	JacobianEntry(i, j int) (float64, error)
	StoichiometryEntry(i, j int) (int, error)
	ReactionFlows(y []float64, t9, rho float64) (map[string]float64, error)
	GetSpeciesTimescales(y []float64, t9, rho float64) ([]float64, error)
}

// View additionally exposes the engine-view lifecycle (spec §3's "stale
// flag... cleared by update before any other method runs").
type View interface {
	Engine
	Update(in gridfire.NetIn) error
	Stale() bool
	// MapViewToFull scatters a view-space vector into a zero-filled
	// full-space (base-engine-space) vector (spec §4.5).
	MapViewToFull(yView []float64) ([]float64, error)
	// MapFullToView gathers a full-space vector down to view space.
	MapFullToView(yFull []float64) ([]float64, error)
}

// Base adapts a *netgraph.Engine, which can never be stale, to the Engine
// interface by wrapping every call with a nil error.
type Base struct {
	*netgraph.Engine
}

// NewBase wraps a graph engine so it can be used as the base of a view, or
// passed anywhere an Engine is expected.
func NewBase(e *netgraph.Engine) Base { return Base{Engine: e} }

func (b Base) CalculateRHSAndEnergy(y []float64, t9, rho float64) (netgraph.StepDerivatives, error) {
	return b.Engine.CalculateRHSAndEnergy(y, t9, rho), nil
}

func (b Base) GenerateJacobian(y []float64, t9, rho float64) error {
	b.Engine.GenerateJacobian(y, t9, rho)
	return nil
}

func (b Base) JacobianEntry(i, j int) (float64, error) {
	return b.Engine.JacobianEntry(i, j), nil
}

func (b Base) StoichiometryEntry(i, j int) (int, error) {
	return b.Engine.StoichiometryEntry(i, j), nil
}

func (b Base) ReactionFlows(y []float64, t9, rho float64) (map[string]float64, error) {
	return b.Engine.ReactionFlows(y, t9, rho), nil
}

func (b Base) GetSpeciesTimescales(y []float64, t9, rho float64) ([]float64, error) {
	return b.Engine.GetSpeciesTimescales(y, t9, rho), nil
}

var (
	_ Engine = Base{}
)

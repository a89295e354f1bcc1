// Package screening computes electron-screening correction factors for a
// set of reactions, either as plain float64s or traced onto an AD tape -
// both instantiations of the same num.Scalar-generic formula (spec §4.3).
package screening

import (
	"github.com/tboudreaux/GridFire-sub000/internal/num"
	"github.com/tboudreaux/GridFire-sub000/reaction"
	"github.com/tboudreaux/GridFire-sub000/species"
)

// Model computes one screening factor per reaction, given the full
// species/molar-abundance state and the zone's T9/rho.
type Model interface {
	Factors(reactions []*reaction.LogicalReaction, speciesList []species.Species, y []num.Scalar, t9, rho num.Scalar) []num.Scalar
}

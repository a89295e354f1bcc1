package screening

import (
	"github.com/tboudreaux/GridFire-sub000/internal/num"
	"github.com/tboudreaux/GridFire-sub000/reaction"
	"github.com/tboudreaux/GridFire-sub000/species"
)

// Bare applies no screening: every factor is 1.
type Bare struct{}

func (Bare) Factors(reactions []*reaction.LogicalReaction, _ []species.Species, _ []num.Scalar, t9, _ num.Scalar) []num.Scalar {
	one := t9.Const(1)
	out := make([]num.Scalar, len(reactions))
	for i := range out {
		out[i] = one
	}
	return out
}

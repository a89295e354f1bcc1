package solver

import (
	"testing"

	"github.com/tboudreaux/GridFire-sub000/netgraph"
	"github.com/tboudreaux/GridFire-sub000/reaction"
	"github.com/tboudreaux/GridFire-sub000/species"
)

// buildSolverTestNetwork wires a minimal two-reaction pp-chain-shaped toy
// network, small enough that a Radau5/Dopri5 step over it is cheap but with
// enough structure (two chained captures) to exercise both solvers.
func buildSolverTestNetwork(t *testing.T) *netgraph.Engine {
	t.Helper()
	h1 := species.MustLookup("H-1")
	h2 := species.MustLookup("H-2")
	he3 := species.MustLookup("He-3")

	set := reaction.NewReactionSet()
	add := func(id, pe string, chapter reaction.Chapter, reactants, products []species.Species, q float64, coeffs reaction.R7) {
		r, err := reaction.New(id, pe, chapter, reactants, products, q, "toy", coeffs, false)
		if err != nil {
			t.Fatalf("building reaction %s: %v", id, err)
		}
		if err := set.Add(r); err != nil {
			t.Fatalf("adding reaction %s: %v", id, err)
		}
	}

	add("r1", "p(p,g)d", 1, []species.Species{h1, h1}, []species.Species{h2}, 1.442, reaction.R7{-3.0, 0, 0, 0, 0, 0, 0})
	add("r2", "d(p,g)he3", 1, []species.Species{h2, h1}, []species.Species{he3}, 5.493, reaction.R7{-2.0, 0, 0, 0, 0, 0, 0})

	logical, err := set.ToLogical()
	if err != nil {
		t.Fatalf("ToLogical: %v", err)
	}
	e, err := netgraph.New(logical)
	if err != nil {
		t.Fatalf("netgraph.New: %v", err)
	}
	return e
}

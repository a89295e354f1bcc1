package engine

import (
	"testing"

	"github.com/tboudreaux/GridFire-sub000/netgraph"
	"github.com/tboudreaux/GridFire-sub000/reaction"
	"github.com/tboudreaux/GridFire-sub000/species"
)

// buildTestNetwork wires a small pp-chain-shaped toy network:
//
//	r1: H-1 + H-1 -> H-2          (seed reaction, consumes fuel)
//	r2: H-2 + H-1 -> He-3
//	r3: He-3 + He-3 -> He-4 + H-1 + H-1
//	r4: Ne-20 + He-4 -> Mg-24      (never reachable from {H-1, He-4} alone)
//
// so that starting composition {H-1, He-4} makes Mg-24 (and its feeder
// reaction r4) uncullable-absent: Ne-20 is never produced by any reaction
// in this toy set, so it and Mg-24 never enter the reachable set.
func buildTestNetwork(t *testing.T) *netgraph.Engine {
	t.Helper()
	h1 := species.MustLookup("H-1")
	h2 := species.MustLookup("H-2")
	he3 := species.MustLookup("He-3")
	he4 := species.MustLookup("He-4")
	ne20 := species.MustLookup("Ne-20")
	mg24 := species.MustLookup("Mg-24")

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
	add("r2", "d(p,g)he3", 1, []species.Species{h2, h1}, []species.Species{he3}, 5.493, reaction.R7{0, 0, 0, 0, 0, 0, 0})
	add("r3", "he3(he3,pp)he4", 2, []species.Species{he3, he3}, []species.Species{he4, h1, h1}, 12.86, reaction.R7{0, 0, 0, 0, 0, 0, 0})
	add("r4", "ne20(a,g)mg24", 1, []species.Species{ne20, he4}, []species.Species{mg24}, 9.31, reaction.R7{-20.0, 0, 0, 0, 0, 0, 0})

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

package reaction

import (
	"math"
	"testing"

	"github.com/tboudreaux/GridFire-sub000/species"
)

func ppReaction(t *testing.T) *Reaction {
	h1 := species.MustLookup("H-1")
	h2 := species.MustLookup("H-2")
	r, err := New("H1_H1_to_H2", "p(p,g)d", 1, []species.Species{h1, h1}, []species.Species{h2}, 5.493, "nacr", R7{0, 0, 0, 0, 0, 0, 0}, false)
	if err != nil {
		t.Fatalf("unexpected error building reaction: %v", err)
	}
	return r
}

func Test_conservation01(tst *testing.T) {
	ppReaction(tst)
}

func Test_conservationViolation01(tst *testing.T) {
	h1 := species.MustLookup("H-1")
	he4 := species.MustLookup("He-4")
	_, err := New("bad", "p(p,g)he4", 1, []species.Species{h1}, []species.Species{he4}, 0, "x", R7{}, false)
	if err == nil {
		tst.Fatalf("expected mass/charge non-conservation to be rejected")
	}
}

func Test_symmetryFactor01(tst *testing.T) {
	r := ppReaction(tst)
	got := r.SymmetryFactor()
	want := 0.5 // 1/2! for two identical protons
	if math.Abs(got-want) > 1e-12 {
		tst.Errorf("symmetry factor = %v, want %v", got, want)
	}
}

func Test_logicalReactionAdditivity01(tst *testing.T) {
	h1 := species.MustLookup("H-1")
	h2 := species.MustLookup("H-2")
	c1 := R7{1, 2, 3, 4, 5, 6, 7}
	c2 := R7{0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.7}

	r1, _ := New("a", "p(p,g)d", 1, []species.Species{h1, h1}, []species.Species{h2}, 5.493, "src1", c1, false)
	r2, _ := New("b", "p(p,g)d", 1, []species.Species{h1, h1}, []species.Species{h2}, 5.493, "src2", c2, false)

	lr := NewLogicalReaction(r1)
	if err := lr.AddContributor(r2); err != nil {
		tst.Fatalf("unexpected error: %v", err)
	}

	for _, t9 := range []float64{0.1, 0.5, 1.0, 3.0} {
		got := lr.Rate(t9)
		want := c1.Rate(t9) + c2.Rate(t9)
		if math.Abs(got-want) > 1e-9*math.Abs(want) {
			tst.Errorf("at T9=%v: got %v want %v", t9, got, want)
		}
	}
}

func Test_logicalReactionQMismatch01(tst *testing.T) {
	h1 := species.MustLookup("H-1")
	h2 := species.MustLookup("H-2")
	r1, _ := New("a", "p(p,g)d", 1, []species.Species{h1, h1}, []species.Species{h2}, 5.493, "src1", R7{}, false)
	r2, _ := New("b", "p(p,g)d", 1, []species.Species{h1, h1}, []species.Species{h2}, 5.500, "src2", R7{}, false)

	lr := NewLogicalReaction(r1)
	if err := lr.AddContributor(r2); err == nil {
		tst.Fatalf("expected Q-value mismatch to be rejected")
	}
}

func Test_logicalReactionDuplicateSource01(tst *testing.T) {
	h1 := species.MustLookup("H-1")
	h2 := species.MustLookup("H-2")
	r1, _ := New("a", "p(p,g)d", 1, []species.Species{h1, h1}, []species.Species{h2}, 5.493, "same", R7{}, false)
	r2, _ := New("b", "p(p,g)d", 1, []species.Species{h1, h1}, []species.Species{h2}, 5.493, "same", R7{}, false)

	lr := NewLogicalReaction(r1)
	if err := lr.AddContributor(r2); err == nil {
		tst.Fatalf("expected duplicate source label to be rejected")
	}
}

func Test_reactionSetHashOrderIndependent01(tst *testing.T) {
	h1 := species.MustLookup("H-1")
	h2 := species.MustLookup("H-2")
	he3 := species.MustLookup("He-3")
	he4 := species.MustLookup("He-4")

	r1, _ := New("r1", "p(p,g)d", 1, []species.Species{h1, h1}, []species.Species{h2}, 5.493, "a", R7{}, false)
	r2, _ := New("r2", "d(p,g)he3", 1, []species.Species{h2, h1}, []species.Species{he3}, 5.494, "a", R7{}, false)
	r3, _ := New("r3", "he3(he3,2p)he4", 2, []species.Species{he3, he3}, []species.Species{he4, h1, h1}, 12.86, "a", R7{}, false)

	ascending := NewReactionSet()
	ascending.Add(r1)
	ascending.Add(r2)
	ascending.Add(r3)

	descending := NewReactionSet()
	descending.Add(r3)
	descending.Add(r2)
	descending.Add(r1)

	if ascending.Hash() != descending.Hash() {
		tst.Fatalf("reaction set hash depends on insertion order")
	}
}

func Test_reverseRateWarnAndZero01(tst *testing.T) {
	h1 := species.MustLookup("H-1")
	h2 := species.MustLookup("H-2")
	he3 := species.MustLookup("He-3")
	// arity (2,1): p + d -> he3
	r, _ := New("pd_he3", "d(p,g)he3", 1, []species.Species{h1, h2}, []species.Species{he3}, 5.494, "a", R7{1, 2, 3, 4, 5, 6, 7}, false)
	lr := NewLogicalReaction(r)

	rate, warn := ReverseRate(lr, 1.0, func(z, a int, t9 float64) float64 { return 1.0 })
	if warn == nil {
		tst.Fatalf("expected a warning for arity (2,1) with extension disabled")
	}
	if rate != 0 {
		tst.Errorf("expected zero rate for unsupported arity, got %v", rate)
	}
}

package screening

import (
	"math"
	"testing"

	"github.com/tboudreaux/GridFire-sub000/internal/num"
	"github.com/tboudreaux/GridFire-sub000/reaction"
	"github.com/tboudreaux/GridFire-sub000/species"
)

func f64s(vals ...float64) []num.Scalar {
	out := make([]num.Scalar, len(vals))
	for i, v := range vals {
		out[i] = num.F64(v)
	}
	return out
}

func Test_bareIsAllOnes01(tst *testing.T) {
	h1 := species.MustLookup("H-1")
	h2 := species.MustLookup("H-2")
	r, _ := reaction.New("a", "p(p,g)d", 1, []species.Species{h1, h1}, []species.Species{h2}, 5.493, "x", reaction.R7{}, false)
	lr := reaction.NewLogicalReaction(r)

	factors := Bare{}.Factors([]*reaction.LogicalReaction{lr}, []species.Species{h1, h1}, f64s(0.5, 0.5), num.F64(1.0), num.F64(100.0))
	if len(factors) != 1 || factors[0].Value() != 1 {
		tst.Fatalf("expected bare screening to return all ones, got %v", factors)
	}
}

func Test_weakBinaryScreeningPositive01(tst *testing.T) {
	h1 := species.MustLookup("H-1")
	h2 := species.MustLookup("H-2")
	r, _ := reaction.New("a", "p(p,g)d", 1, []species.Species{h1, h1}, []species.Species{h2}, 5.493, "x", reaction.R7{}, false)
	lr := reaction.NewLogicalReaction(r)

	factors := Weak{}.Factors([]*reaction.LogicalReaction{lr}, []species.Species{h1, h1}, f64s(0.5, 0.5), num.F64(1.0), num.F64(100.0))
	if factors[0].Value() <= 1 {
		tst.Errorf("expected weak screening factor > 1 at T9=1, got %v", factors[0].Value())
	}
}

func Test_weakLowTempCollapsesToOne01(tst *testing.T) {
	h1 := species.MustLookup("H-1")
	h2 := species.MustLookup("H-2")
	r, _ := reaction.New("a", "p(p,g)d", 1, []species.Species{h1, h1}, []species.Species{h2}, 5.493, "x", reaction.R7{}, false)
	lr := reaction.NewLogicalReaction(r)

	factors := Weak{}.Factors([]*reaction.LogicalReaction{lr}, []species.Species{h1, h1}, f64s(0.5, 0.5), num.F64(1e-12), num.F64(100.0))
	if math.Abs(factors[0].Value()-1) > 1e-12 {
		tst.Errorf("expected screening factor to collapse to 1 at low T9, got %v", factors[0].Value())
	}
}

func Test_weakTripleAlphaCase01(tst *testing.T) {
	he4 := species.MustLookup("He-4")
	c12 := species.MustLookup("C-12")
	r, _ := reaction.New("3a", "a(aa,g)c12", 2, []species.Species{he4, he4, he4}, []species.Species{c12}, 7.275, "x", reaction.R7{}, false)
	lr := reaction.NewLogicalReaction(r)

	factors := Weak{}.Factors([]*reaction.LogicalReaction{lr}, []species.Species{he4, he4, he4}, f64s(0.1, 0.1, 0.1), num.F64(0.1), num.F64(1e5))
	if factors[0].Value() <= 1 {
		tst.Errorf("expected triple-alpha screening factor > 1, got %v", factors[0].Value())
	}
}

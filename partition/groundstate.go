package partition

import "github.com/tboudreaux/GridFire-sub000/species"

// GroundState returns (2J+1) identically regardless of T9 (spec §4.2);
// its derivative is always zero. It supports every species present in the
// process-wide species table, built from each species' ground-state spin.
type GroundState struct {
	spin map[int]float64
}

// NewGroundState builds the fallback from the process-wide species table.
func NewGroundState() *GroundState {
	g := &GroundState{spin: make(map[int]float64)}
	for _, s := range species.Ordered() {
		g.spin[key(s.Z, s.A)] = s.Spin
	}
	return g
}

func (g *GroundState) Supports(z, a int) bool {
	_, ok := g.spin[key(z, a)]
	return ok
}

func (g *GroundState) Evaluate(z, a int, _ float64) float64 {
	return 2.0*g.spin[key(z, a)] + 1.0
}

func (g *GroundState) EvaluateDerivative(z, a int, _ float64) float64 {
	return 0
}

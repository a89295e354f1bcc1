package partition

import "sort"

// temperatureGridT9 is the fixed 24-point Rauscher-Thielemann T9 grid (spec
// §4.2).
var temperatureGridT9 = [24]float64{
	0.01, 0.15, 0.2, 0.3, 0.4, 0.5, 0.6, 0.7, 0.8, 0.9, 1.0, 1.5,
	2.0, 2.5, 3.0, 3.5, 4.0, 4.5, 5.0, 6.0, 7.0, 8.0, 9.0, 10.0,
}

// IsotopeRecord is one table entry: a ground-state spin and the 24
// normalised-g values over temperatureGridT9, for a single (Z,A).
type IsotopeRecord struct {
	Z, A             int
	GroundStateSpin  float64
	NormalizedG      [24]float64
}

// RauscherThielemann is the table-interpolated partition function (spec
// §4.2): below the first grid point the first value is used, above the
// last the last value is used, otherwise linear interpolation in T9
// (never log T9).
type RauscherThielemann struct {
	data map[int]IsotopeRecord
}

// NewRauscherThielemann builds a table from decoded records (see
// DecodeBlob).
func NewRauscherThielemann(records []IsotopeRecord) *RauscherThielemann {
	t := &RauscherThielemann{data: make(map[int]IsotopeRecord, len(records))}
	for _, r := range records {
		t.data[key(r.Z, r.A)] = r
	}
	return t
}

func (t *RauscherThielemann) Supports(z, a int) bool {
	_, ok := t.data[key(z, a)]
	return ok
}

func (t *RauscherThielemann) Evaluate(z, a int, t9 float64) float64 {
	rec, ok := t.data[key(z, a)]
	if !ok {
		return 0
	}
	gNorm, _ := interpolate(rec, t9)
	return gNorm * (2.0*rec.GroundStateSpin + 1.0)
}

func (t *RauscherThielemann) EvaluateDerivative(z, a int, t9 float64) float64 {
	rec, ok := t.data[key(z, a)]
	if !ok {
		return 0
	}
	_, slope := interpolate(rec, t9)
	return slope * (2.0*rec.GroundStateSpin + 1.0)
}

// interpolate returns the normalised-g value at t9 and the local slope
// (zero at either boundary, where the value is clamped rather than
// extrapolated).
func interpolate(rec IsotopeRecord, t9 float64) (value, slope float64) {
	grid := temperatureGridT9[:]
	upper := sort.SearchFloat64s(grid, t9)

	if upper == 0 {
		return rec.NormalizedG[0], 0
	}
	if upper == len(grid) {
		return rec.NormalizedG[len(grid)-1], 0
	}

	lower := upper - 1
	tLow, tHigh := grid[lower], grid[upper]
	gLow, gHigh := rec.NormalizedG[lower], rec.NormalizedG[upper]

	frac := (t9 - tLow) / (tHigh - tLow)
	value = gLow + frac*(gHigh-gLow)
	slope = (gHigh - gLow) / (tHigh - tLow)
	return value, slope
}

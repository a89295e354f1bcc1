// Package gftest is a tiny local replacement for gosl/chk's test
// assertions (chk.Scalar, chk.Array): gosl ties those to its own global
// test-counter registry, which this module has no reason to pull in just
// for two comparison helpers.
package gftest

import (
	"math"
	"testing"
)

// CloseTo fails t if got and want differ by more than tol.
func CloseTo(t *testing.T, msg string, tol, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > tol {
		t.Errorf("%s: got %v, want %v (tol %v)", msg, got, want, tol)
	}
}

// Vector fails t if got and want differ elementwise by more than tol, or
// have different lengths.
func Vector(t *testing.T, msg string, tol float64, got, want []float64) {
	t.Helper()
	if len(got) != len(want) {
		t.Errorf("%s: length mismatch: got %d, want %d", msg, len(got), len(want))
		return
	}
	for i := range want {
		if math.Abs(got[i]-want[i]) > tol {
			t.Errorf("%s[%d]: got %v, want %v (tol %v)", msg, i, got[i], want[i], tol)
		}
	}
}

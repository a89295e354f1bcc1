package species

import "testing"

func Test_lookup01(tst *testing.T) {
	he4, ok := Lookup("He-4")
	if !ok {
		tst.Fatalf("expected He-4 to be present in the process-wide table")
	}
	if he4.A != 4 || he4.Z != 2 {
		tst.Errorf("He-4: got A=%d Z=%d, want A=4 Z=2", he4.A, he4.Z)
	}
	if !he4.IsStable() {
		tst.Errorf("He-4 should be stable")
	}
}

func Test_unknown01(tst *testing.T) {
	if _, ok := Lookup("Unobtainium-999"); ok {
		tst.Errorf("expected unknown species to miss the table")
	}
}

func Test_decayConstant01(tst *testing.T) {
	b8, ok := Lookup("B-8")
	if !ok {
		tst.Fatalf("expected B-8 to be present")
	}
	dc := b8.DecayConstant()
	if dc <= 0 {
		tst.Errorf("B-8 decay constant should be positive, got %v", dc)
	}
	he4 := MustLookup("He-4")
	if he4.DecayConstant() != 0 {
		tst.Errorf("stable species should have zero decay constant")
	}
}

func Test_ordered01(tst *testing.T) {
	ord := Ordered()
	for i := 1; i < len(ord); i++ {
		a, b := ord[i-1], ord[i]
		if a.Z > b.Z || (a.Z == b.Z && a.A > b.A) {
			tst.Fatalf("Ordered() is not sorted by (Z,A) at index %d: %v then %v", i, a, b)
		}
	}
}

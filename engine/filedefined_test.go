package engine

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/tboudreaux/GridFire-sub000/gferrors"
)

func writeReactionList(t *testing.T, lines ...string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "network.list")
	content := ""
	for _, l := range lines {
		content += l + "\n"
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing reaction list: %v", err)
	}
	return path
}

func Test_fileDefinedUnknownNameIsFatal01(tst *testing.T) {
	base := NewBase(buildTestNetwork(tst))
	path := writeReactionList(tst, "# comment", "", "p(p,g)d", "no(such,reaction)x")
	if _, err := NewFileDefinedEngineView(base, path); !gferrors.Is(err, gferrors.DataIntegrity) {
		tst.Fatalf("expected DataIntegrity error for unknown reaction name, got %v", err)
	}
}

func Test_fileDefinedActiveSetMatchesFile01(tst *testing.T) {
	base := NewBase(buildTestNetwork(tst))
	path := writeReactionList(tst, "p(p,g)d", "d(p,g)he3")
	v, err := NewFileDefinedEngineView(base, path)
	if err != nil {
		tst.Fatalf("unexpected error: %v", err)
	}
	if !v.Stale() {
		tst.Fatalf("expected view to be stale before first update")
	}
	if err := v.Update(testNetIn()); err != nil {
		tst.Fatalf("update: %v", err)
	}

	names := map[string]bool{}
	for _, s := range v.NetworkSpecies() {
		names[s.Name] = true
	}
	for _, want := range []string{"H-1", "H-2", "He-3"} {
		if !names[want] {
			tst.Errorf("expected %s present in the file-defined active set", want)
		}
	}
	if names["He-4"] {
		tst.Errorf("expected He-4 absent: it is only touched by reactions not named in the file")
	}
}

func Test_setNetworkFileRemarksStale01(tst *testing.T) {
	base := NewBase(buildTestNetwork(tst))
	path := writeReactionList(tst, "p(p,g)d")
	v, err := NewFileDefinedEngineView(base, path)
	if err != nil {
		tst.Fatalf("unexpected error: %v", err)
	}
	if err := v.Update(testNetIn()); err != nil {
		tst.Fatalf("update: %v", err)
	}
	if v.Stale() {
		tst.Fatalf("expected clean view after update")
	}

	path2 := writeReactionList(tst, "d(p,g)he3")
	if err := v.SetNetworkFile(path2); err != nil {
		tst.Fatalf("set network file: %v", err)
	}
	if !v.Stale() {
		tst.Errorf("expected SetNetworkFile to re-mark the view stale")
	}
}

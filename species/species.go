// Package species implements the process-wide, read-only table of nuclide
// identities that every reaction and engine in this module refers to by
// value. Mirrors gofem's pattern of a process-wide, lazily-initialised
// factory registry (ele/factory.go, mdl/solid's allocators map) but for data
// rather than behaviour: the table is populated once, on first access, and
// never mutated afterward.
package species

import (
	"math"
	"sort"
	"sync"

	"github.com/tboudreaux/GridFire-sub000/internal/gfpanic"
)

// Species is an immutable value identifying one nuclide. Values are compared
// with == and used as map keys as whole structs, so every field takes part
// in equality and hashing; for table-sourced values, which carry identical
// fields for a given canonical name, this coincides with comparing names.
type Species struct {
	Name      string  // canonical name, e.g. "He-4"
	Element   string  // element symbol, e.g. "He"
	A         int     // mass number
	Z         int     // atomic number
	AtomicMass float64 // atomic mass, u
	BindingEnergy float64 // MeV
	HalfLife  float64 // seconds; +Inf for stable
	Spin      float64 // ground-state spin J
}

// IsStable reports whether the species has no finite half-life.
func (s Species) IsStable() bool { return math.IsInf(s.HalfLife, 1) }

// DecayConstant returns ln(2)/half-life, or 0 if stable.
func (s Species) DecayConstant() float64 {
	if s.IsStable() || s.HalfLife <= 0 {
		return 0
	}
	return math.Ln2 / s.HalfLife
}

func (s Species) String() string { return s.Name }

var (
	tableOnce sync.Once
	table     map[string]Species
	tableList []Species
)

// Table returns the process-wide species table, populating it from the
// built-in seed data on first call. The table is immutable after this
// point; callers must treat the returned map as read-only.
func Table() map[string]Species {
	tableOnce.Do(loadSeedTable)
	return table
}

// Ordered returns the species table as a slice sorted by (Z, A), useful
// anywhere a deterministic iteration order is wanted (e.g. constructing
// embedded-blob fixtures for tests).
func Ordered() []Species {
	tableOnce.Do(loadSeedTable)
	return tableList
}

// Lookup resolves a canonical name against the process-wide table.
func Lookup(name string) (Species, bool) {
	tableOnce.Do(loadSeedTable)
	s, ok := table[name]
	return s, ok
}

// MustLookup resolves a canonical name or panics; used only at process
// start-up / network-construction time where an unknown name is always a
// DataIntegrity bug in the caller's input, not a runtime condition to
// recover from station by station.
func MustLookup(name string) Species {
	s, ok := Lookup(name)
	gfpanic.Require(ok, "species: unknown species %q", name)
	return s
}

func loadSeedTable() {
	table = make(map[string]Species, len(seedSpecies))
	for _, s := range seedSpecies {
		table[s.Name] = s
	}
	tableList = append([]Species(nil), seedSpecies...)
	sort.Slice(tableList, func(i, j int) bool {
		if tableList[i].Z != tableList[j].Z {
			return tableList[i].Z < tableList[j].Z
		}
		return tableList[i].A < tableList[j].A
	})
}

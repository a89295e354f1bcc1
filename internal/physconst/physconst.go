// Package physconst holds the handful of CGS physical constants shared by
// the graph engine and solvers. approx8 keeps its own copies inline (it is
// a closed, self-contained legacy reference network); everything built
// against the composable engine pulls from here instead so the constants
// cannot drift between packages.
package physconst

const (
	// AtomicMassUnit is 1u in grams.
	AtomicMassUnit = 1.66053906660e-24
	// Avogadro is N_A in mol^-1.
	Avogadro = 6.02214076e23
	// SpeedOfLight is c in cm/s.
	SpeedOfLight = 2.99792458e10
	// BoltzmannMeVPerT9 is k_B expressed so Q/(BoltzmannMeVPerT9*T9) is
	// dimensionless for Q in MeV and T9 in units of 1e9 K.
	BoltzmannMeVPerT9 = 8.617333262e-2
)

package species

import "math"

// seedSpecies is the built-in process-wide species table. It stands in for
// the external "atomic species" asset named in the spec (§1, §5): a
// reference set of light-to-intermediate nuclides sufficient to run the
// Approx8 reference network, the pp-chain/CNO REACLIB excerpt used in
// tests, and the adaptive-view culling examples. Binding energies and
// atomic masses are standard tabulated values (AME-class), spins and
// half-lives are the commonly cited ground-state values.
var seedSpecies = []Species{
	{Name: "n", Element: "n", A: 1, Z: 0, AtomicMass: 1.008665, BindingEnergy: 0, HalfLife: 878.4, Spin: 0.5},
	{Name: "H-1", Element: "H", A: 1, Z: 1, AtomicMass: 1.007825, BindingEnergy: 0, HalfLife: math.Inf(1), Spin: 0.5},
	{Name: "H-2", Element: "H", A: 2, Z: 1, AtomicMass: 2.014102, BindingEnergy: 2.2246, HalfLife: math.Inf(1), Spin: 1},
	{Name: "H-3", Element: "H", A: 3, Z: 1, AtomicMass: 3.016049, BindingEnergy: 8.4818, HalfLife: 3.888e8, Spin: 0.5},
	{Name: "He-3", Element: "He", A: 3, Z: 2, AtomicMass: 3.016029, BindingEnergy: 7.7180, HalfLife: math.Inf(1), Spin: 0.5},
	{Name: "He-4", Element: "He", A: 4, Z: 2, AtomicMass: 4.002603, BindingEnergy: 28.2957, HalfLife: math.Inf(1), Spin: 0},
	{Name: "Li-6", Element: "Li", A: 6, Z: 3, AtomicMass: 6.015123, BindingEnergy: 31.9947, HalfLife: math.Inf(1), Spin: 1},
	{Name: "Li-7", Element: "Li", A: 7, Z: 3, AtomicMass: 7.016004, BindingEnergy: 39.2445, HalfLife: math.Inf(1), Spin: 1.5},
	{Name: "Be-7", Element: "Be", A: 7, Z: 4, AtomicMass: 7.016929, BindingEnergy: 37.6004, HalfLife: 4.596e6, Spin: 1.5},
	{Name: "Be-8", Element: "Be", A: 8, Z: 4, AtomicMass: 8.005305, BindingEnergy: 56.4996, HalfLife: 6.7e-17, Spin: 0},
	{Name: "B-8", Element: "B", A: 8, Z: 5, AtomicMass: 8.024607, BindingEnergy: 37.7377, HalfLife: 0.77, Spin: 2},
	{Name: "C-12", Element: "C", A: 12, Z: 6, AtomicMass: 12.000000, BindingEnergy: 92.1618, HalfLife: math.Inf(1), Spin: 0},
	{Name: "C-13", Element: "C", A: 13, Z: 6, AtomicMass: 13.003355, BindingEnergy: 97.1080, HalfLife: math.Inf(1), Spin: 0.5},
	{Name: "N-13", Element: "N", A: 13, Z: 7, AtomicMass: 13.005739, BindingEnergy: 94.1050, HalfLife: 597.9, Spin: 0.5},
	{Name: "N-14", Element: "N", A: 14, Z: 7, AtomicMass: 14.003074, BindingEnergy: 104.6585, HalfLife: math.Inf(1), Spin: 1},
	{Name: "N-15", Element: "N", A: 15, Z: 7, AtomicMass: 15.000109, BindingEnergy: 115.4919, HalfLife: math.Inf(1), Spin: 0.5},
	{Name: "O-15", Element: "O", A: 15, Z: 8, AtomicMass: 15.003066, BindingEnergy: 111.9556, HalfLife: 122.24, Spin: 0.5},
	{Name: "O-16", Element: "O", A: 16, Z: 8, AtomicMass: 15.994915, BindingEnergy: 127.6193, HalfLife: math.Inf(1), Spin: 0},
	{Name: "O-17", Element: "O", A: 17, Z: 8, AtomicMass: 16.999132, BindingEnergy: 131.7625, HalfLife: math.Inf(1), Spin: 2.5},
	{Name: "F-17", Element: "F", A: 17, Z: 9, AtomicMass: 17.002095, BindingEnergy: 128.2190, HalfLife: 64.49, Spin: 2.5},
	{Name: "F-18", Element: "F", A: 18, Z: 9, AtomicMass: 18.000938, BindingEnergy: 137.3695, HalfLife: 6586.2, Spin: 1},
	{Name: "Ne-20", Element: "Ne", A: 20, Z: 10, AtomicMass: 19.992440, BindingEnergy: 160.6448, HalfLife: math.Inf(1), Spin: 0},
	{Name: "Ne-21", Element: "Ne", A: 21, Z: 10, AtomicMass: 20.993847, BindingEnergy: 167.4060, HalfLife: math.Inf(1), Spin: 1.5},
	{Name: "Na-22", Element: "Na", A: 22, Z: 11, AtomicMass: 21.994437, BindingEnergy: 174.1442, HalfLife: 8.2152e7, Spin: 3},
	{Name: "Na-23", Element: "Na", A: 23, Z: 11, AtomicMass: 22.989770, BindingEnergy: 186.5642, HalfLife: math.Inf(1), Spin: 1.5},
	{Name: "Mg-24", Element: "Mg", A: 24, Z: 12, AtomicMass: 23.985042, BindingEnergy: 198.2570, HalfLife: math.Inf(1), Spin: 0},
	{Name: "Al-27", Element: "Al", A: 27, Z: 13, AtomicMass: 26.981538, BindingEnergy: 224.9520, HalfLife: math.Inf(1), Spin: 2.5},
	{Name: "Si-28", Element: "Si", A: 28, Z: 14, AtomicMass: 27.976927, BindingEnergy: 236.5368, HalfLife: math.Inf(1), Spin: 0},
}

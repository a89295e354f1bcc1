// Package sparse implements a minimal coordinate-list (COO / "triplet")
// sparse matrix, the same shape as gosl's la.Triplet that gofem's elements
// assemble their stiffness contributions into via AddToKb. Stoichiometry and
// Jacobian matrices in this codebase are rebuilt from scratch (never
// incrementally updated) whenever network topology changes, so entries are
// stored directly in a map keyed by (row, col); there is no need for a full
// CSR/CSC representation.
package sparse

import "gonum.org/v1/gonum/mat"

// Matrix is a sparse real matrix stored as a map keyed by (row, col). It is
// rebuilt wholesale on every topology change rather than mutated in place.
type Matrix struct {
	Rows, Cols int
	entries    map[[2]int]float64
}

// New allocates an empty sparse matrix of the given shape.
func New(rows, cols int) *Matrix {
	return &Matrix{Rows: rows, Cols: cols, entries: make(map[[2]int]float64)}
}

// Set stores value at (i,j), overwriting any previous entry. Storing a
// value that rounds to the drop threshold is left to the caller (see
// netgraph's MinJacobianThreshold) so this type stays a dumb container.
func (m *Matrix) Set(i, j int, v float64) {
	if v == 0 {
		delete(m.entries, [2]int{i, j})
		return
	}
	m.entries[[2]int{i, j}] = v
}

// Add accumulates a value into (i,j).
func (m *Matrix) Add(i, j int, v float64) {
	m.Set(i, j, m.At(i, j)+v)
}

// At returns the value at (i,j), 0 if absent.
func (m *Matrix) At(i, j int) float64 {
	return m.entries[[2]int{i, j}]
}

// NNZ returns the number of stored (nonzero) entries.
func (m *Matrix) NNZ() int { return len(m.entries) }

// Each calls fn once per stored entry in unspecified order.
func (m *Matrix) Each(fn func(i, j int, v float64)) {
	for k, v := range m.entries {
		fn(k[0], k[1], v)
	}
}

// ToDense materializes the sparse matrix as a gonum dense matrix. The
// solvers do not go through it: they read Jacobian entries one at a time
// (JacobianEntry) into their own gosl la.Triplet or gonum matrices.
func (m *Matrix) ToDense() *mat.Dense {
	d := mat.NewDense(m.Rows, m.Cols, nil)
	m.Each(func(i, j int, v float64) {
		d.Set(i, j, v)
	})
	return d
}

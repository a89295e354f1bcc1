package solver

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/tboudreaux/GridFire-sub000/gferrors"
)

// lmResidualFunc and lmJacobianFunc let lmSolve stay generic over whatever
// the caller is solving for.
type lmResidualFunc func(v []float64) ([]float64, error)
type lmJacobianFunc func(v []float64) (*mat.Dense, error)

// lmSolve is a Levenberg-Marquardt damped Gauss-Newton root solver for
// residual(v) = 0, v0 the starting point. It is the algebraic engine behind
// the QSE solver's Step D (spec §4.6): driving the full-network dY/dt
// restricted to the QSE species block to zero in log-abundance space.
// Non-convergence within maxIter is fatal (spec §4.7: "LM solver
// non-convergence" is a Numerical error).
func lmSolve(v0 []float64, tol float64, maxIter int, residual lmResidualFunc, jacobian lmJacobianFunc) ([]float64, error) {
	m := len(v0)
	v := append([]float64(nil), v0...)

	r, err := residual(v)
	if err != nil {
		return nil, err
	}
	lambda := 1e-3

	for iter := 0; iter < maxIter; iter++ {
		norm := normInf(r)
		if norm < tol {
			return v, nil
		}

		j, err := jacobian(v)
		if err != nil {
			return nil, err
		}

		var jt mat.Dense
		jt.CloneFrom(j.T())

		var jtj mat.Dense
		jtj.Mul(&jt, j)

		var jtr mat.VecDense
		rv := mat.NewVecDense(m, r)
		jtr.MulVec(&jt, rv)

		accepted := false
		for attempt := 0; attempt < 30 && !accepted; attempt++ {
			a := mat.NewDense(m, m, nil)
			a.Copy(&jtj)
			for i := 0; i < m; i++ {
				a.Set(i, i, a.At(i, i)+lambda*jtj.At(i, i))
			}

			var delta mat.VecDense
			rhs := mat.NewVecDense(m, nil)
			rhs.ScaleVec(-1, &jtr)
			if err := delta.SolveVec(a, rhs); err != nil {
				lambda *= 10
				continue
			}

			candidate := make([]float64, m)
			for i := range candidate {
				candidate[i] = v[i] + delta.AtVec(i)
			}
			rCandidate, err := residual(candidate)
			if err != nil {
				lambda *= 10
				continue
			}
			if normInf(rCandidate) < norm {
				v = candidate
				r = rCandidate
				lambda = math.Max(lambda/10, 1e-12)
				accepted = true
			} else {
				lambda *= 10
			}
		}

		if !accepted {
			return nil, gferrors.New(gferrors.Numerical, "QSE algebraic solve stalled after %d iterations (|r|=%.3e)", iter, norm)
		}
	}

	return nil, gferrors.New(gferrors.Numerical, "QSE algebraic solve did not converge within %d iterations", maxIter)
}

func normInf(v []float64) float64 {
	m := 0.0
	for _, x := range v {
		if a := math.Abs(x); a > m {
			m = a
		}
	}
	return m
}

package angles

import (
	"math"

	vecmath "github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-qsp/qsp/core"
	"github.com/cwbudde/algo-qsp/qsp/response"
)

const (
	fdStep    = 1e-6
	lambdaMin = 1e-12
	lambdaMax = 1e12
)

// refine polishes the peeled phases with a damped Gauss-Newton iteration on
// the pointwise residual against the target. The Jacobian is taken by
// forward differences; the damping factor shrinks after accepted steps and
// grows after rejected ones. Returns the best phases found and the number
// of iterations spent.
func refine(phases, grid, target []float64, cfg config) ([]float64, int) {
	n := len(phases)
	cur := append([]float64(nil), phases...)

	r := residuals(cur, grid, target)
	curErr := core.MaxAbs(r)

	lambda := 1e-6
	iters := 0

	for ; iters < cfg.maxIter && curErr > cfg.tolerance; iters++ {
		jac := jacobian(cur, grid, target, r)

		delta, ok := gaussNewtonStep(jac, r, n, lambda)
		if !ok {
			lambda *= 10
			if lambda > lambdaMax {
				break
			}
			continue
		}

		next := append([]float64(nil), cur...)
		vecmath.AddBlockInPlace(next, delta)

		nr := residuals(next, grid, target)
		nErr := core.MaxAbs(nr)

		if nErr < curErr {
			cur, r, curErr = next, nr, nErr
			lambda /= 3
			if lambda < lambdaMin {
				lambda = lambdaMin
			}
			continue
		}

		lambda *= 10
		if lambda > lambdaMax {
			break
		}
	}

	return cur, iters
}

func residuals(phases, grid, target []float64) []float64 {
	ps, _, err := response.Evaluate(phases, core.OperatorWz, grid)
	if err != nil {
		out := make([]float64, len(grid))
		for i := range out {
			out[i] = math.Inf(1)
		}
		return out
	}

	out := make([]float64, len(grid))
	for i := range out {
		out[i] = ps[i] - target[i]
	}

	return out
}

// jacobian returns the m x n forward-difference Jacobian of the residual
// vector, flattened row-major.
func jacobian(phases, grid, target, r []float64) []float64 {
	m, n := len(grid), len(phases)
	out := make([]float64, m*n)

	for j := range n {
		bumped := append([]float64(nil), phases...)
		bumped[j] += fdStep

		rb := residuals(bumped, grid, target)
		for i := range m {
			out[i*n+j] = (rb[i] - r[i]) / fdStep
		}
	}

	return out
}

// gaussNewtonStep solves (J^T J + lambda I) delta = -J^T r for delta via
// Cholesky. Reports failure when the damped normal matrix is not positive
// definite.
func gaussNewtonStep(jac, r []float64, n int, lambda float64) ([]float64, bool) {
	m := len(r)

	a := make([]float64, n*n)
	b := make([]float64, n)
	for i := range m {
		row := jac[i*n : (i+1)*n]
		for p, jp := range row {
			b[p] -= jp * r[i]
			for q := p; q < n; q++ {
				a[p*n+q] += jp * row[q]
			}
		}
	}
	for p := range n {
		a[p*n+p] += lambda
		for q := 0; q < p; q++ {
			a[p*n+q] = a[q*n+p]
		}
	}

	return choleskySolve(a, b, n)
}

func choleskySolve(a, b []float64, n int) ([]float64, bool) {
	l := make([]float64, n*n)
	for i := range n {
		for j := 0; j <= i; j++ {
			sum := a[i*n+j]
			for k := 0; k < j; k++ {
				sum -= l[i*n+k] * l[j*n+k]
			}

			if i == j {
				if sum <= 0 {
					return nil, false
				}
				l[i*n+i] = math.Sqrt(sum)
			} else {
				l[i*n+j] = sum / l[j*n+j]
			}
		}
	}

	// Forward then backward substitution.
	y := make([]float64, n)
	for i := range n {
		sum := b[i]
		for k := 0; k < i; k++ {
			sum -= l[i*n+k] * y[k]
		}
		y[i] = sum / l[i*n+i]
	}

	x := make([]float64, n)
	for i := n - 1; i >= 0; i-- {
		sum := y[i]
		for k := i + 1; k < n; k++ {
			sum -= l[k*n+i] * x[k]
		}
		x[i] = sum / l[i*n+i]
	}

	return x, true
}

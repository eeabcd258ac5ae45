// Package hamsim expands the Hamiltonian-simulation target functions
// cos(tau*sin(theta)) and sin(tau*sin(theta)) into truncated Bessel series
// (the Jacobi-Anger expansion), producing the coefficient pair a QSP phase
// solver consumes.
package hamsim

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-qsp/qsp/core"
	"github.com/cwbudde/algo-qsp/qsp/poly"
)

// residualTail bounds how many Bessel orders beyond the truncation point
// contribute to the reported residual. J_k(tau) decays super-exponentially
// once k exceeds tau, so the tail past this window is negligible.
const residualTail = 40

// seriesHeadroom keeps the scaled series a hair below supremum norm 1 so a
// phase solver's feasibility check never sees it saturate the unit bound.
const seriesHeadroom = 1 - 1e-6

// Expansion holds a truncated Jacobi-Anger expansion at evolution time Tau.
//
// Cos approximates cos(Tau*sin(theta)) as an even Chebyshev series in
// x = cos(theta). Sin holds the odd-order coefficients s_k of
// sin(Tau*sin(theta)) = sum s_k*sin((2k+1)*theta);
// these are not Chebyshev coefficients of a polynomial in x, so they are kept
// as a raw slice.
type Expansion struct {
	Tau      float64
	Cos      poly.Polynomial
	Sin      []float64
	Order    int
	Residual float64
	// Scale is the factor both series were multiplied by to keep their
	// supremum norm strictly below 1, so a phase solver accepts them. The
	// solved response approximates Scale times the target function.
	Scale float64
}

// Expand truncates the Jacobi-Anger series at the smallest order whose
// Bessel coefficient magnitude drops below eps1, then verifies that the
// discarded tail stays below eps2.
//
// The target functions reach magnitude 1 and truncation ripple can push the
// series slightly past it, so both series are scaled down by
// (1-1e-6)/(1+residual) before being returned; the factor is recorded in
// Scale.
//
// Returns core.ErrToleranceNotMet when the tail bound exceeds eps2.
func Expand(tau, eps1, eps2 float64) (Expansion, error) {
	if tau <= 0 || math.IsNaN(tau) || math.IsInf(tau, 0) {
		return Expansion{}, fmt.Errorf("hamsim: evolution time must be positive and finite, got %g: %w",
			tau, core.ErrInvalidParameter)
	}
	if eps1 <= 0 || eps2 <= 0 {
		return Expansion{}, fmt.Errorf("hamsim: tolerances must be positive, got %g and %g: %w",
			eps1, eps2, core.ErrInvalidParameter)
	}

	order := truncationOrder(tau, eps1)

	residual := 0.0
	for k := order + 1; k <= order+residualTail; k++ {
		residual += 2 * math.Abs(math.Jn(k, tau))
	}
	if residual > eps2 {
		return Expansion{}, fmt.Errorf("hamsim: tail bound %.3e exceeds %.3e at order %d: %w",
			residual, eps2, order, core.ErrToleranceNotMet)
	}

	// The truncated series deviates from the target by at most the tail
	// residual, so its sup is bounded by 1+residual and the scaled series
	// stays at or below seriesHeadroom.
	scale := seriesHeadroom / (1 + residual)

	// cos(tau*sin(theta)) = J_0(tau) + 2*sum_{k>=1} J_{2k}(tau) T_{2k}(cos(theta)).
	cos := make([]float64, order+1)
	cos[0] = scale * math.J0(tau)
	for k := 2; k <= order; k += 2 {
		cos[k] = scale * 2 * math.Jn(k, tau)
	}

	// sin(tau*sin(theta)) = 2*sum_{k>=0} J_{2k+1}(tau) sin((2k+1)*theta).
	var sin []float64
	for k := 1; k <= order; k += 2 {
		sin = append(sin, scale*2*math.Jn(k, tau))
	}

	return Expansion{
		Tau:      tau,
		Cos:      poly.Polynomial{Coeffs: cos, Basis: poly.BasisChebyshev},
		Sin:      sin,
		Order:    order,
		Residual: residual,
		Scale:    scale,
	}, nil
}

// truncationOrder finds the smallest order at or beyond tau where the
// Bessel coefficient magnitude has decayed below eps.
func truncationOrder(tau, eps float64) int {
	n := int(math.Ceil(tau))
	if n < 1 {
		n = 1
	}
	for 2*math.Abs(math.Jn(n, tau)) >= eps {
		n++
	}

	return n
}

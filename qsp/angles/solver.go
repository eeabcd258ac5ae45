package angles

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-qsp/internal/chebfit"
	"github.com/cwbudde/algo-qsp/qsp/core"
	"github.com/cwbudde/algo-qsp/qsp/poly"
	"github.com/cwbudde/algo-qsp/qsp/response"
)

// supSlack tolerates roundoff from coefficient arithmetic when checking the
// supremum norm. Targets touching 1 exactly are feasible, so the check
// rejects only values strictly above 1 beyond this slack.
const supSlack = 1e-9

// trimTol is the relative magnitude below which trailing coefficients are
// dropped before completion.
const trimTol = 1e-11

// Result holds the solved phase sequence and its verification record.
type Result struct {
	// Phases has length degree+1; applying them through the evaluator
	// reproduces the target polynomial as the real part of the top-left
	// unitary entry.
	Phases []float64
	// MaxError is the largest pointwise deviation from the target observed
	// on the verification grid.
	MaxError float64
	// Refined reports whether the iterative polish ran after peeling.
	Refined bool
	// Iterations counts refinement steps taken.
	Iterations int
}

// Solve computes the phase sequence realizing p.
//
// The polynomial must have definite parity and stay within [-1, 1] on the
// domain; violations return an error wrapping core.ErrInfeasiblePolynomial.
// When peeling alone meets the tolerance the result is returned without
// refinement. Otherwise refinement runs, and if it still cannot reach the
// tolerance the best phases found are returned together with an error
// wrapping core.ErrToleranceNotMet.
func Solve(p poly.Polynomial, opts ...Option) (Result, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	cheb, err := chebCoeffs(p)
	if err != nil {
		return Result{}, err
	}
	if _, err := p.Parity(); err != nil {
		return Result{}, fmt.Errorf("angles: %w", err)
	}

	cheb = trim(cheb)
	d := len(cheb) - 1

	if sup := p.SupNorm(); sup > 1+supSlack {
		return Result{}, fmt.Errorf("angles: supremum norm %.6g exceeds 1: %w",
			sup, core.ErrInfeasiblePolynomial)
	}

	if d == 0 {
		// A constant target needs a single phase layer.
		return Result{Phases: []float64{math.Acos(core.Clamp(cheb[0], -1, 1))}}, nil
	}

	f, g, err := complete(p, cheb, cfg.rootRetries)
	if err != nil {
		return Result{}, err
	}

	phases := peel(f, g)

	grid := core.ChebyshevNodes(cfg.grid(d))
	target := make([]float64, len(grid))
	for i, x := range grid {
		target[i] = p.Eval(x)
	}

	res := Result{Phases: phases, MaxError: maxDeviation(phases, grid, target)}
	if res.MaxError <= cfg.tolerance {
		return res, nil
	}

	refined, iters := refine(phases, grid, target, cfg)
	res.Refined = true
	res.Iterations = iters
	if refErr := maxDeviation(refined, grid, target); refErr < res.MaxError {
		res.Phases = refined
		res.MaxError = refErr
	}
	if res.MaxError <= cfg.tolerance {
		return res, nil
	}

	return res, fmt.Errorf("angles: residual %.3e above tolerance %.3e: %w",
		res.MaxError, cfg.tolerance, core.ErrToleranceNotMet)
}

func maxDeviation(phases, grid, target []float64) float64 {
	ps, _, err := response.Evaluate(phases, core.OperatorWz, grid)
	if err != nil {
		return math.Inf(1)
	}

	out := 0.0
	for i := range ps {
		if d := math.Abs(ps[i] - target[i]); d > out {
			out = d
		}
	}

	return out
}

// chebCoeffs returns the Chebyshev-T coefficients of p, fitting monomial
// input through the FFT interpolant.
func chebCoeffs(p poly.Polynomial) ([]float64, error) {
	if len(p.Coeffs) == 0 {
		return nil, fmt.Errorf("angles: empty polynomial: %w", core.ErrInvalidParameter)
	}
	for _, c := range p.Coeffs {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return nil, fmt.Errorf("angles: non-finite coefficient: %w", core.ErrInvalidParameter)
		}
	}

	if p.Basis == poly.BasisChebyshev {
		out := make([]float64, len(p.Coeffs))
		copy(out, p.Coeffs)

		return out, nil
	}

	out, err := chebfit.Coefficients(p.Eval, len(p.Coeffs)-1)
	if err != nil {
		return nil, fmt.Errorf("angles: %w", err)
	}

	return out, nil
}

func trim(coeffs []float64) []float64 {
	scale := core.MaxAbs(coeffs)
	if scale == 0 {
		return coeffs[:1]
	}

	last := 0
	for i, c := range coeffs {
		if math.Abs(c) > trimTol*scale {
			last = i
		}
	}

	return coeffs[:last+1]
}

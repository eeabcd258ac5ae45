// Package polyroot finds all roots of real and complex polynomials using the
// Durand-Kerner (Weierstrass) simultaneous iteration, with a deterministic
// perturb-and-retry ladder for degenerate inputs.
package polyroot

import (
	"errors"
	"math"
	"math/cmplx"
)

// ErrDegeneratePolynomial is returned when a polynomial has degenerate
// coefficients (leading coefficient zero, convergence failure, etc.).
var ErrDegeneratePolynomial = errors.New("polyroot: degenerate polynomial")

const (
	maxIter = 4000
	stepTol = 1e-13
	// Residual acceptance is relative to the normalized coefficient scale,
	// so polynomials with a tiny leading coefficient are not rejected for
	// carrying large normalized values.
	residualTol = 1e-8
)

// RootsAscending finds all roots of a real polynomial given in ascending
// power order (c[0] + c[1]*z + ...). When the iteration fails to converge,
// the coefficients are perturbed deterministically and the solve is retried
// up to retries times before giving up.
func RootsAscending(coeffs []float64, retries int) ([]complex128, error) {
	n := len(coeffs) - 1
	if n < 1 || coeffs[n] == 0 {
		return nil, ErrDegeneratePolynomial
	}

	desc := make([]complex128, n+1)
	for i, c := range coeffs {
		desc[n-i] = complex(c, 0)
	}

	roots, err := DurandKerner(desc)
	if err == nil {
		return roots, nil
	}

	for attempt := 1; attempt <= retries; attempt++ {
		perturbed := make([]complex128, len(desc))
		for i, c := range desc {
			// Deterministic relative perturbation, growing with the attempt.
			scale := 1 + 1e-12*float64(attempt)*float64(i+1)
			perturbed[i] = c * complex(scale, 0)
		}

		roots, err = DurandKerner(perturbed)
		if err == nil {
			return roots, nil
		}
	}

	return nil, err
}

// DurandKerner finds all roots of a polynomial using simultaneous
// Weierstrass iteration. Coefficients are in descending power order:
// coeff[0]*z^n + coeff[1]*z^(n-1) + ... + coeff[n].
//
//nolint:cyclop
func DurandKerner(coeff []complex128) ([]complex128, error) {
	if len(coeff) < 2 {
		return nil, ErrDegeneratePolynomial
	}

	lead := coeff[0]
	if lead == 0 {
		return nil, ErrDegeneratePolynomial
	}

	n := len(coeff) - 1

	norm := make([]complex128, len(coeff))
	for i := range coeff {
		norm[i] = coeff[i] / lead
	}

	roots := make([]complex128, n)
	radius := initialRadius(norm)
	for i := range n {
		angle := 2*math.Pi*float64(i)/float64(n) + 0.3
		r := radius * (1 + 0.1*float64(i)/float64(n))
		roots[i] = complex(r*math.Cos(angle), r*math.Sin(angle))
	}

	for range maxIter {
		maxDelta := 0.0

		for i := range n {
			den := complex(1, 0)

			for j := range n {
				if i == j {
					continue
				}

				den *= roots[i] - roots[j]
			}

			if cmplx.Abs(den) == 0 {
				roots[i] += complex(1e-10, 1e-10)
				continue
			}

			f := PolyEval(norm, roots[i])
			delta := f / den

			roots[i] -= delta
			if d := cmplx.Abs(delta); d > maxDelta {
				maxDelta = d
			}
		}

		if maxDelta < stepTol {
			return roots, nil
		}
	}

	scale := 0.0
	for _, c := range norm {
		if a := cmplx.Abs(c); a > scale {
			scale = a
		}
	}

	maxResidual := 0.0
	for _, r := range roots {
		res := cmplx.Abs(PolyEval(norm, r))
		if res > maxResidual {
			maxResidual = res
		}
	}

	if maxResidual < residualTol*scale {
		return roots, nil
	}

	return nil, ErrDegeneratePolynomial
}

// initialRadius estimates a starting circle for the iteration. The geometric
// mean of the constant-to-leading ratio tracks the typical root magnitude
// far better than the max-coefficient bound when coefficients span many
// orders of magnitude; the max bound remains as a fallback.
func initialRadius(norm []complex128) float64 {
	n := len(norm) - 1

	if tail := cmplx.Abs(norm[n]); tail > 0 {
		r := math.Pow(tail, 1/float64(n))
		if r > 1e-3 && r < 1e3 {
			return r
		}
	}

	radius := 0.0
	for i := 1; i <= n; i++ {
		if r := cmplx.Abs(norm[i]); r > radius {
			radius = r
		}
	}

	if radius < 1 {
		radius = 1
	}

	return radius
}

// PolyEval evaluates a polynomial at x using Horner's method. Coefficients
// are in descending power order: coeff[0]*x^n + ... + coeff[n].
func PolyEval(coeff []complex128, x complex128) complex128 {
	v := coeff[0]
	for i := 1; i < len(coeff); i++ {
		v = v*x + coeff[i]
	}

	return v
}

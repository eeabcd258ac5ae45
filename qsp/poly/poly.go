package poly

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-qsp/internal/chebfit"
	"github.com/cwbudde/algo-qsp/qsp/core"
)

// Basis identifies the coefficient basis of a Polynomial.
type Basis int

const (
	// BasisMonomial orders coefficients by ascending power:
	// c[0] + c[1]*x + c[2]*x^2 + ...
	BasisMonomial Basis = iota
	// BasisChebyshev orders coefficients by Chebyshev-T index:
	// c[0]*T_0 + c[1]*T_1 + ...
	BasisChebyshev
)

// Parity tags a polynomial as even or odd.
type Parity int

const (
	ParityEven Parity = iota
	ParityOdd
)

// String returns "even" or "odd".
func (p Parity) String() string {
	if p == ParityOdd {
		return "odd"
	}

	return "even"
}

// parityTol is the relative magnitude below which a coefficient of the
// non-matching parity counts as numerically zero.
const parityTol = 1e-11

// Polynomial is a real polynomial on [-1, 1] in either the monomial or the
// Chebyshev basis. The zero value is the zero polynomial.
type Polynomial struct {
	Coeffs []float64
	Basis  Basis
}

// NewMonomial wraps ascending-power coefficients.
func NewMonomial(coeffs ...float64) Polynomial {
	return Polynomial{Coeffs: coeffs, Basis: BasisMonomial}
}

// NewChebyshev wraps ascending Chebyshev-T coefficients.
func NewChebyshev(coeffs ...float64) Polynomial {
	return Polynomial{Coeffs: coeffs, Basis: BasisChebyshev}
}

// Degree returns the numeric degree: the highest index whose coefficient is
// not negligible relative to the largest coefficient. The zero polynomial
// has degree 0.
func (p Polynomial) Degree() int {
	scale := core.MaxAbs(p.Coeffs)
	if scale == 0 {
		return 0
	}

	for i := len(p.Coeffs) - 1; i > 0; i-- {
		if math.Abs(p.Coeffs[i]) > parityTol*scale {
			return i
		}
	}

	return 0
}

// Eval evaluates the polynomial at x (Horner for the monomial basis,
// Clenshaw for the Chebyshev basis).
func (p Polynomial) Eval(x float64) float64 {
	if len(p.Coeffs) == 0 {
		return 0
	}

	if p.Basis == BasisChebyshev {
		return chebfit.Eval(p.Coeffs, x)
	}

	v := p.Coeffs[len(p.Coeffs)-1]
	for i := len(p.Coeffs) - 2; i >= 0; i-- {
		v = v*x + p.Coeffs[i]
	}

	return v
}

// Parity returns the parity of the polynomial. Coefficients of the
// non-matching parity must be numerically zero; otherwise the polynomial is
// not realizable as a single QSP sequence and ErrInfeasiblePolynomial is
// wrapped in the returned error. Both bases preserve the parity pattern, so
// the check is purely structural.
func (p Polynomial) Parity() (Parity, error) {
	scale := core.MaxAbs(p.Coeffs)
	if scale == 0 {
		return ParityEven, nil
	}

	var even, odd float64
	for i, c := range p.Coeffs {
		if i%2 == 0 {
			even = math.Max(even, math.Abs(c))
		} else {
			odd = math.Max(odd, math.Abs(c))
		}
	}

	switch {
	case odd <= parityTol*scale:
		return ParityEven, nil
	case even <= parityTol*scale:
		return ParityOdd, nil
	default:
		return ParityEven, fmt.Errorf("poly: mixed parity coefficients: %w", core.ErrInfeasiblePolynomial)
	}
}

// MaxAbs returns the supremum norm estimate of p over the given grid.
func (p Polynomial) MaxAbs(grid []float64) float64 {
	out := 0.0
	for _, x := range grid {
		if v := math.Abs(p.Eval(x)); v > out {
			out = v
		}
	}

	return out
}

const invPhi = 0.6180339887498949

// SupNorm estimates the supremum norm of p over [-1, 1]. A dense Chebyshev
// scan locates the extremal lobe and a golden-section polish refines the
// peak, so narrow lobes between grid points are not missed.
func (p Polynomial) SupNorm() float64 {
	n := 64 * len(p.Coeffs)
	if n < 2048 {
		n = 2048
	}
	nodes := core.ChebyshevNodes(n)

	best, bestVal := 0, 0.0
	for i, x := range nodes {
		if v := math.Abs(p.Eval(x)); v > bestVal {
			best, bestVal = i, v
		}
	}

	a, b := nodes[0], nodes[n-1]
	if best > 0 {
		a = nodes[best-1]
	}
	if best < n-1 {
		b = nodes[best+1]
	}

	c := b - invPhi*(b-a)
	d := a + invPhi*(b-a)
	fc, fd := math.Abs(p.Eval(c)), math.Abs(p.Eval(d))
	for range 60 {
		if fc > fd {
			b, d, fd = d, c, fc
			c = b - invPhi*(b-a)
			fc = math.Abs(p.Eval(c))
		} else {
			a, c, fc = c, d, fd
			d = a + invPhi*(b-a)
			fd = math.Abs(p.Eval(d))
		}
	}

	return math.Max(bestVal, math.Max(fc, fd))
}

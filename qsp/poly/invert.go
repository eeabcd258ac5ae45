package poly

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-qsp/internal/chebfit"
	"github.com/cwbudde/algo-qsp/qsp/core"
)

// invertSeries returns the raw odd Chebyshev approximation to 1/x on
// 1/kappa <= |x| <= 1 from the binomial-tail construction of Childs,
// Kothari and Somma:
//
//	1/x ~ 4 * sum_j (-1)^j q_j T_{2j+1}(x),  q_j = Pr[X > b+j], X ~ Bin(2b, 1/2)
//
// with b chosen from kappa and epsilon, truncated once the coefficients
// drop below the error budget.
func invertSeries(kappa, epsilon float64) []float64 {
	b := int(math.Ceil(kappa * kappa * math.Log(kappa/epsilon)))
	if b < 1 {
		b = 1
	}

	jmax := int(math.Ceil(math.Sqrt(float64(b) * math.Log(4*float64(b)/epsilon))))
	if jmax > b {
		jmax = b
	}

	// Central binomial tail probabilities via log-gamma, accumulated from
	// the outermost term so the partial sums stay monotone.
	logNorm := -2*float64(b)*math.Ln2 + lgamma(2*float64(b)+1)

	tails := make([]float64, jmax+1)
	acc := 0.0
	for i := b; i >= 1; i-- {
		logP := logNorm - lgamma(float64(b+i)+1) - lgamma(float64(b-i)+1)
		acc += math.Exp(logP)
		if i-1 <= jmax {
			tails[i-1] = acc
		}
	}

	cheb := make([]float64, 2*jmax+2)
	sign := 1.0
	for j := 0; j <= jmax; j++ {
		cheb[2*j+1] = 4 * sign * tails[j]
		sign = -sign
	}

	return cheb
}

func lgamma(x float64) float64 {
	v, _ := math.Lgamma(x)
	return v
}

// OneOverX approximates 1/x on 1/kappa <= |x| <= 1 with an odd polynomial.
// The degree follows from kappa and epsilon rather than being requested
// directly.
type OneOverX struct{}

// Help documents the Generate argument list.
func (OneOverX) Help() string {
	return "invert(kappa, epsilon): odd approximation to 1/x valid on 1/kappa <= |x| <= 1; kappa > 1, 0 < epsilon < 1"
}

// Generate returns the bounded approximation and its scale factor.
func (OneOverX) Generate(args ...float64) (Polynomial, float64, error) {
	if err := wantArgs("invert", args, 2); err != nil {
		return Polynomial{}, 0, err
	}

	kappa, epsilon := args[0], args[1]
	if kappa <= 1 {
		return Polynomial{}, 0, fmt.Errorf("poly: invert kappa must be > 1: %v: %w", kappa, core.ErrInvalidParameter)
	}
	if epsilon <= 0 || epsilon >= 1 {
		return Polynomial{}, 0, fmt.Errorf("poly: invert epsilon must be in (0,1): %v: %w", epsilon, core.ErrInvalidParameter)
	}

	p, scale := normalize(invertSeries(kappa, epsilon))

	return p, scale, nil
}

// OneOverXRect multiplies the reciprocal approximation by a rect window so
// the result stays controlled across the whole interval, including the
// band around the singularity.
type OneOverXRect struct{}

// Help documents the Generate argument list.
func (OneOverXRect) Help() string {
	return "invert_rect(degree, delta, kappa, epsilon): odd windowed reciprocal; degree odd >= 1, delta > 0, kappa > 1, 0 < epsilon < 1"
}

// Generate returns the bounded approximation and its scale factor.
func (OneOverXRect) Generate(args ...float64) (Polynomial, float64, error) {
	if err := wantArgs("invert_rect", args, 4); err != nil {
		return Polynomial{}, 0, err
	}

	degree, err := intArg("invert_rect", "degree", args[0])
	if err != nil {
		return Polynomial{}, 0, err
	}

	delta, kappa, epsilon := args[1], args[2], args[3]
	if degree < 1 || degree%2 == 0 {
		return Polynomial{}, 0, fmt.Errorf("poly: invert_rect degree must be odd and >= 1: %d: %w", degree, core.ErrInvalidParameter)
	}
	if delta <= 0 {
		return Polynomial{}, 0, fmt.Errorf("poly: invert_rect delta must be > 0: %v: %w", delta, core.ErrInvalidParameter)
	}
	if kappa <= 1 {
		return Polynomial{}, 0, fmt.Errorf("poly: invert_rect kappa must be > 1: %v: %w", kappa, core.ErrInvalidParameter)
	}
	if epsilon <= 0 || epsilon >= 1 {
		return Polynomial{}, 0, fmt.Errorf("poly: invert_rect epsilon must be in (0,1): %v: %w", epsilon, core.ErrInvalidParameter)
	}

	window, err := rectSeries(degree+1, delta, kappa)
	if err != nil {
		return Polynomial{}, 0, err
	}

	recip := invertSeries(kappa, epsilon)

	// Fit the pointwise product (even window times odd reciprocal) back to
	// the requested odd degree.
	cheb, err := chebfit.Coefficients(func(x float64) float64 {
		return chebfit.Eval(window, x) * chebfit.Eval(recip, x)
	}, degree)
	if err != nil {
		return Polynomial{}, 0, err
	}

	zeroParity(cheb, ParityOdd)
	p, scale := normalize(cheb)

	return p, scale, nil
}

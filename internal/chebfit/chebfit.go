// Package chebfit computes Chebyshev series coefficients of smooth functions
// on [-1, 1] by FFT over unit-circle samples, plus Clenshaw evaluation.
//
// For f sampled at x_j = cos(2*pi*j/N) the values form an even sequence on
// the circle, so a forward FFT recovers the cosine-series coefficients
// directly: f(cos t) ~ a_0 + sum_k a_k cos(k t), i.e. the Chebyshev-T
// coefficients of f. Sampling is heavily oversampled relative to the
// requested degree so truncation, not aliasing, dominates the error.
package chebfit

import (
	"errors"
	"fmt"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"
)

// ErrInvalidDegree is returned for negative series degrees.
var ErrInvalidDegree = errors.New("chebfit: degree must be >= 0")

const (
	minSamples   = 64
	oversampling = 8
)

// NextPow2 returns the smallest power of two >= n (minimum 1).
func NextPow2(n int) int {
	out := 1
	for out < n {
		out <<= 1
	}

	return out
}

// Coefficients returns the Chebyshev-T coefficients a_0..a_degree of fn,
// computed from an oversampled unit-circle FFT.
func Coefficients(fn func(float64) float64, degree int) ([]float64, error) {
	if degree < 0 {
		return nil, ErrInvalidDegree
	}

	n := NextPow2(oversampling * (degree + 1))
	if n < minSamples {
		n = minSamples
	}

	plan, err := algofft.NewPlan64(n)
	if err != nil {
		return nil, fmt.Errorf("chebfit: failed to create FFT plan: %w", err)
	}

	samples := make([]complex128, n)
	for j := range samples {
		theta := 2 * math.Pi * float64(j) / float64(n)
		samples[j] = complex(fn(math.Cos(theta)), 0)
	}

	spectrum := make([]complex128, n)
	if err := plan.Forward(spectrum, samples); err != nil {
		return nil, fmt.Errorf("chebfit: forward FFT failed: %w", err)
	}

	// Samples are even in j, so the spectrum is real; a_0 = F_0/N and
	// a_k = 2*F_k/N fold the two half-spectra together.
	coeffs := make([]float64, degree+1)
	coeffs[0] = real(spectrum[0]) / float64(n)
	for k := 1; k <= degree; k++ {
		coeffs[k] = 2 * real(spectrum[k]) / float64(n)
	}

	return coeffs, nil
}

// Eval evaluates a Chebyshev-T series at x using the Clenshaw recurrence.
func Eval(coeffs []float64, x float64) float64 {
	if len(coeffs) == 0 {
		return 0
	}

	var b1, b2 float64
	for k := len(coeffs) - 1; k >= 1; k-- {
		b1, b2 = 2*x*b1-b2+coeffs[k], b1
	}

	return x*b1 - b2 + coeffs[0]
}

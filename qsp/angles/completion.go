package angles

import (
	"fmt"
	"math"
	"math/cmplx"
	"sort"

	algofft "github.com/MeKo-Christian/algo-fft"

	"github.com/cwbudde/algo-qsp/internal/chebfit"
	"github.com/cwbudde/algo-qsp/internal/polyroot"
	"github.com/cwbudde/algo-qsp/qsp/core"
	"github.com/cwbudde/algo-qsp/qsp/poly"
)

const (
	// circleTol classifies a root as sitting on the unit circle. Roots of
	// 1-P^2 on the circle are double roots, so they straddle it under
	// roundoff by up to the square root of the coefficient noise.
	circleTol = 1e-3
	// realTol classifies a root as real when forming the real factorization.
	realTol = 1e-8
	// alphaGrid samples the circle when normalizing the complementary
	// polynomial away from its zeros.
	alphaGrid = 1024
	// cepstralFloor is the minimum of the unitarity defect on the circle
	// below which the cepstral factorization loses accuracy and rooting
	// takes over. Defects touching zero have logarithmic singularities the
	// cepstrum cannot resolve.
	cepstralFloor = 1e-8
	// cepstralSamples sets the FFT length of the cepstral factorization.
	// Zeros of the defect sitting close to the circle slow the cepstrum's
	// decay, so the length is generous.
	cepstralSamples = 1 << 15
)

// complete builds the Laurent pair (F, G) whose unit-circle unitarity
// defect is zero: F embeds the target symmetrically, and G carries a
// spectral factor of 1-P^2 with all its zeros inside the unit circle (the
// canonical minimum-phase choice). Both slices have length 2d+1 with the
// exponent-zero term at index d; F entries are real, G entries purely
// imaginary.
func complete(p poly.Polynomial, cheb []float64, retries int) (f, g []complex128, err error) {
	d := len(cheb) - 1

	f = make([]complex128, 2*d+1)
	f[d] = complex(cheb[0], 0)
	for j := 1; j <= d; j++ {
		f[d+j] = complex(cheb[j]/2, 0)
		f[d-j] = complex(cheb[j]/2, 0)
	}

	t, err := laurentDefect(p, d)
	if err != nil {
		return nil, nil, err
	}

	b, err := complementary(t, d, retries)
	if err != nil {
		return nil, nil, err
	}

	g = make([]complex128, 2*d+1)
	for j := range b {
		g[j] = complex(0, b[j])
	}

	return f, g, nil
}

// laurentDefect returns the symmetric Laurent coefficients t[0..2d] of
// 1 - P(cos theta)^2, so the defect at angle theta is
// t[0] + 2*sum_j t[j]*cos(j*theta).
func laurentDefect(p poly.Polynomial, d int) ([]float64, error) {
	c, err := chebfit.Coefficients(func(x float64) float64 {
		v := p.Eval(x)
		return 1 - v*v
	}, 2*d)
	if err != nil {
		return nil, fmt.Errorf("angles: %w", err)
	}

	t := make([]float64, 2*d+1)
	t[0] = c[0]
	for j := 1; j <= 2*d; j++ {
		t[j] = c[j] / 2
	}

	return t, nil
}

// complementary returns the real coefficients b[0..2d] of the minimum-phase
// spectral factor B of the defect, written against exponent offset -d, so
// |B|^2 equals the defect on the circle and B(1) >= 0.
//
// Defects bounded away from zero factor through the cepstrum, which stays
// stable when the defect's zeros cluster near the circle. Defects that touch
// zero (targets saturating the unit bound) have exact double roots on the
// circle; those factor through explicit rooting instead.
func complementary(t []float64, d, retries int) ([]float64, error) {
	if minDefect(t) >= cepstralFloor {
		return cepstralFactor(t, d)
	}

	gamma, err := spectralFactor(t, d, retries)
	if err != nil {
		return nil, err
	}

	alpha := normalization(t, gamma)

	b := make([]float64, 2*d+1)
	for j := range gamma {
		b[j] = alpha * gamma[j]
	}

	return b, nil
}

// defectAt evaluates the Laurent defect at angle theta.
func defectAt(t []float64, theta float64) float64 {
	v := t[0]
	for j := 1; j < len(t); j++ {
		v += 2 * t[j] * math.Cos(float64(j)*theta)
	}

	return v
}

func minDefect(t []float64) float64 {
	out := math.Inf(1)
	const n = 2048
	for m := range n {
		if v := defectAt(t, 2*math.Pi*float64(m)/n); v < out {
			out = v
		}
	}

	return out
}

// cepstralFactor computes the minimum-phase factor without root finding:
// the FFT of log T on the circle yields the cepstrum, whose causal half is
// the logarithm of the factor; exponentiating on the circle and transforming
// back reads off the coefficients. Since log T is real and even, the factor
// has real coefficients and is positive at w = 1.
func cepstralFactor(t []float64, d int) ([]float64, error) {
	n := cepstralSamples
	plan, err := algofft.NewPlan64(n)
	if err != nil {
		return nil, fmt.Errorf("angles: failed to create FFT plan: %w", err)
	}

	logT := make([]complex128, n)
	for j := range logT {
		v := defectAt(t, 2*math.Pi*float64(j)/float64(n))
		// Rounding can dip below the grid minimum checked by the caller.
		if v < cepstralFloor/4 {
			v = cepstralFloor / 4
		}
		logT[j] = complex(math.Log(v), 0)
	}

	spectrum := make([]complex128, n)
	if err := plan.Forward(spectrum, logT); err != nil {
		return nil, fmt.Errorf("angles: forward FFT failed: %w", err)
	}

	// Keep the causal half of the cepstrum, halving the shared terms at
	// frequency zero and Nyquist. The normalized inverse transform then
	// evaluates log B on the circle directly.
	causal := make([]complex128, n)
	causal[0] = spectrum[0] / 2
	for k := 1; k < n/2; k++ {
		causal[k] = spectrum[k]
	}
	causal[n/2] = spectrum[n/2] / 2

	logB := make([]complex128, n)
	if err := plan.Inverse(logB, causal); err != nil {
		return nil, fmt.Errorf("angles: inverse FFT failed: %w", err)
	}

	vals := make([]complex128, n)
	for j := range vals {
		vals[j] = cmplx.Exp(logB[j])
	}

	coeffs := make([]complex128, n)
	if err := plan.Forward(coeffs, vals); err != nil {
		return nil, fmt.Errorf("angles: forward FFT failed: %w", err)
	}

	b := make([]float64, 2*d+1)
	for k := range b {
		b[k] = real(coeffs[k]) / float64(n)
	}

	return b, nil
}

// spectralFactor roots the degree-4d polynomial w^{2d} * T(w) and keeps the
// canonical half of its root set: every root strictly inside the unit
// circle, plus one representative of each double root on the circle. The
// kept roots are assembled into a monic real polynomial of degree 2d.
//
// When classification does not account for exactly 2d roots the defect
// coefficients are perturbed deterministically and the rooting repeats;
// exhausting the retries returns core.ErrNumericalInstability.
func spectralFactor(t []float64, d, retries int) ([]float64, error) {
	s := make([]float64, 4*d+1)
	for m := range s {
		j := m - 2*d
		if j < 0 {
			j = -j
		}
		s[m] = t[j]
	}

	var lastErr error
	for attempt := 0; attempt <= retries; attempt++ {
		work := s
		if attempt > 0 {
			work = make([]float64, len(s))
			for i, c := range s {
				work[i] = c * (1 + 1e-10*float64(attempt)*float64(i+1))
			}
		}

		roots, err := polyroot.RootsAscending(work, retries)
		if err != nil {
			lastErr = fmt.Errorf("angles: rooting completion polynomial: %w", err)
			continue
		}

		selected, err := selectCanonical(roots, d)
		if err != nil {
			lastErr = err
			continue
		}

		gamma, err := realFactorization(selected, d)
		if err != nil {
			lastErr = err
			continue
		}

		return gamma, nil
	}

	return nil, fmt.Errorf("%w: %w", core.ErrNumericalInstability, lastErr)
}

// selectCanonical picks the 2d roots defining the minimum-phase factor.
func selectCanonical(roots []complex128, d int) ([]complex128, error) {
	var inside, circle []complex128
	for _, r := range roots {
		switch a := cmplx.Abs(r); {
		case math.Abs(a-1) <= circleTol:
			circle = append(circle, r)
		case a < 1:
			inside = append(inside, r)
		}
	}

	if len(circle)%2 != 0 {
		return nil, fmt.Errorf("angles: odd on-circle root count %d: %w",
			len(circle), core.ErrNumericalInstability)
	}

	// On-circle roots are doubles; sort by angle so each pair of near
	// duplicates is adjacent, then keep one representative per pair,
	// projected back onto the circle.
	sort.Slice(circle, func(i, j int) bool {
		return cmplx.Phase(circle[i]) < cmplx.Phase(circle[j])
	})

	selected := inside
	for i := 0; i+1 < len(circle); i += 2 {
		mid := (circle[i] + circle[i+1]) / 2
		selected = append(selected, cmplx.Rect(1, cmplx.Phase(mid)))
	}

	if len(selected) != 2*d {
		return nil, fmt.Errorf("angles: selected %d of %d expected roots: %w",
			len(selected), 2*d, core.ErrNumericalInstability)
	}

	return selected, nil
}

// realFactorization multiplies the selected roots into a monic real
// polynomial, pairing conjugates into quadratic factors.
func realFactorization(selected []complex128, d int) ([]float64, error) {
	var nReal, nUpper int
	gamma := []float64{1}

	for _, r := range selected {
		im := imag(r)
		switch {
		case math.Abs(im) <= realTol*(1+cmplx.Abs(r)):
			nReal++
			gamma = mulFactor(gamma, []float64{-real(r), 1})
		case im > 0:
			nUpper++
			a, b := real(r), im
			gamma = mulFactor(gamma, []float64{a*a + b*b, -2 * a, 1})
		}
	}

	if nReal+2*nUpper != 2*d {
		return nil, fmt.Errorf("angles: unpaired conjugate roots: %w", core.ErrNumericalInstability)
	}

	return gamma, nil
}

func mulFactor(a, b []float64) []float64 {
	out := make([]float64, len(a)+len(b)-1)
	for i, av := range a {
		for j, bv := range b {
			out[i+j] += av * bv
		}
	}

	return out
}

// normalization scales gamma so the factor's squared magnitude matches the
// defect on the circle. The ratio is read off at the angle where |gamma| is
// largest, away from its zeros, and the sign is fixed so the factor is
// nonnegative at w = 1.
func normalization(t, gamma []float64) float64 {
	best, bestMag := 0.0, -1.0
	for m := range alphaGrid {
		theta := 2 * math.Pi * float64(m) / alphaGrid
		mag := gammaMagSq(gamma, theta)
		if mag > bestMag {
			best, bestMag = theta, mag
		}
	}

	defect := defectAt(t, best)
	if defect < 0 {
		defect = 0
	}

	alpha := math.Sqrt(defect / bestMag)

	atOne := 0.0
	for _, c := range gamma {
		atOne += c
	}
	if atOne < 0 {
		alpha = -alpha
	}

	return alpha
}

func gammaMagSq(gamma []float64, theta float64) float64 {
	w := cmplx.Rect(1, theta)
	v := complex(0, 0)
	for i := len(gamma) - 1; i >= 0; i-- {
		v = v*w + complex(gamma[i], 0)
	}

	return real(v)*real(v) + imag(v)*imag(v)
}

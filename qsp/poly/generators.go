package poly

import (
	"fmt"
	"math"

	vecmath "github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-qsp/internal/chebfit"
	"github.com/cwbudde/algo-qsp/qsp/core"
)

// headroom keeps normalized approximations a hair below supremum norm 1 so
// the downstream completion step never sees a target that saturates the
// unit bound through rounding alone.
const headroom = 1 - 1e-6

// normalize scales cheb so its supremum norm is headroom, returning the
// bounded polynomial and the applied scale factor. The sup is taken with
// SupNorm rather than a fixed grid: sharp approximations put their extremal
// lobes between grid points, and an undershooting estimate here would leave
// the result infeasible for the solver.
func normalize(cheb []float64) (Polynomial, float64) {
	p := NewChebyshev(cheb...)

	maxAbs := p.SupNorm()
	if maxAbs == 0 {
		return p, 1
	}

	scale := headroom / maxAbs
	scaled := make([]float64, len(cheb))
	vecmath.ScaleBlock(scaled, cheb, scale)

	return NewChebyshev(scaled...), scale
}

// zeroParity forces exact zeros on the coefficients of the non-matching
// parity, discarding FFT rounding noise.
func zeroParity(cheb []float64, parity Parity) {
	for i := range cheb {
		if Parity(i%2) != parity {
			cheb[i] = 0
		}
	}
}

func wantArgs(name string, args []float64, n int) error {
	if len(args) != n {
		return fmt.Errorf("poly: %s expects %d args, got %d: %w", name, n, len(args), core.ErrInvalidParameter)
	}

	return nil
}

func intArg(name, field string, v float64) (int, error) {
	n := int(v)
	if float64(n) != v {
		return 0, fmt.Errorf("poly: %s %s must be an integer: %v: %w", name, field, v, core.ErrInvalidParameter)
	}

	return n, nil
}

// signSeries returns the raw odd Chebyshev truncation of erf(delta*x) up to
// the given odd degree. The closed form follows from integrating the
// Gaussian's Bessel-I expansion term by term:
//
//	erf(dx) = K * sum_m (-1)^m (I_m + I_{m+1})(d^2/2) / (2m+1) * T_{2m+1}(x)
//
// with K = (2d/sqrt(pi)) * exp(-d^2/2) folded into the scaled Bessel values.
func signSeries(degree int, delta float64) []float64 {
	terms := (degree - 1) / 2
	iv := scaledBesselI(terms+1, delta*delta/2)
	k := 2 * delta / math.Sqrt(math.Pi)

	cheb := make([]float64, degree+1)
	sign := 1.0
	for m := 0; m <= terms; m++ {
		cheb[2*m+1] = k * sign * (iv[m] + iv[m+1]) / float64(2*m+1)
		sign = -sign
	}

	return cheb
}

// Sign approximates sign(x) by an odd-degree erf(delta*x) truncation.
type Sign struct{}

// Help documents the Generate argument list.
func (Sign) Help() string {
	return "sign(degree, delta): odd Chebyshev truncation of erf(delta*x); degree odd >= 1, delta > 0"
}

// Generate returns the bounded approximation and its scale factor.
func (Sign) Generate(args ...float64) (Polynomial, float64, error) {
	if err := wantArgs("sign", args, 2); err != nil {
		return Polynomial{}, 0, err
	}

	degree, err := intArg("sign", "degree", args[0])
	if err != nil {
		return Polynomial{}, 0, err
	}

	delta := args[1]
	if degree < 1 || degree%2 == 0 {
		return Polynomial{}, 0, fmt.Errorf("poly: sign degree must be odd and >= 1: %d: %w", degree, core.ErrInvalidParameter)
	}
	if delta <= 0 {
		return Polynomial{}, 0, fmt.Errorf("poly: sign delta must be > 0: %v: %w", delta, core.ErrInvalidParameter)
	}

	p, scale := normalize(signSeries(degree, delta))

	return p, scale, nil
}

// thresholdSeries fits the even smoothed window on [-1/2, 1/2].
func thresholdSeries(degree int, delta float64) ([]float64, error) {
	cheb, err := chebfit.Coefficients(func(x float64) float64 {
		return (math.Erf(delta*(x+0.5)) - math.Erf(delta*(x-0.5))) / 2
	}, degree)
	if err != nil {
		return nil, err
	}

	zeroParity(cheb, ParityEven)

	return cheb, nil
}

// Threshold approximates the window that is 1 on [-1/2, 1/2] and 0 outside,
// via a difference of shifted erfs.
type Threshold struct{}

// Help documents the Generate argument list.
func (Threshold) Help() string {
	return "threshold(degree, delta): even approximation to the indicator of [-1/2, 1/2]; degree even >= 2, delta > 0"
}

// Generate returns the bounded approximation and its scale factor.
func (Threshold) Generate(args ...float64) (Polynomial, float64, error) {
	if err := wantArgs("threshold", args, 2); err != nil {
		return Polynomial{}, 0, err
	}

	degree, err := intArg("threshold", "degree", args[0])
	if err != nil {
		return Polynomial{}, 0, err
	}

	delta := args[1]
	if degree < 2 || degree%2 != 0 {
		return Polynomial{}, 0, fmt.Errorf("poly: threshold degree must be even and >= 2: %d: %w", degree, core.ErrInvalidParameter)
	}
	if delta <= 0 {
		return Polynomial{}, 0, fmt.Errorf("poly: threshold delta must be > 0: %v: %w", delta, core.ErrInvalidParameter)
	}

	cheb, err := thresholdSeries(degree, delta)
	if err != nil {
		return Polynomial{}, 0, err
	}

	p, scale := normalize(cheb)

	return p, scale, nil
}

// rectSeries fits the even band-stop window: 1 outside [-1/kappa, 1/kappa].
func rectSeries(degree int, delta, kappa float64) ([]float64, error) {
	edge := 1 / kappa
	cheb, err := chebfit.Coefficients(func(x float64) float64 {
		return 1 - (math.Erf(delta*(x+edge))-math.Erf(delta*(x-edge)))/2
	}, degree)
	if err != nil {
		return nil, err
	}

	zeroParity(cheb, ParityEven)

	return cheb, nil
}

// Rect approximates the complement of the band [-1/kappa, 1/kappa]: near 0
// inside the band, near 1 outside. Used to window reciprocal approximations
// away from the singularity.
type Rect struct{}

// Help documents the Generate argument list.
func (Rect) Help() string {
	return "rect(degree, delta, kappa): even approximation to 1 minus the indicator of [-1/kappa, 1/kappa]; degree even >= 2, delta > 0, kappa > 1"
}

// Generate returns the bounded approximation and its scale factor.
func (Rect) Generate(args ...float64) (Polynomial, float64, error) {
	if err := wantArgs("rect", args, 3); err != nil {
		return Polynomial{}, 0, err
	}

	degree, err := intArg("rect", "degree", args[0])
	if err != nil {
		return Polynomial{}, 0, err
	}

	delta, kappa := args[1], args[2]
	if degree < 2 || degree%2 != 0 {
		return Polynomial{}, 0, fmt.Errorf("poly: rect degree must be even and >= 2: %d: %w", degree, core.ErrInvalidParameter)
	}
	if delta <= 0 {
		return Polynomial{}, 0, fmt.Errorf("poly: rect delta must be > 0: %v: %w", delta, core.ErrInvalidParameter)
	}
	if kappa <= 1 {
		return Polynomial{}, 0, fmt.Errorf("poly: rect kappa must be > 1: %v: %w", kappa, core.ErrInvalidParameter)
	}

	cheb, err := rectSeries(degree, delta, kappa)
	if err != nil {
		return Polynomial{}, 0, err
	}

	p, scale := normalize(cheb)

	return p, scale, nil
}

// Gibbs approximates the thermal weight exp(-beta*(1-x^2)), which is 1 at
// the spectral edges and suppressed in the middle.
type Gibbs struct{}

// Help documents the Generate argument list.
func (Gibbs) Help() string {
	return "gibbs(degree, beta): even truncation of exp(-beta*(1-x^2)); degree even >= 2, beta > 0"
}

// Generate returns the bounded approximation and its scale factor.
func (Gibbs) Generate(args ...float64) (Polynomial, float64, error) {
	if err := wantArgs("gibbs", args, 2); err != nil {
		return Polynomial{}, 0, err
	}

	degree, err := intArg("gibbs", "degree", args[0])
	if err != nil {
		return Polynomial{}, 0, err
	}

	beta := args[1]
	if degree < 2 || degree%2 != 0 {
		return Polynomial{}, 0, fmt.Errorf("poly: gibbs degree must be even and >= 2: %d: %w", degree, core.ErrInvalidParameter)
	}
	if beta <= 0 {
		return Polynomial{}, 0, fmt.Errorf("poly: gibbs beta must be > 0: %v: %w", beta, core.ErrInvalidParameter)
	}

	cheb, err := chebfit.Coefficients(func(x float64) float64 {
		return math.Exp(-beta * (1 - x*x))
	}, degree)
	if err != nil {
		return Polynomial{}, 0, err
	}

	zeroParity(cheb, ParityEven)
	p, scale := normalize(cheb)

	return p, scale, nil
}

// chebTOutside evaluates T_k(y) for arguments of any magnitude, switching to
// the cosh form outside [-1, 1] where the trigonometric form is undefined.
func chebTOutside(k int, y float64) float64 {
	switch {
	case y >= 1:
		return math.Cosh(float64(k) * math.Acosh(y))
	case y <= -1:
		v := math.Cosh(float64(k) * math.Acosh(-y))
		if k%2 != 0 {
			return -v
		}
		return v
	default:
		return math.Cos(float64(k) * math.Acos(y))
	}
}

// EigenstateFilter builds the Lin-Tong minimax filter that is 1 at x = 0 and
// strongly suppressed for |x| >= delta.
type EigenstateFilter struct{}

// Help documents the Generate argument list.
func (EigenstateFilter) Help() string {
	return "efilter(degree, delta, cap): even Lin-Tong eigenstate filter suppressing |x| >= delta; degree even >= 2, 0 < delta < 1, 0 < cap <= 1"
}

// Generate returns the bounded approximation and its scale factor.
func (EigenstateFilter) Generate(args ...float64) (Polynomial, float64, error) {
	if err := wantArgs("efilter", args, 3); err != nil {
		return Polynomial{}, 0, err
	}

	degree, err := intArg("efilter", "degree", args[0])
	if err != nil {
		return Polynomial{}, 0, err
	}

	delta, capScale := args[1], args[2]
	if degree < 2 || degree%2 != 0 {
		return Polynomial{}, 0, fmt.Errorf("poly: efilter degree must be even and >= 2: %d: %w", degree, core.ErrInvalidParameter)
	}
	if delta <= 0 || delta >= 1 {
		return Polynomial{}, 0, fmt.Errorf("poly: efilter delta must be in (0,1): %v: %w", delta, core.ErrInvalidParameter)
	}
	if capScale <= 0 || capScale > 1 {
		return Polynomial{}, 0, fmt.Errorf("poly: efilter cap must be in (0,1]: %v: %w", capScale, core.ErrInvalidParameter)
	}

	k := degree / 2
	d2 := delta * delta
	norm := chebTOutside(k, -1-2*d2/(1-d2))

	cheb, err := chebfit.Coefficients(func(x float64) float64 {
		return chebTOutside(k, -1+2*(x*x-d2)/(1-d2)) / norm
	}, degree)
	if err != nil {
		return Polynomial{}, 0, err
	}

	zeroParity(cheb, ParityEven)
	p, scale := normalize(cheb)

	// The filter is already normalized to 1 at x=0; cap rescales the whole
	// response below the unit bound when the caller wants margin for
	// downstream linear combinations.
	if capScale < 1 {
		capped := make([]float64, len(p.Coeffs))
		vecmath.ScaleBlock(capped, p.Coeffs, capScale)
		p = NewChebyshev(capped...)
		scale *= capScale
	}

	return p, scale, nil
}

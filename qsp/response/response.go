// Package response reconstructs the realized function of a QSP phase
// sequence by multiplying out the layer unitaries. It is the forward map
// used both for solver self-verification and for handing (x, P, Q) samples
// to external display.
package response

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/cwbudde/algo-qsp/qsp/core"
)

// DefaultSignalEpsilon replaces the sin(theta) denominator of the Q readout
// when the true value is at machine-precision zero (x = +-1). Q is not
// defined at the endpoints; the substitution keeps the output finite and is
// configurable via WithSignalEpsilon.
const DefaultSignalEpsilon = 1e-9

// Option configures evaluation.
type Option func(*config)

type config struct {
	signalEps float64
}

func defaultConfig() config {
	return config{signalEps: DefaultSignalEpsilon}
}

// WithSignalEpsilon sets the denominator substituted for a vanishing
// sin(theta) in the Q readout.
func WithSignalEpsilon(eps float64) Option {
	return func(c *config) {
		if eps > 0 {
			c.signalEps = eps
		}
	}
}

// Point is one sample of the realized response.
type Point struct {
	X float64
	P float64
	Q float64
}

type mat2 [4]complex128 // row-major 2x2

func mul(a, b mat2) mat2 {
	return mat2{
		a[0]*b[0] + a[1]*b[2], a[0]*b[1] + a[1]*b[3],
		a[2]*b[0] + a[3]*b[2], a[2]*b[1] + a[3]*b[3],
	}
}

// signalMatrix is the fixed input-dependent layer: a rotation by 2*theta
// about the signal axis.
func signalMatrix(op core.SignalOperator, theta float64) mat2 {
	c, s := math.Cos(theta), math.Sin(theta)
	if op == core.OperatorWz {
		return mat2{complex(c, s), 0, 0, complex(c, -s)}
	}

	return mat2{complex(c, 0), complex(0, s), complex(0, s), complex(c, 0)}
}

// phaseMatrix is the tunable layer: a rotation by 2*phi about the axis
// complementary to the signal axis.
func phaseMatrix(op core.SignalOperator, phi float64) mat2 {
	c, s := math.Cos(phi), math.Sin(phi)
	if op == core.OperatorWz {
		return mat2{complex(c, 0), complex(0, s), complex(0, s), complex(c, 0)}
	}

	return mat2{complex(c, s), 0, 0, complex(c, -s)}
}

// Evaluate multiplies the d+1 layers left to right for each x in xs and
// reads the realized pair off the product: P(x) is the real part of the
// (0,0) entry; Q(x) is the magnitude of the (1,0) entry divided by
// sin(theta), signed by whichever component of the entry dominates. The
// (1,0) entry's phase depends on the spectral factor behind the sequence,
// so the magnitude is the convention-independent readout; for solver
// output, where the (0,0) entry stays real, it satisfies
// P(x)^2 + (1-x^2)*Q(x)^2 = 1.
//
// The function is pure: identical inputs always produce identical outputs.
func Evaluate(phases []float64, op core.SignalOperator, xs []float64, opts ...Option) (ps, qs []float64, err error) {
	if len(phases) == 0 {
		return nil, nil, fmt.Errorf("response: empty phase sequence: %w", core.ErrInvalidParameter)
	}
	if !op.Valid() {
		return nil, nil, fmt.Errorf("response: unknown signal operator %d: %w", int(op), core.ErrInvalidParameter)
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	ps = make([]float64, len(xs))
	qs = make([]float64, len(xs))

	for i, x := range xs {
		xc := core.Clamp(x, -1, 1)
		theta := math.Acos(xc)

		u := phaseMatrix(op, phases[0])
		w := signalMatrix(op, theta)
		for _, phi := range phases[1:] {
			u = mul(u, w)
			u = mul(u, phaseMatrix(op, phi))
		}

		ps[i] = real(u[0])

		sin := math.Sqrt(1 - xc*xc)
		if core.NearlyEqual(sin, 0, cfg.signalEps) {
			sin = cfg.signalEps
		}

		q := cmplx.Abs(u[2]) / sin
		re, im := real(u[2]), imag(u[2])
		if math.Abs(im) > math.Abs(re) {
			re = im
		}
		if re < 0 {
			q = -q
		}
		qs[i] = q
	}

	return ps, qs, nil
}

// Grid evaluates the response on npts equally spaced x values spanning
// [-1, 1] and returns (x, P, Q) triples for external display.
func Grid(phases []float64, op core.SignalOperator, npts int, opts ...Option) ([]Point, error) {
	if npts < 2 {
		return nil, fmt.Errorf("response: grid needs at least 2 points: %w", core.ErrInvalidParameter)
	}

	xs := core.LinearGrid(-1, 1, npts)
	ps, qs, err := Evaluate(phases, op, xs, opts...)
	if err != nil {
		return nil, err
	}

	out := make([]Point, npts)
	for i := range out {
		out[i] = Point{X: xs[i], P: ps[i], Q: qs[i]}
	}

	return out, nil
}

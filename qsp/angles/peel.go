package angles

import (
	"math"
	"math/cmplx"
)

// peel strips one signal layer at a time off the completed Laurent pair,
// reading one phase per layer from the extremal coefficients. The slices
// are indexed with the exponent-zero term at the center; peeling shrinks
// the active band by one exponent per step until only the constant terms
// remain, which fix the leading phase.
//
// Returned phases have length d+1, leading phase first.
func peel(f, g []complex128) []float64 {
	d := (len(f) - 1) / 2
	phases := make([]float64, d+1)

	// Local copies; the caller's slices stay intact.
	fc := append([]complex128(nil), f...)
	gc := append([]complex128(nil), g...)

	off := d // index of exponent 0

	at := func(s []complex128, j int) complex128 {
		if j < -d || j > d {
			return 0
		}
		return s[off+j]
	}

	for k := d; k >= 1; k-- {
		num := real(-1i * (at(gc, k)*cmplx.Conj(at(fc, k)) + at(fc, -k)*cmplx.Conj(at(gc, -k))))
		den := absSq(at(fc, k)) + absSq(at(gc, -k))
		phi := math.Atan2(num, den)
		phases[k] = phi

		c := complex(math.Cos(phi), 0)
		s := complex(math.Sin(phi), 0)

		nf := make([]complex128, len(fc))
		ng := make([]complex128, len(gc))
		for j := -(k - 1); j <= k-1; j++ {
			nf[off+j] = c*at(fc, j+1) - 1i*s*at(gc, j+1)
			ng[off+j] = -1i*s*at(fc, j-1) + c*at(gc, j-1)
		}

		fc, gc = nf, ng
	}

	phases[0] = math.Atan2(imag(at(gc, 0)), real(at(fc, 0)))

	return phases
}

func absSq(z complex128) float64 {
	return real(z)*real(z) + imag(z)*imag(z)
}

package poly

import "math"

// scaledBesselI returns e^(-z) * I_k(z) for k = 0..nmax, computed with
// Miller's downward recurrence and normalized through the identity
// I_0(z) + 2*sum_{k>=1} I_k(z) = e^z, which cancels the exponential exactly.
// Requires z >= 0.
func scaledBesselI(nmax int, z float64) []float64 {
	out := make([]float64, nmax+1)
	if z == 0 {
		out[0] = 1
		return out
	}

	// Start well above both the order and the turnover index k ~ z, where
	// I_k begins its super-exponential decay.
	start := nmax + 16 + int(2*math.Sqrt(z*float64(nmax+1)+40))
	if s := int(z) + 16; s > start {
		start = s
	}

	// Unnormalized I_{k+1} and I_k, seeded at k = start.
	ikp1 := 0.0
	ik := 1e-300
	sum := 0.0

	for k := start; k >= 0; k-- {
		if k <= nmax {
			out[k] = ik
		}

		if k > 0 {
			sum += 2 * ik
		} else {
			sum += ik
		}

		if k > 0 {
			ikm1 := ikp1 + 2*float64(k)/z*ik
			ikp1, ik = ik, ikm1
		}

		// Rescale before the growth toward k=0 overflows.
		if math.Abs(ik) > 1e250 {
			ikp1 *= 1e-250
			ik *= 1e-250
			sum *= 1e-250
			for i := range out {
				out[i] *= 1e-250
			}
		}
	}

	for i := range out {
		out[i] /= sum
	}

	return out
}

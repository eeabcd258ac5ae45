package core

import "math"

// LinearGrid returns n equally spaced samples covering [from, to] inclusive.
// n < 2 yields a single midpoint sample.
func LinearGrid(from, to float64, n int) []float64 {
	if n < 2 {
		return []float64{(from + to) / 2}
	}

	out := make([]float64, n)
	step := (to - from) / float64(n-1)
	for i := range out {
		out[i] = from + float64(i)*step
	}
	out[n-1] = to

	return out
}

// ChebyshevNodes returns n Chebyshev points of the second kind on [-1, 1]
// in ascending order, endpoints included. These cluster near +-1, where
// polynomial deviation peaks, and are the preferred sampling grid for
// sup-norm estimates.
func ChebyshevNodes(n int) []float64 {
	if n < 2 {
		return []float64{0}
	}

	out := make([]float64, n)
	for i := range out {
		out[i] = -math.Cos(math.Pi * float64(i) / float64(n-1))
	}

	return out
}

// ThetaGrid returns n equally spaced angles covering [0, pi] inclusive.
func ThetaGrid(n int) []float64 {
	return LinearGrid(0, math.Pi, n)
}

package chebfit

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-qsp/internal/testutil"
)

func TestNextPow2(t *testing.T) {
	cases := map[int]int{0: 1, 1: 1, 2: 2, 3: 4, 64: 64, 65: 128}
	for in, want := range cases {
		if got := NextPow2(in); got != want {
			t.Errorf("NextPow2(%d) = %d, want %d", in, got, want)
		}
	}
}

func TestCoefficientsNegativeDegree(t *testing.T) {
	if _, err := Coefficients(math.Cos, -1); err == nil {
		t.Fatal("expected error for negative degree")
	}
}

func TestCoefficientsRecoverChebyshevBasis(t *testing.T) {
	// 1 - 2x^2 = -T_2.
	coeffs, err := Coefficients(func(x float64) float64 { return 1 - 2*x*x }, 2)
	if err != nil {
		t.Fatalf("Coefficients: %v", err)
	}
	testutil.RequireSliceNearlyEqual(t, coeffs, []float64{0, 0, -1}, 1e-12)

	// T_3 = 4x^3 - 3x.
	coeffs, err = Coefficients(func(x float64) float64 { return 4*x*x*x - 3*x }, 3)
	if err != nil {
		t.Fatalf("Coefficients: %v", err)
	}
	testutil.RequireSliceNearlyEqual(t, coeffs, []float64{0, 0, 0, 1}, 1e-12)
}

func TestCoefficientsSmoothFunction(t *testing.T) {
	coeffs, err := Coefficients(math.Exp, 20)
	if err != nil {
		t.Fatalf("Coefficients: %v", err)
	}

	for _, x := range []float64{-1, -0.3, 0, 0.5, 1} {
		if got, want := Eval(coeffs, x), math.Exp(x); math.Abs(got-want) > 1e-12 {
			t.Errorf("Eval(exp, %v) = %v, want %v", x, got, want)
		}
	}
}

func TestEvalEmpty(t *testing.T) {
	if got := Eval(nil, 0.5); got != 0 {
		t.Fatalf("Eval(nil) = %v, want 0", got)
	}
}

func TestEvalMatchesDirectSum(t *testing.T) {
	coeffs := []float64{0.3, -0.2, 0.1, 0.05}
	for _, x := range []float64{-0.9, -0.1, 0, 0.4, 1} {
		direct := 0.0
		for k, c := range coeffs {
			direct += c * math.Cos(float64(k)*math.Acos(x))
		}
		if got := Eval(coeffs, x); math.Abs(got-direct) > 1e-13 {
			t.Errorf("Eval(%v) = %v, want %v", x, got, direct)
		}
	}
}

package response

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/cwbudde/algo-qsp/internal/testutil"
	"github.com/cwbudde/algo-qsp/qsp/core"
)

// chebyshevPhases realizes P(x) = 2x^2 - 1 in the Wz convention.
var chebyshevPhases = []float64{-math.Pi / 4, 0, math.Pi / 4}

func TestEvaluateIdentity(t *testing.T) {
	xs := core.LinearGrid(-1, 1, 9)
	ps, _, err := Evaluate([]float64{0}, core.OperatorWz, xs)
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}

	want := make([]float64, len(xs))
	for i := range want {
		want[i] = 1
	}
	testutil.RequireSliceNearlyEqual(t, ps, want, 1e-12)
}

func TestEvaluateChebyshev(t *testing.T) {
	xs := core.LinearGrid(-1, 1, 41)
	ps, qs, err := Evaluate(chebyshevPhases, core.OperatorWz, xs)
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	testutil.RequireFinite(t, ps)
	testutil.RequireFinite(t, qs)

	want := testutil.SampleFunc(func(x float64) float64 { return 2*x*x - 1 }, xs)
	if diff := cmp.Diff(want, ps, cmpopts.EquateApprox(0, 1e-12)); diff != "" {
		t.Fatalf("realized polynomial mismatch (-want +got):\n%s", diff)
	}

	// The complementary polynomial is Q(x) = 2x; together they satisfy
	// P^2 + (1-x^2) Q^2 = 1. Endpoints are excluded: sin(theta) vanishes
	// there and the readout substitutes the configured epsilon.
	for i, x := range xs[1 : len(xs)-1] {
		if math.Abs(qs[i+1]-2*x) > 1e-10 {
			t.Fatalf("Q(%v) = %v, want %v", x, qs[i+1], 2*x)
		}
	}
}

func TestEvaluateConventionsAgreeOnP(t *testing.T) {
	xs := core.LinearGrid(-1, 1, 21)

	pz, _, err := Evaluate(chebyshevPhases, core.OperatorWz, xs)
	if err != nil {
		t.Fatal(err)
	}
	px, _, err := Evaluate(chebyshevPhases, core.OperatorWx, xs)
	if err != nil {
		t.Fatal(err)
	}

	if diff := cmp.Diff(pz, px, cmpopts.EquateApprox(0, 1e-12)); diff != "" {
		t.Fatalf("conventions disagree on P (-Wz +Wx):\n%s", diff)
	}
}

func TestEvaluateConventionsAgreeOnQMagnitude(t *testing.T) {
	// The sign of the (1,0) entry is gauge-dependent, so only |Q| carries
	// over between conventions.
	xs := core.LinearGrid(-0.9, 0.9, 19)

	_, qz, err := Evaluate(chebyshevPhases, core.OperatorWz, xs)
	if err != nil {
		t.Fatal(err)
	}
	_, qx, err := Evaluate(chebyshevPhases, core.OperatorWx, xs)
	if err != nil {
		t.Fatal(err)
	}

	for i := range qz {
		if math.Abs(math.Abs(qz[i])-math.Abs(qx[i])) > 1e-12 {
			t.Fatalf("|Q| mismatch at x=%v: Wz %v vs Wx %v", xs[i], qz[i], qx[i])
		}
	}
}

func TestEvaluateUnitarity(t *testing.T) {
	xs := core.LinearGrid(-0.95, 0.95, 31)
	for _, op := range []core.SignalOperator{core.OperatorWz, core.OperatorWx} {
		ps, qs, err := Evaluate(chebyshevPhases, op, xs)
		if err != nil {
			t.Fatal(err)
		}

		for i, x := range xs {
			sum := ps[i]*ps[i] + (1-x*x)*qs[i]*qs[i]
			if math.Abs(sum-1) > 1e-10 {
				t.Fatalf("%v: unitarity defect at x=%v: %v", op, x, sum-1)
			}
		}
	}
}

func TestEvaluateSignalEpsilon(t *testing.T) {
	_, qsDefault, err := Evaluate(chebyshevPhases, core.OperatorWz, []float64{1})
	if err != nil {
		t.Fatal(err)
	}
	_, qsWide, err := Evaluate(chebyshevPhases, core.OperatorWz, []float64{1}, WithSignalEpsilon(1e-3))
	if err != nil {
		t.Fatal(err)
	}

	testutil.RequireFinite(t, qsDefault)
	testutil.RequireFinite(t, qsWide)
}

func TestEvaluateRejectsBadInput(t *testing.T) {
	if _, _, err := Evaluate(nil, core.OperatorWz, []float64{0}); !errors.Is(err, core.ErrInvalidParameter) {
		t.Fatalf("empty phases: expected ErrInvalidParameter, got %v", err)
	}
	if _, _, err := Evaluate([]float64{0}, core.SignalOperator(9), []float64{0}); !errors.Is(err, core.ErrInvalidParameter) {
		t.Fatalf("bad operator: expected ErrInvalidParameter, got %v", err)
	}
}

func TestGrid(t *testing.T) {
	points, err := Grid(chebyshevPhases, core.OperatorWz, 11)
	if err != nil {
		t.Fatalf("Grid: %v", err)
	}

	if len(points) != 11 {
		t.Fatalf("got %d points, want 11", len(points))
	}
	if points[0].X != -1 || points[10].X != 1 {
		t.Fatalf("endpoints %v and %v, want -1 and 1", points[0].X, points[10].X)
	}
	if math.Abs(points[5].P-(-1)) > 1e-12 {
		t.Fatalf("P(0) = %v, want -1", points[5].P)
	}

	if _, err := Grid(chebyshevPhases, core.OperatorWz, 1); !errors.Is(err, core.ErrInvalidParameter) {
		t.Fatalf("expected ErrInvalidParameter for tiny grid, got %v", err)
	}
}

func TestErrorStats(t *testing.T) {
	got := []float64{1, 2, 3, 4}
	want := []float64{1, 2.5, 3, 3}

	s, err := ErrorStats(got, want)
	if err != nil {
		t.Fatalf("ErrorStats: %v", err)
	}

	if s.Max != 1 {
		t.Errorf("Max = %v, want 1", s.Max)
	}
	if math.Abs(s.Mean-0.375) > 1e-15 {
		t.Errorf("Mean = %v, want 0.375", s.Mean)
	}
	if s.P95 < s.Mean || s.P95 > s.Max {
		t.Errorf("P95 = %v outside [%v, %v]", s.P95, s.Mean, s.Max)
	}

	if _, err := ErrorStats(got, want[:2]); !errors.Is(err, core.ErrInvalidParameter) {
		t.Fatalf("expected ErrInvalidParameter for length mismatch, got %v", err)
	}
}

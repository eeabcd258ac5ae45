package phases

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-qsp/internal/testutil"
	"github.com/cwbudde/algo-qsp/qsp/core"
)

func TestNames(t *testing.T) {
	want := []string{"erf_step", "fpsearch"}
	got := Names()

	if len(got) != len(want) {
		t.Fatalf("Names = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Names = %v, want %v", got, want)
		}
	}

	for _, name := range got {
		gen, ok := Lookup(name)
		if !ok {
			t.Fatalf("Lookup(%q) failed", name)
		}
		if gen.Help() == "" {
			t.Errorf("%q: empty help text", name)
		}
	}
}

func TestGenerateUnknown(t *testing.T) {
	if _, err := Generate("nope", 1); !errors.Is(err, core.ErrInvalidParameter) {
		t.Fatalf("expected ErrInvalidParameter, got %v", err)
	}
}

func TestFixedPointSearch(t *testing.T) {
	got, err := Generate("fpsearch", 7, 0.5)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	if len(got) != 7 {
		t.Fatalf("got %d phases, want 7", len(got))
	}
	testutil.RequireFinite(t, got)

	again, err := Generate("fpsearch", 7, 0.5)
	if err != nil {
		t.Fatal(err)
	}
	testutil.RequireSliceNearlyEqual(t, got, again, 0)
}

func TestFixedPointSearchContractionFactor(t *testing.T) {
	// T_{1/L}(1/delta) through the cosh form: for L=1 the contraction
	// factor collapses to delta itself, so the first phase comes from
	// sqrt(1 - delta^2) directly.
	delta := 0.25
	got, err := Generate("fpsearch", 1, delta)
	if err != nil {
		t.Fatal(err)
	}

	want := 2 * (math.Pi/2 - math.Atan(math.Tan(2*math.Pi)*math.Sqrt(1-delta*delta)))
	if math.Abs(got[0]-want) > 1e-12 {
		t.Fatalf("phase = %v, want %v", got[0], want)
	}
}

func TestFixedPointSearchRejectsBadArgs(t *testing.T) {
	cases := [][]float64{
		{7},         // missing delta
		{0, 0.5},    // zero length
		{2.5, 0.5},  // fractional length
		{7, 0},      // delta at lower bound
		{7, 1},      // delta at upper bound
		{7, 0.5, 1}, // extra arg
	}

	for _, args := range cases {
		if _, err := Generate("fpsearch", args...); !errors.Is(err, core.ErrInvalidParameter) {
			t.Errorf("args %v: expected ErrInvalidParameter, got %v", args, err)
		}
	}
}

func TestErfStep(t *testing.T) {
	got, err := Generate("erf_step", 5, 3)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	if len(got) != 6 {
		t.Fatalf("got %d phases, want 6", len(got))
	}
	testutil.RequireFinite(t, got)
}

func TestErfStepDefaultSteepness(t *testing.T) {
	explicit, err := Generate("erf_step", 5, erfStepDelta)
	if err != nil {
		t.Fatal(err)
	}
	defaulted, err := Generate("erf_step", 5)
	if err != nil {
		t.Fatal(err)
	}

	testutil.RequireSliceNearlyEqual(t, explicit, defaulted, 0)
}

func TestErfStepRejectsBadArgs(t *testing.T) {
	cases := [][]float64{
		{},           // missing degree
		{4},          // even degree
		{-3},         // negative degree
		{5.5},        // fractional degree
		{5, 10, 1},   // extra arg
	}

	for _, args := range cases {
		if _, err := Generate("erf_step", args...); !errors.Is(err, core.ErrInvalidParameter) {
			t.Errorf("args %v: expected ErrInvalidParameter, got %v", args, err)
		}
	}
}

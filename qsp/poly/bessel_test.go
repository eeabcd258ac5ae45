package poly

import (
	"math"
	"testing"
)

func TestScaledBesselIKnownValues(t *testing.T) {
	// e^{-1} I_0(1) and e^{-1} I_1(1).
	got := scaledBesselI(1, 1)
	want := []float64{0.4657596075936404, 0.2079104153497085}

	for k := range want {
		if math.Abs(got[k]-want[k]) > 1e-10 {
			t.Errorf("order %d: got %v, want %v", k, got[k], want[k])
		}
	}
}

func TestScaledBesselIZeroArgument(t *testing.T) {
	got := scaledBesselI(3, 0)
	if got[0] != 1 {
		t.Fatalf("order 0 at z=0: got %v, want 1", got[0])
	}
	for k := 1; k < len(got); k++ {
		if got[k] != 0 {
			t.Errorf("order %d at z=0: got %v, want 0", k, got[k])
		}
	}
}

func TestScaledBesselIProperties(t *testing.T) {
	got := scaledBesselI(20, 50)

	// Positive, decreasing in order, and bounded by the normalization
	// identity I_0 + 2*sum I_k = e^z.
	sum := got[0]
	for k := 1; k < len(got); k++ {
		if got[k] <= 0 {
			t.Fatalf("order %d: got %v, want > 0", k, got[k])
		}
		if got[k] > got[k-1] {
			t.Fatalf("order %d: %v exceeds order %d: %v", k, got[k], k-1, got[k-1])
		}
		sum += 2 * got[k]
	}
	if sum > 1+1e-12 {
		t.Fatalf("partial normalization sum %v exceeds 1", sum)
	}
}

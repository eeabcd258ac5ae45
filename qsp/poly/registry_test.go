package poly

import (
	"errors"
	"testing"

	"github.com/cwbudde/algo-qsp/qsp/core"
)

func TestNames(t *testing.T) {
	want := []string{"efilter", "gibbs", "invert", "invert_rect", "rect", "sign", "threshold"}
	got := Names()

	if len(got) != len(want) {
		t.Fatalf("Names = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Names = %v, want %v", got, want)
		}
	}
}

func TestLookup(t *testing.T) {
	for _, name := range Names() {
		g, ok := Lookup(name)
		if !ok || g == nil {
			t.Fatalf("Lookup(%q) failed", name)
		}
		if g.Help() == "" {
			t.Errorf("Lookup(%q): empty help text", name)
		}
	}

	if _, ok := Lookup("nope"); ok {
		t.Error("Lookup of unknown name succeeded")
	}
}

func TestGenerateDispatch(t *testing.T) {
	direct, _, err := Sign{}.Generate(11, 5)
	if err != nil {
		t.Fatal(err)
	}

	dispatched, _, err := Generate("sign", 11, 5)
	if err != nil {
		t.Fatal(err)
	}

	if len(direct.Coeffs) != len(dispatched.Coeffs) {
		t.Fatalf("coefficient count mismatch: %d vs %d", len(direct.Coeffs), len(dispatched.Coeffs))
	}
	for i := range direct.Coeffs {
		if direct.Coeffs[i] != dispatched.Coeffs[i] {
			t.Fatalf("coefficient %d differs: %v vs %v", i, direct.Coeffs[i], dispatched.Coeffs[i])
		}
	}
}

func TestGenerateUnknown(t *testing.T) {
	_, _, err := Generate("nope")
	if !errors.Is(err, core.ErrInvalidParameter) {
		t.Fatalf("expected ErrInvalidParameter, got %v", err)
	}
}

package poly

import (
	"fmt"
	"sort"

	"github.com/cwbudde/algo-qsp/qsp/core"
)

// Generator builds a bounded, parity-definite polynomial approximation from
// positional shape arguments. Help documents the expected argument list.
type Generator interface {
	Generate(args ...float64) (Polynomial, float64, error)
	Help() string
}

// generators is the explicit name-to-generator table. Entries are declared
// here rather than registered from init functions so the full catalogue is
// visible in one place.
var generators = map[string]Generator{
	"sign":        Sign{},
	"threshold":   Threshold{},
	"rect":        Rect{},
	"invert":      OneOverX{},
	"invert_rect": OneOverXRect{},
	"gibbs":       Gibbs{},
	"efilter":     EigenstateFilter{},
}

// Lookup returns the named generator.
func Lookup(name string) (Generator, bool) {
	g, ok := generators[name]
	return g, ok
}

// Names returns the sorted list of known generator names.
func Names() []string {
	out := make([]string, 0, len(generators))
	for name := range generators {
		out = append(out, name)
	}
	sort.Strings(out)

	return out
}

// Generate dispatches to the named generator.
func Generate(name string, args ...float64) (Polynomial, float64, error) {
	g, ok := generators[name]
	if !ok {
		return Polynomial{}, 0, fmt.Errorf("poly: unknown generator %q: %w", name, core.ErrInvalidParameter)
	}

	return g.Generate(args...)
}

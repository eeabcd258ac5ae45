// Package phases generates QSP phase sequences directly from closed-form
// constructions, bypassing the polynomial completion pipeline.
package phases

import (
	"fmt"
	"math"
	"sort"

	"github.com/cwbudde/algo-qsp/qsp/core"
)

// Generator produces a phase sequence from numeric arguments.
type Generator interface {
	// Generate returns the phase sequence for the given arguments.
	Generate(args ...float64) ([]float64, error)
	// Help describes the generator and its argument list.
	Help() string
}

var generators = map[string]Generator{
	"fpsearch": FixedPointSearch{},
	"erf_step": ErfStep{},
}

// Lookup returns the named generator.
func Lookup(name string) (Generator, bool) {
	gen, ok := generators[name]
	return gen, ok
}

// Names lists the registered generator names in sorted order.
func Names() []string {
	out := make([]string, 0, len(generators))
	for name := range generators {
		out = append(out, name)
	}
	sort.Strings(out)

	return out
}

// Generate dispatches to the named generator.
func Generate(name string, args ...float64) ([]float64, error) {
	gen, ok := generators[name]
	if !ok {
		return nil, fmt.Errorf("phases: unknown generator %q: %w", name, core.ErrInvalidParameter)
	}

	return gen.Generate(args...)
}

// FixedPointSearch builds the phase sequence of the fixed-point amplitude
// amplification search (Yoder-Low-Chuang). L layers drive any initial
// overlap above delta to a success amplitude of at least 1-delta^2.
type FixedPointSearch struct{}

// Help implements Generator.
func (FixedPointSearch) Help() string {
	return "fpsearch(length, delta): fixed-point search phases; length is the layer count, delta the residual amplitude bound in (0, 1)"
}

// Generate implements Generator.
func (FixedPointSearch) Generate(args ...float64) ([]float64, error) {
	if len(args) != 2 {
		return nil, fmt.Errorf("phases: fpsearch takes (length, delta), got %d arguments: %w",
			len(args), core.ErrInvalidParameter)
	}

	l := int(args[0])
	delta := args[1]
	if float64(l) != args[0] || l < 1 {
		return nil, fmt.Errorf("phases: length must be a positive integer, got %g: %w",
			args[0], core.ErrInvalidParameter)
	}
	if delta <= 0 || delta >= 1 {
		return nil, fmt.Errorf("phases: delta must lie in (0, 1), got %g: %w",
			delta, core.ErrInvalidParameter)
	}

	// gamma^{-1} = T_{1/L}(1/delta), evaluated through the cosh form.
	invGamma := math.Cosh(math.Acosh(1/delta) / float64(l))
	gammaSq := 1 / (invGamma * invGamma)

	out := make([]float64, l)
	for j := 1; j <= l; j++ {
		out[j-1] = 2 * acot(math.Tan(2*math.Pi*float64(j)/float64(l))*math.Sqrt(1-gammaSq))
	}

	return out, nil
}

func acot(x float64) float64 {
	return math.Pi/2 - math.Atan(x)
}

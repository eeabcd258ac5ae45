package phases

import (
	"fmt"

	"github.com/cwbudde/algo-qsp/qsp/angles"
	"github.com/cwbudde/algo-qsp/qsp/core"
	"github.com/cwbudde/algo-qsp/qsp/poly"
)

// erfStepDelta is the default steepness of the error-function step when the
// caller does not supply one.
const erfStepDelta = 10.0

// ErfStep produces the phases realizing a smoothed step response: an odd
// polynomial approximation to erf(delta*x), pushed through the phase
// solver. It is a convenience composition of the sign approximator and the
// completion pipeline.
type ErfStep struct{}

// Help implements Generator.
func (ErfStep) Help() string {
	return "erf_step(degree[, delta]): phases for a smoothed step via an odd erf approximation; degree must be odd, delta defaults to 10"
}

// Generate implements Generator.
func (ErfStep) Generate(args ...float64) ([]float64, error) {
	if len(args) < 1 || len(args) > 2 {
		return nil, fmt.Errorf("phases: erf_step takes (degree[, delta]), got %d arguments: %w",
			len(args), core.ErrInvalidParameter)
	}

	degree := int(args[0])
	if float64(degree) != args[0] || degree < 1 || degree%2 == 0 {
		return nil, fmt.Errorf("phases: degree must be a positive odd integer, got %g: %w",
			args[0], core.ErrInvalidParameter)
	}

	delta := erfStepDelta
	if len(args) == 2 {
		delta = args[1]
	}

	target, _, err := poly.Sign{}.Generate(args[0], delta)
	if err != nil {
		return nil, err
	}

	res, err := angles.Solve(target)
	if err != nil {
		return nil, err
	}

	return res.Phases, nil
}

package core

import "errors"

// Error taxonomy shared by all qsp packages. Callers test with errors.Is;
// packages wrap these with fmt.Errorf("...: %w", ...) to add context.
var (
	// ErrInvalidParameter is returned for out-of-domain shape arguments
	// (kappa <= 1, degree < 1, nonpositive tolerances, wrong arity).
	ErrInvalidParameter = errors.New("qsp: invalid parameter")

	// ErrInfeasiblePolynomial is returned for targets no phase sequence can
	// realize: mixed parity or supremum norm above 1.
	ErrInfeasiblePolynomial = errors.New("qsp: infeasible polynomial")

	// ErrToleranceNotMet is returned when the requested accuracy is
	// unreachable within the iteration or degree budget. The best result
	// found is still returned alongside the error.
	ErrToleranceNotMet = errors.New("qsp: tolerance not met")

	// ErrNumericalInstability is returned when root finding stays degenerate
	// after the bounded perturb-and-retry budget.
	ErrNumericalInstability = errors.New("qsp: numerical instability")
)

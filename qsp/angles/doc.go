// Package angles converts a bounded, parity-definite real polynomial into
// the QSP phase sequence that realizes it.
//
// The pipeline has three stages. Completion finds a complementary
// polynomial whose squared magnitude fills the unitarity budget 1-P^2 on
// the unit circle: a cepstral factorization when the budget stays away
// from zero, explicit rooting of the associated Laurent polynomial when it
// touches zero. Layer peeling then strips
// one signal layer at a time off the completed pair, reading one phase per
// layer. An optional damped Gauss-Newton refinement polishes the peeled
// phases against the target on a Chebyshev grid when roundoff from the
// rooting stage leaves a visible residual.
package angles

package core

// SignalOperator selects the Pauli axis that carries the fixed,
// input-dependent rotation in each QSP layer. The tunable phase rotations
// act about the complementary axis.
type SignalOperator int

const (
	// OperatorWx encodes the signal as X rotations; phases are Z rotations.
	OperatorWx SignalOperator = iota
	// OperatorWz encodes the signal as Z rotations; phases are X rotations.
	OperatorWz
)

// Valid reports whether op is a known signal operator.
func (op SignalOperator) Valid() bool {
	return op == OperatorWx || op == OperatorWz
}

// String returns the conventional short name (Wx or Wz).
func (op SignalOperator) String() string {
	switch op {
	case OperatorWx:
		return "Wx"
	case OperatorWz:
		return "Wz"
	default:
		return "unknown"
	}
}

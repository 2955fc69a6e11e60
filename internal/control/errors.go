package control

import "errors"

// Domain errors for controller construction and stepping.
var (
	// ErrInvalidConfig indicates a configuration defect: a non-positive
	// sample period or inverted output bounds. Rejected before any Step.
	ErrInvalidConfig = errors.New("control: invalid configuration")

	// ErrNonFiniteInput indicates a NaN or Inf setpoint/measurement. A
	// non-finite control signal is unsafe to apply to any actuator, so the
	// step fails instead of propagating it.
	ErrNonFiniteInput = errors.New("control: non-finite input")
)

package dynamo

import (
	"errors"
	"fmt"
)

// Domain errors for integration, calibration and output.
var (
	// ErrInvalidState indicates a state with NaN or Inf coordinates.
	ErrInvalidState = errors.New("dynamo: invalid state (NaN or Inf detected)")

	// ErrInvalidSteps indicates a non-positive calibration step count.
	ErrInvalidSteps = errors.New("dynamo: step count must be at least 1")

	// ErrDegenerateRange indicates an axis whose calibrated width is zero.
	ErrDegenerateRange = errors.New("dynamo: degenerate calibration range")

	// ErrInvalidParams indicates coefficients or a step size outside valid range.
	ErrInvalidParams = errors.New("dynamo: parameter out of valid bounds")

	// ErrDeviceConfig indicates an output channel could not be configured.
	ErrDeviceConfig = errors.New("dynamo: output device configuration failed")
)

// SimulationError wraps an error with integration context.
type SimulationError struct {
	Step    int
	State   State
	Wrapped error
}

func (e *SimulationError) Error() string {
	return fmt.Sprintf("step %d at %s: %v", e.Step, e.State, e.Wrapped)
}

func (e *SimulationError) Unwrap() error {
	return e.Wrapped
}

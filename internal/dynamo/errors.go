package dynamo

import (
	"errors"
	"fmt"
)

// Domain errors for body sets and stepping.
var (
	// ErrNoBodies indicates an empty body set.
	ErrNoBodies = errors.New("dynamo: body set is empty")

	// ErrInvalidMass indicates a mass that is not a positive finite number.
	ErrInvalidMass = errors.New("dynamo: mass must be positive and finite")

	// ErrNonFinite indicates a position or velocity component that is NaN or Inf.
	ErrNonFinite = errors.New("dynamo: non-finite position or velocity")

	// ErrHalted indicates a simulation that already hit a fatal step.
	ErrHalted = errors.New("dynamo: simulation halted after fatal step")
)

// SimulationError wraps an error with the step that produced it.
type SimulationError struct {
	Step    int
	Time    float64
	Method  string
	Wrapped error
}

func (e *SimulationError) Error() string {
	return fmt.Sprintf("step %d (t=%.0fs, %s): %v", e.Step, e.Time, e.Method, e.Wrapped)
}

func (e *SimulationError) Unwrap() error {
	return e.Wrapped
}

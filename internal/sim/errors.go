package sim

import "errors"

// Domain errors for simulation setup.
var (
	// ErrInvalidMass indicates a body with zero, negative or non-finite mass.
	ErrInvalidMass = errors.New("sim: body mass must be positive")

	// ErrNilBody indicates AddBody was called with nil.
	ErrNilBody = errors.New("sim: nil body")

	// ErrInvalidConfig indicates a configuration value outside its valid range.
	ErrInvalidConfig = errors.New("sim: invalid configuration")

	// ErrRunning indicates a setup call after the first Step.
	ErrRunning = errors.New("sim: simulation already running")

	// ErrOrbitsInitialized indicates InitializeOrbits was called twice.
	ErrOrbitsInitialized = errors.New("sim: orbits already initialized")
)

// BodyError wraps a setup error with the offending body's name.
type BodyError struct {
	Body    string
	Wrapped error
}

func (e *BodyError) Error() string {
	return "body " + e.Body + ": " + e.Wrapped.Error()
}

func (e *BodyError) Unwrap() error {
	return e.Wrapped
}

package sim

import "errors"

// Sentinel errors for plant construction and lifecycle.
var (
	// ErrInvalidVolume indicates a non-positive vessel volume.
	ErrInvalidVolume = errors.New("sim: volume must be positive")

	// ErrInvalidRating indicates a non-positive element power rating.
	ErrInvalidRating = errors.New("sim: element rating must be positive")

	// ErrInvalidConductivity indicates a non-positive exchanger conductivity.
	ErrInvalidConductivity = errors.New("sim: conductivity must be positive")

	// ErrInvalidStep indicates a non-positive integration step.
	ErrInvalidStep = errors.New("sim: integration step must be positive")

	// ErrAlreadyStarted indicates Start was called twice.
	ErrAlreadyStarted = errors.New("sim: plant already started")
)

package vessel

import "errors"

// Sentinel errors for vessel construction.
var (
	// ErrInvalidVolume indicates a non-positive vessel volume.
	ErrInvalidVolume = errors.New("vessel: volume must be positive")

	// ErrInvalidRating indicates a non-positive element power rating.
	ErrInvalidRating = errors.New("vessel: element rating must be positive")

	// ErrInvalidConductivity indicates a non-positive heat-exchanger conductivity.
	ErrInvalidConductivity = errors.New("vessel: conductivity must be positive")

	// ErrInvalidSourceDelta indicates a non-positive source temperature range.
	ErrInvalidSourceDelta = errors.New("vessel: max source delta must be positive")

	// ErrNilSensor indicates a vessel was constructed without a temperature sensor.
	ErrNilSensor = errors.New("vessel: temperature sensor is required")

	// ErrNilActuator indicates a vessel was constructed without an actuator.
	ErrNilActuator = errors.New("vessel: actuator is required")
)

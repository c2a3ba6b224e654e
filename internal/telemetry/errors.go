package telemetry

import "errors"

// Sentinel errors for recorder construction and lifecycle.
var (
	// ErrNilSource indicates a recorder was constructed without a snapshot source.
	ErrNilSource = errors.New("telemetry: snapshot source is required")

	// ErrNilWriter indicates a recorder was constructed without a metric writer.
	ErrNilWriter = errors.New("telemetry: metric writer is required")

	// ErrInvalidInterval indicates a non-positive recording interval.
	ErrInvalidInterval = errors.New("telemetry: interval must be positive")

	// ErrAlreadyStarted indicates Start was called twice.
	ErrAlreadyStarted = errors.New("telemetry: recorder already started")
)

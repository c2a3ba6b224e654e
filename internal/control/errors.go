package control

import "errors"

// Sentinel errors for regulator construction and tuning updates.
var (
	// ErrInvalidLimits indicates the configured minimum output exceeds the maximum.
	ErrInvalidLimits = errors.New("control: minimum output exceeds maximum output")

	// ErrInvalidGain indicates a gain value that is NaN or infinite.
	ErrInvalidGain = errors.New("control: gain must be a finite number")
)

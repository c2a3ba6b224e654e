package hal

import "errors"

var (
	// ErrNotSupported indicates GPIO hardware access is unavailable on this
	// platform. Returned by the non-Linux relay stub.
	ErrNotSupported = errors.New("hal: gpio not supported on this platform (requires linux)")

	// ErrNoReading indicates a sensor has never produced a good sample.
	ErrNoReading = errors.New("hal: no reading available")
)

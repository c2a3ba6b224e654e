package hal

// TemperatureSensor provides filtered temperature readings in °F.
//
// Measure and Temperature are split so the control loop can sample once at
// the top of a tick and read the value any number of times afterwards
// without touching hardware again.
type TemperatureSensor interface {
	// Measure samples the underlying hardware and folds the result into
	// the filtered value. On failure the previous value is kept; the
	// caller decides whether to log or escalate.
	Measure() error

	// Temperature returns the last good filtered reading. Pure read,
	// never touches hardware.
	Temperature() float64
}

// Actuator switches a binary output such as a solid-state relay.
// Implementations must be safe to switch off repeatedly.
type Actuator interface {
	SetOn() error
	SetOff() error
}

// ReadFunc samples a raw temperature source once, returning °F.
type ReadFunc func() (float64, error)

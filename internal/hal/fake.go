package hal

import "sync"

// FakeSensor is a test double whose temperature is set directly.
type FakeSensor struct {
	mu         sync.Mutex
	value      float64
	measureErr error
	measures   int
}

// NewFakeSensor creates a sensor reporting the given temperature.
func NewFakeSensor(initial float64) *FakeSensor {
	return &FakeSensor{value: initial}
}

// SetValue changes the reported temperature.
func (f *FakeSensor) SetValue(v float64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.value = v
}

// SetError makes subsequent Measure calls fail with err (nil clears).
func (f *FakeSensor) SetError(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.measureErr = err
}

// Measure counts the call and returns the scripted error, if any.
func (f *FakeSensor) Measure() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.measures++
	return f.measureErr
}

// Temperature returns the scripted value.
func (f *FakeSensor) Temperature() float64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.value
}

// Measures returns how many times Measure was called.
func (f *FakeSensor) Measures() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.measures
}

// FakeActuator records every switch request so tests can assert both the
// final state and the sequencing.
type FakeActuator struct {
	mu      sync.Mutex
	on      bool
	history []bool // Every requested state, in order
	setErr  error
}

// NewFakeActuator creates an actuator in the off state.
func NewFakeActuator() *FakeActuator {
	return &FakeActuator{}
}

// SetError makes subsequent SetOn/SetOff calls fail with err (nil clears).
func (f *FakeActuator) SetError(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.setErr = err
}

// SetOn records and applies an on request.
func (f *FakeActuator) SetOn() error { return f.set(true) }

// SetOff records and applies an off request.
func (f *FakeActuator) SetOff() error { return f.set(false) }

func (f *FakeActuator) set(on bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.setErr != nil {
		return f.setErr
	}
	f.on = on
	f.history = append(f.history, on)
	return nil
}

// On returns the current state.
func (f *FakeActuator) On() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.on
}

// History returns a copy of every requested state in order.
func (f *FakeActuator) History() []bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]bool, len(f.history))
	copy(out, f.history)
	return out
}

// Switches returns the total number of switch requests.
func (f *FakeActuator) Switches() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.history)
}

// Reset clears state and history.
func (f *FakeActuator) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.on = false
	f.history = nil
	f.setErr = nil
}

package vessel

import (
	"time"

	"github.com/ferment8/brauhaus-core/internal/control"
	"github.com/ferment8/brauhaus-core/internal/hal"
	"github.com/ferment8/brauhaus-core/internal/thermal"
)

// HeatedConfig holds the construction parameters for a Heated vessel.
type HeatedConfig struct {
	Volume           float64       // US gallons
	Rating           float64       // Element power in watts
	GainProportional float64       // Regulator Kp
	GainIntegral     float64       // Regulator Ki
	MinSwitch        time.Duration // Relay-safety threshold (half mains cycle)
	Sensor           hal.TemperatureSensor
	Actuator         hal.Actuator
}

// Heated is a vessel with an electric element: the boil kettle in a HERMS
// rig, doubling as the hot-liquor source for the mash tun's exchanger coil.
//
// Each Regulate call converts the regulator output directly into a duty
// cycle in [0,1] and schedules the element relay events for the coming
// tick. Events are anchored to the tick start, not to the wall clock at
// scheduling time, so jitter in the loop never stretches an on-window.
//
// Not safe for concurrent use; owned by the control loop goroutine.
type Heated struct {
	volume    float64
	rating    float64
	minSwitch time.Duration

	duty          float64
	elementStatus bool
	emergencyStop bool
	setpoint      float64

	regulator *control.Regulator
	sensor    hal.TemperatureSensor
	actuator  hal.Actuator
	logger    Logger
}

// NewHeated creates a heated vessel. The owned regulator is fixed to the
// duty-cycle range [0,1] and starts disabled.
func NewHeated(cfg HeatedConfig) (*Heated, error) {
	if cfg.Volume <= 0 {
		return nil, ErrInvalidVolume
	}
	if cfg.Rating <= 0 {
		return nil, ErrInvalidRating
	}
	if cfg.Sensor == nil {
		return nil, ErrNilSensor
	}
	if cfg.Actuator == nil {
		return nil, ErrNilActuator
	}

	reg, err := control.NewRegulator(control.Config{
		GainProportional: cfg.GainProportional,
		GainIntegral:     cfg.GainIntegral,
		MinOutput:        0,
		MaxOutput:        1,
	})
	if err != nil {
		return nil, err
	}

	return &Heated{
		volume:    cfg.Volume,
		rating:    cfg.Rating,
		minSwitch: cfg.MinSwitch,
		regulator: reg,
		sensor:    cfg.Sensor,
		actuator:  cfg.Actuator,
		logger:    noopLogger{},
	}, nil
}

// SetLogger sets the logger for the vessel.
func (v *Heated) SetLogger(logger Logger) {
	v.logger = logger
}

// Sample takes one sensor reading. A failure keeps the previous filtered
// value; the regulator simply works from slightly stale feedback.
func (v *Heated) Sample() error {
	return v.sensor.Measure()
}

// Temperature returns the last sampled temperature in °F.
func (v *Heated) Temperature() float64 {
	return v.sensor.Temperature()
}

// Setpoint returns the current target temperature.
func (v *Heated) Setpoint() float64 {
	return v.setpoint
}

// SetSetpoint changes the target temperature.
func (v *Heated) SetSetpoint(t float64) {
	v.setpoint = t
}

// Duty returns the duty cycle computed by the last Regulate call.
func (v *Heated) Duty() float64 {
	return v.duty
}

// Enabled reports the element status flag.
func (v *Heated) Enabled() bool {
	return v.elementStatus
}

// Enable sets the element status and arms the regulator.
func (v *Heated) Enable() {
	v.elementStatus = true
	v.regulator.Enable()
}

// Disable clears the element status and disarms the regulator, zeroing its
// accumulated state. The actuator itself is untouched; only TurnOn and
// TurnOff write to it, and the next scheduled TurnOn will route to off.
func (v *Heated) Disable() {
	v.elementStatus = false
	v.regulator.Disable()
	v.duty = 0
}

// EmergencyStop reports whether the emergency stop is engaged.
func (v *Heated) EmergencyStop() bool {
	return v.emergencyStop
}

// SetEmergencyStop engages or releases the emergency stop. The flag is
// applied lazily: the next TurnOn call routes to TurnOff.
func (v *Heated) SetEmergencyStop(engaged bool) {
	v.emergencyStop = engaged
}

// TurnOn energises the element relay, unless the emergency stop is engaged
// or the element is disabled, in which case it routes to TurnOff. This and
// TurnOff are the only methods that touch the actuator.
func (v *Heated) TurnOn() error {
	if v.emergencyStop || !v.elementStatus {
		return v.TurnOff()
	}
	if err := v.actuator.SetOn(); err != nil {
		v.logger.Error("element on failed", "error", err)
		return err
	}
	return nil
}

// TurnOff de-energises the element relay unconditionally.
func (v *Heated) TurnOff() error {
	if err := v.actuator.SetOff(); err != nil {
		v.logger.Error("element off failed", "error", err)
		return err
	}
	return nil
}

// Regulate runs one control evaluation and schedules the element relay
// events for the tick beginning at tickStart and lasting period.
//
// The duty cycle splits the tick into an on-window and an off-window.
// Windows shorter than the relay-safety threshold collapse to a single
// event so the relay is never asked to switch faster than half a mains
// cycle:
//
//	on-window  < threshold → off at tickStart
//	off-window < threshold → on at tickStart
//	otherwise              → on at tickStart, off after the on-window
func (v *Heated) Regulate(tickStart time.Time, period time.Duration, sched Scheduler) {
	v.duty = v.regulator.Calculate(v.Temperature(), v.setpoint)

	onWindow := time.Duration(v.duty * float64(period))
	offWindow := period - onWindow

	switch {
	case onWindow < v.minSwitch:
		sched.ScheduleAt(tickStart, func() { v.TurnOff() }) //nolint:errcheck
	case offWindow < v.minSwitch:
		sched.ScheduleAt(tickStart, func() { v.TurnOn() }) //nolint:errcheck
	default:
		sched.ScheduleAt(tickStart, func() { v.TurnOn() })                //nolint:errcheck
		sched.ScheduleAt(tickStart.Add(onWindow), func() { v.TurnOff() }) //nolint:errcheck
	}
}

// Power returns the average electrical power over the current tick in
// watts: duty × rating while enabled, zero otherwise.
func (v *Heated) Power() float64 {
	if !v.elementStatus {
		return 0
	}
	return v.duty * v.rating
}

// TemperatureRamp estimates the temperature rate-of-change in °F/s at the
// current power level. Pure adiabatic estimate for the simulator and
// telemetry; the control path never consumes it.
func (v *Heated) TemperatureRamp() float64 {
	return thermal.Ramp(v.Power(), v.volume)
}

// Volume returns the vessel volume in US gallons.
func (v *Heated) Volume() float64 {
	return v.volume
}

// Rating returns the element power rating in watts.
func (v *Heated) Rating() float64 {
	return v.rating
}

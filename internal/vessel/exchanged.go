package vessel

import (
	"github.com/ferment8/brauhaus-core/internal/control"
	"github.com/ferment8/brauhaus-core/internal/hal"
	"github.com/ferment8/brauhaus-core/internal/thermal"
)

// HeatExchangedConfig holds the construction parameters for a
// HeatExchanged vessel.
type HeatExchangedConfig struct {
	Volume           float64 // US gallons
	Conductivity     float64 // Exchanger coupling in watts per °F
	GainProportional float64 // Regulator Kp
	GainIntegral     float64 // Regulator Ki
	MaxSourceDelta   float64 // Largest source offset the regulator may command, °F
	Sensor           hal.TemperatureSensor
}

// HeatExchanged is a vessel warmed through an exchanger coil: the mash tun
// in a HERMS rig. It has no element of its own; its regulator output is an
// offset on the current temperature, yielding the source temperature the
// upstream Heated vessel must hold for the coil to pull the mash toward
// its set point.
//
// Not safe for concurrent use; owned by the control loop goroutine.
type HeatExchanged struct {
	volume       float64
	conductivity float64

	sourceTemp    float64
	enabled       bool
	emergencyStop bool
	setpoint      float64

	regulator *control.Regulator
	sensor    hal.TemperatureSensor
}

// NewHeatExchanged creates a heat-exchanged vessel. The owned regulator is
// clamped to ±cfg.MaxSourceDelta so a wound-up controller can never
// command a source temperature far beyond the mash, scorching the wort in
// the coil.
func NewHeatExchanged(cfg HeatExchangedConfig) (*HeatExchanged, error) {
	if cfg.Volume <= 0 {
		return nil, ErrInvalidVolume
	}
	if cfg.Conductivity <= 0 {
		return nil, ErrInvalidConductivity
	}
	if cfg.MaxSourceDelta <= 0 {
		return nil, ErrInvalidSourceDelta
	}
	if cfg.Sensor == nil {
		return nil, ErrNilSensor
	}

	reg, err := control.NewRegulator(control.Config{
		GainProportional: cfg.GainProportional,
		GainIntegral:     cfg.GainIntegral,
		MinOutput:        -cfg.MaxSourceDelta,
		MaxOutput:        cfg.MaxSourceDelta,
	})
	if err != nil {
		return nil, err
	}

	return &HeatExchanged{
		volume:       cfg.Volume,
		conductivity: cfg.Conductivity,
		regulator:    reg,
		sensor:       cfg.Sensor,
	}, nil
}

// Sample takes one sensor reading.
func (v *HeatExchanged) Sample() error {
	return v.sensor.Measure()
}

// Temperature returns the last sampled temperature in °F.
func (v *HeatExchanged) Temperature() float64 {
	return v.sensor.Temperature()
}

// Setpoint returns the current target temperature.
func (v *HeatExchanged) Setpoint() float64 {
	return v.setpoint
}

// SetSetpoint changes the target temperature.
func (v *HeatExchanged) SetSetpoint(t float64) {
	v.setpoint = t
}

// SourceTemperature returns the source temperature derived by the last
// Regulate call. While disabled this settles to the current temperature.
func (v *HeatExchanged) SourceTemperature() float64 {
	return v.sourceTemp
}

// Enabled reports whether the exchanger loop is active.
func (v *HeatExchanged) Enabled() bool {
	return v.enabled
}

// Enable activates the exchanger loop and arms the regulator.
func (v *HeatExchanged) Enable() {
	v.enabled = true
	v.regulator.Enable()
}

// Disable deactivates the exchanger loop and disarms the regulator,
// zeroing its accumulated state.
func (v *HeatExchanged) Disable() {
	v.enabled = false
	v.regulator.Disable()
}

// EmergencyStop reports whether the emergency stop is engaged.
func (v *HeatExchanged) EmergencyStop() bool {
	return v.emergencyStop
}

// SetEmergencyStop engages or releases the emergency stop.
func (v *HeatExchanged) SetEmergencyStop(engaged bool) {
	v.emergencyStop = engaged
}

// Regulate runs one control evaluation, deriving the source temperature as
// the current temperature plus the regulator output. There is no actuator;
// the "actuation" is the upstream vessel adopting SourceTemperature as its
// set point while this vessel is enabled.
func (v *HeatExchanged) Regulate() {
	current := v.Temperature()
	v.sourceTemp = current + v.regulator.Calculate(current, v.setpoint)
}

// TemperatureRamp estimates the temperature rate-of-change in °F/s from
// the exchanger coupling, zero while disabled. Estimate for the simulator
// and telemetry only.
func (v *HeatExchanged) TemperatureRamp() float64 {
	if !v.enabled {
		return 0
	}
	return thermal.ExchangeRamp(v.sourceTemp, v.Temperature(), v.conductivity, v.volume)
}

// Volume returns the vessel volume in US gallons.
func (v *HeatExchanged) Volume() float64 {
	return v.volume
}

// Conductivity returns the exchanger coupling in watts per °F.
func (v *HeatExchanged) Conductivity() float64 {
	return v.conductivity
}

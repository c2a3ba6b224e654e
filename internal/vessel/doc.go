// Package vessel models the physical plant: the heated kettle, the
// heat-exchanged mash tun and the recirculation pump.
//
// Architecture:
//
//	┌─────────────────────────────┐     ┌──────────────────────────────┐
//	│  HeatExchanged (mash tun)   │     │       Heated (kettle)        │
//	│  regulator → source temp ───┼────▶│  setpoint → regulator → duty │
//	│  (no actuator of its own)   │     │  duty → element schedule     │
//	└─────────────────────────────┘     └──────────────┬───────────────┘
//	                                                   ▼
//	                                         relay on/off events,
//	                                         anchored to tick start
//
// The kettle converts its regulator output directly into a duty cycle and
// schedules at most two relay events per tick. The mash tun has no element;
// its regulator derives the source temperature the kettle must hold for the
// exchanger coil to pull the mash toward its set point.
//
// # Key Types
//
//   - Heated: vessel with an element; owns duty cycle and relay scheduling
//   - HeatExchanged: vessel heated through a coil fed by a Heated vessel
//   - Pump: recirculation pump with emergency-stop interlock
//   - Scheduler: deferred execution on the control loop goroutine
//
// # Relay Safety
//
// An AC solid-state relay must not be asked to switch for less than half a
// mains cycle. Duty windows shorter than that threshold collapse to a
// single event: fully off when the on-window is too short, fully on when
// the off-window is too short.
//
// # Thread Safety
//
// Vessels are NOT safe for concurrent use. They are owned by the control
// loop goroutine; external writes arrive via the loop's command queue.
//
// # Usage
//
//	kettle, err := vessel.NewHeated(vessel.HeatedConfig{
//	    Volume:           15,
//	    Rating:           5500,
//	    GainProportional: 0.05,
//	    GainIntegral:     0.002,
//	    MinSwitch:        time.Second / 120,
//	    Sensor:           sensor,
//	    Actuator:         relay,
//	})
//	if err != nil {
//	    return err
//	}
//	kettle.Enable()
//	kettle.SetSetpoint(170)
//	kettle.Regulate(tickStart, time.Second, loop)
package vessel

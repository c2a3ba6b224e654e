// Package thermal provides the pure heat-transfer maths shared by the
// brewhouse controller and the thermal simulator.
//
// All functions are stateless conversions between power, volume and
// temperature rate-of-change. Temperatures are degrees Fahrenheit,
// volumes US gallons, power watts. The controller uses these estimates
// for telemetry only; closed-loop behaviour always comes from the sensor
// feedback path, never from the model.
//
// # Usage
//
//	rate := thermal.Ramp(5500, 15)            // °F/s from a 5.5 kW element in 15 gal
//	rate = thermal.ExchangeRamp(168, 152, 120, 10) // °F/s through a HERMS coil
package thermal

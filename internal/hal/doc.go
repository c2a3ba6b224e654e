// Package hal abstracts the brewhouse hardware: temperature probes and the
// relays driving the heating element and pump.
//
// The real implementation talks to the Linux GPIO character device through
// go-gpiocdev and to DS18B20 thermometers through the kernel w1 sysfs
// interface. A simulator plant and recording fakes implement the same
// interfaces, so the control loop never knows which it is wired to.
//
// # Key Types
//
//   - TemperatureSensor: Measure/Temperature pair; failures keep the last value
//   - Actuator: binary relay output (SetOn/SetOff)
//   - FilteredSensor: moving-average filter over a raw ReadFunc
//   - Relay: GPIO output line (linux only; stubbed elsewhere)
//   - FakeSensor, FakeActuator: scripted test doubles
//
// # Thread Safety
//
// FilteredSensor and the fakes are safe for concurrent use. Relay is owned
// by the control loop and must not be shared.
//
// # Usage
//
//	sensor := hal.NewFilteredSensor(hal.DS18B20Read(hal.W1Dir, "28-0317persist"), 5)
//	relay, err := hal.NewRelay("gpiochip0", 17, "brauhaus-element")
//	if err != nil {
//	    return err
//	}
//	defer relay.Close()
//
//	if err := sensor.Measure(); err != nil {
//	    log.Warn("probe read failed", "error", err)
//	}
//	temp := sensor.Temperature()
package hal

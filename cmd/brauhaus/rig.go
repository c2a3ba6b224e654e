package main

import (
	"context"
	"fmt"

	"github.com/ferment8/brauhaus-core/internal/hal"
	"github.com/ferment8/brauhaus-core/internal/infrastructure/config"
	"github.com/ferment8/brauhaus-core/internal/infrastructure/logging"
	"github.com/ferment8/brauhaus-core/internal/sim"
)

// rig bundles the hardware endpoints the vessels consume: two
// temperature probes and two relays, backed either by real GPIO/1-Wire
// hardware or by the thermal simulator.
type rig struct {
	kettleSensor hal.TemperatureSensor
	mashSensor   hal.TemperatureSensor
	element      hal.Actuator
	pump         hal.Actuator

	plant  *sim.Plant
	relays []*hal.Relay
}

// buildRig constructs the hardware layer selected by hardware.mode.
func buildRig(ctx context.Context, cfg *config.Config, log *logging.Logger) (*rig, error) {
	switch cfg.Hardware.Mode {
	case "sim":
		return buildSimRig(ctx, cfg, log)
	case "gpio":
		return buildGPIORig(cfg, log)
	default:
		// Config validation rejects other modes before this point.
		return nil, fmt.Errorf("unsupported hardware mode %q", cfg.Hardware.Mode)
	}
}

// buildSimRig starts the thermal simulator and exposes it through the
// hal interfaces.
func buildSimRig(ctx context.Context, cfg *config.Config, log *logging.Logger) (*rig, error) {
	plant, err := sim.NewPlant(sim.Config{
		KettleVolume:        cfg.Brewhouse.BoilKettle.VolumeGallons,
		MashVolume:          cfg.Brewhouse.MashTun.VolumeGallons,
		ElementRating:       cfg.Brewhouse.BoilKettle.ElementRatingWatts,
		Conductivity:        cfg.Brewhouse.MashTun.HeatExchangerConductivity,
		AmbientTemperature:  cfg.Hardware.Sim.AmbientTemperature,
		StartTemperature:    cfg.Hardware.Sim.StartTemperature,
		HeatLossCoefficient: cfg.Hardware.Sim.HeatLossCoefficient,
		Step:                cfg.GetSimStep(),
	})
	if err != nil {
		return nil, fmt.Errorf("building simulator: %w", err)
	}
	plant.SetLogger(log)

	if err := plant.Start(ctx); err != nil {
		return nil, fmt.Errorf("starting simulator: %w", err)
	}
	log.Info("thermal simulator running", "step", cfg.GetSimStep())

	// Simulated probes are noise-free; a single-sample filter just
	// passes readings through.
	return &rig{
		kettleSensor: hal.NewFilteredSensor(plant.KettleRead(), 1),
		mashSensor:   hal.NewFilteredSensor(plant.MashRead(), 1),
		element:      plant.Element(),
		pump:         plant.Pump(),
		plant:        plant,
	}, nil
}

// buildGPIORig opens the relay GPIO lines and the 1-Wire probes.
func buildGPIORig(cfg *config.Config, log *logging.Logger) (*rig, error) {
	gpio := cfg.Hardware.GPIO

	if gpio.KettleSensorID == "" || gpio.MashSensorID == "" {
		return nil, fmt.Errorf("gpio mode requires kettle_sensor_id and mash_sensor_id")
	}

	element, err := hal.NewRelay(gpio.Chip, gpio.ElementPin)
	if err != nil {
		return nil, fmt.Errorf("opening element relay: %w", err)
	}

	pump, err := hal.NewRelay(gpio.Chip, gpio.PumpPin)
	if err != nil {
		element.Close() //nolint:errcheck // best effort on construction failure
		return nil, fmt.Errorf("opening pump relay: %w", err)
	}

	log.Info("GPIO relays opened",
		"chip", gpio.Chip,
		"element_pin", gpio.ElementPin,
		"pump_pin", gpio.PumpPin,
	)

	return &rig{
		kettleSensor: hal.NewFilteredSensor(hal.DS18B20Read(hal.W1Dir, gpio.KettleSensorID), gpio.SensorSamples),
		mashSensor:   hal.NewFilteredSensor(hal.DS18B20Read(hal.W1Dir, gpio.MashSensorID), gpio.SensorSamples),
		element:      element,
		pump:         pump,
		relays:       []*hal.Relay{element, pump},
	}, nil
}

// close releases the rig: the simulator loop or the GPIO lines. Runs
// after the brewhouse's fail-safe stop, so the relays are already open.
func (r *rig) close(log *logging.Logger) {
	if r.plant != nil {
		log.Info("stopping thermal simulator")
		r.plant.Stop()
	}
	for _, relay := range r.relays {
		if err := relay.Close(); err != nil {
			log.Error("error closing relay", "error", err)
		}
	}
}

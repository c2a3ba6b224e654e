package sim

import (
	"context"
	"sync"
	"time"

	"github.com/ferment8/brauhaus-core/internal/hal"
	"github.com/ferment8/brauhaus-core/internal/thermal"
)

// Logger is the logging interface used by the plant.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// noopLogger is a logger that does nothing.
type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}

// Config holds the construction parameters for a Plant. Volumes in US
// gallons, powers in watts, temperatures in °F.
type Config struct {
	// KettleVolume is the boil kettle liquid volume.
	KettleVolume float64

	// MashVolume is the mash tun liquid volume.
	MashVolume float64

	// ElementRating is the kettle element power when energised.
	ElementRating float64

	// Conductivity is the exchanger coupling in watts per °F of
	// kettle-to-mash differential, effective while the pump runs.
	Conductivity float64

	// AmbientTemperature is the room temperature both vessels drift
	// toward when idle.
	AmbientTemperature float64

	// StartTemperature is the initial liquid temperature of both
	// vessels. Zero means start at ambient.
	StartTemperature float64

	// HeatLossCoefficient is the ambient loss in watts per °F each
	// vessel sits above ambient. Zero models perfectly insulated
	// vessels.
	HeatLossCoefficient float64

	// Step is the integration step.
	Step time.Duration
}

// Plant is a two-vessel thermal simulation standing in for the brewery
// when no relay and probe hardware is attached. It integrates both
// liquid temperatures with a fixed step: the kettle gains heat from its
// element, the mash tun exchanges heat with the kettle through the coil
// while the pump runs, and both vessels leak toward ambient.
//
// The control loop sees the plant only through hal interfaces: two
// ReadFuncs for the probes and two Actuators for the element and pump
// relays. Swapping gpio hardware for the plant is a wiring change, not
// a control change.
//
// Safe for concurrent use.
type Plant struct {
	mu         sync.Mutex
	kettleTemp float64
	mashTemp   float64
	elementOn  bool
	pumpOn     bool

	cfg Config

	logger   Logger
	loggerMu sync.RWMutex

	started  bool
	done     chan struct{}
	wg       sync.WaitGroup
	stopOnce sync.Once
}

// NewPlant creates a plant at rest: relays open, both vessels at the
// start temperature.
func NewPlant(cfg Config) (*Plant, error) {
	if cfg.KettleVolume <= 0 || cfg.MashVolume <= 0 {
		return nil, ErrInvalidVolume
	}
	if cfg.ElementRating <= 0 {
		return nil, ErrInvalidRating
	}
	if cfg.Conductivity <= 0 {
		return nil, ErrInvalidConductivity
	}
	if cfg.Step <= 0 {
		return nil, ErrInvalidStep
	}
	if cfg.StartTemperature == 0 {
		cfg.StartTemperature = cfg.AmbientTemperature
	}

	return &Plant{
		kettleTemp: cfg.StartTemperature,
		mashTemp:   cfg.StartTemperature,
		cfg:        cfg,
		logger:     noopLogger{},
		done:       make(chan struct{}),
	}, nil
}

// SetLogger sets the logger for the plant.
func (p *Plant) SetLogger(logger Logger) {
	p.loggerMu.Lock()
	defer p.loggerMu.Unlock()
	p.logger = logger
}

func (p *Plant) getLogger() Logger {
	p.loggerMu.RLock()
	defer p.loggerMu.RUnlock()
	return p.logger
}

// ─────────────────────────────────────────────────────────────────────────────
// Hardware Interfaces
// ─────────────────────────────────────────────────────────────────────────────

// KettleRead returns a ReadFunc sampling the simulated kettle probe.
func (p *Plant) KettleRead() hal.ReadFunc {
	return func() (float64, error) {
		return p.KettleTemperature(), nil
	}
}

// MashRead returns a ReadFunc sampling the simulated mash tun probe.
func (p *Plant) MashRead() hal.ReadFunc {
	return func() (float64, error) {
		return p.MashTemperature(), nil
	}
}

// Element returns the kettle element relay.
func (p *Plant) Element() hal.Actuator {
	return elementRelay{p}
}

// Pump returns the recirculation pump relay.
func (p *Plant) Pump() hal.Actuator {
	return pumpRelay{p}
}

// elementRelay switches the simulated element.
type elementRelay struct{ p *Plant }

func (r elementRelay) SetOn() error {
	r.p.setElement(true)
	return nil
}

func (r elementRelay) SetOff() error {
	r.p.setElement(false)
	return nil
}

// pumpRelay switches the simulated pump.
type pumpRelay struct{ p *Plant }

func (r pumpRelay) SetOn() error {
	r.p.setPump(true)
	return nil
}

func (r pumpRelay) SetOff() error {
	r.p.setPump(false)
	return nil
}

func (p *Plant) setElement(on bool) {
	p.mu.Lock()
	p.elementOn = on
	p.mu.Unlock()
}

func (p *Plant) setPump(on bool) {
	p.mu.Lock()
	p.pumpOn = on
	p.mu.Unlock()
}

// ─────────────────────────────────────────────────────────────────────────────
// State Accessors
// ─────────────────────────────────────────────────────────────────────────────

// KettleTemperature returns the simulated kettle liquid temperature.
func (p *Plant) KettleTemperature() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.kettleTemp
}

// MashTemperature returns the simulated mash tun liquid temperature.
func (p *Plant) MashTemperature() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.mashTemp
}

// ElementOn reports the simulated element relay position.
func (p *Plant) ElementOn() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.elementOn
}

// PumpOn reports the simulated pump relay position.
func (p *Plant) PumpOn() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.pumpOn
}

// ─────────────────────────────────────────────────────────────────────────────
// Integration
// ─────────────────────────────────────────────────────────────────────────────

// step advances both temperatures by dt seconds of simulated heat flow.
func (p *Plant) step(dt float64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	var kettleRamp, mashRamp float64

	if p.elementOn {
		kettleRamp += thermal.Ramp(p.cfg.ElementRating, p.cfg.KettleVolume)
	}

	// The coil only moves heat while the pump recirculates wort
	// through it. Flow direction follows the differential, so an
	// overheated mash sheds heat back into the kettle.
	if p.pumpOn {
		exchange := thermal.ExchangePower(p.kettleTemp, p.mashTemp, p.cfg.Conductivity)
		mashRamp += thermal.Ramp(exchange, p.cfg.MashVolume)
		kettleRamp -= thermal.Ramp(exchange, p.cfg.KettleVolume)
	}

	kettleRamp -= thermal.Ramp(p.cfg.HeatLossCoefficient*(p.kettleTemp-p.cfg.AmbientTemperature), p.cfg.KettleVolume)
	mashRamp -= thermal.Ramp(p.cfg.HeatLossCoefficient*(p.mashTemp-p.cfg.AmbientTemperature), p.cfg.MashVolume)

	p.kettleTemp += kettleRamp * dt
	p.mashTemp += mashRamp * dt
}

// ─────────────────────────────────────────────────────────────────────────────
// Lifecycle
// ─────────────────────────────────────────────────────────────────────────────

// Start runs the integration loop until Stop is called or ctx is
// cancelled.
func (p *Plant) Start(ctx context.Context) error {
	p.mu.Lock()
	if p.started {
		p.mu.Unlock()
		return ErrAlreadyStarted
	}
	p.started = true
	p.mu.Unlock()

	p.wg.Add(1)
	go p.run()

	go func() {
		select {
		case <-ctx.Done():
			p.Stop()
		case <-p.done:
		}
	}()

	p.getLogger().Info("thermal simulator started",
		"step", p.cfg.Step,
		"start_temperature", p.cfg.StartTemperature,
		"ambient", p.cfg.AmbientTemperature)
	return nil
}

// Stop halts the integration loop. Safe to call more than once.
func (p *Plant) Stop() {
	p.stopOnce.Do(func() {
		close(p.done)
		p.wg.Wait()
		p.getLogger().Info("thermal simulator stopped")
	})
}

// Running reports whether the loop has started and not yet stopped.
func (p *Plant) Running() bool {
	select {
	case <-p.done:
		return false
	default:
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.started
}

// run is the integration goroutine.
func (p *Plant) run() {
	defer p.wg.Done()

	ticker := time.NewTicker(p.cfg.Step)
	defer ticker.Stop()

	dt := p.cfg.Step.Seconds()
	for {
		select {
		case <-p.done:
			return
		case <-ticker.C:
			p.step(dt)
		}
	}
}

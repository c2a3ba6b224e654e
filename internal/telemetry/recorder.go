package telemetry

import (
	"context"
	"sync"
	"time"

	"github.com/ferment8/brauhaus-core/internal/brewhouse"
)

// Logger is the logging interface used by the recorder.
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

// Source supplies point-in-time brewhouse snapshots.
type Source interface {
	Snapshot() brewhouse.Snapshot
}

// Writer receives the recorded metrics. All methods must be
// non-blocking; the InfluxDB client batches asynchronously.
type Writer interface {
	WriteVesselMetric(vessel string, temperature, setpoint, output float64, enabled bool)
	WriteBrewState(session, state string, position int, timeInState float64)
	WriteEnergyMetric(session string, energyWh, duty float64)
}

// Vessel tags used in the vessel measurement.
const (
	VesselBoilKettle = "boil_kettle"
	VesselMashTun    = "mash_tun"
)

// Recorder samples the brewhouse on a fixed interval and writes the
// time series the dashboards plot: both vessels' control state always,
// sequencer position and energy while a session runs.
//
// The recorder never touches the control loop beyond taking a
// snapshot, so a slow or absent metrics backend cannot stretch a tick.
type Recorder struct {
	source   Source
	writer   Writer
	interval time.Duration

	logger   Logger
	loggerMu sync.RWMutex

	mu       sync.Mutex
	started  bool
	done     chan struct{}
	wg       sync.WaitGroup
	stopOnce sync.Once
}

// NewRecorder creates a recorder. Call Start to begin sampling.
func NewRecorder(source Source, writer Writer, interval time.Duration) (*Recorder, error) {
	if source == nil {
		return nil, ErrNilSource
	}
	if writer == nil {
		return nil, ErrNilWriter
	}
	if interval <= 0 {
		return nil, ErrInvalidInterval
	}
	return &Recorder{
		source:   source,
		writer:   writer,
		interval: interval,
		logger:   noopLogger{},
		done:     make(chan struct{}),
	}, nil
}

// SetLogger sets the logger for the recorder.
func (r *Recorder) SetLogger(logger Logger) {
	r.loggerMu.Lock()
	defer r.loggerMu.Unlock()
	r.logger = logger
}

func (r *Recorder) getLogger() Logger {
	r.loggerMu.RLock()
	defer r.loggerMu.RUnlock()
	return r.logger
}

// Start runs the recorder until Stop is called or ctx is cancelled.
// The first sample is written immediately.
func (r *Recorder) Start(ctx context.Context) error {
	r.mu.Lock()
	if r.started {
		r.mu.Unlock()
		return ErrAlreadyStarted
	}
	r.started = true
	r.mu.Unlock()

	r.wg.Add(1)
	go r.run()

	go func() {
		select {
		case <-ctx.Done():
			r.Stop()
		case <-r.done:
		}
	}()

	r.getLogger().Info("telemetry recorder started", "interval", r.interval)
	return nil
}

// Stop halts the recorder. Safe to call more than once.
func (r *Recorder) Stop() {
	r.stopOnce.Do(func() {
		close(r.done)
		r.wg.Wait()
		r.getLogger().Info("telemetry recorder stopped")
	})
}

// Running reports whether the recorder has started and not yet stopped.
func (r *Recorder) Running() bool {
	select {
	case <-r.done:
		return false
	default:
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.started
}

// run is the sampling goroutine.
func (r *Recorder) run() {
	defer r.wg.Done()

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	r.record()
	for {
		select {
		case <-r.done:
			return
		case <-ticker.C:
			r.record()
		}
	}
}

// record takes one snapshot and writes its metrics. Vessel rows flow
// whether or not a brew is running; session-scoped rows need a session
// ID to tag.
func (r *Recorder) record() {
	snap := r.source.Snapshot()

	r.writer.WriteVesselMetric(VesselBoilKettle,
		snap.Kettle.Temperature,
		snap.Kettle.Setpoint,
		snap.Kettle.DutyCycle,
		snap.Kettle.ElementOn)
	r.writer.WriteVesselMetric(VesselMashTun,
		snap.MashTun.Temperature,
		snap.MashTun.Setpoint,
		snap.MashTun.SourceTemperature,
		snap.MashTun.Enabled)

	if snap.Session == nil {
		return
	}

	state := snap.State
	if state == "" {
		state = "none"
	}
	r.writer.WriteBrewState(snap.Session.ID, state, snap.Position, snap.TimeInStateSeconds)
	r.writer.WriteEnergyMetric(snap.Session.ID, snap.EnergyWh, snap.Kettle.DutyCycle)
}

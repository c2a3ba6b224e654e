package brewhouse

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ferment8/brauhaus-core/internal/recipe"
	"github.com/ferment8/brauhaus-core/internal/sequence"
	"github.com/ferment8/brauhaus-core/internal/thermal"
	"github.com/ferment8/brauhaus-core/internal/vessel"
)

// Logger is the logging interface used by the brewhouse.
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

// scheduledEvent is one actuation callback queued by a tick.
type scheduledEvent struct {
	at time.Time
	fn func()
}

// Deps carries everything a Brewhouse needs. Kettle, MashTun, Pump and
// TickPeriod are required; the rest default sensibly.
type Deps struct {
	// Kettle is the heated boil kettle.
	Kettle *vessel.Heated

	// MashTun is the heat-exchanged mash tun.
	MashTun *vessel.HeatExchanged

	// Pump is the recirculation pump.
	Pump *vessel.Pump

	// TickPeriod is the control loop period, typically one second.
	TickPeriod time.Duration

	// Variables is the remote variable set. Created when nil.
	Variables *Variables

	// Broadcaster receives snapshot and event pushes. Optional.
	Broadcaster Broadcaster

	// Logger is an optional structured logger.
	Logger Logger
}

// Brewhouse runs the brew. A single goroutine executes the fixed-period
// tick that samples sensors, evaluates the recipe sequence, regulates
// both vessels, schedules element relay events and accumulates energy.
//
// All external control (operator permission, state jumps, set point
// overrides) lands in flags and set points consumed at tick boundaries;
// nothing outside the loop mutates vessel or regulator state directly.
//
// Thread Safety: all exported methods are safe for concurrent use.
type Brewhouse struct {
	mu sync.Mutex

	kettle  *vessel.Heated
	mash    *vessel.HeatExchanged
	pump    *vessel.Pump
	machine *sequence.Machine

	session *Session
	entered time.Time // current state entry time
	working time.Time // current tick time

	energy   float64 // accumulated element energy, Wh
	lastTick time.Time
	timer    *time.Duration // countdown, nil when the state has none

	vars        *Variables
	lastRequest bool
	lastGrant   bool

	tickPeriod time.Duration
	pending    []scheduledEvent

	stateNames map[int]string

	broadcaster Broadcaster
	logger      Logger
	now         func() time.Time

	started  bool
	done     chan struct{}
	wg       sync.WaitGroup
	stopOnce sync.Once
}

// New creates a brewhouse. Call Start to run the control loop.
func New(deps Deps) (*Brewhouse, error) {
	if deps.Kettle == nil {
		return nil, ErrNilKettle
	}
	if deps.MashTun == nil {
		return nil, ErrNilMashTun
	}
	if deps.Pump == nil {
		return nil, ErrNilPump
	}
	if deps.TickPeriod <= 0 {
		return nil, ErrInvalidTickPeriod
	}

	b := &Brewhouse{
		kettle:      deps.Kettle,
		mash:        deps.MashTun,
		pump:        deps.Pump,
		tickPeriod:  deps.TickPeriod,
		vars:        deps.Variables,
		broadcaster: deps.Broadcaster,
		logger:      deps.Logger,
		now:         time.Now,
		done:        make(chan struct{}),
	}
	if b.vars == nil {
		b.vars = NewVariables()
	}
	if b.broadcaster == nil {
		b.broadcaster = noopBroadcaster{}
	}
	if b.logger == nil {
		b.logger = noopLogger{}
	}

	machine, err := sequence.NewMachine(b.states())
	if err != nil {
		return nil, fmt.Errorf("build state machine: %w", err)
	}
	machine.OnTransition(b.handleTransition)
	b.machine = machine

	b.stateNames = make(map[int]string, machine.Len())
	for _, s := range machine.States() {
		b.stateNames[s.Tag] = s.Name
	}

	return b, nil
}

// Variables returns the remote variable set for binding registration.
func (b *Brewhouse) Variables() *Variables {
	return b.vars
}

// ─────────────────────────────────────────────────────────────────────────────
// Lifecycle
// ─────────────────────────────────────────────────────────────────────────────

// Start runs the control loop until Stop is called or ctx is cancelled.
// With no active session the loop idles: sensors stream and both vessels
// hold their safe state.
func (b *Brewhouse) Start(ctx context.Context) error {
	b.mu.Lock()
	if b.started {
		b.mu.Unlock()
		return ErrAlreadyStarted
	}
	b.started = true
	b.lastTick = b.now()
	b.mu.Unlock()

	b.wg.Add(1)
	go b.run()

	go func() {
		select {
		case <-ctx.Done():
			b.Stop()
		case <-b.done:
		}
	}()

	b.logger.Info("control loop started", "tick_period", b.tickPeriod)
	return nil
}

// Stop halts the loop and drives the plant to its safe state: both
// vessels disabled, element off, pump off, unconditionally. Safe to call
// more than once.
func (b *Brewhouse) Stop() {
	b.stopOnce.Do(func() {
		close(b.done)
		b.wg.Wait()

		b.mu.Lock()
		b.kettle.Disable()
		b.mash.Disable()
		_ = b.kettle.TurnOff()
		_ = b.pump.Off()
		b.mu.Unlock()

		b.logger.Info("control loop stopped")
	})
}

// Running reports whether the loop has started and not yet stopped.
func (b *Brewhouse) Running() bool {
	select {
	case <-b.done:
		return false
	default:
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.started
}

// run is the control loop goroutine.
func (b *Brewhouse) run() {
	defer b.wg.Done()

	ticker := time.NewTicker(b.tickPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-b.done:
			return
		case <-ticker.C:
			events := b.tick(b.now())
			b.dispatch(events)
		}
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Tick
// ─────────────────────────────────────────────────────────────────────────────

// tick executes one control cycle and returns the actuation events it
// scheduled. Order is fixed: sample, consume grant, evaluate, regulate
// mash tun, propagate, regulate kettle, accumulate energy, publish.
func (b *Brewhouse) tick(tickStart time.Time) []scheduledEvent {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.working = tickStart
	b.pending = b.pending[:0]

	// 1. Sample both vessels. A failed read keeps the last filtered value.
	if err := b.kettle.Sample(); err != nil {
		b.logger.Warn("boil kettle sample failed", "error", err)
	}
	if err := b.mash.Sample(); err != nil {
		b.logger.Warn("mash tun sample failed", "error", err)
	}

	// 2. Consume a pending operator grant. A grant with no request
	// outstanding is stale and dropped.
	if b.vars.Grant.Value() {
		if b.vars.Request.Value() {
			b.machine.Next()
		} else {
			b.vars.Grant.Set(false)
		}
	}

	// 3. Run the current state.
	b.machine.Evaluate()

	// 4. Regulate the mash tun and slave the kettle to it while enabled.
	if b.vars.MashSetpoint.Overridden() {
		b.mash.SetSetpoint(b.vars.MashSetpoint.Value())
	}
	b.mash.Regulate()
	if b.mash.Enabled() {
		b.kettle.SetSetpoint(b.mash.SourceTemperature())
	}

	// 5. Regulate the kettle; this schedules the element relay events.
	if b.vars.KettleSetpoint.Overridden() {
		b.kettle.SetSetpoint(b.vars.KettleSetpoint.Value())
	}
	b.kettle.Regulate(tickStart, b.tickPeriod, b)

	// 6. Accumulate element energy over the wall time since last tick.
	if !b.lastTick.IsZero() {
		b.energy += thermal.WattHours(b.kettle.Power(), tickStart.Sub(b.lastTick))
	}
	b.lastTick = tickStart

	// 7. Refresh the remote variables and push the snapshot.
	b.refreshVariables()
	b.broadcaster.Broadcast(EventSnapshot, b.snapshotLocked())

	events := make([]scheduledEvent, len(b.pending))
	copy(events, b.pending)
	return events
}

// ScheduleAt queues an actuation callback for the current tick. Vessels
// call this from Regulate; events run on the loop goroutine.
func (b *Brewhouse) ScheduleAt(at time.Time, fn func()) {
	b.pending = append(b.pending, scheduledEvent{at: at, fn: fn})
}

// dispatch executes scheduled events at their times, in order. Events
// only write actuators; they take the lock so jumps and shutdowns from
// other goroutines stay consistent.
func (b *Brewhouse) dispatch(events []scheduledEvent) {
	sort.Slice(events, func(i, j int) bool {
		return events[i].at.Before(events[j].at)
	})

	for _, event := range events {
		if wait := time.Until(event.at); wait > 0 {
			timer := time.NewTimer(wait)
			select {
			case <-b.done:
				timer.Stop()
				return
			case <-timer.C:
			}
		}
		b.mu.Lock()
		event.fn()
		b.mu.Unlock()
	}
}

// handleTransition runs on every machine position change, inside the
// lock of whichever operation moved the machine. Every change clears the
// permission pair and the countdown.
func (b *Brewhouse) handleTransition(from, to int) {
	b.entered = b.now()
	b.timer = nil
	b.vars.Request.Set(false)
	b.vars.Grant.Set(false)

	change := StateChange{
		From:     b.stateName(from),
		To:       b.stateName(to),
		Position: to,
	}
	b.logger.Info("brew state changed",
		"from", change.From,
		"to", change.To,
		"position", to)
	b.broadcaster.Broadcast(EventStateChanged, change)
}

// stateName resolves a machine position to its state name.
func (b *Brewhouse) stateName(position int) string {
	if name, ok := b.stateNames[position]; ok {
		return name
	}
	return "none"
}

// refreshVariables mirrors loop state into the remote variable set and
// announces permission flag changes.
func (b *Brewhouse) refreshVariables() {
	b.vars.KettleTemperature.Set(b.kettle.Temperature())
	b.vars.MashTemperature.Set(b.mash.Temperature())
	b.vars.KettleSetpoint.Set(b.kettle.Setpoint())
	b.vars.MashSetpoint.Set(b.mash.Setpoint())
	b.vars.DutyCycle.Set(b.kettle.Duty())
	b.vars.ElementStatus.Set(b.kettle.Enabled())
	b.vars.PumpOn.Set(b.pump.Enabled())
	b.vars.Energy.Set(b.energy)
	if b.timer != nil {
		b.vars.Timer.Set(b.timer.Seconds())
	} else {
		b.vars.Timer.Set(0)
	}

	request, grant := b.vars.Request.Value(), b.vars.Grant.Value()
	if request != b.lastRequest || grant != b.lastGrant {
		b.broadcaster.Broadcast(EventPermission, PermissionChange{
			RequestPermission: request,
			GrantPermission:   grant,
		})
		b.lastRequest, b.lastGrant = request, grant
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Session Operations
// ─────────────────────────────────────────────────────────────────────────────

// StartSession begins a brew of the given recipe from the first state.
// The recipe is deep-copied; the registry's copy stays untouched.
func (b *Brewhouse) StartSession(r *recipe.Recipe) (*Session, error) {
	if r == nil {
		return nil, ErrNilRecipe
	}
	profile, err := recipe.NewProfile(r.MashSteps)
	if err != nil {
		return nil, fmt.Errorf("build mash profile: %w", err)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.session != nil {
		return nil, ErrSessionActive
	}

	session := &Session{
		ID:        uuid.NewString(),
		Recipe:    r.DeepCopy(),
		Profile:   profile,
		StartedAt: b.now(),
	}
	b.session = session
	b.energy = 0
	b.timer = nil

	if err := b.machine.SetPosition(0); err != nil {
		b.session = nil
		return nil, err
	}

	b.logger.Info("brew session started",
		"session_id", session.ID,
		"recipe", session.Recipe.Name)

	info := session.Info()
	b.broadcaster.Broadcast(EventSession, SessionChange{Active: true, Session: &info})
	return session, nil
}

// StopSession abandons the current brew and drives the plant to its safe
// state. The loop keeps ticking idle.
func (b *Brewhouse) StopSession() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.session == nil {
		return ErrNoSession
	}
	id := b.session.ID

	if err := b.machine.SetPosition(sequence.None); err != nil {
		return err
	}
	b.session = nil

	b.kettle.Disable()
	b.mash.Disable()
	_ = b.kettle.TurnOff()
	_ = b.pump.Off()

	b.logger.Info("brew session stopped", "session_id", id)
	b.broadcaster.Broadcast(EventSession, SessionChange{Active: false})
	return nil
}

// Session returns the active session's summary, or nil.
func (b *Brewhouse) Session() *SessionInfo {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.session == nil {
		return nil
	}
	info := b.session.Info()
	return &info
}

// GrantPermission records operator approval for the pending transition.
// Consumed at the next tick boundary; a grant with no request pending is
// dropped there instead.
func (b *Brewhouse) GrantPermission() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.session == nil {
		return ErrNoSession
	}
	b.vars.Grant.Set(true)
	b.logger.Info("operator permission granted",
		"state", b.stateName(b.machine.Position()))
	return nil
}

// SetStateByName jumps the sequence to the named state. Unknown names
// are an error; nothing moves.
func (b *Brewhouse) SetStateByName(name string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.session == nil {
		return ErrNoSession
	}
	if err := b.machine.SetByName(name); err != nil {
		return err
	}
	b.logger.Info("brew state jumped", "state", name)
	return nil
}

// SetEmergencyStop engages or releases the emergency stop on the whole
// plant. Applied lazily: each actuator goes safe at its next scheduled
// write.
func (b *Brewhouse) SetEmergencyStop(engaged bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.kettle.SetEmergencyStop(engaged)
	b.mash.SetEmergencyStop(engaged)
	b.pump.SetEmergencyStop(engaged)

	if engaged {
		b.logger.Warn("emergency stop engaged")
	} else {
		b.logger.Info("emergency stop released")
	}
}

// Snapshot returns a point-in-time view of the brewhouse.
func (b *Brewhouse) Snapshot() Snapshot {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.snapshotLocked()
}

func (b *Brewhouse) snapshotLocked() Snapshot {
	snap := Snapshot{
		Time:     b.now(),
		Position: b.machine.Position(),
		Kettle: KettleStatus{
			Temperature: b.kettle.Temperature(),
			Setpoint:    b.kettle.Setpoint(),
			DutyCycle:   b.kettle.Duty(),
			ElementOn:   b.kettle.Enabled(),
		},
		MashTun: MashStatus{
			Temperature:       b.mash.Temperature(),
			Setpoint:          b.mash.Setpoint(),
			SourceTemperature: b.mash.SourceTemperature(),
			Enabled:           b.mash.Enabled(),
		},
		PumpOn:            b.pump.Enabled(),
		EnergyWh:          b.energy,
		RequestPermission: b.vars.Request.Value(),
		GrantPermission:   b.vars.Grant.Value(),
	}

	if current := b.machine.Current(); current != nil {
		snap.State = current.Name
		snap.TimeInStateSeconds = b.now().Sub(b.entered).Seconds()
	}
	if b.session != nil {
		info := b.session.Info()
		snap.Session = &info
	}
	if b.timer != nil {
		seconds := b.timer.Seconds()
		snap.TimerSeconds = &seconds
	}
	return snap
}

package vessel

import (
	"errors"
	"testing"
	"time"

	"github.com/ferment8/brauhaus-core/internal/hal"
	"github.com/ferment8/brauhaus-core/internal/thermal"
)

// scheduledEvent is one recorded ScheduleAt call.
type scheduledEvent struct {
	at time.Time
	fn func()
}

// fakeScheduler records scheduled events; tests fire them manually.
type fakeScheduler struct {
	events []scheduledEvent
}

func (s *fakeScheduler) ScheduleAt(at time.Time, fn func()) {
	s.events = append(s.events, scheduledEvent{at: at, fn: fn})
}

func (s *fakeScheduler) runAll() {
	for _, e := range s.events {
		e.fn()
	}
}

// newTestHeated builds an enabled kettle with proportional-only gain 1, so
// the duty cycle equals the temperature error clamped to [0,1]. The mains
// threshold is the 60 Hz half-cycle.
func newTestHeated(t *testing.T, sensor *hal.FakeSensor, act *hal.FakeActuator) *Heated {
	t.Helper()
	v, err := NewHeated(HeatedConfig{
		Volume:           15,
		Rating:           5500,
		GainProportional: 1,
		GainIntegral:     0,
		MinSwitch:        time.Second / 120,
		Sensor:           sensor,
		Actuator:         act,
	})
	if err != nil {
		t.Fatalf("NewHeated: %v", err)
	}
	v.Enable()
	return v
}

func TestNewHeated_Validation(t *testing.T) {
	sensor := hal.NewFakeSensor(70)
	act := hal.NewFakeActuator()
	valid := HeatedConfig{Volume: 15, Rating: 5500, Sensor: sensor, Actuator: act}

	tests := []struct {
		name    string
		mutate  func(*HeatedConfig)
		wantErr error
	}{
		{"zero volume", func(c *HeatedConfig) { c.Volume = 0 }, ErrInvalidVolume},
		{"negative rating", func(c *HeatedConfig) { c.Rating = -1 }, ErrInvalidRating},
		{"nil sensor", func(c *HeatedConfig) { c.Sensor = nil }, ErrNilSensor},
		{"nil actuator", func(c *HeatedConfig) { c.Actuator = nil }, ErrNilActuator},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)
			if _, err := NewHeated(cfg); !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got: %v", tt.wantErr, err)
			}
		})
	}

	if _, err := NewHeated(valid); err != nil {
		t.Errorf("valid config rejected: %v", err)
	}
}

func TestHeated_RegulateZeroDuty(t *testing.T) {
	sensor := hal.NewFakeSensor(152)
	act := hal.NewFakeActuator()
	v := newTestHeated(t, sensor, act)
	v.SetSetpoint(152) // No error: duty 0

	sched := &fakeScheduler{}
	t0 := time.Unix(1700000000, 0)
	v.Regulate(t0, time.Second, sched)

	if v.Duty() != 0 {
		t.Fatalf("Duty = %v, want 0", v.Duty())
	}
	if len(sched.events) != 1 {
		t.Fatalf("scheduled %d events, want 1", len(sched.events))
	}
	if !sched.events[0].at.Equal(t0) {
		t.Errorf("event at %v, want tick start %v", sched.events[0].at, t0)
	}

	sched.runAll()
	if got := act.History(); len(got) != 1 || got[0] != false {
		t.Errorf("actuator history = %v, want single off", got)
	}
}

func TestHeated_RegulateFullDuty(t *testing.T) {
	sensor := hal.NewFakeSensor(150)
	act := hal.NewFakeActuator()
	v := newTestHeated(t, sensor, act)
	v.SetSetpoint(160) // Error 10, clamped to duty 1

	sched := &fakeScheduler{}
	t0 := time.Unix(1700000000, 0)
	v.Regulate(t0, time.Second, sched)

	if v.Duty() != 1 {
		t.Fatalf("Duty = %v, want 1", v.Duty())
	}
	if len(sched.events) != 1 {
		t.Fatalf("scheduled %d events, want 1", len(sched.events))
	}
	if !sched.events[0].at.Equal(t0) {
		t.Errorf("event at %v, want tick start %v", sched.events[0].at, t0)
	}

	sched.runAll()
	if got := act.History(); len(got) != 1 || got[0] != true {
		t.Errorf("actuator history = %v, want single on", got)
	}
}

func TestHeated_RegulatePartialDuty(t *testing.T) {
	sensor := hal.NewFakeSensor(152)
	act := hal.NewFakeActuator()
	v := newTestHeated(t, sensor, act)
	v.SetSetpoint(152.6) // Duty 0.6

	sched := &fakeScheduler{}
	t0 := time.Unix(1700000000, 0)
	v.Regulate(t0, time.Second, sched)

	if len(sched.events) != 2 {
		t.Fatalf("scheduled %d events, want on/off pair", len(sched.events))
	}
	if !sched.events[0].at.Equal(t0) {
		t.Errorf("on event at %v, want tick start %v", sched.events[0].at, t0)
	}
	wantOff := t0.Add(600 * time.Millisecond)
	if off := sched.events[1].at; off.Sub(wantOff) > time.Millisecond || wantOff.Sub(off) > time.Millisecond {
		t.Errorf("off event at %v, want %v", off, wantOff)
	}

	sched.runAll()
	got := act.History()
	if len(got) != 2 || got[0] != true || got[1] != false {
		t.Errorf("actuator history = %v, want on then off", got)
	}
}

func TestHeated_ShortOnWindowCollapsesToOff(t *testing.T) {
	sensor := hal.NewFakeSensor(152)
	act := hal.NewFakeActuator()
	v := newTestHeated(t, sensor, act)
	v.SetSetpoint(152.004) // 4ms on-window, below the 8.3ms threshold

	sched := &fakeScheduler{}
	v.Regulate(time.Unix(1700000000, 0), time.Second, sched)

	sched.runAll()
	if got := act.History(); len(got) != 1 || got[0] != false {
		t.Errorf("actuator history = %v, want single off", got)
	}
}

func TestHeated_ShortOffWindowCollapsesToOn(t *testing.T) {
	sensor := hal.NewFakeSensor(152)
	act := hal.NewFakeActuator()
	v := newTestHeated(t, sensor, act)
	v.SetSetpoint(152.996) // 4ms off-window, below the 8.3ms threshold

	sched := &fakeScheduler{}
	v.Regulate(time.Unix(1700000000, 0), time.Second, sched)

	sched.runAll()
	if got := act.History(); len(got) != 1 || got[0] != true {
		t.Errorf("actuator history = %v, want single on", got)
	}
}

func TestHeated_RegulateWhileDisabled(t *testing.T) {
	sensor := hal.NewFakeSensor(100)
	act := hal.NewFakeActuator()
	v := newTestHeated(t, sensor, act)
	v.SetSetpoint(170)
	v.Disable()

	sched := &fakeScheduler{}
	v.Regulate(time.Unix(1700000000, 0), time.Second, sched)

	// Disabled regulator yields duty 0; the single event keeps the relay off.
	if v.Duty() != 0 {
		t.Errorf("Duty = %v, want 0", v.Duty())
	}
	sched.runAll()
	if got := act.History(); len(got) != 1 || got[0] != false {
		t.Errorf("actuator history = %v, want single off", got)
	}
}

func TestHeated_TurnOnInterlocks(t *testing.T) {
	tests := []struct {
		name  string
		setup func(*Heated)
	}{
		{"emergency stop engaged", func(v *Heated) {
			v.Enable()
			v.SetEmergencyStop(true)
		}},
		{"element disabled", func(v *Heated) {
			v.Disable()
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			act := hal.NewFakeActuator()
			v := newTestHeated(t, hal.NewFakeSensor(100), act)
			tt.setup(v)

			if err := v.TurnOn(); err != nil {
				t.Fatalf("TurnOn: %v", err)
			}
			if got := act.History(); len(got) != 1 || got[0] != false {
				t.Errorf("actuator history = %v, want routed to off", got)
			}
		})
	}
}

func TestHeated_TurnOnWhenArmed(t *testing.T) {
	act := hal.NewFakeActuator()
	v := newTestHeated(t, hal.NewFakeSensor(100), act)

	if err := v.TurnOn(); err != nil {
		t.Fatalf("TurnOn: %v", err)
	}
	if !act.On() {
		t.Error("actuator off after armed TurnOn")
	}
}

func TestHeated_Power(t *testing.T) {
	sensor := hal.NewFakeSensor(152)
	v := newTestHeated(t, sensor, hal.NewFakeActuator())
	v.SetSetpoint(152.6)
	v.Regulate(time.Unix(1700000000, 0), time.Second, &fakeScheduler{})

	if got, want := v.Power(), 0.6*5500; !closeTo(got, want, 1e-9) {
		t.Errorf("Power = %v, want %v", got, want)
	}

	v.Disable()
	if got := v.Power(); got != 0 {
		t.Errorf("Power while disabled = %v, want 0", got)
	}
}

func TestHeated_TemperatureRamp(t *testing.T) {
	sensor := hal.NewFakeSensor(150)
	v := newTestHeated(t, sensor, hal.NewFakeActuator())
	v.SetSetpoint(160) // Duty clamps to 1: full rating
	v.Regulate(time.Unix(1700000000, 0), time.Second, &fakeScheduler{})

	want := thermal.Ramp(5500, 15)
	if got := v.TemperatureRamp(); !closeTo(got, want, 1e-12) {
		t.Errorf("TemperatureRamp = %v, want %v", got, want)
	}
}

func TestHeated_SampleSurfacesSensorError(t *testing.T) {
	sensor := hal.NewFakeSensor(150)
	v := newTestHeated(t, sensor, hal.NewFakeActuator())

	scripted := errors.New("bus glitch")
	sensor.SetError(scripted)
	if err := v.Sample(); !errors.Is(err, scripted) {
		t.Errorf("expected sensor error, got: %v", err)
	}
	// Feedback falls back to the previous value.
	if got := v.Temperature(); got != 150 {
		t.Errorf("Temperature = %v, want stale 150", got)
	}
}

func closeTo(got, want, eps float64) bool {
	diff := got - want
	if diff < 0 {
		diff = -diff
	}
	return diff <= eps
}

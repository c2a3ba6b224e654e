package vessel

import (
	"errors"
	"testing"

	"github.com/ferment8/brauhaus-core/internal/hal"
	"github.com/ferment8/brauhaus-core/internal/thermal"
)

// newTestExchanged builds an enabled mash tun with proportional-only gain
// 1, so the source offset equals the temperature error clamped to ±25.
func newTestExchanged(t *testing.T, sensor *hal.FakeSensor) *HeatExchanged {
	t.Helper()
	v, err := NewHeatExchanged(HeatExchangedConfig{
		Volume:           10,
		Conductivity:     120,
		GainProportional: 1,
		GainIntegral:     0,
		MaxSourceDelta:   25,
		Sensor:           sensor,
	})
	if err != nil {
		t.Fatalf("NewHeatExchanged: %v", err)
	}
	v.Enable()
	return v
}

func TestNewHeatExchanged_Validation(t *testing.T) {
	sensor := hal.NewFakeSensor(70)
	valid := HeatExchangedConfig{
		Volume: 10, Conductivity: 120, MaxSourceDelta: 25, Sensor: sensor,
	}

	tests := []struct {
		name    string
		mutate  func(*HeatExchangedConfig)
		wantErr error
	}{
		{"zero volume", func(c *HeatExchangedConfig) { c.Volume = 0 }, ErrInvalidVolume},
		{"zero conductivity", func(c *HeatExchangedConfig) { c.Conductivity = 0 }, ErrInvalidConductivity},
		{"zero source delta", func(c *HeatExchangedConfig) { c.MaxSourceDelta = 0 }, ErrInvalidSourceDelta},
		{"nil sensor", func(c *HeatExchangedConfig) { c.Sensor = nil }, ErrNilSensor},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)
			if _, err := NewHeatExchanged(cfg); !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got: %v", tt.wantErr, err)
			}
		})
	}

	if _, err := NewHeatExchanged(valid); err != nil {
		t.Errorf("valid config rejected: %v", err)
	}
}

func TestHeatExchanged_RegulateDerivesSource(t *testing.T) {
	sensor := hal.NewFakeSensor(150)
	v := newTestExchanged(t, sensor)
	v.SetSetpoint(152)

	v.Regulate()

	// Error 2 with unit gain: source sits 2°F above the mash.
	if got := v.SourceTemperature(); !closeTo(got, 152, 1e-9) {
		t.Errorf("SourceTemperature = %v, want 152", got)
	}
}

func TestHeatExchanged_SourceOffsetClamped(t *testing.T) {
	sensor := hal.NewFakeSensor(70)
	v := newTestExchanged(t, sensor)
	v.SetSetpoint(212) // Error 142, offset clamps at 25

	v.Regulate()

	if got := v.SourceTemperature(); !closeTo(got, 95, 1e-9) {
		t.Errorf("SourceTemperature = %v, want clamped 95", got)
	}
}

func TestHeatExchanged_NegativeOffsetAllowed(t *testing.T) {
	sensor := hal.NewFakeSensor(158)
	v := newTestExchanged(t, sensor)
	v.SetSetpoint(152) // Overshot mash: source commanded below current

	v.Regulate()

	if got := v.SourceTemperature(); !closeTo(got, 152, 1e-9) {
		t.Errorf("SourceTemperature = %v, want 152", got)
	}
}

func TestHeatExchanged_RegulateWhileDisabled(t *testing.T) {
	sensor := hal.NewFakeSensor(150)
	v := newTestExchanged(t, sensor)
	v.SetSetpoint(170)
	v.Disable()

	v.Regulate()

	// Disabled regulator contributes no offset: source settles to the mash.
	if got := v.SourceTemperature(); got != 150 {
		t.Errorf("SourceTemperature = %v, want current 150", got)
	}
}

func TestHeatExchanged_TemperatureRamp(t *testing.T) {
	sensor := hal.NewFakeSensor(150)
	v := newTestExchanged(t, sensor)
	v.SetSetpoint(152)
	v.Regulate()

	want := thermal.ExchangeRamp(152, 150, 120, 10)
	if got := v.TemperatureRamp(); !closeTo(got, want, 1e-12) {
		t.Errorf("TemperatureRamp = %v, want %v", got, want)
	}

	v.Disable()
	if got := v.TemperatureRamp(); got != 0 {
		t.Errorf("TemperatureRamp while disabled = %v, want 0", got)
	}
}

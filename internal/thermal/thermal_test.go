package thermal

import (
	"math"
	"testing"
	"time"
)

func TestRamp(t *testing.T) {
	tests := []struct {
		name    string
		watts   float64
		gallons float64
		want    float64
	}{
		{"5.5kW into 15 gal", 5500, 15, 5500 / (15 * JoulesPerGallonDegF)},
		{"zero power", 0, 15, 0},
		{"zero volume", 5500, 0, 0},
		{"negative volume", 5500, -1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Ramp(tt.watts, tt.gallons); math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("Ramp(%v, %v) = %v, want %v", tt.watts, tt.gallons, got, tt.want)
			}
		})
	}
}

func TestRamp_FullPowerMagnitude(t *testing.T) {
	// A 5.5 kW element in 15 gallons raises roughly 2.5 °F per minute.
	perMinute := Ramp(5500, 15) * 60
	if perMinute < 2.0 || perMinute > 3.0 {
		t.Errorf("per-minute ramp = %v, want between 2 and 3", perMinute)
	}
}

func TestExchangePower(t *testing.T) {
	tests := []struct {
		name         string
		source       float64
		liquid       float64
		conductivity float64
		want         float64
	}{
		{"heating", 168, 152, 120, 1920},
		{"equilibrium", 152, 152, 120, 0},
		{"cooling", 60, 152, 120, -11040},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExchangePower(tt.source, tt.liquid, tt.conductivity)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("ExchangePower = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestExchangeRamp(t *testing.T) {
	// 16°F differential at 120 W/°F into 10 gallons.
	want := (16.0 * 120.0) / (10 * JoulesPerGallonDegF)
	got := ExchangeRamp(168, 152, 120, 10)
	if math.Abs(got-want) > 1e-12 {
		t.Errorf("ExchangeRamp = %v, want %v", got, want)
	}

	if got := ExchangeRamp(168, 152, 120, 0); got != 0 {
		t.Errorf("ExchangeRamp with zero volume = %v, want 0", got)
	}
}

func TestWattHours(t *testing.T) {
	tests := []struct {
		name    string
		watts   float64
		elapsed time.Duration
		want    float64
	}{
		{"one hour at element rating", 5500, time.Hour, 5500},
		{"one second tick", 5500, time.Second, 5500.0 / 3600},
		{"idle", 0, time.Hour, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := WattHours(tt.watts, tt.elapsed); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("WattHours(%v, %v) = %v, want %v", tt.watts, tt.elapsed, got, tt.want)
			}
		})
	}
}

package hal

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"
)

// scriptedRead returns a ReadFunc yielding the given samples in order,
// repeating the last one once exhausted.
func scriptedRead(samples ...float64) ReadFunc {
	i := 0
	return func() (float64, error) {
		s := samples[i]
		if i < len(samples)-1 {
			i++
		}
		return s, nil
	}
}

func TestFilteredSensor_MovingAverage(t *testing.T) {
	sensor := NewFilteredSensor(scriptedRead(150, 152, 154, 156), 3)

	steps := []struct {
		name string
		want float64
	}{
		{"one sample", 150},
		{"two samples", 151},      // (150+152)/2
		{"full window", 152},      // (150+152+154)/3
		{"oldest dropped", 154},   // (152+154+156)/3
	}

	for _, step := range steps {
		if err := sensor.Measure(); err != nil {
			t.Fatalf("%s: Measure: %v", step.name, err)
		}
		if got := sensor.Temperature(); math.Abs(got-step.want) > 1e-9 {
			t.Errorf("%s: Temperature = %v, want %v", step.name, got, step.want)
		}
	}
}

func TestFilteredSensor_FailedReadKeepsValue(t *testing.T) {
	readErr := errors.New("probe offline")
	calls := 0
	read := func() (float64, error) {
		calls++
		if calls > 1 {
			return 0, readErr
		}
		return 160, nil
	}

	sensor := NewFilteredSensor(read, 3)
	if err := sensor.Measure(); err != nil {
		t.Fatalf("Measure: %v", err)
	}

	if err := sensor.Measure(); !errors.Is(err, readErr) {
		t.Fatalf("expected scripted error, got: %v", err)
	}
	if got := sensor.Temperature(); got != 160 {
		t.Errorf("Temperature after failed read = %v, want 160", got)
	}
}

func TestFilteredSensor_MinimumWindow(t *testing.T) {
	sensor := NewFilteredSensor(scriptedRead(150, 170), 0)

	sensor.Measure() //nolint:errcheck
	sensor.Measure() //nolint:errcheck

	// Window clamps to one sample: no averaging at all.
	if got := sensor.Temperature(); got != 170 {
		t.Errorf("Temperature = %v, want 170", got)
	}
}

func TestFilteredSensor_Ready(t *testing.T) {
	sensor := NewFilteredSensor(scriptedRead(150), 3)
	if sensor.Ready() {
		t.Error("Ready before first Measure, want false")
	}
	sensor.Measure() //nolint:errcheck
	if !sensor.Ready() {
		t.Error("not Ready after successful Measure")
	}
}

func TestDS18B20Read(t *testing.T) {
	dir := t.TempDir()
	device := filepath.Join(dir, "28-000005e2fdc3")
	if err := os.MkdirAll(device, 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}

	tests := []struct {
		name    string
		payload string
		want    float64
		wantErr bool
	}{
		{"boiling-ish", "100000\n", 212, false},
		{"mash temperature", "66667\n", 152.0006, false},
		{"freezing", "0\n", 32, false},
		{"garbage", "not a number\n", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(device, "temperature")
			if err := os.WriteFile(path, []byte(tt.payload), 0o600); err != nil {
				t.Fatalf("WriteFile: %v", err)
			}

			read := DS18B20Read(dir, "28-000005e2fdc3")
			got, err := read()
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected parse error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("read: %v", err)
			}
			if math.Abs(got-tt.want) > 0.001 {
				t.Errorf("read = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDS18B20Read_MissingDevice(t *testing.T) {
	read := DS18B20Read(t.TempDir(), "28-nonexistent")
	if _, err := read(); err == nil {
		t.Error("expected error for missing device, got nil")
	}
}

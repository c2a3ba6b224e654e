package hal

import "sync"

// FilteredSensor smooths a raw temperature source with a moving average.
// DS18B20 probes in a noisy brewery enclosure occasionally glitch by a few
// tenths of a degree; averaging a short window keeps the regulator from
// chasing sensor noise.
//
// Safe for concurrent use.
type FilteredSensor struct {
	read   ReadFunc
	mu     sync.RWMutex
	window []float64 // Ring buffer of recent samples
	next   int       // Next write position
	filled int       // Number of valid samples, up to len(window)
	value  float64   // Current average
}

// NewFilteredSensor wraps read with a moving average over the given number
// of samples. A sample count below one is treated as one (no filtering).
func NewFilteredSensor(read ReadFunc, samples int) *FilteredSensor {
	if samples < 1 {
		samples = 1
	}
	return &FilteredSensor{
		read:   read,
		window: make([]float64, samples),
	}
}

// Measure takes one raw sample and updates the filtered value.
// A failed read leaves the window and value untouched.
func (s *FilteredSensor) Measure() error {
	sample, err := s.read()
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.window[s.next] = sample
	s.next = (s.next + 1) % len(s.window)
	if s.filled < len(s.window) {
		s.filled++
	}

	var sum float64
	for i := 0; i < s.filled; i++ {
		sum += s.window[i]
	}
	s.value = sum / float64(s.filled)
	return nil
}

// Temperature returns the current moving average, or zero before the first
// successful Measure.
func (s *FilteredSensor) Temperature() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.value
}

// Ready reports whether at least one good sample has been taken.
func (s *FilteredSensor) Ready() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filled > 0
}

package recipe

import (
	"fmt"
	"time"
)

// Point is one vertex of the mash temperature profile.
type Point struct {
	Offset      time.Duration // Elapsed time from mash start
	Temperature float64       // °F
}

// Profile is the mash schedule flattened into time/temperature points: a
// step of duration d at temperature t contributes the points (t0, t) and
// (t0+d, t). Lookups are valid over [0, Length()); the half-open end means
// the caller must leave the mash before the profile runs out, which the
// mash state's countdown guarantees.
//
// Computed once at session start; immutable thereafter.
type Profile struct {
	points []Point
}

// NewProfile derives the interpolation profile from ordered mash steps.
func NewProfile(steps []MashStep) (*Profile, error) {
	if len(steps) == 0 {
		return nil, ErrNoSteps
	}

	points := make([]Point, 0, 2*len(steps))
	var offset time.Duration
	for i, step := range steps {
		d := step.Duration()
		if d <= 0 {
			return nil, fmt.Errorf("%w: step %d", ErrInvalidStep, i)
		}
		points = append(points,
			Point{Offset: offset, Temperature: step.Temperature},
			Point{Offset: offset + d, Temperature: step.Temperature},
		)
		offset += d
	}

	return &Profile{points: points}, nil
}

// Length returns the total profile duration, the offset of the last point.
func (p *Profile) Length() time.Duration {
	return p.points[len(p.points)-1].Offset
}

// Points returns a copy of the profile vertices, for display.
func (p *Profile) Points() []Point {
	out := make([]Point, len(p.points))
	copy(out, p.points)
	return out
}

// At returns the target temperature after the given elapsed mash time,
// linearly interpolated between profile points. Successive steps at
// different temperatures form a zero-width jump; an elapsed time exactly
// on the boundary reads the new step's temperature.
//
// Returns ErrOutsideProfile for elapsed < 0 or elapsed >= Length().
func (p *Profile) At(elapsed time.Duration) (float64, error) {
	if elapsed < 0 || elapsed >= p.Length() {
		return 0, fmt.Errorf("%w: %s of %s", ErrOutsideProfile, elapsed, p.Length())
	}

	for i := 0; i < len(p.points)-1; i++ {
		a, b := p.points[i], p.points[i+1]
		if b.Offset == a.Offset {
			continue
		}
		if elapsed >= a.Offset && elapsed < b.Offset {
			frac := float64(elapsed-a.Offset) / float64(b.Offset-a.Offset)
			return a.Temperature + frac*(b.Temperature-a.Temperature), nil
		}
	}

	// Unreachable: the range check above guarantees a containing segment.
	return 0, fmt.Errorf("%w: %s", ErrOutsideProfile, elapsed)
}

package recipe

import (
	"fmt"
	"strings"
)

// Validation constants.
const (
	maxNameLength  = 100
	maxStyleLength = 100
	maxMashSteps   = 20
	minTemperature = 33.0  // °F, above freezing
	maxTemperature = 215.0 // °F, just above sea-level boil
	maxMinutes     = 24 * 60
)

// Validate performs comprehensive validation on a recipe.
// Returns an error describing the first validation failure found.
func Validate(r *Recipe) error {
	if r == nil {
		return ErrInvalid
	}

	name := strings.TrimSpace(r.Name)
	if name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalid)
	}
	if len(name) > maxNameLength {
		return fmt.Errorf("%w: name exceeds %d characters", ErrInvalid, maxNameLength)
	}
	if len(r.Style) > maxStyleLength {
		return fmt.Errorf("%w: style exceeds %d characters", ErrInvalid, maxStyleLength)
	}

	temps := []struct {
		label string
		value float64
	}{
		{"strike_temperature", r.StrikeTemperature},
		{"mashout_temperature", r.MashoutTemperature},
		{"boil_temperature", r.BoilTemperature},
		{"cool_temperature", r.CoolTemperature},
	}
	for _, t := range temps {
		if t.value < minTemperature || t.value > maxTemperature {
			return fmt.Errorf("%w: %s %.1f°F outside %.0f-%.0f", ErrInvalid, t.label, t.value, minTemperature, maxTemperature)
		}
	}

	if r.MashoutMinutes <= 0 || r.MashoutMinutes > maxMinutes {
		return fmt.Errorf("%w: mashout_minutes must be in (0, %d]", ErrInvalid, maxMinutes)
	}
	if r.BoilMinutes <= 0 || r.BoilMinutes > maxMinutes {
		return fmt.Errorf("%w: boil_minutes must be in (0, %d]", ErrInvalid, maxMinutes)
	}

	if len(r.MashSteps) == 0 {
		return fmt.Errorf("%w: at least one mash step is required", ErrInvalid)
	}
	if len(r.MashSteps) > maxMashSteps {
		return fmt.Errorf("%w: more than %d mash steps", ErrInvalid, maxMashSteps)
	}
	for i, step := range r.MashSteps {
		if step.Minutes <= 0 || step.Minutes > maxMinutes {
			return fmt.Errorf("%w: mash step %d minutes must be in (0, %d]", ErrInvalid, i, maxMinutes)
		}
		if step.Temperature < minTemperature || step.Temperature > maxTemperature {
			return fmt.Errorf("%w: mash step %d temperature %.1f°F outside %.0f-%.0f", ErrInvalid, i, step.Temperature, minTemperature, maxTemperature)
		}
	}

	// The sequencer raises strike water above the first rest and mashout
	// above the mash; reversed values would park those states forever.
	if r.StrikeTemperature <= r.MashSteps[0].Temperature {
		return fmt.Errorf("%w: strike_temperature must exceed the first mash step", ErrInvalid)
	}
	if r.MashoutTemperature <= r.MashSteps[len(r.MashSteps)-1].Temperature {
		return fmt.Errorf("%w: mashout_temperature must exceed the final mash step", ErrInvalid)
	}

	return nil
}

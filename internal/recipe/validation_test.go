package recipe

import (
	"errors"
	"strings"
	"testing"
	"time"
)

// validTestRecipe returns a recipe passing all validation rules.
func validTestRecipe() *Recipe {
	return &Recipe{
		ID:                 "11111111-2222-3333-4444-555555555555",
		Name:               "House Pale",
		Style:              "American Pale Ale",
		StrikeTemperature:  165,
		MashoutTemperature: 170,
		BoilTemperature:    212,
		CoolTemperature:    68,
		MashoutMinutes:     10,
		BoilMinutes:        60,
		MashSteps: []MashStep{
			{Minutes: 60, Temperature: 152},
		},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Recipe)
		valid  bool
	}{
		{"valid recipe", func(r *Recipe) {}, true},
		{"multi step", func(r *Recipe) {
			r.MashSteps = []MashStep{
				{Minutes: 20, Temperature: 145},
				{Minutes: 40, Temperature: 152},
			}
		}, true},
		{"nil is invalid", nil, false},
		{"empty name", func(r *Recipe) { r.Name = "  " }, false},
		{"name too long", func(r *Recipe) { r.Name = strings.Repeat("x", 101) }, false},
		{"strike below freezing", func(r *Recipe) { r.StrikeTemperature = 20 }, false},
		{"boil above range", func(r *Recipe) { r.BoilTemperature = 400 }, false},
		{"zero mashout minutes", func(r *Recipe) { r.MashoutMinutes = 0 }, false},
		{"zero boil minutes", func(r *Recipe) { r.BoilMinutes = 0 }, false},
		{"no mash steps", func(r *Recipe) { r.MashSteps = nil }, false},
		{"step zero minutes", func(r *Recipe) { r.MashSteps[0].Minutes = 0 }, false},
		{"step temperature out of range", func(r *Recipe) { r.MashSteps[0].Temperature = 10 }, false},
		{"strike not above first step", func(r *Recipe) { r.StrikeTemperature = 152 }, false},
		{"mashout not above final step", func(r *Recipe) { r.MashoutTemperature = 150 }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var r *Recipe
			if tt.mutate != nil {
				r = validTestRecipe()
				tt.mutate(r)
			}

			err := Validate(r)
			if tt.valid && err != nil {
				t.Errorf("expected valid, got: %v", err)
			}
			if !tt.valid {
				if err == nil {
					t.Fatal("expected validation error, got nil")
				}
				if !errors.Is(err, ErrInvalid) {
					t.Errorf("error does not wrap ErrInvalid: %v", err)
				}
			}
		})
	}
}

func TestRecipe_DurationAccessors(t *testing.T) {
	r := validTestRecipe()

	if got := r.MashoutTime(); got != 10*time.Minute {
		t.Errorf("MashoutTime = %v, want 10m", got)
	}
	if got := r.BoilTime(); got != time.Hour {
		t.Errorf("BoilTime = %v, want 1h", got)
	}
	if got := r.MashSteps[0].Duration(); got != time.Hour {
		t.Errorf("step Duration = %v, want 1h", got)
	}
	if got := r.FirstStepTemperature(); got != 152 {
		t.Errorf("FirstStepTemperature = %v, want 152", got)
	}
}

func TestRecipe_DeepCopy(t *testing.T) {
	r := validTestRecipe()
	clone := r.DeepCopy()

	clone.Name = "Changed"
	clone.MashSteps[0].Temperature = 100

	if r.Name != "House Pale" {
		t.Error("DeepCopy shares the name")
	}
	if r.MashSteps[0].Temperature != 152 {
		t.Error("DeepCopy shares the mash steps")
	}

	var nilRecipe *Recipe
	if nilRecipe.DeepCopy() != nil {
		t.Error("DeepCopy of nil should be nil")
	}
}

package recipe

import (
	"context"
	"fmt"
)

// Seed populates an empty recipe library from the JSON documents in dir.
// A library that already holds recipes is left alone, so operator edits
// survive restarts. Returns the number of recipes seeded.
func Seed(ctx context.Context, registry *Registry, dir string) (int, error) {
	if registry.Count() > 0 {
		return 0, nil
	}

	recipes, err := LoadDir(dir)
	if err != nil {
		return 0, fmt.Errorf("seeding recipes: %w", err)
	}

	seeded := 0
	for i := range recipes {
		rec := recipes[i]
		if err := registry.Create(ctx, &rec); err != nil {
			return seeded, fmt.Errorf("seeding recipe %q: %w", rec.Name, err)
		}
		seeded++
	}
	return seeded, nil
}

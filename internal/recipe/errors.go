package recipe

import "errors"

var (
	// ErrNotFound indicates the requested recipe does not exist.
	ErrNotFound = errors.New("recipe: not found")

	// ErrExists indicates a recipe with the same name already exists.
	ErrExists = errors.New("recipe: already exists")

	// ErrInvalid indicates a recipe failed validation.
	ErrInvalid = errors.New("recipe: invalid")

	// ErrNoSteps indicates a mash profile was built from an empty step list.
	ErrNoSteps = errors.New("recipe: mash profile requires at least one step")

	// ErrInvalidStep indicates a mash step with a non-positive duration.
	ErrInvalidStep = errors.New("recipe: mash step duration must be positive")

	// ErrOutsideProfile indicates a profile lookup beyond its valid range.
	// This is a programmer error: callers must advance out of the mash
	// before the profile runs out.
	ErrOutsideProfile = errors.New("recipe: elapsed time outside profile range")
)

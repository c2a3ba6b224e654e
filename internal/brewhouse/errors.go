package brewhouse

import "errors"

// Sentinel errors returned by the brewhouse package.
var (
	// ErrNilKettle indicates construction without a boil kettle.
	ErrNilKettle = errors.New("brewhouse: nil boil kettle")

	// ErrNilMashTun indicates construction without a mash tun.
	ErrNilMashTun = errors.New("brewhouse: nil mash tun")

	// ErrNilPump indicates construction without a pump.
	ErrNilPump = errors.New("brewhouse: nil pump")

	// ErrInvalidTickPeriod indicates a zero or negative tick period.
	ErrInvalidTickPeriod = errors.New("brewhouse: tick period must be positive")

	// ErrNilRecipe indicates a session start without a recipe.
	ErrNilRecipe = errors.New("brewhouse: nil recipe")

	// ErrSessionActive indicates a session start while one is running.
	ErrSessionActive = errors.New("brewhouse: a brew session is already active")

	// ErrNoSession indicates a session operation with no active session.
	ErrNoSession = errors.New("brewhouse: no active brew session")

	// ErrAlreadyStarted indicates a second Start on a running loop.
	ErrAlreadyStarted = errors.New("brewhouse: control loop already started")
)

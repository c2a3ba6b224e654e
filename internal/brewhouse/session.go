package brewhouse

import (
	"time"

	"github.com/ferment8/brauhaus-core/internal/recipe"
)

// Session is one brew run. The recipe is deep-copied at session start so
// later edits to the library never reach a running brew.
type Session struct {
	// ID uniquely identifies the session.
	ID string

	// Recipe is the session's private copy of the recipe.
	Recipe *recipe.Recipe

	// Profile is the mash temperature profile built from the recipe.
	Profile *recipe.Profile

	// StartedAt is when the session began.
	StartedAt time.Time
}

// SessionInfo is the externally visible summary of a session.
type SessionInfo struct {
	ID         string    `json:"id"`
	RecipeID   string    `json:"recipe_id"`
	RecipeName string    `json:"recipe_name"`
	StartedAt  time.Time `json:"started_at"`
}

// Info returns the session's external summary.
func (s *Session) Info() SessionInfo {
	return SessionInfo{
		ID:         s.ID,
		RecipeID:   s.Recipe.ID,
		RecipeName: s.Recipe.Name,
		StartedAt:  s.StartedAt,
	}
}

package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ferment8/brauhaus-core/internal/brewhouse"
	"github.com/ferment8/brauhaus-core/internal/recipe"
	"github.com/ferment8/brauhaus-core/internal/sequence"
)

// handleStatus returns the current brewhouse snapshot.
func (s *Server) handleStatus(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.brewer.Snapshot())
}

// handleListRecipes returns the recipe library.
func (s *Server) handleListRecipes(w http.ResponseWriter, r *http.Request) {
	recipes, err := s.recipes.List(r.Context())
	if err != nil {
		s.logger.Error("listing recipes failed", "error", err)
		writeInternalError(w, "failed to list recipes")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"recipes": recipes,
		"count":   len(recipes),
	})
}

// handleGetRecipe returns a single recipe by ID.
func (s *Server) handleGetRecipe(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	rec, err := s.recipes.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, recipe.ErrNotFound) {
			writeNotFound(w, "recipe not found")
			return
		}
		s.logger.Error("loading recipe failed", "id", id, "error", err)
		writeInternalError(w, "failed to load recipe")
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

// startSessionRequest is the request body for POST /session.
type startSessionRequest struct {
	RecipeID string `json:"recipe_id"`
}

// handleStartSession begins a brew session with the requested recipe.
func (s *Server) handleStartSession(w http.ResponseWriter, r *http.Request) {
	var req startSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}
	if req.RecipeID == "" {
		writeBadRequest(w, "recipe_id is required")
		return
	}

	rec, err := s.recipes.Get(r.Context(), req.RecipeID)
	if err != nil {
		if errors.Is(err, recipe.ErrNotFound) {
			writeNotFound(w, "recipe not found")
			return
		}
		s.logger.Error("loading recipe failed", "id", req.RecipeID, "error", err)
		writeInternalError(w, "failed to load recipe")
		return
	}

	session, err := s.brewer.StartSession(rec)
	if err != nil {
		switch {
		case errors.Is(err, brewhouse.ErrSessionActive):
			writeConflict(w, "a brew session is already active")
		case errors.Is(err, recipe.ErrNoSteps), errors.Is(err, recipe.ErrInvalidStep):
			writeBadRequest(w, err.Error())
		default:
			s.logger.Error("starting session failed", "recipe_id", req.RecipeID, "error", err)
			writeInternalError(w, "failed to start session")
		}
		return
	}

	writeJSON(w, http.StatusCreated, session.Info())
}

// handleStopSession abandons the active brew session.
func (s *Server) handleStopSession(w http.ResponseWriter, _ *http.Request) {
	if err := s.brewer.StopSession(); err != nil {
		if errors.Is(err, brewhouse.ErrNoSession) {
			writeNotFound(w, "no active brew session")
			return
		}
		s.logger.Error("stopping session failed", "error", err)
		writeInternalError(w, "failed to stop session")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"stopped": true})
}

// handleGrantPermission records operator approval for a pending
// transition. The grant is consumed at the next control tick.
func (s *Server) handleGrantPermission(w http.ResponseWriter, _ *http.Request) {
	if err := s.brewer.GrantPermission(); err != nil {
		if errors.Is(err, brewhouse.ErrNoSession) {
			writeNotFound(w, "no active brew session")
			return
		}
		s.logger.Error("granting permission failed", "error", err)
		writeInternalError(w, "failed to grant permission")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"granted": true})
}

// setStateRequest is the request body for POST /session/state.
type setStateRequest struct {
	Name string `json:"name"`
}

// handleSetState jumps the recipe sequence to the named state.
func (s *Server) handleSetState(w http.ResponseWriter, r *http.Request) {
	var req setStateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}
	if req.Name == "" {
		writeBadRequest(w, "name is required")
		return
	}

	if err := s.brewer.SetStateByName(req.Name); err != nil {
		switch {
		case errors.Is(err, brewhouse.ErrNoSession):
			writeNotFound(w, "no active brew session")
		case errors.Is(err, sequence.ErrUnknownState):
			writeBadRequest(w, "unknown state name: "+req.Name)
		default:
			s.logger.Error("state jump failed", "state", req.Name, "error", err)
			writeInternalError(w, "failed to set state")
		}
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"state": req.Name})
}

// emergencyStopRequest is the request body for POST /emergency-stop.
type emergencyStopRequest struct {
	Engaged bool `json:"engaged"`
}

// handleEmergencyStop engages or releases the plant-wide emergency stop.
func (s *Server) handleEmergencyStop(w http.ResponseWriter, r *http.Request) {
	var req emergencyStopRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}

	s.brewer.SetEmergencyStop(req.Engaged)
	writeJSON(w, http.StatusOK, map[string]any{"engaged": req.Engaged})
}

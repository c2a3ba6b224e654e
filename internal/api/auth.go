package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ferment8/brauhaus-core/internal/auth"
)

// loginRequest is the request body for POST /auth/login.
type loginRequest struct {
	PIN string `json:"pin"`
}

// loginResponse is the response body for POST /auth/login.
type loginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// handleLogin verifies the operator PIN and returns a JWT access token.
//
// A wrong PIN and a malformed stored hash both come back 401 to the
// caller; the distinction is logged server-side so a misconfigured hash
// does not masquerade as repeated failed logins.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}
	if req.PIN == "" {
		writeBadRequest(w, "pin is required")
		return
	}

	token, err := s.auth.Login(req.PIN)
	if err != nil {
		if !errors.Is(err, auth.ErrInvalidCredentials) {
			s.logger.Error("operator login failed", "error", err)
		}
		writeUnauthorized(w, "invalid credentials")
		return
	}

	writeJSON(w, http.StatusOK, loginResponse{
		AccessToken: token,
		TokenType:   "Bearer",
	})
}

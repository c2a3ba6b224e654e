package auth

import "errors"

// Sentinel errors for auth operations.
var (
	// ErrInvalidCredentials indicates the presented PIN does not match.
	ErrInvalidCredentials = errors.New("auth: invalid credentials")

	// ErrTokenInvalid indicates a token that failed signature, expiry or
	// claim validation.
	ErrTokenInvalid = errors.New("auth: invalid token")

	// ErrNoSecret indicates a service constructed without a JWT secret.
	ErrNoSecret = errors.New("auth: jwt secret is required")

	// ErrNoPINHash indicates a service constructed without an operator
	// PIN hash.
	ErrNoPINHash = errors.New("auth: operator pin hash is required")
)

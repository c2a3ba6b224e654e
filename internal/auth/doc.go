// Package auth authenticates the brewery operator.
//
// There are no user accounts: the rig has one operator who proves
// presence with a PIN. The package provides:
//   - Argon2id PIN hashing in PHC string format (OWASP 2025 parameters)
//   - Short-lived HS256 JWT access tokens, validated by signature only
//   - A Service tying the two together for the HTTP layer
//
// Tokens carry the operator role and cannot be revoked before expiry;
// keep the TTL short and rotate the secret for lockout.
package auth

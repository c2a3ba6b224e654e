package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

// Argon2id parameters, per the OWASP 2025 recommendation.
const (
	argonTime    = 3
	argonMemory  = 64 * 1024 // KiB
	argonThreads = 1
	argonKeyLen  = 32
	argonSaltLen = 16
)

// phcHash is a decoded $argon2id$ PHC string.
type phcHash struct {
	time    uint32
	memory  uint32
	threads uint8
	salt    []byte
	hash    []byte
}

// HashPIN derives an Argon2id hash of the operator PIN and encodes it
// in PHC form, e.g. $argon2id$v=19$m=65536,t=3,p=1$<salt>$<hash>.
// The result is what belongs in security.operator_pin_hash.
func HashPIN(pin string) (string, error) {
	salt := make([]byte, argonSaltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generating salt: %w", err)
	}

	hash := argon2.IDKey([]byte(pin), salt, argonTime, argonMemory, argonThreads, argonKeyLen)

	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version,
		argonMemory, argonTime, argonThreads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(hash),
	), nil
}

// VerifyPIN re-derives the hash from pin using the parameters stored
// in the PHC string and compares in constant time.
func VerifyPIN(pin, encodedHash string) (bool, error) {
	phc, err := parsePHC(encodedHash)
	if err != nil {
		return false, err
	}

	candidate := argon2.IDKey([]byte(pin), phc.salt,
		phc.time, phc.memory, phc.threads,
		uint32(len(phc.hash))) //nolint:gosec // G115: hash length always fits uint32

	return subtle.ConstantTimeCompare(phc.hash, candidate) == 1, nil
}

// parsePHC splits a $argon2id$ PHC string into its components.
func parsePHC(encoded string) (phcHash, error) {
	var phc phcHash

	parts := strings.Split(encoded, "$")
	if len(parts) != 6 { //nolint:mnd // PHC format has exactly 6 $-delimited parts
		return phc, fmt.Errorf("invalid PHC hash format")
	}
	if parts[1] != "argon2id" {
		return phc, fmt.Errorf("unsupported algorithm: %s", parts[1])
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil {
		return phc, fmt.Errorf("parsing version: %w", err)
	}
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &phc.memory, &phc.time, &phc.threads); err != nil {
		return phc, fmt.Errorf("parsing parameters: %w", err)
	}

	var err error
	if phc.salt, err = base64.RawStdEncoding.DecodeString(parts[4]); err != nil {
		return phc, fmt.Errorf("decoding salt: %w", err)
	}
	if phc.hash, err = base64.RawStdEncoding.DecodeString(parts[5]); err != nil {
		return phc, fmt.Errorf("decoding hash: %w", err)
	}

	return phc, nil
}

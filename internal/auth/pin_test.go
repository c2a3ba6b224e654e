package auth

import (
	"strings"
	"testing"
)

func TestHashPIN_RoundTrip(t *testing.T) {
	pin := "7391"

	hash, err := HashPIN(pin)
	if err != nil {
		t.Fatalf("HashPIN() error = %v", err)
	}

	if !strings.HasPrefix(hash, "$argon2id$") {
		t.Errorf("hash should start with $argon2id$, got %q", hash)
	}

	ok, err := VerifyPIN(pin, hash)
	if err != nil {
		t.Fatalf("VerifyPIN() error = %v", err)
	}
	if !ok {
		t.Error("VerifyPIN() should return true for correct PIN")
	}
}

func TestHashPIN_WrongPIN(t *testing.T) {
	hash, err := HashPIN("7391")
	if err != nil {
		t.Fatalf("HashPIN() error = %v", err)
	}

	ok, err := VerifyPIN("0000", hash)
	if err != nil {
		t.Fatalf("VerifyPIN() error = %v", err)
	}
	if ok {
		t.Error("VerifyPIN() should return false for wrong PIN")
	}
}

func TestHashPIN_UniqueSalts(t *testing.T) {
	pin := "same-pin"

	hash1, err := HashPIN(pin)
	if err != nil {
		t.Fatalf("HashPIN() error = %v", err)
	}

	hash2, err := HashPIN(pin)
	if err != nil {
		t.Fatalf("HashPIN() error = %v", err)
	}

	if hash1 == hash2 {
		t.Error("two hashes of the same PIN should have different salts")
	}
}

func TestVerifyPIN_InvalidFormat(t *testing.T) {
	tests := []struct {
		name string
		hash string
	}{
		{"empty", ""},
		{"not PHC", "plaintext"},
		{"wrong algorithm", "$bcrypt$v=19$m=65536,t=3,p=1$salt$hash"},
		{"too few parts", "$argon2id$v=19$m=65536,t=3,p=1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := VerifyPIN("7391", tt.hash)
			if err == nil {
				t.Error("VerifyPIN() should return error for invalid hash format")
			}
		})
	}
}

func TestHashPIN_PHCFormat(t *testing.T) {
	hash, err := HashPIN("test")
	if err != nil {
		t.Fatalf("HashPIN() error = %v", err)
	}

	parts := strings.Split(hash, "$")
	if len(parts) != 6 {
		t.Fatalf("PHC format should have 6 $-delimited parts, got %d: %q", len(parts), hash)
	}

	if parts[1] != "argon2id" {
		t.Errorf("algorithm should be argon2id, got %q", parts[1])
	}

	if parts[2] != "v=19" {
		t.Errorf("version should be v=19, got %q", parts[2])
	}

	if parts[3] != "m=65536,t=3,p=1" {
		t.Errorf("params should be m=65536,t=3,p=1, got %q", parts[3])
	}
}

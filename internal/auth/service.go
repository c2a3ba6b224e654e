package auth

// Service authenticates the operator and verifies the tokens it issued.
// It holds the JWT secret and the PIN hash; handlers and middleware
// never see either.
type Service struct {
	secret     string
	pinHash    string
	ttlMinutes int
}

// NewService creates an auth service. The PIN hash must be an Argon2id
// PHC string (see HashPIN); a non-positive TTL falls back to the
// default.
func NewService(secret, pinHash string, ttlMinutes int) (*Service, error) {
	if secret == "" {
		return nil, ErrNoSecret
	}
	if pinHash == "" {
		return nil, ErrNoPINHash
	}
	if ttlMinutes <= 0 {
		ttlMinutes = defaultTTLMinutes
	}
	return &Service{
		secret:     secret,
		pinHash:    pinHash,
		ttlMinutes: ttlMinutes,
	}, nil
}

// Login verifies the operator PIN and issues an access token. A wrong
// PIN returns ErrInvalidCredentials; a malformed stored hash surfaces
// as its own error so misconfiguration is not mistaken for a bad PIN.
func (s *Service) Login(pin string) (string, error) {
	ok, err := VerifyPIN(pin, s.pinHash)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", ErrInvalidCredentials
	}
	return GenerateToken(s.secret, s.ttlMinutes)
}

// Verify validates an access token and returns its claims.
func (s *Service) Verify(token string) (*Claims, error) {
	return ParseToken(token, s.secret)
}

package auth

import (
	"crypto/subtle"
	"errors"
	"fmt"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrLockedOut          = errors.New("login locked out")
)

// Service authenticates the single admin identity behind the lockout guard.
type Service struct {
	config Config
	guard  *LockoutGuard
}

func NewService(config Config, guard *LockoutGuard) *Service {
	return &Service{config: config, guard: guard}
}

// Login checks the lockout first, then the credentials. Success resets the
// guard unconditionally; a failure counts toward the lockout threshold.
func (s *Service) Login(username, password string) (string, error) {
	if s.guard.IsLockedOut() {
		return "", ErrLockedOut
	}

	usernameMatch := subtle.ConstantTimeCompare([]byte(username), []byte(s.config.AdminUsername)) == 1
	passwordMatch := CheckPassword(password, s.config.AdminPasswordHash)
	if !usernameMatch || !passwordMatch {
		s.guard.RecordFailure()
		return "", ErrInvalidCredentials
	}

	s.guard.Reset()

	token, err := GenerateToken(s.config, username)
	if err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}
	return token, nil
}

// LockoutMinutesRemaining exposes the guard's clock for rejection responses.
func (s *Service) LockoutMinutesRemaining() int64 {
	return s.guard.MinutesRemaining()
}

// IsAuthenticated is the viewer-side oracle: it reports whether a bearer
// token is a valid, unexpired admin token. Invalid tokens degrade to an
// unauthenticated view rather than an error.
func (s *Service) IsAuthenticated(token string) bool {
	if token == "" {
		return false
	}
	_, err := ValidateToken(s.config.JWTSecret, token)
	return err == nil
}

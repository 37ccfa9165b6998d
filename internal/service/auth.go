package service

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/octobees/leadsite/api/internal/auth"
)

// ErrInvalidCredentials is returned when the submitted credentials do not
// match the configured dashboard operator.
var ErrInvalidCredentials = errors.New("invalid credentials")

// AuthService validates the single dashboard operator's credentials and
// issues session tokens.
type AuthService struct {
	adminEmail string
	adminHash  []byte
	sessions   *auth.SessionManager
}

// NewAuthService hashes the configured admin password once at startup so the
// plaintext never sticks around for comparisons.
func NewAuthService(adminEmail, adminPassword string, sessions *auth.SessionManager) (*AuthService, error) {
	svc := &AuthService{
		adminEmail: strings.ToLower(strings.TrimSpace(adminEmail)),
		sessions:   sessions,
	}
	if adminPassword != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		svc.adminHash = hash
	}
	return svc, nil
}

// Login validates credentials and returns a session token on success.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	if s.adminEmail == "" || len(s.adminHash) == 0 {
		return "", ErrInvalidCredentials
	}
	if strings.ToLower(strings.TrimSpace(email)) != s.adminEmail {
		return "", ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(s.adminHash, []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}
	return s.sessions.Issue(s.adminEmail)
}

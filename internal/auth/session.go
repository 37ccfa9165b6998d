// Package auth issues and verifies the signed session tokens carried by the
// dashboard cookie.
package auth

import (
	"errors"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// CookieName is the cookie carrying the dashboard session token.
const CookieName = "session"

// Claims defines the payload encoded for a logged-in operator.
type Claims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
}

// SessionManager handles issuing and verifying HMAC signed session tokens.
type SessionManager struct {
	secret []byte
	ttl    time.Duration
}

// NewSessionManager constructs a manager with the given secret and session lifetime.
func NewSessionManager(secret string, ttl time.Duration) *SessionManager {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &SessionManager{secret: []byte(secret), ttl: ttl}
}

// Issue creates a session token for the given operator email.
func (m *SessionManager) Issue(email string) (string, error) {
	if len(m.secret) == 0 {
		return "", errors.New("session secret must not be empty")
	}

	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(m.ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
		Email: email,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", err
	}

	return signed, nil
}

// Verify checks the token signature and expiry.
func (m *SessionManager) Verify(token string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(token, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return m.secret, nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, errors.New("invalid session claims")
	}

	return claims, nil
}

// Cookie wraps a session token in the HttpOnly cookie the browser holds.
func (m *SessionManager) Cookie(token string) *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(m.ttl / time.Second),
	}
}

// ExpiredCookie overwrites the session cookie so the browser drops it.
func (m *SessionManager) ExpiredCookie() *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
	}
}

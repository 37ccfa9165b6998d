package auth

import (
	"testing"
	"time"
)

func TestSessionManager_IssueAndVerify(t *testing.T) {
	manager := NewSessionManager("secret", time.Hour)
	token, err := manager.Issue("admin@example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	claims, err := manager.Verify(token)
	if err != nil {
		t.Fatalf("verify token: %v", err)
	}
	if claims.Subject != "admin@example.com" || claims.Email != "admin@example.com" {
		t.Fatalf("unexpected claims: %+v", claims)
	}

	if _, err := manager.Verify(token + "tampered"); err == nil {
		t.Fatalf("expected verify error for tampered token")
	}
}

func TestSessionManager_ExpiredToken(t *testing.T) {
	manager := NewSessionManager("secret", time.Hour)
	manager.ttl = -time.Minute
	token, err := manager.Issue("admin@example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := manager.Verify(token); err == nil {
		t.Fatalf("expected verify error for expired token")
	}
}

func TestSessionManager_WrongSecret(t *testing.T) {
	token, err := NewSessionManager("secret-a", time.Hour).Issue("admin@example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := NewSessionManager("secret-b", time.Hour).Verify(token); err == nil {
		t.Fatalf("expected verify error under a different secret")
	}
}

func TestSessionManager_EmptySecret(t *testing.T) {
	manager := NewSessionManager("", time.Hour)
	if _, err := manager.Issue("admin@example.com"); err == nil {
		t.Fatalf("expected error when secret is empty")
	}
}

func TestSessionCookies(t *testing.T) {
	manager := NewSessionManager("secret", time.Hour)

	cookie := manager.Cookie("token-value")
	if cookie.Name != CookieName || cookie.Value != "token-value" {
		t.Fatalf("unexpected cookie: %+v", cookie)
	}
	if !cookie.HttpOnly || cookie.Path != "/" {
		t.Fatalf("session cookie must be HttpOnly at root path: %+v", cookie)
	}
	if cookie.MaxAge != 3600 {
		t.Fatalf("expected max-age 3600, got %d", cookie.MaxAge)
	}

	expired := manager.ExpiredCookie()
	if expired.MaxAge >= 0 || expired.Value != "" {
		t.Fatalf("expired cookie should clear the session: %+v", expired)
	}
}

package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	authpkg "github.com/octobees/leadsite/api/internal/auth"
	"github.com/octobees/leadsite/api/internal/service"
)

func newAuthHandler(t *testing.T) (*AuthHandler, *authpkg.SessionManager) {
	t.Helper()
	sessions := authpkg.NewSessionManager("test-secret", time.Hour)
	svc, err := service.NewAuthService("admin@example.com", "hunter22", sessions)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return NewAuthHandler(svc, sessions), sessions
}

func sessionCookie(rec *httptest.ResponseRecorder) *http.Cookie {
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == authpkg.CookieName {
			return cookie
		}
	}
	return nil
}

func TestAuthHandler_Login(t *testing.T) {
	t.Run("valid credentials set the session cookie", func(t *testing.T) {
		h, sessions := newAuthHandler(t)

		e := echo.New()
		rec := httptest.NewRecorder()
		c := e.NewContext(jsonRequest(http.MethodPost, "/api/login", `{"email":"admin@example.com","password":"hunter22"}`), rec)

		if err := h.Login(c); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}

		cookie := sessionCookie(rec)
		if cookie == nil {
			t.Fatalf("expected session cookie to be set")
		}
		if !cookie.HttpOnly || cookie.SameSite != http.SameSiteLaxMode {
			t.Fatalf("cookie must be HttpOnly and SameSite=Lax: %+v", cookie)
		}
		if _, err := sessions.Verify(cookie.Value); err != nil {
			t.Fatalf("cookie must hold a verifiable token: %v", err)
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		h, _ := newAuthHandler(t)

		e := echo.New()
		rec := httptest.NewRecorder()
		c := e.NewContext(jsonRequest(http.MethodPost, "/api/login", `{"email":"admin@example.com","password":"wrong"}`), rec)

		if err := h.Login(c); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
		if decodeBody(t, rec)["message"] != "Invalid credentials" {
			t.Fatalf("unexpected body: %s", rec.Body.String())
		}
		if sessionCookie(rec) != nil {
			t.Fatalf("failed login must not set a cookie")
		}
	})

	t.Run("missing fields", func(t *testing.T) {
		h, _ := newAuthHandler(t)

		for _, body := range []string{`{}`, `{"email":"admin@example.com"}`, `{"password":"hunter22"}`} {
			e := echo.New()
			rec := httptest.NewRecorder()
			c := e.NewContext(jsonRequest(http.MethodPost, "/api/login", body), rec)

			if err := h.Login(c); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("body %s: expected 400, got %d", body, rec.Code)
			}
			if decodeBody(t, rec)["message"] != "Missing credentials" {
				t.Fatalf("body %s: unexpected response %s", body, rec.Body.String())
			}
		}
	})
}

func TestAuthHandler_Logout(t *testing.T) {
	h, _ := newAuthHandler(t)

	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(jsonRequest(http.MethodPost, "/api/logout", ""), rec)

	if err := h.Logout(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	cookie := sessionCookie(rec)
	if cookie == nil {
		t.Fatalf("logout must overwrite the session cookie")
	}
	if cookie.Value != "" || cookie.MaxAge != -1 {
		t.Fatalf("logout cookie must be expired: %+v", cookie)
	}
}

package handler

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	authpkg "github.com/octobees/leadsite/api/internal/auth"
	"github.com/octobees/leadsite/api/internal/dto"
	"github.com/octobees/leadsite/api/internal/middleware"
	"github.com/octobees/leadsite/api/internal/service"
)

// AuthHandler exposes dashboard login and logout.
type AuthHandler struct {
	authService *service.AuthService
	sessions    *authpkg.SessionManager
}

// NewAuthHandler constructs an AuthHandler.
func NewAuthHandler(authService *service.AuthService, sessions *authpkg.SessionManager) *AuthHandler {
	return &AuthHandler{authService: authService, sessions: sessions}
}

// Login handles POST /api/login requests. Success sets the session cookie.
func (h *AuthHandler) Login(c echo.Context) error {
	var req dto.LoginRequest
	if err := c.Bind(&req); err != nil {
		return Fail(c, http.StatusBadRequest, "Missing credentials")
	}

	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" || req.Password == "" {
		return Fail(c, http.StatusBadRequest, "Missing credentials")
	}

	token, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			return Fail(c, http.StatusUnauthorized, "Invalid credentials")
		}
		log.Printf("request_id=%s login failed: %v", middleware.RequestIDFromContext(c), err)
		return Fail(c, http.StatusInternalServerError, "Internal server error")
	}

	c.SetCookie(h.sessions.Cookie(token))
	return OK(c, http.StatusOK, nil)
}

// Logout handles POST /api/logout requests and clears the session cookie.
func (h *AuthHandler) Logout(c echo.Context) error {
	c.SetCookie(h.sessions.ExpiredCookie())
	return OK(c, http.StatusOK, nil)
}

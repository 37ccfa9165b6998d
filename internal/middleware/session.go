package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	authpkg "github.com/octobees/leadsite/api/internal/auth"
)

// Session validates the dashboard session cookie and stores the operator's
// email in the request context. Requests without a valid session get 401.
func Session(manager *authpkg.SessionManager) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(authpkg.CookieName)
			if err != nil || cookie.Value == "" {
				return c.JSON(http.StatusUnauthorized, map[string]any{"ok": false, "message": "Authentication required"})
			}

			claims, err := manager.Verify(cookie.Value)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, map[string]any{"ok": false, "message": "Invalid session"})
			}

			c.Set(ContextKeyOperatorEmail, claims.Email)

			return next(c)
		}
	}
}

// SessionPage guards HTML views the way Session guards API routes, except
// that an unauthenticated browser is redirected to the login page instead
// of receiving a JSON 401.
func SessionPage(manager *authpkg.SessionManager, loginPath string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(authpkg.CookieName)
			if err != nil || cookie.Value == "" {
				return c.Redirect(http.StatusFound, loginPath)
			}

			claims, err := manager.Verify(cookie.Value)
			if err != nil {
				return c.Redirect(http.StatusFound, loginPath)
			}

			c.Set(ContextKeyOperatorEmail, claims.Email)

			return next(c)
		}
	}
}

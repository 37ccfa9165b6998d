package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Every JSON response carries an ok boolean; failures add a human-readable
// message and successes merge their payload alongside ok.

// Fail sends an error response in the shared envelope format.
func Fail(c echo.Context, status int, message string) error {
	if status == 0 {
		status = http.StatusInternalServerError
	}
	return c.JSON(status, map[string]any{"ok": false, "message": message})
}

// OK sends a successful response, merging extra fields into the envelope.
func OK(c echo.Context, status int, extra map[string]any) error {
	if status == 0 {
		status = http.StatusOK
	}
	payload := map[string]any{"ok": true}
	for key, value := range extra {
		payload[key] = value
	}
	return c.JSON(status, payload)
}

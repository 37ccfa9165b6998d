package handler

import (
	"path/filepath"

	"github.com/labstack/echo/v4"
)

// PagesHandler serves the marketing site's HTML views from the web root.
type PagesHandler struct {
	viewsDir string
}

// NewPagesHandler constructs a PagesHandler rooted at webRoot.
func NewPagesHandler(webRoot string) *PagesHandler {
	return &PagesHandler{viewsDir: filepath.Join(webRoot, "views")}
}

// View returns a handler serving the named HTML view.
func (h *PagesHandler) View(name string) echo.HandlerFunc {
	path := filepath.Join(h.viewsDir, name)
	return func(c echo.Context) error {
		return c.File(path)
	}
}

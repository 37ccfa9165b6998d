package handler

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/octobees/leadsite/api/internal/images"
	"github.com/octobees/leadsite/api/internal/middleware"
)

// ImagesHandler exposes the image-search proxy used by the marketing pages.
type ImagesHandler struct {
	searcher *images.Searcher
}

// NewImagesHandler constructs an ImagesHandler.
func NewImagesHandler(searcher *images.Searcher) *ImagesHandler {
	return &ImagesHandler{searcher: searcher}
}

// Get handles GET /api/images?q=… requests.
func (h *ImagesHandler) Get(c echo.Context) error {
	query := strings.TrimSpace(c.QueryParam("q"))
	if query == "" {
		return Fail(c, http.StatusBadRequest, "Missing q")
	}

	result, err := h.searcher.ImageURL(c.Request().Context(), query)
	if err != nil {
		if errors.Is(err, images.ErrNoResults) {
			return Fail(c, http.StatusNotFound, "No image found")
		}
		log.Printf("request_id=%s image fetch failed: %v", middleware.RequestIDFromContext(c), err)
		return Fail(c, http.StatusInternalServerError, "Image fetch failed")
	}

	payload := map[string]any{"url": result.URL}
	if result.Cached {
		payload["cached"] = true
	}
	return OK(c, http.StatusOK, payload)
}

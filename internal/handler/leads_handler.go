package handler

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/octobees/leadsite/api/internal/dto"
	"github.com/octobees/leadsite/api/internal/entity"
	"github.com/octobees/leadsite/api/internal/middleware"
	"github.com/octobees/leadsite/api/internal/repository"
	"github.com/octobees/leadsite/api/internal/service"
)

// LeadsHandler exposes the public intake endpoint and the dashboard lead
// endpoints.
type LeadsHandler struct {
	service *service.LeadsService
}

// NewLeadsHandler creates a new handler instance.
func NewLeadsHandler(service *service.LeadsService) *LeadsHandler {
	return &LeadsHandler{service: service}
}

// Create handles POST /api/leads requests from the public contact form.
func (h *LeadsHandler) Create(c echo.Context) error {
	var req dto.CreateLeadRequest
	if err := c.Bind(&req); err != nil {
		return Fail(c, http.StatusBadRequest, "Invalid payload")
	}

	id, err := h.service.Submit(c.Request().Context(), req)
	if err != nil {
		var vErr service.ValidationError
		if errors.As(err, &vErr) {
			return Fail(c, http.StatusBadRequest, vErr.Message)
		}
		log.Printf("request_id=%s create lead failed: %v", middleware.RequestIDFromContext(c), err)
		return Fail(c, http.StatusInternalServerError, "Internal server error")
	}

	return OK(c, http.StatusCreated, map[string]any{"id": id})
}

// List handles GET /api/leads with status/search filters and pagination.
func (h *LeadsHandler) List(c echo.Context) error {
	filter := dto.ListFilter{
		Status:   strings.TrimSpace(c.QueryParam("status")),
		Search:   strings.TrimSpace(c.QueryParam("search")),
		Page:     parseIntDefault(c.QueryParam("page"), 1),
		PageSize: parseIntDefault(c.QueryParam("pageSize"), 10),
	}

	page, err := h.service.List(c.Request().Context(), filter)
	if err != nil {
		log.Printf("request_id=%s list leads failed: %v", middleware.RequestIDFromContext(c), err)
		return Fail(c, http.StatusInternalServerError, "Internal server error")
	}

	return OK(c, http.StatusOK, map[string]any{
		"items":    page.Items,
		"total":    page.Total,
		"page":     page.Page,
		"pageSize": page.PageSize,
	})
}

// Summary handles GET /api/leads/summary.
func (h *LeadsHandler) Summary(c echo.Context) error {
	summary, err := h.service.Summary(c.Request().Context())
	if err != nil {
		log.Printf("request_id=%s lead summary failed: %v", middleware.RequestIDFromContext(c), err)
		return Fail(c, http.StatusInternalServerError, "Internal server error")
	}
	return OK(c, http.StatusOK, map[string]any{"summary": summary})
}

// Campaigns handles GET /api/leads/campaigns.
func (h *LeadsHandler) Campaigns(c echo.Context) error {
	campaigns, err := h.service.Campaigns(c.Request().Context())
	if err != nil {
		log.Printf("request_id=%s campaign breakdown failed: %v", middleware.RequestIDFromContext(c), err)
		return Fail(c, http.StatusInternalServerError, "Internal server error")
	}
	return OK(c, http.StatusOK, map[string]any{"campaigns": campaigns})
}

// Detail handles GET /api/leads/:id.
func (h *LeadsHandler) Detail(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		// a non-numeric id can never match a row
		return Fail(c, http.StatusNotFound, "Not found")
	}

	lead, err := h.service.Detail(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrLeadNotFound) {
			return Fail(c, http.StatusNotFound, "Not found")
		}
		log.Printf("request_id=%s lead detail failed: %v", middleware.RequestIDFromContext(c), err)
		return Fail(c, http.StatusInternalServerError, "Internal server error")
	}

	return OK(c, http.StatusOK, map[string]any{"item": lead})
}

// UpdateStatus handles PATCH /api/leads/:id/status.
func (h *LeadsHandler) UpdateStatus(c echo.Context) error {
	var req dto.StatusUpdateRequest
	if err := c.Bind(&req); err != nil {
		return Fail(c, http.StatusBadRequest, "Invalid status")
	}

	// status validity is checked before the id so a bad payload gets 400
	// even when the id could never match
	if !entity.Status(req.Status).Valid() {
		return Fail(c, http.StatusBadRequest, "Invalid status")
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return Fail(c, http.StatusNotFound, "Not found")
	}

	if err := h.service.UpdateStatus(c.Request().Context(), id, req.Status); err != nil {
		var vErr service.ValidationError
		if errors.As(err, &vErr) {
			return Fail(c, http.StatusBadRequest, vErr.Message)
		}
		if errors.Is(err, repository.ErrLeadNotFound) {
			return Fail(c, http.StatusNotFound, "Not found")
		}
		log.Printf("request_id=%s update lead status failed: %v", middleware.RequestIDFromContext(c), err)
		return Fail(c, http.StatusInternalServerError, "Internal server error")
	}

	return OK(c, http.StatusOK, nil)
}

func parseIntDefault(input string, fallback int) int {
	if input == "" {
		return fallback
	}
	if value, err := strconv.Atoi(input); err == nil {
		return value
	}
	return fallback
}

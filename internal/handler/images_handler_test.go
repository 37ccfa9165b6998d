package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/octobees/leadsite/api/internal/images"
)

type stubImageFetcher struct {
	url   string
	err   error
	calls int
}

func (s *stubImageFetcher) FetchImageURL(ctx context.Context, query string) (string, error) {
	s.calls++
	if s.err != nil {
		return "", s.err
	}
	return s.url, nil
}

func TestImagesHandler_Get(t *testing.T) {
	t.Run("missing q", func(t *testing.T) {
		h := NewImagesHandler(images.NewSearcher(&stubImageFetcher{}, time.Hour))

		e := echo.New()
		rec := httptest.NewRecorder()
		c := e.NewContext(jsonRequest(http.MethodGet, "/api/images", ""), rec)

		if err := h.Get(c); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		if decodeBody(t, rec)["message"] != "Missing q" {
			t.Fatalf("unexpected body: %s", rec.Body.String())
		}
	})

	t.Run("no results", func(t *testing.T) {
		fetcher := &stubImageFetcher{err: images.ErrNoResults}
		h := NewImagesHandler(images.NewSearcher(fetcher, time.Hour))

		e := echo.New()
		rec := httptest.NewRecorder()
		c := e.NewContext(jsonRequest(http.MethodGet, "/api/images?q=unicorn", ""), rec)

		if err := h.Get(c); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
		if decodeBody(t, rec)["message"] != "No image found" {
			t.Fatalf("unexpected body: %s", rec.Body.String())
		}
	})

	t.Run("upstream failure", func(t *testing.T) {
		fetcher := &stubImageFetcher{err: errors.New("quota exceeded")}
		h := NewImagesHandler(images.NewSearcher(fetcher, time.Hour))

		e := echo.New()
		rec := httptest.NewRecorder()
		c := e.NewContext(jsonRequest(http.MethodGet, "/api/images?q=office", ""), rec)

		if err := h.Get(c); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if rec.Code != http.StatusInternalServerError {
			t.Fatalf("expected 500, got %d", rec.Code)
		}
		if decodeBody(t, rec)["message"] != "Image fetch failed" {
			t.Fatalf("unexpected body: %s", rec.Body.String())
		}
	})

	t.Run("second lookup serves from cache", func(t *testing.T) {
		fetcher := &stubImageFetcher{url: "https://img.example.com/office.jpg"}
		h := NewImagesHandler(images.NewSearcher(fetcher, time.Hour))
		e := echo.New()

		rec := httptest.NewRecorder()
		c := e.NewContext(jsonRequest(http.MethodGet, "/api/images?q=office", ""), rec)
		if err := h.Get(c); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		first := decodeBody(t, rec)
		if first["url"] != "https://img.example.com/office.jpg" {
			t.Fatalf("unexpected body: %v", first)
		}
		if _, present := first["cached"]; present {
			t.Fatalf("fresh fetch must not be flagged cached: %v", first)
		}

		rec = httptest.NewRecorder()
		c = e.NewContext(jsonRequest(http.MethodGet, "/api/images?q=office", ""), rec)
		if err := h.Get(c); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		second := decodeBody(t, rec)
		if second["cached"] != true {
			t.Fatalf("repeat lookup must be served from cache: %v", second)
		}
		if fetcher.calls != 1 {
			t.Fatalf("expected a single upstream call, got %d", fetcher.calls)
		}
	})
}

package images

import (
	"context"
	"errors"
	"testing"
	"time"
)

type stubFetcher struct {
	calls int
	url   string
	err   error
}

func (f *stubFetcher) FetchImageURL(ctx context.Context, query string) (string, error) {
	f.calls++
	return f.url, f.err
}

func TestSearcher_CachesPerQuery(t *testing.T) {
	fetcher := &stubFetcher{url: "https://img.example.com/a.jpg"}
	current := time.Unix(1_700_000_000, 0)
	searcher := NewSearcher(fetcher, time.Hour, WithClock(func() time.Time { return current }))

	first, err := searcher.ImageURL(context.Background(), "office")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first.Cached || first.URL != "https://img.example.com/a.jpg" {
		t.Fatalf("unexpected first result: %+v", first)
	}

	second, err := searcher.ImageURL(context.Background(), "office")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !second.Cached {
		t.Fatalf("expected cache hit within ttl")
	}
	if fetcher.calls != 1 {
		t.Fatalf("expected one upstream call, got %d", fetcher.calls)
	}

	// a different query misses
	if _, err := searcher.ImageURL(context.Background(), "team"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fetcher.calls != 2 {
		t.Fatalf("expected second upstream call for new query, got %d", fetcher.calls)
	}
}

func TestSearcher_CacheExpires(t *testing.T) {
	fetcher := &stubFetcher{url: "https://img.example.com/a.jpg"}
	current := time.Unix(1_700_000_000, 0)
	searcher := NewSearcher(fetcher, time.Hour, WithClock(func() time.Time { return current }))

	if _, err := searcher.ImageURL(context.Background(), "office"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	current = current.Add(61 * time.Minute)
	res, err := searcher.ImageURL(context.Background(), "office")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Cached {
		t.Fatalf("expected stale entry to be refetched")
	}
	if fetcher.calls != 2 {
		t.Fatalf("expected refetch after ttl, got %d calls", fetcher.calls)
	}
}

func TestSearcher_ErrorsAreNotCached(t *testing.T) {
	fetcher := &stubFetcher{err: ErrNoResults}
	searcher := NewSearcher(fetcher, time.Hour)

	if _, err := searcher.ImageURL(context.Background(), "missing"); !errors.Is(err, ErrNoResults) {
		t.Fatalf("expected ErrNoResults, got %v", err)
	}

	fetcher.err = nil
	fetcher.url = "https://img.example.com/found.jpg"
	res, err := searcher.ImageURL(context.Background(), "missing")
	if err != nil {
		t.Fatalf("unexpected error after upstream recovers: %v", err)
	}
	if res.Cached || res.URL != "https://img.example.com/found.jpg" {
		t.Fatalf("unexpected result: %+v", res)
	}
}

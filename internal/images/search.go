// Package images proxies the marketing pages' image lookups through Google
// Custom Search, with a small in-memory cache to keep API usage down.
package images

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"google.golang.org/api/customsearch/v1"
	"google.golang.org/api/option"
)

// ErrNoResults indicates the upstream search returned no images for a query.
var ErrNoResults = errors.New("no image results")

// Fetcher retrieves the best image URL for a query from an upstream source.
type Fetcher interface {
	FetchImageURL(ctx context.Context, query string) (string, error)
}

// GoogleFetcher queries the Google Custom Search API.
type GoogleFetcher struct {
	svc *customsearch.Service
	cx  string
}

// NewGoogleFetcher builds an API-key authenticated Custom Search client.
func NewGoogleFetcher(ctx context.Context, apiKey, cx string) (*GoogleFetcher, error) {
	if apiKey == "" || cx == "" {
		return nil, errors.New("google api key and cse id must not be empty")
	}
	svc, err := customsearch.NewService(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("create custom search service: %w", err)
	}
	return &GoogleFetcher{svc: svc, cx: cx}, nil
}

// FetchImageURL returns the first image hit for the query.
func (f *GoogleFetcher) FetchImageURL(ctx context.Context, query string) (string, error) {
	resp, err := f.svc.Cse.List().
		Context(ctx).
		Cx(f.cx).
		Q(query).
		SearchType("image").
		Num(3).
		Do()
	if err != nil {
		return "", fmt.Errorf("custom search: %w", err)
	}
	if len(resp.Items) == 0 {
		return "", ErrNoResults
	}
	return resp.Items[0].Link, nil
}

type cacheEntry struct {
	url     string
	fetched time.Time
}

// Result is a resolved image URL plus whether it came from the cache.
type Result struct {
	URL    string
	Cached bool
}

// Searcher resolves image queries through a Fetcher, caching hits per query
// for a fixed TTL. The cache is process-local and never persisted.
type Searcher struct {
	fetcher Fetcher
	ttl     time.Duration

	mu    sync.Mutex
	cache map[string]cacheEntry
	now   func() time.Time
}

// Option adjusts searcher construction.
type Option func(*Searcher)

// WithClock overrides the time source, used by tests.
func WithClock(now func() time.Time) Option {
	return func(s *Searcher) {
		if now != nil {
			s.now = now
		}
	}
}

// NewSearcher wraps a fetcher with the query cache.
func NewSearcher(fetcher Fetcher, ttl time.Duration, opts ...Option) *Searcher {
	if ttl <= 0 {
		ttl = time.Hour
	}
	s := &Searcher{
		fetcher: fetcher,
		ttl:     ttl,
		cache:   make(map[string]cacheEntry),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ImageURL returns a cached URL when fresh, otherwise asks the fetcher and
// caches the answer. Misses and upstream errors are not cached.
func (s *Searcher) ImageURL(ctx context.Context, query string) (Result, error) {
	s.mu.Lock()
	entry, ok := s.cache[query]
	fresh := ok && s.now().Sub(entry.fetched) < s.ttl
	s.mu.Unlock()

	if fresh {
		return Result{URL: entry.url, Cached: true}, nil
	}

	url, err := s.fetcher.FetchImageURL(ctx, query)
	if err != nil {
		return Result{}, err
	}

	s.mu.Lock()
	s.cache[query] = cacheEntry{url: url, fetched: s.now()}
	s.mu.Unlock()

	return Result{URL: url}, nil
}

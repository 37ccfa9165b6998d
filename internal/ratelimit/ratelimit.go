// Package ratelimit provides the per-client sliding-window limiter guarding
// the public intake endpoint.
package ratelimit

import (
	"sync"
	"time"
)

// SlidingWindow counts requests per client key over a trailing window.
// State is process-local and reset on restart. Keys are never evicted while
// idle; the map only grows with the number of distinct clients seen.
type SlidingWindow struct {
	mu     sync.Mutex
	window time.Duration
	limit  int
	hits   map[string][]time.Time
	now    func() time.Time
}

// Option adjusts limiter construction.
type Option func(*SlidingWindow)

// WithClock overrides the time source, used by tests.
func WithClock(now func() time.Time) Option {
	return func(l *SlidingWindow) {
		if now != nil {
			l.now = now
		}
	}
}

// NewSlidingWindow builds a limiter allowing at most limit requests per key
// within any trailing window.
func NewSlidingWindow(limit int, window time.Duration, opts ...Option) *SlidingWindow {
	l := &SlidingWindow{
		window: window,
		limit:  limit,
		hits:   make(map[string][]time.Time),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Allow reports whether the given key may make another request now. The
// prune-count-append sequence runs under the lock so concurrent requests
// from one key cannot under- or over-count.
func (l *SlidingWindow) Allow(key string) bool {
	if l.limit <= 0 || l.window <= 0 {
		return true
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	cutoff := now.Add(-l.window)

	recent := l.hits[key][:0]
	for _, ts := range l.hits[key] {
		if ts.After(cutoff) {
			recent = append(recent, ts)
		}
	}

	if len(recent) >= l.limit {
		l.hits[key] = recent
		return false
	}

	l.hits[key] = append(recent, now)
	return true
}

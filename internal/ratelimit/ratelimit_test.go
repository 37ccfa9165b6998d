package ratelimit

import (
	"sync"
	"testing"
	"time"
)

func TestSlidingWindow_LimitWithinWindow(t *testing.T) {
	current := time.Unix(1_700_000_000, 0)
	limiter := NewSlidingWindow(20, time.Minute, WithClock(func() time.Time { return current }))

	for i := 0; i < 20; i++ {
		if !limiter.Allow("1.2.3.4") {
			t.Fatalf("request %d should be allowed", i+1)
		}
		current = current.Add(time.Second)
	}

	if limiter.Allow("1.2.3.4") {
		t.Fatalf("21st request within the window should be rejected")
	}

	// other keys are counted independently
	if !limiter.Allow("5.6.7.8") {
		t.Fatalf("different key should not share the window")
	}
}

func TestSlidingWindow_ResetsAfterIdleWindow(t *testing.T) {
	current := time.Unix(1_700_000_000, 0)
	limiter := NewSlidingWindow(20, time.Minute, WithClock(func() time.Time { return current }))

	for i := 0; i < 20; i++ {
		limiter.Allow("client")
	}
	if limiter.Allow("client") {
		t.Fatalf("expected rejection at the limit")
	}

	current = current.Add(61 * time.Second)
	for i := 0; i < 20; i++ {
		if !limiter.Allow("client") {
			t.Fatalf("request %d after idle window should be allowed", i+1)
		}
	}
	if limiter.Allow("client") {
		t.Fatalf("limit should apply again after refill")
	}
}

func TestSlidingWindow_TrailingWindowSlides(t *testing.T) {
	current := time.Unix(1_700_000_000, 0)
	limiter := NewSlidingWindow(2, time.Minute, WithClock(func() time.Time { return current }))

	limiter.Allow("k") // t+0
	current = current.Add(30 * time.Second)
	limiter.Allow("k") // t+30
	if limiter.Allow("k") {
		t.Fatalf("third request at t+30 should be rejected")
	}

	// t+61: the first hit has aged out, one slot frees up
	current = current.Add(31 * time.Second)
	if !limiter.Allow("k") {
		t.Fatalf("request after oldest hit expired should be allowed")
	}
	if limiter.Allow("k") {
		t.Fatalf("window should be full again")
	}
}

func TestSlidingWindow_ZeroConfigAllowsAll(t *testing.T) {
	limiter := NewSlidingWindow(0, 0)
	for i := 0; i < 100; i++ {
		if !limiter.Allow("any") {
			t.Fatalf("disabled limiter must always allow")
		}
	}
}

func TestSlidingWindow_ConcurrentSameKey(t *testing.T) {
	limiter := NewSlidingWindow(50, time.Minute)

	var wg sync.WaitGroup
	allowed := make(chan bool, 200)
	for i := 0; i < 200; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			allowed <- limiter.Allow("shared")
		}()
	}
	wg.Wait()
	close(allowed)

	count := 0
	for ok := range allowed {
		if ok {
			count++
		}
	}
	if count != 50 {
		t.Fatalf("expected exactly 50 allowed under contention, got %d", count)
	}
}

package ratelimit

import (
	"sync"
	"testing"
	"time"
)

// fakeClock drives the limiter without sleeping.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func TestAllow_UnderLimit(t *testing.T) {
	l := New(3, time.Minute)

	for i := 0; i < 3; i++ {
		ok, _ := l.Allow("user1")
		if !ok {
			t.Fatalf("request %d rejected, want allowed", i+1)
		}
	}
}

func TestAllow_RejectsAtLimit(t *testing.T) {
	clock := newFakeClock()
	l := New(2, time.Minute)
	l.now = clock.Now

	l.Allow("user1")
	clock.Advance(10 * time.Second)
	l.Allow("user1")

	ok, retryAfter := l.Allow("user1")
	if ok {
		t.Fatal("third request allowed, want rejected")
	}
	// Oldest request is 10s old, so the window frees up in 50s.
	if retryAfter != 50*time.Second {
		t.Errorf("retryAfter = %v, want %v", retryAfter, 50*time.Second)
	}
}

func TestAllow_WindowExpiry(t *testing.T) {
	clock := newFakeClock()
	l := New(1, time.Minute)
	l.now = clock.Now

	if ok, _ := l.Allow("user1"); !ok {
		t.Fatal("first request rejected")
	}
	if ok, _ := l.Allow("user1"); ok {
		t.Fatal("second request allowed within window")
	}

	clock.Advance(time.Minute + time.Second)

	if ok, _ := l.Allow("user1"); !ok {
		t.Fatal("request rejected after window expired")
	}
}

func TestAllow_PerKeyIsolation(t *testing.T) {
	l := New(1, time.Minute)

	if ok, _ := l.Allow("user1"); !ok {
		t.Fatal("user1 first request rejected")
	}
	if ok, _ := l.Allow("user2"); !ok {
		t.Fatal("user2 penalized for user1 traffic")
	}
	if ok, _ := l.Allow("user1"); ok {
		t.Fatal("user1 second request allowed")
	}
}

func TestReset(t *testing.T) {
	l := New(1, time.Minute)

	l.Allow("user1")
	if ok, _ := l.Allow("user1"); ok {
		t.Fatal("second request allowed before reset")
	}

	l.Reset("user1")

	if ok, _ := l.Allow("user1"); !ok {
		t.Fatal("request rejected after reset")
	}
	if l.Len() != 1 {
		t.Errorf("Len() = %d, want 1", l.Len())
	}
}

func TestAllow_ConcurrentNeverOvershoots(t *testing.T) {
	const max = 50
	l := New(max, time.Minute)

	var wg sync.WaitGroup
	var mu sync.Mutex
	allowed := 0

	for i := 0; i < 2*max; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if ok, _ := l.Allow("shared"); ok {
				mu.Lock()
				allowed++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if allowed != max {
		t.Errorf("allowed = %d, want exactly %d", allowed, max)
	}
}

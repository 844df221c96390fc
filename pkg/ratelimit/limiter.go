// Package ratelimit implements a sliding-window request limiter keyed
// by actor identity.
package ratelimit

import (
	"sync"
	"time"
)

// Limiter counts requests per key within a trailing window. All checks
// for a key are serialized, so concurrent callers can never both slip
// past the limit.
type Limiter struct {
	mu       sync.Mutex
	requests map[string][]time.Time
	max      int
	window   time.Duration
	now      func() time.Time
}

// New creates a limiter allowing max requests per key within window.
func New(max int, window time.Duration) *Limiter {
	return &Limiter{
		requests: make(map[string][]time.Time),
		max:      max,
		window:   window,
		now:      time.Now,
	}
}

// Allow records a request for key if it is under the limit. On
// rejection it returns false and the duration after which the oldest
// counted request falls out of the window.
func (l *Limiter) Allow(key string) (bool, time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	cutoff := now.Add(-l.window)

	times := l.requests[key]
	fresh := times[:0]
	for _, t := range times {
		if t.After(cutoff) {
			fresh = append(fresh, t)
		}
	}

	if len(fresh) >= l.max {
		retryAfter := l.window
		if len(fresh) > 0 {
			retryAfter = l.window - now.Sub(fresh[0])
		}
		l.requests[key] = fresh
		return false, retryAfter
	}

	l.requests[key] = append(fresh, now)
	return true, 0
}

// Reset clears all recorded requests for a key.
func (l *Limiter) Reset(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.requests, key)
}

// Len returns the number of tracked keys.
func (l *Limiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.requests)
}

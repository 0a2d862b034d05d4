// Package ratelimit implements a per-key fixed-window request limiter.
package ratelimit

import (
	"sync"
	"time"
)

// Limiter caps requests per key to a fixed limit within a fixed window.
// The window resets when the first request after its end arrives.
type Limiter struct {
	mu      sync.Mutex
	limit   int
	window  time.Duration
	entries map[string]*entry

	lastSweep time.Time
	now       func() time.Time
}

type entry struct {
	count int
	start time.Time
}

// New creates a limiter admitting at most limit requests per key per window.
func New(limit int, window time.Duration) *Limiter {
	if limit <= 0 {
		limit = 5
	}
	if window <= 0 {
		window = time.Minute
	}
	return &Limiter{
		limit:   limit,
		window:  window,
		entries: make(map[string]*entry),
		now:     time.Now,
	}
}

// Allow records a request for key and reports whether it is within the limit.
func (l *Limiter) Allow(key string) bool {
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	l.sweep(now)

	e, ok := l.entries[key]
	if !ok || now.Sub(e.start) >= l.window {
		l.entries[key] = &entry{count: 1, start: now}
		return true
	}

	if e.count >= l.limit {
		return false
	}

	e.count++
	return true
}

// sweep drops entries whose window has long passed. Runs at most once per
// window so Allow stays cheap. Caller must hold the mutex.
func (l *Limiter) sweep(now time.Time) {
	if now.Sub(l.lastSweep) < l.window {
		return
	}
	l.lastSweep = now

	for key, e := range l.entries {
		if now.Sub(e.start) >= l.window {
			delete(l.entries, key)
		}
	}
}

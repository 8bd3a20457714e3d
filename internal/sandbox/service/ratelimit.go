package service

import (
	"errors"
	"sync"
	"time"
)

// Defaults for the mock service's request window.
const (
	DefaultRateLimit  = 10
	DefaultRateWindow = time.Minute
)

var ErrRateLimited = errors.New("rate_limited")

// FixedWindowLimiter guards every mock-service operation with a single
// process-wide request counter. The window resets only when a request
// arrives after the window has elapsed, so bursts straddling a window
// boundary are accepted.
type FixedWindowLimiter struct {
	mu          sync.Mutex
	limit       int
	window      time.Duration
	windowStart time.Time
	count       int

	now func() time.Time // overridable in tests
}

// NewFixedWindowLimiter builds a limiter allowing limit requests per window.
// Non-positive arguments fall back to the defaults.
func NewFixedWindowLimiter(limit int, window time.Duration) *FixedWindowLimiter {
	if limit <= 0 {
		limit = DefaultRateLimit
	}
	if window <= 0 {
		window = DefaultRateWindow
	}
	return &FixedWindowLimiter{
		limit:  limit,
		window: window,
		now:    time.Now,
	}
}

// Allow counts the current request against the window and reports whether it
// is admitted. The first call after the window elapses starts a fresh window.
func (l *FixedWindowLimiter) Allow() bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if now.Sub(l.windowStart) > l.window {
		l.windowStart = now
		l.count = 0
	}

	l.count++
	return l.count <= l.limit
}

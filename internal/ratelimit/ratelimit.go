// Package ratelimit provides a fixed-window request counter keyed by
// client identity. Limiters are constructed explicitly and injected;
// there is no package-level shared state.
package ratelimit

import (
	"sync"
	"time"
)

// #region limiter

// Defaults for NewLimiter when given non-positive arguments.
const (
	DefaultLimit            = 30
	DefaultWindow           = time.Minute
	DefaultCleanupThreshold = 1000
)

type window struct {
	start time.Time
	count int
}

// Limiter counts requests per client in fixed windows. Safe for
// concurrent use.
type Limiter struct {
	mu               sync.Mutex
	limit            int
	window           time.Duration
	cleanupThreshold int
	clients          map[string]*window
}

// NewLimiter builds a limiter allowing limit requests per client per
// window. When the tracked-client count exceeds cleanupThreshold,
// expired windows are dropped on the next call.
func NewLimiter(limit int, windowSize time.Duration, cleanupThreshold int) *Limiter {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if windowSize <= 0 {
		windowSize = DefaultWindow
	}
	if cleanupThreshold <= 0 {
		cleanupThreshold = DefaultCleanupThreshold
	}
	return &Limiter{
		limit:            limit,
		window:           windowSize,
		cleanupThreshold: cleanupThreshold,
		clients:          make(map[string]*window),
	}
}

// #endregion limiter

// #region allow

// Allow reports whether a request from clientID at the given instant is
// within the limit, counting it if so. A new window starts when the
// current one has elapsed.
func (l *Limiter) Allow(clientID string, now time.Time) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if len(l.clients) > l.cleanupThreshold {
		l.cleanupLocked(now)
	}

	w, ok := l.clients[clientID]
	if !ok || now.Sub(w.start) >= l.window {
		l.clients[clientID] = &window{start: now, count: 1}
		return true
	}
	if w.count >= l.limit {
		return false
	}
	w.count++
	return true
}

// Remaining reports how many requests clientID has left in its current
// window.
func (l *Limiter) Remaining(clientID string, now time.Time) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	w, ok := l.clients[clientID]
	if !ok || now.Sub(w.start) >= l.window {
		return l.limit
	}
	remaining := l.limit - w.count
	if remaining < 0 {
		return 0
	}
	return remaining
}

// cleanupLocked drops clients whose window has elapsed. Caller holds mu.
func (l *Limiter) cleanupLocked(now time.Time) {
	for id, w := range l.clients {
		if now.Sub(w.start) >= l.window {
			delete(l.clients, id)
		}
	}
}

// #endregion allow

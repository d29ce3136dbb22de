package ratelimit

import (
	"context"
	"sync"
	"time"
)

// Limiter tracks request counts in fixed windows per key.
type Limiter struct {
	mu     sync.Mutex
	limit  int
	window time.Duration
	limits map[string]*window
	now    func() time.Time
}

type window struct {
	count     int
	windowEnd time.Time
}

// NewLimiter allows limit requests per key in every window.
func NewLimiter(limit int, windowDuration time.Duration) *Limiter {
	return &Limiter{
		limit:  limit,
		window: windowDuration,
		limits: make(map[string]*window),
		now:    time.Now,
	}
}

// Allow reports whether the request is within the limit. When it is not,
// retryAfter is the time left in the current window.
func (l *Limiter) Allow(key string) (allowed bool, retryAfter time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()

	win := l.limits[key]
	if win == nil || now.After(win.windowEnd) {
		l.limits[key] = &window{
			count:     1,
			windowEnd: now.Add(l.window),
		}
		return true, 0
	}

	if win.count < l.limit {
		win.count++
		return true, 0
	}

	return false, win.windowEnd.Sub(now)
}

// Len is the number of keys currently tracked.
func (l *Limiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.limits)
}

// Sweep evicts windows that ended more than grace ago.
func (l *Limiter) Sweep(grace time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	for key, win := range l.limits {
		if now.After(win.windowEnd.Add(grace)) {
			delete(l.limits, key)
		}
	}
}

// StartCleanup periodically evicts stale windows until ctx is done.
func (l *Limiter) StartCleanup(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				l.Sweep(5 * time.Minute)
			}
		}
	}()
}

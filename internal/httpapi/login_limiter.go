package httpapi

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// loginLimiter is a per-key token bucket. Idle keys are evicted once their
// bucket would be full again.
type loginLimiter struct {
	mu      sync.Mutex
	limit   rate.Limit
	burst   int
	idle    time.Duration
	entries map[string]*limiterEntry
	calls   int
}

type limiterEntry struct {
	lim      *rate.Limiter
	lastSeen time.Time
}

// newLoginLimiter allows bursts of 10 attempts, refilled at one per 30s.
func newLoginLimiter() *loginLimiter {
	return newLimiter(rate.Every(30*time.Second), 10)
}

func newLimiter(limit rate.Limit, burst int) *loginLimiter {
	idle := time.Hour
	if limit > 0 {
		idle = time.Duration(float64(burst) / float64(limit) * float64(time.Second))
	}
	return &loginLimiter{
		limit:   limit,
		burst:   burst,
		idle:    idle,
		entries: make(map[string]*limiterEntry),
	}
}

func (l *loginLimiter) Allow(key string, now time.Time) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.calls++
	if l.calls%1024 == 0 {
		l.sweep(now)
	}

	e, ok := l.entries[key]
	if !ok {
		e = &limiterEntry{lim: rate.NewLimiter(l.limit, l.burst)}
		l.entries[key] = e
	}
	e.lastSeen = now
	return e.lim.AllowN(now, 1)
}

func (l *loginLimiter) sweep(now time.Time) {
	for k, e := range l.entries {
		if now.Sub(e.lastSeen) > l.idle {
			delete(l.entries, k)
		}
	}
}

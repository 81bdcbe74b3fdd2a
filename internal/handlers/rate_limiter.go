package handlers

import (
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/peakform/storefront-api/internal/platform/auth"
	"github.com/peakform/storefront-api/internal/platform/httpx"
)

type rateLimiter interface {
	Allow(key string) bool
}

// simpleRateLimiter admits at most limit mutations per key within a fixed
// window. State is process-local, so a multi-instance deployment throttles
// per instance; good enough to damp abuse of guest sessions.
type simpleRateLimiter struct {
	limit  int
	window time.Duration
	clock  func() time.Time
	mu     sync.Mutex
	seen   map[string]rateWindow
}

type rateWindow struct {
	count   int
	resetAt time.Time
}

func newSimpleRateLimiter(limit int, window time.Duration, clock func() time.Time) rateLimiter {
	if limit <= 0 || window <= 0 {
		return nil
	}
	if clock == nil {
		clock = time.Now
	}
	return &simpleRateLimiter{
		limit:  limit,
		window: window,
		clock:  clock,
		seen:   make(map[string]rateWindow),
	}
}

func (l *simpleRateLimiter) Allow(key string) bool {
	if l == nil {
		return true
	}
	key = strings.TrimSpace(key)
	if key == "" {
		key = "anonymous"
	}
	now := l.clock()

	l.mu.Lock()
	defer l.mu.Unlock()

	window, ok := l.seen[key]
	if !ok || now.After(window.resetAt) {
		l.seen[key] = rateWindow{count: 1, resetAt: now.Add(l.window)}
		l.pruneLocked(now)
		return true
	}
	if window.count >= l.limit {
		return false
	}
	window.count++
	l.seen[key] = window
	return true
}

func (l *simpleRateLimiter) pruneLocked(now time.Time) {
	for key, window := range l.seen {
		if now.After(window.resetAt) {
			delete(l.seen, key)
		}
	}
}

// StoreMutationRateLimit returns middleware that throttles write requests per
// shopper session. Reads pass through untouched.
func StoreMutationRateLimit(limit int, window time.Duration) func(http.Handler) http.Handler {
	limiter := newSimpleRateLimiter(limit, window, nil)
	return func(next http.Handler) http.Handler {
		if limiter == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodGet, http.MethodHead, http.MethodOptions:
				next.ServeHTTP(w, r)
				return
			}
			key := auth.ShopperIDFromContext(r.Context())
			if key == "" {
				key = r.RemoteAddr
			}
			if !limiter.Allow(key) {
				httpx.WriteError(r.Context(), w, httpx.NewError("rate_limited", "too many requests; slow down", http.StatusTooManyRequests))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

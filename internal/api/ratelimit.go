package api

import (
	"net"
	"net/http"
	"sync"

	"golang.org/x/time/rate"

	"github.com/sfares/newsroom-be/internal/api/handlers"
	"github.com/sfares/newsroom-be/internal/apperrors"
)

// RateLimiter implements per-IP rate limiting for credential endpoints.
type RateLimiter struct {
	limiters map[string]*rate.Limiter
	mu       sync.RWMutex
	limit    rate.Limit
	burst    int
}

// NewRateLimiter allows limitPerMinute requests per client IP with the same
// value as burst.
func NewRateLimiter(limitPerMinute int) *RateLimiter {
	return &RateLimiter{
		limiters: make(map[string]*rate.Limiter),
		limit:    rate.Limit(limitPerMinute) / 60,
		burst:    limitPerMinute,
	}
}

func (rl *RateLimiter) getLimiter(ip string) *rate.Limiter {
	rl.mu.RLock()
	limiter, exists := rl.limiters[ip]
	rl.mu.RUnlock()

	if !exists {
		rl.mu.Lock()
		// Double-check after acquiring write lock
		limiter, exists = rl.limiters[ip]
		if !exists {
			limiter = rate.NewLimiter(rl.limit, rl.burst)
			rl.limiters[ip] = limiter
		}
		rl.mu.Unlock()
	}
	return limiter
}

// Middleware rejects requests beyond the per-IP budget with 429.
func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := r.RemoteAddr
		if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
			ip = host
		}

		if !rl.getLimiter(ip).Allow() {
			handlers.RespondError(w, r, &apperrors.Error{
				Status:  http.StatusTooManyRequests,
				Message: "too many requests, slow down",
			})
			return
		}
		next.ServeHTTP(w, r)
	})
}

package middleware

import (
	"net/http"
	"time"

	"careercompass/internal/cache"
	"careercompass/internal/logger"
)

// RateLimiter throttles answer submissions per participant using a
// windowed Redis counter. Redis being down fails open: throttling is
// protection, not correctness.
type RateLimiter struct {
	throttle cache.ThrottleCache
	limit    int64
	window   time.Duration
	log      *logger.Logger
}

// NewRateLimiter creates a rate limiter middleware.
func NewRateLimiter(throttle cache.ThrottleCache, limit int64, window time.Duration, log *logger.Logger) *RateLimiter {
	return &RateLimiter{throttle: throttle, limit: limit, window: window, log: log}
}

// Limit rejects requests once the per-participant window counter
// passes the limit.
// Runs behind RequireParticipant.
func (m *RateLimiter) Limit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		participantID := GetParticipantID(r.Context())
		count, err := m.throttle.Incr(r.Context(), participantID, m.window)
		if err != nil {
			m.log.Warn("throttle counter unavailable", "participantId", participantID, "error", err)
			next.ServeHTTP(w, r)
			return
		}
		if count > m.limit {
			http.Error(w, `{"error":"too many requests"}`, http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}

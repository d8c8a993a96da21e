package middleware

import (
	"net/http"

	"golang.org/x/time/rate"

	apierrors "finmodel/internal/errors"
)

// RateLimiter applies a global token-bucket limit to the API. The engine
// itself is cheap, but sweeps multiply valuations per request, so the
// service caps how fast callers can queue them.
func RateLimiter(rps float64, burst int) func(next http.Handler) http.Handler {
	limiter := rate.NewLimiter(rate.Limit(rps), burst)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if rps > 0 && !limiter.Allow() {
				apierrors.WriteError(w, apierrors.New(
					http.StatusTooManyRequests,
					"RATE_LIMIT_EXCEEDED",
					"Rate limit exceeded, try again later",
				))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

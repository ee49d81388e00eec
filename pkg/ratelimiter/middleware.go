package ratelimiter

import (
	"net/http"
	"strconv"
)

// KeyFunc picks the bucket for a request. An empty key skips limiting.
type KeyFunc func(r *http.Request) string

// Middleware rejects requests over the limit. Retry-After is always set;
// rejected renders the response, or a plain 429 when nil. Store failures let
// the request through.
func Middleware(b *Bucket, key KeyFunc, rejected http.Handler) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			k := key(r)
			if k == "" {
				next.ServeHTTP(w, r)
				return
			}

			res, err := b.Allow(r.Context(), k)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(res.Limit))
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(max(0, res.Remaining)))

			if !res.Allowed() {
				if secs := int(res.RetryAfter().Seconds()); secs > 0 {
					w.Header().Set("Retry-After", strconv.Itoa(secs))
				}
				if rejected != nil {
					rejected.ServeHTTP(w, r)
					return
				}
				http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

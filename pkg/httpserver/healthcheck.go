package httpserver

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/velveproduce/site/pkg/logger"
)

// Check reports whether a dependency is usable.
type Check func(ctx context.Context) error

// Liveness answers 200 "ALIVE" for as long as the process serves requests.
func Liveness() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ALIVE"))
	}
}

// Readiness runs every check with a two second budget and answers 200 "READY"
// or 503 "NOT_READY" on the first failure.
func Readiness(log *slog.Logger, checks map[string]Check) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		for name, check := range checks {
			if err := check(ctx); err != nil {
				log.WarnContext(ctx, "readiness check failed", slog.String("check", name), logger.Error(err))
				w.WriteHeader(http.StatusServiceUnavailable)
				_, _ = w.Write([]byte("NOT_READY"))
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("READY"))
	}
}

package apiserver

import (
	"context"
	"net/http"
	"time"
)

// HealthChecker is a minimal contract for readiness checks.
type HealthChecker interface {
	CheckHealth(ctx context.Context) error
}

// ReadyzHandler runs every check with a shared timeout and returns 503 on
// the first failure. The response body is empty.
func ReadyzHandler(timeout time.Duration, checks ...HealthChecker) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		to := timeout
		if to <= 0 {
			to = 2 * time.Second
		}
		ctx, cancel := context.WithTimeout(r.Context(), to)
		defer cancel()

		for _, c := range checks {
			if c == nil {
				continue
			}
			if err := c.CheckHealth(ctx); err != nil {
				w.WriteHeader(http.StatusServiceUnavailable)
				return
			}
		}

		w.WriteHeader(http.StatusOK)
	})
}

// HealthcheckHandler answers liveness probes with a plain "Success" body.
func HealthcheckHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("Success"))
	})
}

package apiserver

import (
	"time"

	"github.com/flightctl/romannumeral/internal/api_server/middleware"
	"github.com/flightctl/romannumeral/internal/config"
	"github.com/go-chi/chi/v5"
)

// GracefulShutdownTimeout is the duration to wait for graceful shutdown
const GracefulShutdownTimeout = 5 * time.Second

const rateLimitMessage = "Rate limit exceeded, please try again later"

// ConfigureRateLimiterFromConfig installs the IP rate limiter on r when it is enabled.
func ConfigureRateLimiterFromConfig(r chi.Router, cfg *config.RateLimitConfig) {
	if cfg == nil || !cfg.Enabled {
		return
	}
	middleware.InstallIPRateLimiter(r, middleware.RateLimitOptions{
		Requests:       cfg.Requests,
		Window:         time.Duration(cfg.Window),
		Message:        rateLimitMessage,
		TrustedProxies: cfg.TrustedProxies,
	})
}

package middleware

import (
	"errors"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	api "github.com/flightctl/romannumeral/api/v1"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"
)

// RateLimitOptions configures rate limiting behavior
type RateLimitOptions struct {
	Requests       int
	Window         time.Duration
	Message        string
	TrustedProxies []string
}

// getClientIPFromRequest returns the IP portion of RemoteAddr, or RemoteAddr
// itself when it carries no port.
func getClientIPFromRequest(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// IPRateLimiter limits requests per client IP. Place it behind TrustedRealIP
// when the service runs behind a proxy.
func IPRateLimiter(requests int, window time.Duration, message string) func(http.Handler) http.Handler {
	retryAfter := strconv.Itoa(max(1, int(window.Seconds())))
	return httprate.Limit(
		requests,
		window,
		httprate.WithKeyFuncs(func(r *http.Request) (string, error) {
			return getClientIPFromRequest(r), nil
		}),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Retry-After", retryAfter)
			WriteJSONError(w, http.StatusTooManyRequests, api.ErrorCodeTooManyRequests, errors.New(message))
		}),
	)
}

// InstallIPRateLimiter installs TrustedRealIP, when proxies are configured,
// followed by IPRateLimiter.
func InstallIPRateLimiter(r chi.Router, opts RateLimitOptions) {
	if len(opts.TrustedProxies) > 0 {
		r.Use(TrustedRealIP(opts.TrustedProxies))
	}
	r.Use(IPRateLimiter(opts.Requests, opts.Window, opts.Message))
}

// TrustedRealIP rewrites RemoteAddr from True-Client-IP, X-Real-IP or
// X-Forwarded-For, in that order, but only when the immediate peer is one of
// trustedProxies. Headers from other peers are ignored.
func TrustedRealIP(trustedProxies []string) func(http.Handler) http.Handler {
	trustedNets := parseTrustedNets(trustedProxies)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if isTrustedPeer(r, trustedNets) {
				if ip := realIPFromHeaders(r.Header); ip != "" {
					r.RemoteAddr = ip
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

func parseTrustedNets(entries []string) []*net.IPNet {
	var nets []*net.IPNet
	for _, entry := range entries {
		s := strings.TrimSpace(entry)
		if s == "" {
			continue
		}
		if strings.Contains(s, "/") {
			if _, n, err := net.ParseCIDR(s); err == nil {
				nets = append(nets, n)
			}
			continue
		}
		if ip := net.ParseIP(s); ip != nil {
			bits := 128
			if ip.To4() != nil {
				bits = 32
			}
			nets = append(nets, &net.IPNet{IP: ip, Mask: net.CIDRMask(bits, bits)})
		}
	}
	return nets
}

func isTrustedPeer(r *http.Request, trustedNets []*net.IPNet) bool {
	peerIP := net.ParseIP(getClientIPFromRequest(r))
	if peerIP == nil {
		return false
	}
	for _, n := range trustedNets {
		if n.Contains(peerIP) {
			return true
		}
	}
	return false
}

func realIPFromHeaders(h http.Header) string {
	for _, name := range []string{"True-Client-IP", "X-Real-IP"} {
		if v := strings.TrimSpace(h.Get(name)); v != "" {
			if ip := net.ParseIP(v); ip != nil {
				return ip.String()
			}
		}
	}
	if xff := h.Get("X-Forwarded-For"); xff != "" {
		first := strings.TrimSpace(strings.Split(xff, ",")[0])
		if ip := net.ParseIP(first); ip != nil {
			return ip.String()
		}
	}
	return ""
}

package handler

import (
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/portfolio/backend/internal/ratelimit"
)

// SecurityHeaders adds the site's security response headers.
func SecurityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("X-XSS-Protection", "1; mode=block")
		h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		next.ServeHTTP(w, r)
	})
}

// ClientIP resolves the client address. The edge-provided header (e.g.
// CF-Connecting-IP) wins; otherwise the entry appended to X-Forwarded-For by
// the single trusted proxy; otherwise RemoteAddr.
type ClientIP struct {
	Header            string
	TrustedProxyCount int
}

// NewClientIP trusts header and one reverse proxy.
func NewClientIP(header string) ClientIP {
	return ClientIP{Header: header, TrustedProxyCount: 1}
}

func (c ClientIP) From(r *http.Request) string {
	if c.Header != "" {
		if v := strings.TrimSpace(r.Header.Get(c.Header)); v != "" {
			return v
		}
	}
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" && c.TrustedProxyCount > 0 {
		parts := strings.Split(xff, ",")
		// The rightmost entry added by our infrastructure is at
		// index len(parts) - trustedProxyCount.
		idx := len(parts) - c.TrustedProxyCount
		if idx >= 0 && idx < len(parts) {
			return strings.TrimSpace(parts[idx])
		}
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// RateLimit rejects requests over the limiter's budget with 429 and a
// Retry-After header. Limiter errors let the request through.
func RateLimit(limiter ratelimit.Limiter, ip ClientIP) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := ip.From(r)
			allowed, retryAfter, err := limiter.Allow(r.Context(), key)
			if err != nil {
				slog.ErrorContext(r.Context(), "rate limiter unavailable", "client", key, "error", err)
				next.ServeHTTP(w, r)
				return
			}
			if !allowed {
				slog.WarnContext(r.Context(), "rate limit exceeded", "client", key, "path", r.URL.Path)
				w.Header().Set("Retry-After", retryAfterSeconds(retryAfter))
				writeJSON(w, http.StatusTooManyRequests, errorResponse{
					Success: false,
					Error:   "Too many requests. Please try again later.",
				})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func retryAfterSeconds(d time.Duration) string {
	secs := int(d.Seconds()) + 1
	if secs < 1 {
		secs = 1
	}
	return strconv.Itoa(secs)
}

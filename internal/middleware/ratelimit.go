package middleware

import (
	"fmt"
	"net"
	"net/http"
	"strconv"
	"strings"

	"github.com/tdlogistics/tdl/internal/ratelimit"
)

// RateLimit enforces policy p per client identity. Refused requests get 429
// with Retry-After and X-RateLimit-* headers so well-behaved clients can
// back off.
func RateLimit(limiter *ratelimit.Limiter, p ratelimit.Policy, class string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, err := ClientIdentity(r)
			if err != nil {
				http.Error(w, "Bad request", http.StatusBadRequest)
				return
			}

			res := limiter.Check(class+":"+identity, p)
			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(p.Max))
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(res.Remaining))
			if !res.Allowed {
				retryAfter := int(res.ResetIn.Seconds())
				if retryAfter < 1 {
					retryAfter = 1
				}
				w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
				http.Error(w, "Rate limit exceeded, try again later", http.StatusTooManyRequests)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// ClientIdentity resolves the client IP: X-Real-IP first, then the first
// valid entry of X-Forwarded-For, then RemoteAddr. The app sits behind a
// reverse proxy that sets these headers.
func ClientIdentity(r *http.Request) (string, error) {
	if ip := r.Header.Get("X-Real-IP"); net.ParseIP(ip) != nil {
		return ip, nil
	}

	for _, ip := range strings.Split(r.Header.Get("X-Forwarded-For"), ",") {
		ip = strings.TrimSpace(ip)
		if net.ParseIP(ip) != nil {
			return ip, nil
		}
	}

	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		ip = r.RemoteAddr
	}
	if net.ParseIP(ip) == nil {
		return "", fmt.Errorf("no valid ip found in request from %q", r.RemoteAddr)
	}
	return ip, nil
}

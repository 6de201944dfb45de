package middleware

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tdlogistics/tdl/internal/ratelimit"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestRateLimitMiddleware(t *testing.T) {
	policy := ratelimit.Policy{Window: time.Minute, Max: 2}

	t.Run("refuses with 429 and headers once exhausted", func(t *testing.T) {
		limiter := ratelimit.New()
		defer limiter.Stop()
		handler := RateLimit(limiter, policy, "lead")(okHandler())

		for i := 0; i < policy.Max; i++ {
			req := httptest.NewRequest("POST", "/v1/contact", nil)
			req.RemoteAddr = "198.51.100.7:1234"
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)
			require.Equal(t, http.StatusOK, rec.Code, "request %d should pass", i+1)
		}

		req := httptest.NewRequest("POST", "/v1/contact", nil)
		req.RemoteAddr = "198.51.100.7:1234"
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusTooManyRequests, rec.Code)
		assert.Equal(t, "2", rec.Header().Get("X-RateLimit-Limit"))
		assert.Equal(t, "0", rec.Header().Get("X-RateLimit-Remaining"))
		assert.NotEmpty(t, rec.Header().Get("Retry-After"))
	})

	t.Run("different clients are counted separately", func(t *testing.T) {
		limiter := ratelimit.New()
		defer limiter.Stop()
		handler := RateLimit(limiter, policy, "lead")(okHandler())

		for i := 0; i < policy.Max+1; i++ {
			req := httptest.NewRequest("POST", "/v1/contact", nil)
			req.RemoteAddr = fmt.Sprintf("203.0.113.%d:1234", i+1)
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)
			assert.Equal(t, http.StatusOK, rec.Code)
		}
	})

	t.Run("classes do not share counters", func(t *testing.T) {
		limiter := ratelimit.New()
		defer limiter.Stop()
		leadHandler := RateLimit(limiter, policy, "lead")(okHandler())
		trackingHandler := RateLimit(limiter, policy, "tracking")(okHandler())

		for i := 0; i < policy.Max; i++ {
			req := httptest.NewRequest("POST", "/v1/contact", nil)
			req.RemoteAddr = "198.51.100.9:1234"
			leadHandler.ServeHTTP(httptest.NewRecorder(), req)
		}

		req := httptest.NewRequest("GET", "/v1/tracking/TDL100378632203", nil)
		req.RemoteAddr = "198.51.100.9:1234"
		rec := httptest.NewRecorder()
		trackingHandler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestClientIdentity(t *testing.T) {
	t.Run("prefers X-Real-IP", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/", nil)
		req.Header.Set("X-Real-IP", "192.0.2.1")
		req.Header.Set("X-Forwarded-For", "192.0.2.2")
		req.RemoteAddr = "192.0.2.3:5555"

		ip, err := ClientIdentity(req)
		require.NoError(t, err)
		assert.Equal(t, "192.0.2.1", ip)
	})

	t.Run("falls back to first valid X-Forwarded-For entry", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/", nil)
		req.Header.Set("X-Forwarded-For", "garbage, 192.0.2.2")
		req.RemoteAddr = "192.0.2.3:5555"

		ip, err := ClientIdentity(req)
		require.NoError(t, err)
		assert.Equal(t, "192.0.2.2", ip)
	})

	t.Run("falls back to RemoteAddr", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/", nil)
		req.RemoteAddr = "192.0.2.3:5555"

		ip, err := ClientIdentity(req)
		require.NoError(t, err)
		assert.Equal(t, "192.0.2.3", ip)
	})

	t.Run("errors when nothing parses", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/", nil)
		req.RemoteAddr = "not-an-address"

		_, err := ClientIdentity(req)
		assert.Error(t, err)
	})
}

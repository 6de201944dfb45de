package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tdlogistics/tdl/internal/domain"
	"github.com/tdlogistics/tdl/internal/jwt"
)

type stubTokens struct {
	claims *jwt.Claims
}

func (s *stubTokens) Issue(user domain.AdminUser) (string, error) { return "token", nil }
func (s *stubTokens) Verify(tokenStr string) *jwt.Claims          { return s.claims }

func TestNeedAuth(t *testing.T) {
	adminClaims := &jwt.Claims{UserId: 1, Email: "admin@tdl-logistics.com", Role: "admin"}

	t.Run("valid cookie passes and populates context", func(t *testing.T) {
		var seen *jwt.Claims
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			seen = GetClaimsFromContext(r)
		})
		mw := NewAuth(&stubTokens{claims: adminClaims}, false)

		req := httptest.NewRequest("GET", "/v1/admin/leads", nil)
		req.AddCookie(&http.Cookie{Name: "auth_token", Value: "whatever"})
		rec := httptest.NewRecorder()
		mw.NeedAuth()(next).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		require.NotNil(t, seen)
		assert.Equal(t, adminClaims.Email, seen.Email)
	})

	t.Run("missing cookie gets 401", func(t *testing.T) {
		mw := NewAuth(&stubTokens{claims: adminClaims}, false)

		req := httptest.NewRequest("GET", "/v1/admin/leads", nil)
		rec := httptest.NewRecorder()
		mw.NeedAuth()(http.NotFoundHandler()).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("failed verification gets 401 and clears the cookie", func(t *testing.T) {
		mw := NewAuth(&stubTokens{claims: nil}, false)

		req := httptest.NewRequest("GET", "/v1/admin/leads", nil)
		req.AddCookie(&http.Cookie{Name: "auth_token", Value: "tampered"})
		rec := httptest.NewRecorder()
		mw.NeedAuth()(http.NotFoundHandler()).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		cookies := rec.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Equal(t, "auth_token", cookies[0].Name)
		assert.Equal(t, -1, cookies[0].MaxAge)
	})
}

func TestAdminOnly(t *testing.T) {
	t.Run("non-admin role gets 403", func(t *testing.T) {
		mw := NewAuth(&stubTokens{claims: &jwt.Claims{UserId: 2, Role: "editor"}}, false)

		req := httptest.NewRequest("DELETE", "/v1/admin/posts/1", nil)
		req.AddCookie(&http.Cookie{Name: "auth_token", Value: "ok"})
		rec := httptest.NewRecorder()
		mw.AdminOnly()(http.NotFoundHandler()).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("admin role passes", func(t *testing.T) {
		mw := NewAuth(&stubTokens{claims: &jwt.Claims{UserId: 1, Role: "admin"}}, false)

		req := httptest.NewRequest("DELETE", "/v1/admin/posts/1", nil)
		req.AddCookie(&http.Cookie{Name: "auth_token", Value: "ok"})
		rec := httptest.NewRecorder()
		mw.AdminOnly()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		})).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNoContent, rec.Code)
	})
}

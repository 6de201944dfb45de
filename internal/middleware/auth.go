package middleware

import (
	"context"
	"net/http"

	"github.com/tdlogistics/tdl/internal/jwt"
)

// Key to store the session claims in the request context
type key int

const UserClaimsKey key = 0

const sessionCookie = "auth_token"

// Auth holds dependencies for authentication middleware
type Auth struct {
	tokens        jwt.TokenService
	secureCookies bool
}

func NewAuth(tokens jwt.TokenService, secureCookies bool) *Auth {
	return &Auth{tokens: tokens, secureCookies: secureCookies}
}

// NeedAuth returns middleware that requires a valid session
func (a *Auth) NeedAuth() func(http.Handler) http.Handler {
	return a.auth(false)
}

// AdminOnly returns middleware that requires a valid session with the admin role
func (a *Auth) AdminOnly() func(http.Handler) http.Handler {
	return a.auth(true)
}

func (a *Auth) auth(adminOnly bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims := a.extractClaims(r)
			if claims == nil {
				// Clear any stale cookie to force re-login
				http.SetCookie(w, &http.Cookie{
					Path:     "/",
					Name:     sessionCookie,
					Value:    "",
					MaxAge:   -1,
					HttpOnly: true,
					Secure:   a.secureCookies,
					SameSite: http.SameSiteStrictMode,
				})
				http.Error(w, "Please sign-in", http.StatusUnauthorized)
				return
			}

			if adminOnly && claims.Role != "admin" {
				http.Error(w, "Access denied. Only for admin", http.StatusForbidden)
				return
			}

			ctx := context.WithValue(r.Context(), UserClaimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// extractClaims reads the session cookie and verifies it. A missing cookie
// or a token that fails verification both come back nil.
func (a *Auth) extractClaims(r *http.Request) *jwt.Claims {
	cookie, err := r.Cookie(sessionCookie)
	if err != nil || cookie.Value == "" {
		return nil
	}
	return a.tokens.Verify(cookie.Value)
}

// GetClaimsFromContext retrieves the session claims from the context
func GetClaimsFromContext(r *http.Request) *jwt.Claims {
	claims, ok := r.Context().Value(UserClaimsKey).(*jwt.Claims)
	if !ok {
		return nil
	}
	return claims
}

package handler

import (
	"net/http"

	"github.com/tdlogistics/tdl/internal/domain"
	"github.com/tdlogistics/tdl/internal/middleware"
)

const sessionCookie = "auth_token"

type credentials struct {
	Email    string `validate:"required" json:"email"`
	Password string `validate:"required" json:"password"`
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var creds credentials
	if err := decodeValidate(r.Body, &creds); err != nil {
		writeErrorAndStatusCode(w, err)
		return
	}

	token, user, err := h.auth.Login(domain.Credentials{Email: creds.Email, Password: creds.Password})
	if err != nil {
		writeErrorAndStatusCode(w, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Path:     "/",
		Name:     sessionCookie,
		Value:    token,
		MaxAge:   int(h.cfg.JwtTTL().Seconds()),
		HttpOnly: true,
		Secure:   h.cfg.Public.SecureCookies,
		SameSite: http.SameSiteStrictMode,
	})

	writeJSON(w, map[string]string{
		"email": user.Email,
		"name":  user.Name,
		"role":  user.Role,
	})
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Path:     "/",
		Name:     sessionCookie,
		Value:    "",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.cfg.Public.SecureCookies,
		SameSite: http.SameSiteStrictMode,
	})

	w.WriteHeader(http.StatusOK)
}

// Me returns the session identity, letting the admin SPA restore its state
// after a reload.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaimsFromContext(r)
	if claims == nil {
		http.Error(w, "Please sign-in", http.StatusUnauthorized)
		return
	}
	writeJSON(w, map[string]string{
		"email": claims.Email,
		"name":  claims.Name,
		"role":  claims.Role,
	})
}

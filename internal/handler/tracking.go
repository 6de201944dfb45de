package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Track proxies a shipment lookup to the external tracking provider and
// relays the provider's JSON as-is.
func (h *Handler) Track(w http.ResponseWriter, r *http.Request) {
	body, err := h.tracking.Lookup(r.Context(), chi.URLParam(r, "number"))
	if err != nil {
		writeErrorAndStatusCode(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Write(body)
}

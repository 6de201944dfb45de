package handler

import (
	"net/http"
)

type subscribeRequest struct {
	Email string `validate:"required" json:"email"`
}

func (h *Handler) Subscribe(w http.ResponseWriter, r *http.Request) {
	var req subscribeRequest
	if err := decodeValidate(r.Body, &req); err != nil {
		writeErrorAndStatusCode(w, err)
		return
	}

	if err := h.newsletter.Subscribe(req.Email); err != nil {
		writeErrorAndStatusCode(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
	w.Write([]byte("Subscribed"))
}

func (h *Handler) Unsubscribe(w http.ResponseWriter, r *http.Request) {
	var req subscribeRequest
	if err := decodeValidate(r.Body, &req); err != nil {
		writeErrorAndStatusCode(w, err)
		return
	}

	if err := h.newsletter.Unsubscribe(req.Email); err != nil {
		writeErrorAndStatusCode(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
}

func (h *Handler) GetSubscribers(w http.ResponseWriter, r *http.Request) {
	subscribers, err := h.newsletter.List()
	if err != nil {
		writeErrorAndStatusCode(w, err)
		return
	}
	writeJSON(w, subscribers)
}

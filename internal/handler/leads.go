package handler

import (
	"net/http"

	"github.com/tdlogistics/tdl/internal/domain"
)

type contactRequest struct {
	Name     string `validate:"required" json:"name"`
	Email    string `validate:"required" json:"email"`
	Phone    string `json:"phone"`
	Subject  string `json:"subject"`
	Message  string `validate:"required" json:"message"`
	Language string `json:"language"`
}

func (h *Handler) CreateContact(w http.ResponseWriter, r *http.Request) {
	var req contactRequest
	if err := decodeValidate(r.Body, &req); err != nil {
		writeErrorAndStatusCode(w, err)
		return
	}

	id, err := h.leads.SubmitContact(r.Context(), domain.ContactSubmission{
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Subject:  req.Subject,
		Message:  req.Message,
		Language: req.Language,
	})
	if err != nil {
		writeErrorAndStatusCode(w, err)
		return
	}

	w.WriteHeader(http.StatusCreated)
	writeJSON(w, map[string]int64{"id": id})
}

type quoteRequest struct {
	CompanyName string `json:"company_name"`
	Name        string `validate:"required" json:"name"`
	Email       string `validate:"required" json:"email"`
	Phone       string `json:"phone"`
	Origin      string `validate:"required" json:"origin"`
	Destination string `validate:"required" json:"destination"`
	CargoType   string `json:"cargo_type"`
	Details     string `json:"details"`
	Language    string `json:"language"`
}

func (h *Handler) CreateQuote(w http.ResponseWriter, r *http.Request) {
	var req quoteRequest
	if err := decodeValidate(r.Body, &req); err != nil {
		writeErrorAndStatusCode(w, err)
		return
	}

	id, err := h.leads.SubmitQuote(r.Context(), domain.QuoteRequest{
		CompanyName: req.CompanyName,
		Name:        req.Name,
		Email:       req.Email,
		Phone:       req.Phone,
		Origin:      req.Origin,
		Destination: req.Destination,
		CargoType:   req.CargoType,
		Details:     req.Details,
		Language:    req.Language,
	})
	if err != nil {
		writeErrorAndStatusCode(w, err)
		return
	}

	w.WriteHeader(http.StatusCreated)
	writeJSON(w, map[string]int64{"id": id})
}

type applicationRequest struct {
	Name      string `validate:"required" json:"name"`
	Email     string `validate:"required" json:"email"`
	Phone     string `json:"phone"`
	Position  string `validate:"required" json:"position"`
	CoverNote string `json:"cover_note"`
	CvUrl     string `json:"cv_url"`
	Language  string `json:"language"`
}

func (h *Handler) CreateApplication(w http.ResponseWriter, r *http.Request) {
	var req applicationRequest
	if err := decodeValidate(r.Body, &req); err != nil {
		writeErrorAndStatusCode(w, err)
		return
	}

	id, err := h.leads.SubmitApplication(r.Context(), domain.JobApplication{
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
		Position:  req.Position,
		CoverNote: req.CoverNote,
		CvUrl:     req.CvUrl,
		Language:  req.Language,
	})
	if err != nil {
		writeErrorAndStatusCode(w, err)
		return
	}

	w.WriteHeader(http.StatusCreated)
	writeJSON(w, map[string]int64{"id": id})
}

// Admin dashboard listings.

func (h *Handler) GetContacts(w http.ResponseWriter, r *http.Request) {
	limit, offset := pagination(r)
	contacts, err := h.leads.ListContacts(limit, offset)
	if err != nil {
		writeErrorAndStatusCode(w, err)
		return
	}
	writeJSON(w, contacts)
}

func (h *Handler) GetQuotes(w http.ResponseWriter, r *http.Request) {
	limit, offset := pagination(r)
	quotes, err := h.leads.ListQuotes(limit, offset)
	if err != nil {
		writeErrorAndStatusCode(w, err)
		return
	}
	writeJSON(w, quotes)
}

func (h *Handler) GetApplications(w http.ResponseWriter, r *http.Request) {
	limit, offset := pagination(r)
	applications, err := h.leads.ListApplications(limit, offset)
	if err != nil {
		writeErrorAndStatusCode(w, err)
		return
	}
	writeJSON(w, applications)
}

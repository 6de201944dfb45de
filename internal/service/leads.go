package service

import (
	"context"
	"fmt"
	"html"
	"net/http"
	"time"

	"github.com/tdlogistics/tdl/internal/crm"
	"github.com/tdlogistics/tdl/internal/domain"
	"github.com/tdlogistics/tdl/internal/errors"
	"github.com/tdlogistics/tdl/internal/logger"
	"github.com/tdlogistics/tdl/internal/sanitize"
)

type LeadStorage interface {
	SaveContactSubmission(c domain.ContactSubmission) (int64, error)
	SaveQuoteRequest(q domain.QuoteRequest) (int64, error)
	SaveJobApplication(j domain.JobApplication) (int64, error)
	ContactSubmissions(limit, offset int) ([]domain.ContactSubmission, error)
	QuoteRequests(limit, offset int) ([]domain.QuoteRequest, error)
	JobApplications(limit, offset int) ([]domain.JobApplication, error)
}

type Email interface {
	Send(recipientEmail, subject, html string) error
}

var errValidationFailed = errors.New("Invalid form input", http.StatusBadRequest)

// Leads persists lead-capture submissions, notifies the sales inbox and
// files a CRM follow-up task. CRM and email failures are logged, not
// surfaced: losing a notification must not lose the lead.
type Leads struct {
	storage LeadStorage
	email   Email
	crm     crm.TaskCreator
	inbox   string // notification recipient
}

func NewLeads(storage LeadStorage, email Email, crm crm.TaskCreator, inbox string) *Leads {
	return &Leads{storage: storage, email: email, crm: crm, inbox: inbox}
}

func (l *Leads) SubmitContact(ctx context.Context, c domain.ContactSubmission) (int64, error) {
	email, ok := sanitize.Email(c.Email)
	if !ok {
		return -1, errValidationFailed
	}
	c.Email = email
	if c.Phone != "" {
		phone, ok := sanitize.Phone(c.Phone)
		if !ok {
			return -1, errValidationFailed
		}
		c.Phone = phone
	}
	c.Name = sanitize.Text(c.Name)
	c.Subject = sanitize.Text(c.Subject)
	c.Message = sanitize.Text(c.Message)
	c.Language = normalizeLanguage(c.Language)
	if c.Name == "" || c.Message == "" {
		return -1, errValidationFailed
	}

	id, err := l.storage.SaveContactSubmission(c)
	if err != nil {
		return -1, err
	}

	l.notify(ctx, "contact", c.Name, c.Email,
		fmt.Sprintf("New contact message from %s", c.Name),
		fmt.Sprintf("<p><b>%s</b> (%s, %s)</p><p>%s</p>",
			html.EscapeString(c.Name), html.EscapeString(c.Email), html.EscapeString(c.Phone),
			html.EscapeString(c.Message)))
	return id, nil
}

func (l *Leads) SubmitQuote(ctx context.Context, q domain.QuoteRequest) (int64, error) {
	email, ok := sanitize.Email(q.Email)
	if !ok {
		return -1, errValidationFailed
	}
	q.Email = email
	if q.Phone != "" {
		phone, ok := sanitize.Phone(q.Phone)
		if !ok {
			return -1, errValidationFailed
		}
		q.Phone = phone
	}
	q.CompanyName = sanitize.Text(q.CompanyName)
	q.Name = sanitize.Text(q.Name)
	q.Origin = sanitize.Text(q.Origin)
	q.Destination = sanitize.Text(q.Destination)
	q.CargoType = sanitize.Text(q.CargoType)
	q.Details = sanitize.Text(q.Details)
	q.Language = normalizeLanguage(q.Language)
	if q.Name == "" || q.Origin == "" || q.Destination == "" {
		return -1, errValidationFailed
	}

	id, err := l.storage.SaveQuoteRequest(q)
	if err != nil {
		return -1, err
	}

	l.notify(ctx, "quote", q.Name, q.Email,
		fmt.Sprintf("New quote request: %s → %s", q.Origin, q.Destination),
		fmt.Sprintf("<p><b>%s</b> (%s)</p><p>%s → %s, cargo: %s</p><p>%s</p>",
			html.EscapeString(q.Name), html.EscapeString(q.Email),
			html.EscapeString(q.Origin), html.EscapeString(q.Destination),
			html.EscapeString(q.CargoType), html.EscapeString(q.Details)))
	return id, nil
}

func (l *Leads) SubmitApplication(ctx context.Context, j domain.JobApplication) (int64, error) {
	email, ok := sanitize.Email(j.Email)
	if !ok {
		return -1, errValidationFailed
	}
	j.Email = email
	if j.Phone != "" {
		phone, ok := sanitize.Phone(j.Phone)
		if !ok {
			return -1, errValidationFailed
		}
		j.Phone = phone
	}
	j.Name = sanitize.Text(j.Name)
	j.Position = sanitize.Text(j.Position)
	j.CoverNote = sanitize.Text(j.CoverNote)
	j.Language = normalizeLanguage(j.Language)
	if j.Name == "" || j.Position == "" {
		return -1, errValidationFailed
	}

	id, err := l.storage.SaveJobApplication(j)
	if err != nil {
		return -1, err
	}

	l.notify(ctx, "careers", j.Name, j.Email,
		fmt.Sprintf("New application for %s", j.Position),
		fmt.Sprintf("<p><b>%s</b> (%s) applied for %s</p><p>%s</p>",
			html.EscapeString(j.Name), html.EscapeString(j.Email),
			html.EscapeString(j.Position), html.EscapeString(j.CoverNote)))
	return id, nil
}

// Admin dashboard listings.

func (l *Leads) ListContacts(limit, offset int) ([]domain.ContactSubmission, error) {
	return l.storage.ContactSubmissions(clampLimit(limit), offset)
}

func (l *Leads) ListQuotes(limit, offset int) ([]domain.QuoteRequest, error) {
	return l.storage.QuoteRequests(clampLimit(limit), offset)
}

func (l *Leads) ListApplications(limit, offset int) ([]domain.JobApplication, error) {
	return l.storage.JobApplications(clampLimit(limit), offset)
}

// notify sends the inbox email and files the CRM task. Best effort only.
func (l *Leads) notify(ctx context.Context, source, contactName, contactEmail, subject, body string) {
	if err := l.email.Send(l.inbox, subject, body); err != nil {
		logger.Log.Error("lead notification email failed", "source", source, "error", err)
	}

	task := crm.Task{
		Title:        subject,
		Description:  body,
		ContactName:  contactName,
		ContactEmail: contactEmail,
		DueDate:      time.Now().Add(48 * time.Hour).Format(time.RFC3339),
		Source:       source,
	}
	if err := l.crm.CreateTask(ctx, task); err != nil {
		logger.Log.Error("CRM task creation failed", "source", source, "error", err)
	}
}

func normalizeLanguage(lang string) string {
	if lang == "ar" {
		return "ar"
	}
	return "en"
}

func clampLimit(limit int) int {
	if limit <= 0 || limit > 100 {
		return 50
	}
	return limit
}

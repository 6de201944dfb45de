package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tdlogistics/tdl/internal/crm"
	"github.com/tdlogistics/tdl/internal/domain"
)

// --- Mocks ---

type MockLeadStorage struct {
	SaveContactSubmissionFunc func(c domain.ContactSubmission) (int64, error)
	SaveQuoteRequestFunc      func(q domain.QuoteRequest) (int64, error)
	SaveJobApplicationFunc    func(j domain.JobApplication) (int64, error)

	LastContact domain.ContactSubmission
	LastQuote   domain.QuoteRequest
	LastJob     domain.JobApplication
}

func (m *MockLeadStorage) SaveContactSubmission(c domain.ContactSubmission) (int64, error) {
	m.LastContact = c
	if m.SaveContactSubmissionFunc != nil {
		return m.SaveContactSubmissionFunc(c)
	}
	return 1, nil
}

func (m *MockLeadStorage) SaveQuoteRequest(q domain.QuoteRequest) (int64, error) {
	m.LastQuote = q
	if m.SaveQuoteRequestFunc != nil {
		return m.SaveQuoteRequestFunc(q)
	}
	return 1, nil
}

func (m *MockLeadStorage) SaveJobApplication(j domain.JobApplication) (int64, error) {
	m.LastJob = j
	if m.SaveJobApplicationFunc != nil {
		return m.SaveJobApplicationFunc(j)
	}
	return 1, nil
}

func (m *MockLeadStorage) ContactSubmissions(limit, offset int) ([]domain.ContactSubmission, error) {
	return nil, nil
}
func (m *MockLeadStorage) QuoteRequests(limit, offset int) ([]domain.QuoteRequest, error) {
	return nil, nil
}
func (m *MockLeadStorage) JobApplications(limit, offset int) ([]domain.JobApplication, error) {
	return nil, nil
}

type MockLeadEmail struct {
	SendFunc func(recipientEmail, subject, html string) error
	Sent     int
	LastTo   string
}

func (m *MockLeadEmail) Send(recipientEmail, subject, html string) error {
	m.Sent++
	m.LastTo = recipientEmail
	if m.SendFunc != nil {
		return m.SendFunc(recipientEmail, subject, html)
	}
	return nil
}

type MockCrm struct {
	CreateTaskFunc func(ctx context.Context, task crm.Task) error
	Created        int
	LastTask       crm.Task
}

func (m *MockCrm) CreateTask(ctx context.Context, task crm.Task) error {
	m.Created++
	m.LastTask = task
	if m.CreateTaskFunc != nil {
		return m.CreateTaskFunc(ctx, task)
	}
	return nil
}

func newTestLeads() (*Leads, *MockLeadStorage, *MockLeadEmail, *MockCrm) {
	storage := &MockLeadStorage{}
	email := &MockLeadEmail{}
	crmClient := &MockCrm{}
	return NewLeads(storage, email, crmClient, "sales@tdl-logistics.com"), storage, email, crmClient
}

// --- Tests ---

func TestSubmitContact(t *testing.T) {
	t.Run("sanitizes, persists, notifies and files a task", func(t *testing.T) {
		leads, storage, email, crmClient := newTestLeads()

		id, err := leads.SubmitContact(context.Background(), domain.ContactSubmission{
			Name:     "  Ahmed <b>K</b>  ",
			Email:    " Ahmed@Example.COM ",
			Phone:    "+966 50 123 4567",
			Subject:  "Shipping to Riyadh",
			Message:  "Need a full truckload <script>x</script>",
			Language: "ar",
		})
		require.NoError(t, err)
		assert.Equal(t, int64(1), id)

		assert.Equal(t, "ahmed@example.com", storage.LastContact.Email)
		assert.Equal(t, "+966501234567", storage.LastContact.Phone)
		assert.NotContains(t, storage.LastContact.Name, "<b>")
		assert.NotContains(t, storage.LastContact.Message, "<script>")
		assert.Equal(t, "ar", storage.LastContact.Language)

		assert.Equal(t, 1, email.Sent)
		assert.Equal(t, "sales@tdl-logistics.com", email.LastTo)
		assert.Equal(t, 1, crmClient.Created)
		assert.Equal(t, "contact", crmClient.LastTask.Source)
	})

	t.Run("invalid email fails validation", func(t *testing.T) {
		leads, _, email, _ := newTestLeads()
		_, err := leads.SubmitContact(context.Background(), domain.ContactSubmission{
			Name: "A", Email: "no-at-sign", Message: "hi",
		})
		assert.ErrorIs(t, err, errValidationFailed)
		assert.Zero(t, email.Sent)
	})

	t.Run("crm failure does not fail the submission", func(t *testing.T) {
		leads, _, _, crmClient := newTestLeads()
		crmClient.CreateTaskFunc = func(ctx context.Context, task crm.Task) error {
			return assert.AnError
		}

		_, err := leads.SubmitContact(context.Background(), domain.ContactSubmission{
			Name: "A", Email: "a@example.com", Message: "hello there",
		})
		assert.NoError(t, err)
	})

	t.Run("unknown language normalized to en", func(t *testing.T) {
		leads, storage, _, _ := newTestLeads()
		_, err := leads.SubmitContact(context.Background(), domain.ContactSubmission{
			Name: "A", Email: "a@example.com", Message: "hello", Language: "fr",
		})
		require.NoError(t, err)
		assert.Equal(t, "en", storage.LastContact.Language)
	})
}

func TestSubmitQuote(t *testing.T) {
	t.Run("requires origin and destination", func(t *testing.T) {
		leads, _, _, _ := newTestLeads()
		_, err := leads.SubmitQuote(context.Background(), domain.QuoteRequest{
			Name: "A", Email: "a@example.com", Origin: "Jeddah",
		})
		assert.ErrorIs(t, err, errValidationFailed)
	})

	t.Run("valid quote creates crm task with quote source", func(t *testing.T) {
		leads, _, _, crmClient := newTestLeads()
		_, err := leads.SubmitQuote(context.Background(), domain.QuoteRequest{
			Name: "A", Email: "a@example.com", Origin: "Jeddah", Destination: "Riyadh",
		})
		require.NoError(t, err)
		assert.Equal(t, "quote", crmClient.LastTask.Source)
	})
}

func TestSubmitApplication(t *testing.T) {
	t.Run("requires name and position", func(t *testing.T) {
		leads, _, _, _ := newTestLeads()
		_, err := leads.SubmitApplication(context.Background(), domain.JobApplication{
			Email: "a@example.com", Name: "A",
		})
		assert.ErrorIs(t, err, errValidationFailed)
	})

	t.Run("valid application persists and notifies", func(t *testing.T) {
		leads, storage, email, _ := newTestLeads()
		_, err := leads.SubmitApplication(context.Background(), domain.JobApplication{
			Name: "A", Email: "a@example.com", Position: "Driver", Phone: "0501234567",
		})
		require.NoError(t, err)
		assert.Equal(t, "Driver", storage.LastJob.Position)
		assert.Equal(t, 1, email.Sent)
	})
}

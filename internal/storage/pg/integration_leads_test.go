package pg

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tdlogistics/tdl/internal/domain"
)

func TestSaveContactSubmission(t *testing.T) {
	id, err := storage.SaveContactSubmission(domain.ContactSubmission{
		Name: "Ahmed", Email: "lead1@example.com", Phone: "+966501234567",
		Subject: "Shipping", Message: "Need a truck", Language: "ar",
	})
	require.NoError(t, err)
	assert.Greater(t, id, int64(0))

	contacts, err := storage.ContactSubmissions(10, 0)
	require.NoError(t, err)
	require.NotEmpty(t, contacts)
	assert.Equal(t, "lead1@example.com", contacts[0].Email)
	assert.Equal(t, "ar", contacts[0].Language)
	assert.False(t, contacts[0].CreatedAt.IsZero())
}

func TestContactSubmissionsNewestFirst(t *testing.T) {
	_, err := storage.SaveContactSubmission(domain.ContactSubmission{
		Name: "First", Email: "order1@example.com", Message: "m", Language: "en",
	})
	require.NoError(t, err)
	_, err = storage.SaveContactSubmission(domain.ContactSubmission{
		Name: "Second", Email: "order2@example.com", Message: "m", Language: "en",
	})
	require.NoError(t, err)

	contacts, err := storage.ContactSubmissions(2, 0)
	require.NoError(t, err)
	require.Len(t, contacts, 2)
	assert.True(t, !contacts[0].CreatedAt.Before(contacts[1].CreatedAt))
}

func TestSaveQuoteRequest(t *testing.T) {
	id, err := storage.SaveQuoteRequest(domain.QuoteRequest{
		CompanyName: "Acme", Name: "Sara", Email: "quote1@example.com",
		Origin: "Jeddah", Destination: "Riyadh", CargoType: "pallets",
		Details: "12 pallets", Language: "en",
	})
	require.NoError(t, err)
	assert.Greater(t, id, int64(0))

	quotes, err := storage.QuoteRequests(10, 0)
	require.NoError(t, err)
	require.NotEmpty(t, quotes)
	assert.Equal(t, "Jeddah", quotes[0].Origin)
	assert.Equal(t, "Riyadh", quotes[0].Destination)
}

func TestSaveJobApplication(t *testing.T) {
	id, err := storage.SaveJobApplication(domain.JobApplication{
		Name: "Khalid", Email: "job1@example.com", Position: "Driver",
		CoverNote: "5 years experience", Language: "ar",
	})
	require.NoError(t, err)
	assert.Greater(t, id, int64(0))

	applications, err := storage.JobApplications(10, 0)
	require.NoError(t, err)
	require.NotEmpty(t, applications)
	assert.Equal(t, "Driver", applications[0].Position)
}

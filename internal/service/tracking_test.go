package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type MockProvider struct {
	LookupFunc func(ctx context.Context, number string) ([]byte, error)
	LastNumber string
}

func (m *MockProvider) Lookup(ctx context.Context, number string) ([]byte, error) {
	m.LastNumber = number
	if m.LookupFunc != nil {
		return m.LookupFunc(ctx, number)
	}
	return []byte(`{"status":"in_transit"}`), nil
}

func TestTrackingLookup(t *testing.T) {
	t.Run("normalizes barcode before the provider call", func(t *testing.T) {
		provider := &MockProvider{}
		svc := NewTracking(provider)

		body, err := svc.Lookup(context.Background(), "tdl-100378632203!!")
		require.NoError(t, err)
		assert.Equal(t, "TDL100378632203", provider.LastNumber)
		assert.JSONEq(t, `{"status":"in_transit"}`, string(body))
	})

	t.Run("rejects a barcode that is too short", func(t *testing.T) {
		provider := &MockProvider{
			LookupFunc: func(ctx context.Context, number string) ([]byte, error) {
				t.Fatal("provider should not be called")
				return nil, nil
			},
		}
		svc := NewTracking(provider)

		_, err := svc.Lookup(context.Background(), "ab")
		assertStatusMessage(t, err, http.StatusBadRequest, "Invalid tracking number")
	})

	t.Run("provider failure becomes a generic upstream error", func(t *testing.T) {
		provider := &MockProvider{
			LookupFunc: func(ctx context.Context, number string) ([]byte, error) {
				return nil, assert.AnError
			},
		}
		svc := NewTracking(provider)

		_, err := svc.Lookup(context.Background(), "TDL100378632203")
		assertStatusMessage(t, err, http.StatusBadGateway, "Tracking service unavailable")
	})
}

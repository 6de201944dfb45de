package service

import (
	"context"
	"net/http"

	"github.com/tdlogistics/tdl/internal/errors"
	"github.com/tdlogistics/tdl/internal/logger"
	"github.com/tdlogistics/tdl/internal/sanitize"
	"github.com/tdlogistics/tdl/internal/tracking"
)

var (
	errBadTrackingNumber   = errors.New("Invalid tracking number", http.StatusBadRequest)
	errTrackingUnavailable = errors.New("Tracking service unavailable", http.StatusBadGateway)
)

// Tracking sanitizes the visitor's barcode and proxies the lookup to the
// external provider. Provider responses pass through opaque; provider
// failures collapse into one generic upstream error.
type Tracking struct {
	provider tracking.Provider
}

func NewTracking(provider tracking.Provider) *Tracking {
	return &Tracking{provider: provider}
}

func (t *Tracking) Lookup(ctx context.Context, rawNumber string) ([]byte, error) {
	number, ok := sanitize.TrackingNumber(rawNumber)
	if !ok {
		return nil, errBadTrackingNumber
	}

	body, err := t.provider.Lookup(ctx, number)
	if err != nil {
		logger.Log.Error("tracking lookup failed", "error", err)
		return nil, errTrackingUnavailable
	}
	return body, nil
}

// Package tracking proxies shipment lookups to the third-party provider.
// The barcode reaching this package is already sanitized; the client only
// bounds the call and passes the provider JSON through untouched.
package tracking

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const requestTimeout = 10 * time.Second

// maxResponseSize caps the buffered provider payload at 1 MiB.
const maxResponseSize = 1 << 20

type Provider interface {
	Lookup(ctx context.Context, barcode string) ([]byte, error)
}

type Client struct {
	baseURL    string
	httpClient *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: requestTimeout,
		},
	}
}

// Lookup fetches the provider's JSON document for barcode.
// Any provider problem comes back as an error; callers turn it into a
// generic upstream failure without leaking provider details.
func (c *Client) Lookup(ctx context.Context, barcode string) ([]byte, error) {
	u := fmt.Sprintf("%s/track?barcode=%s", c.baseURL, url.QueryEscape(barcode))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create tracking request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("tracking provider unavailable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("tracking provider returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("failed to read tracking response: %w", err)
	}
	return body, nil
}

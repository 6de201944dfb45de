// Package crm creates follow-up tasks in the external CRM when a lead
// arrives. Failures here are logged by the caller and never surfaced to the
// visitor.
package crm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Task is the payload the CRM expects for a new follow-up item.
type Task struct {
	Title        string `json:"title"`
	Description  string `json:"description"`
	ContactName  string `json:"contact_name"`
	ContactEmail string `json:"contact_email"`
	DueDate      string `json:"due_date"` // RFC 3339 date
	Source       string `json:"source"`   // "contact", "quote" or "careers"
}

type TaskCreator interface {
	CreateTask(ctx context.Context, task Task) error
}

// Client talks to the CRM HTTP API with a bearer token.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

func New(baseURL, token string) *Client {
	return &Client{
		baseURL: baseURL,
		token:   token,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (c *Client) CreateTask(ctx context.Context, task Task) error {
	payload, err := json.Marshal(task)
	if err != nil {
		return fmt.Errorf("failed to encode CRM task: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/tasks", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create CRM request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("CRM unavailable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("CRM task creation failed with status %d", resp.StatusCode)
	}
	return nil
}

// Package client talks to the CRM REST API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/unclebandit/simple-crm/internal/model"
)

// APIError is returned when the backend answers with a non-2xx status.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("crm api returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("crm api returned status %d: %s", e.StatusCode, e.Message)
}

// Client wraps interactions with the CRM backend.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient constructs a new client. A zero timeout means 10 seconds.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// ListCustomers fetches the full collection.
func (c *Client) ListCustomers(ctx context.Context) ([]model.Customer, error) {
	var customers []model.Customer
	if err := c.do(ctx, http.MethodGet, "/customers", nil, &customers); err != nil {
		return nil, err
	}
	if customers == nil {
		customers = []model.Customer{}
	}
	return customers, nil
}

// CreateCustomer posts a draft and returns the stored customer.
func (c *Client) CreateCustomer(ctx context.Context, in model.CreateCustomer) (*model.Customer, error) {
	var created model.Customer
	if err := c.do(ctx, http.MethodPost, "/customers", in, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateStatus sets the status of customer id.
func (c *Client) UpdateStatus(ctx context.Context, id int, status model.Status) (*model.Customer, error) {
	var updated model.Customer
	path := fmt.Sprintf("/customers/%d/status", id)
	if err := c.do(ctx, http.MethodPut, path, model.UpdateStatus{Status: status}, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteCustomer removes customer id.
func (c *Client) DeleteCustomer(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/customers/%d", id), nil, nil)
}

// ListActivity fetches the activity log of customer id.
func (c *Client) ListActivity(ctx context.Context, id int) ([]model.ActivityEntry, error) {
	var entries []model.ActivityEntry
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/customers/%d/events", id), nil, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode >= 400 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var msg struct {
			Message string `json:"message"`
		}
		if json.NewDecoder(resp.Body).Decode(&msg) == nil {
			apiErr.Message = msg.Message
		}
		if apiErr.Message == "" {
			apiErr.Message = http.StatusText(resp.StatusCode)
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s response: %w", method, path, err)
	}
	return nil
}

// Package orchestrator drives the client side of the dispatch-and-poll
// protocol: submit an optimization payload, then poll for its result until
// a terminal status arrives or the caller tears the loop down.
package orchestrator

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rutaflow/rutaflow/internal/domain/model"
)

// Client is the transport the orchestrator talks through. APIClient is the
// HTTP implementation; tests substitute fakes.
type Client interface {
	Submit(ctx context.Context, payload []byte) (*model.DispatchResponse, error)
	Poll(ctx context.Context, pendingRouteID string) (*model.ResultResponse, error)
}

// APIClientOptions groups settings for APIClient.
type APIClientOptions struct {
	// BaseURL is the API root, e.g. "http://localhost:8080".
	BaseURL string
	// HTTPClient is optional; a default with RequestTimeout applies.
	HTTPClient *http.Client
	// RequestTimeout bounds each individual request when HTTPClient is nil.
	RequestTimeout time.Duration
}

// APIClient calls the dispatch and result endpoints over HTTP.
type APIClient struct {
	baseURL string
	client  *http.Client
}

const defaultRequestTimeout = 15 * time.Second

// NewAPIClient constructs an APIClient.
func NewAPIClient(opts APIClientOptions) *APIClient {
	client := opts.HTTPClient
	if client == nil {
		timeout := opts.RequestTimeout
		if timeout <= 0 {
			timeout = defaultRequestTimeout
		}
		client = &http.Client{Timeout: timeout}
	}
	return &APIClient{
		baseURL: strings.TrimRight(opts.BaseURL, "/"),
		client:  client,
	}
}

// Submit posts the payload to the dispatch endpoint.
func (c *APIClient) Submit(ctx context.Context, payload []byte) (*model.DispatchResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/dispatch", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("create dispatch request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	var resp model.DispatchResponse
	if err := c.do(req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Poll fetches the newest result for the pending route id.
func (c *APIClient) Poll(ctx context.Context, pendingRouteID string) (*model.ResultResponse, error) {
	u := c.baseURL + "/api/result?id=" + url.QueryEscape(pendingRouteID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("create result request: %w", err)
	}

	var resp model.ResultResponse
	if err := c.do(req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *APIClient) do(req *http.Request, dst any) error {
	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", req.Method, req.URL.Path, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%s %s: %s: %s", req.Method, req.URL.Path, resp.Status, apiErrorMessage(body))
	}

	if err := json.Unmarshal(body, dst); err != nil {
		return fmt.Errorf("decode response body: %w", err)
	}
	return nil
}

// apiErrorMessage extracts the message from a JSON error body, falling back
// to the raw body.
func apiErrorMessage(body []byte) string {
	var e struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &e); err == nil && e.Message != "" {
		return e.Message
	}
	return strings.TrimSpace(string(body))
}

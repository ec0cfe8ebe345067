// Package trigger implements the best-effort outbound notification that
// tells the external compute runner new optimization work exists.
package trigger

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/rutaflow/rutaflow/config"
	"github.com/rutaflow/rutaflow/internal/domain/model"
)

// GitHubClient fires repository_dispatch events against the GitHub API.
// Every outcome is reported as a model.DispatchStatus; the client never
// returns an error, because trigger failure must not fail the dispatch
// request that already persisted its pending route.
type GitHubClient struct {
	cfg    config.TriggerConfig
	client *http.Client
	logger *slog.Logger
}

// NewGitHubClient constructs a GitHubClient from config. A nil http.Client
// gets a default client bounded by the configured timeout.
func NewGitHubClient(cfg config.TriggerConfig, client *http.Client, logger *slog.Logger) *GitHubClient {
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &GitHubClient{
		cfg:    cfg,
		client: client,
		logger: logger,
	}
}

// dispatchEvent is the repository_dispatch request body. The workflow run
// receives the pending route id as correlation data and reads the payload
// from the database itself.
type dispatchEvent struct {
	EventType     string        `json:"event_type"`
	ClientPayload clientPayload `json:"client_payload"`
}

type clientPayload struct {
	PendingRouteID string `json:"pending_route_id"`
}

// Dispatch notifies the external runner. Outcomes:
//   - skipped: owner/repo/token not configured (valid, by design)
//   - sent: the API accepted the event
//   - failed: the API answered with a non-2xx status
//   - error: the call failed at the transport level
func (c *GitHubClient) Dispatch(ctx context.Context, pendingRouteID string) model.DispatchStatus {
	if !c.cfg.Configured() {
		return model.DispatchSkipped
	}

	body, err := json.Marshal(dispatchEvent{
		EventType:     c.cfg.EventType,
		ClientPayload: clientPayload{PendingRouteID: pendingRouteID},
	})
	if err != nil {
		c.logger.ErrorContext(ctx, "encode dispatch event", "error", err)
		return model.DispatchError
	}

	url := fmt.Sprintf("%s/repos/%s/%s/dispatches", c.cfg.BaseURL, c.cfg.Owner, c.cfg.Repo)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		c.logger.ErrorContext(ctx, "create dispatch request", "error", err)
		return model.DispatchError
	}
	req.Header.Set("Authorization", "token "+c.cfg.Token)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.ErrorContext(ctx, "github dispatch error",
			"pending_route_id", pendingRouteID,
			"error", err,
		)
		return model.DispatchError
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		c.logger.ErrorContext(ctx, "github dispatch failed",
			"pending_route_id", pendingRouteID,
			"status", resp.Status,
			"body", strings.TrimSpace(string(detail)),
		)
		return model.DispatchFailed
	}

	if _, err := io.Copy(io.Discard, resp.Body); err != nil {
		// Draining failed after a 2xx; the event was still accepted.
		c.logger.WarnContext(ctx, "drain dispatch response", "error", err)
	}

	return model.DispatchSent
}

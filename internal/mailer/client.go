// Package mailer triggers the hosted email-worker function and normalizes its responses.
// The worker itself (batching, templating, delivery) lives on the functions platform;
// this layer only fires a best-effort trigger and relays the outcome.
package mailer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"campus-clubs/backend/internal/config"
)

// workerPath is appended to the configured base URL for every trigger.
const workerPath = "/functions/v1/send-emails"

// secretHeader carries the shared secret the worker checks before processing.
const secretHeader = "x-worker-secret"

// ErrNotConfigured is returned when any of base URL, anon key, or worker secret is missing.
// No network call is attempted in that case.
var ErrNotConfigured = errors.New("mailer: email worker is not configured")

// Outcome is the raw result of a completed trigger call: the remote status code and
// response body, before any normalization. A nil Outcome means the call never completed.
type Outcome struct {
	StatusCode int
	Body       []byte
}

// Success reports whether the remote worker answered with a 2xx status.
func (o *Outcome) Success() bool {
	return o != nil && o.StatusCode >= 200 && o.StatusCode < 300
}

// Client fires trigger requests at the email worker. Configuration is re-checked on
// every call; there is no retry, backoff, or idempotency key. Deduplicating concurrent
// triggers is the worker's responsibility.
type Client struct {
	cfg        *config.Config
	httpClient *http.Client
}

// NewClient returns a Client using cfg for worker settings. httpClient may be nil;
// http.DefaultClient is used then, matching the no-explicit-timeout contract of this layer.
func NewClient(cfg *config.Config, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{cfg: cfg, httpClient: httpClient}
}

// Trigger POSTs once to the worker endpoint with the anon key as the Bearer credential
// and the shared secret in the dedicated header. No request body is sent.
// Returns ErrNotConfigured before any I/O when configuration is incomplete; a wrapped
// transport error when the call could not be established; otherwise the raw Outcome,
// including non-2xx statuses.
func (c *Client) Trigger(ctx context.Context) (*Outcome, error) {
	if c.cfg.EmailWorkerBaseURL == "" || c.cfg.EmailWorkerAnonKey == "" || c.cfg.EmailWorkerSecret == "" {
		return nil, ErrNotConfigured
	}

	out, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.cfg.EmailWorkerBaseURL+workerPath, nil)
	if err != nil {
		return nil, fmt.Errorf("mailer: build request: %w", err)
	}
	out.Header.Set("Authorization", "Bearer "+c.cfg.EmailWorkerAnonKey)
	out.Header.Set(secretHeader, c.cfg.EmailWorkerSecret)

	resp, err := c.httpClient.Do(out)
	if err != nil {
		return nil, fmt.Errorf("mailer: dispatch: %w", err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	return &Outcome{StatusCode: resp.StatusCode, Body: body}, nil
}

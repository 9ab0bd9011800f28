// Package task is the client for the remote task-inbox endpoint.
//
// The endpoint contract is one POST with a bearer credential and the JSON
// body {"content": <text>}; any 2xx status means the task was created.
package task

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// OutcomeKind classifies one delivery attempt.
type OutcomeKind int

const (
	// Created: the endpoint accepted the task.
	Created OutcomeKind = iota
	// TransportError: the call failed or returned a non-2xx status.
	TransportError
	// ValidationError: the input was rejected locally; no call was made.
	ValidationError
)

func (k OutcomeKind) String() string {
	switch k {
	case Created:
		return "created"
	case TransportError:
		return "transport-error"
	case ValidationError:
		return "validation-error"
	default:
		return "unknown"
	}
}

// Outcome is produced exactly once per Create call. Detail is a
// human-readable cause for the failure kinds.
type Outcome struct {
	Kind   OutcomeKind
	Detail string
}

type createRequest struct {
	Content string `json:"content"`
}

// requestTimeout bounds the transport; expiry surfaces as TransportError.
const requestTimeout = 10 * time.Second

// Client performs single-attempt task creation. There is no automatic
// retry; retry policy, if any, belongs to the caller.
type Client struct {
	endpoint string
	hc       *http.Client
}

// New returns a Client for the given endpoint URL.
func New(endpoint string) *Client {
	return &Client{
		endpoint: endpoint,
		hc:       &http.Client{Timeout: requestTimeout},
	}
}

// Create validates text and token locally, then performs one POST. Invalid
// input is rejected before any network traffic.
func (c *Client) Create(ctx context.Context, text, token string) Outcome {
	if strings.TrimSpace(text) == "" {
		return Outcome{Kind: ValidationError, Detail: "captured text is empty"}
	}
	if token == "" {
		return Outcome{Kind: ValidationError, Detail: "no API token provided"}
	}

	body, err := json.Marshal(createRequest{Content: text})
	if err != nil {
		return Outcome{Kind: TransportError, Detail: fmt.Sprintf("encode request: %v", err)}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return Outcome{Kind: TransportError, Detail: fmt.Sprintf("build request: %v", err)}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.hc.Do(req)
	if err != nil {
		return Outcome{Kind: TransportError, Detail: err.Error()}
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Outcome{Kind: TransportError, Detail: fmt.Sprintf("endpoint returned %s", resp.Status)}
	}
	return Outcome{Kind: Created}
}

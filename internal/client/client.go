// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package client

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

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jeranaias/querydesk-tui/internal/model"
)

const (
	// DefaultBaseURL is where the query service listens by default.
	DefaultBaseURL = "http://localhost:8000"

	// DefaultTimeout bounds a single request. Agent answers can take a while.
	DefaultTimeout = 2 * time.Minute

	// QueryPath is the question endpoint relative to the base URL.
	QueryPath = "/api/query"

	// RequestIDHeader carries the per-request correlation ID.
	RequestIDHeader = "X-Request-ID"

	maxResponseBytes = 8 << 20
	maxErrorBytes    = 64 << 10
)

// =============================================================================
// CLIENT CONFIGURATION
// =============================================================================

// ClientConfig holds configuration options for the query client.
type ClientConfig struct {
	// BaseURL is the query service base URL (default: http://localhost:8000)
	BaseURL string

	// Timeout for a single request (default: 2m)
	Timeout time.Duration

	// UserAgent sent with every request
	UserAgent string

	// Transport overrides the HTTP transport (tests use a fake round tripper)
	Transport http.RoundTripper

	// Logger receives request logs (default: no-op)
	Logger *zap.Logger
}

// DefaultConfig returns the default client configuration.
func DefaultConfig() *ClientConfig {
	return &ClientConfig{
		BaseURL:   DefaultBaseURL,
		Timeout:   DefaultTimeout,
		UserAgent: "querydesk",
	}
}

// =============================================================================
// CLIENT
// =============================================================================

// Client talks to the query service.
//
// The Client is safe for concurrent use; it holds no per-request state.
//
// Example:
//
//	c := client.NewClient()
//	resp, err := c.Query(ctx, "total holdings per relationship manager")
type Client struct {
	config     *ClientConfig
	httpClient *http.Client
	logger     *zap.Logger
}

// QueryRequest is the body posted to the query endpoint.
type QueryRequest struct {
	Question string `json:"question"`
}

// errorBody is the JSON shape of a failed request.
type errorBody struct {
	Detail json.RawMessage `json:"detail"`
}

// healthBody is the JSON shape of the root endpoint.
type healthBody struct {
	Status string `json:"Status"`
}

// NewClient creates a new client with default configuration.
func NewClient() *Client {
	return NewClientWithConfig(DefaultConfig())
}

// NewClientWithConfig creates a new client with custom configuration.
func NewClientWithConfig(config *ClientConfig) *Client {
	if config == nil {
		config = DefaultConfig()
	}

	// Fill in defaults for any zero values
	if config.BaseURL == "" {
		config.BaseURL = DefaultBaseURL
	}
	config.BaseURL = strings.TrimRight(config.BaseURL, "/")
	if config.Timeout == 0 {
		config.Timeout = DefaultTimeout
	}
	if config.UserAgent == "" {
		config.UserAgent = "querydesk"
	}

	logger := config.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Client{
		config: config,
		httpClient: &http.Client{
			Timeout:   config.Timeout,
			Transport: config.Transport,
		},
		logger: logger.Named("client"),
	}
}

// BaseURL returns the service base URL the client was configured with.
func (c *Client) BaseURL() string {
	return c.config.BaseURL
}

// =============================================================================
// QUERY
// =============================================================================

// Query posts a question and decodes the answer.
//
// A 2xx body with an unrecognized type tag is a successful model.Unknown
// answer, not an error. Exactly one request is made; there are no retries.
func (c *Client) Query(ctx context.Context, question string) (model.Response, error) {
	if strings.TrimSpace(question) == "" {
		return nil, ErrEmptyQuestion
	}

	endpoint, err := url.JoinPath(c.config.BaseURL, QueryPath)
	if err != nil {
		return nil, &ClientError{Type: ErrTypeRequest, Message: "invalid endpoint", Cause: err}
	}

	payload, err := json.Marshal(QueryRequest{Question: question})
	if err != nil {
		return nil, &ClientError{Type: ErrTypeRequest, Message: "failed to encode question", Cause: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, &ClientError{Type: ErrTypeRequest, Message: "failed to create request", Cause: err}
	}
	requestID := uuid.NewString()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.config.UserAgent)
	req.Header.Set(RequestIDHeader, requestID)

	log := c.logger.With(zap.String("request_id", requestID), zap.String("endpoint", endpoint))
	start := time.Now()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		cerr := classifyTransportError(err)
		log.Warn("query failed", zap.Stringer("kind", cerr.Type), zap.Duration("duration", time.Since(start)), zap.Error(err))
		return nil, cerr
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		cerr := statusError(resp)
		log.Warn("query rejected",
			zap.Int("status", resp.StatusCode),
			zap.String("detail", cerr.Detail),
			zap.Duration("duration", time.Since(start)))
		return nil, cerr
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		cerr := classifyTransportError(err)
		log.Warn("reading answer failed", zap.Error(err))
		return nil, cerr
	}

	answer, err := model.DecodeResponse(body)
	if err != nil {
		log.Warn("undecodable answer", zap.Error(err), zap.Int("bytes", len(body)))
		return nil, &ClientError{Type: ErrTypeInvalidResponse, Message: "invalid response from query service", Cause: err}
	}

	log.Debug("query answered",
		zap.Int("status", resp.StatusCode),
		zap.String("kind", string(answer.Kind())),
		zap.Duration("duration", time.Since(start)))
	return answer, nil
}

// statusError builds the error for a non-2xx answer. The detail comes from a
// JSON {"detail": ...} body; any other body falls back to the status line.
func statusError(resp *http.Response) *ClientError {
	cerr := &ClientError{
		Type:       ErrTypeStatus,
		StatusCode: resp.StatusCode,
		Message:    fmt.Sprintf("query service returned %s", statusText(resp)),
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBytes))
	if err != nil || len(bytes.TrimSpace(data)) == 0 {
		return cerr
	}

	var eb errorBody
	if err := json.Unmarshal(data, &eb); err != nil || len(eb.Detail) == 0 {
		return cerr
	}

	var detail string
	if err := json.Unmarshal(eb.Detail, &detail); err != nil {
		// FastAPI validation errors carry a list; keep it as compact JSON.
		var buf bytes.Buffer
		if json.Compact(&buf, eb.Detail) == nil && buf.String() != "null" {
			detail = buf.String()
		}
	}
	cerr.Detail = detail
	return cerr
}

func statusText(resp *http.Response) string {
	if resp.Status != "" {
		return resp.Status
	}
	return fmt.Sprintf("%d %s", resp.StatusCode, http.StatusText(resp.StatusCode))
}

// =============================================================================
// HEALTH CHECK
// =============================================================================

// Health verifies that the query service is reachable and returns the status
// string it reports (empty if the root endpoint returns no JSON).
func (c *Client) Health(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.config.BaseURL+"/", nil)
	if err != nil {
		return "", &ClientError{Type: ErrTypeRequest, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.config.UserAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", classifyTransportError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", statusError(resp)
	}

	var hb healthBody
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBytes))
	if err == nil {
		_ = json.Unmarshal(data, &hb)
	}
	return hb.Status, nil
}

package cinemaguide

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

	"github.com/rs/zerolog"
)

const defaultUserAgent = "cinectl"

// TokenSource yields the current bearer credential. An empty string means
// no credential is held and the request goes out anonymous.
type TokenSource interface {
	Token() string
}

// TokenFunc adapts a plain function to a TokenSource.
type TokenFunc func() string

// Token implements TokenSource.
func (f TokenFunc) Token() string { return f() }

// Client represents a cinemaguide API client.
type Client struct {
	baseURL    string
	tokens     TokenSource
	httpClient *http.Client
	userAgent  string
	logger     zerolog.Logger
}

// NewClient creates a new cinemaguide client. tokens may be nil, in which
// case all requests are sent without a credential.
func NewClient(baseURL string, tokens TokenSource, logger zerolog.Logger, opts ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("%w: API URL is required", ErrInvalidConfig)
	}

	options := &clientOptions{
		timeout:   30 * time.Second,
		userAgent: defaultUserAgent,
	}
	for _, opt := range opts {
		opt(options)
	}

	httpClient := options.httpClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: options.timeout}
	}

	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		tokens:     tokens,
		httpClient: httpClient,
		userAgent:  options.userAgent,
		logger:     logger,
	}, nil
}

// doRequest performs an HTTP request against the API. The bearer
// credential is attached whenever the token source yields one. Non-2xx
// responses are returned as *APIError with the message extracted from the
// response body.
func (c *Client) doRequest(ctx context.Context, method, endpoint string, params url.Values, payload any) ([]byte, error) {
	requestURL := c.baseURL + endpoint
	if len(params) > 0 {
		requestURL += "?" + params.Encode()
	}

	var reqBody io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, requestURL, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.tokens != nil {
		if token := c.tokens.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		// The original client only warned here; re-authentication is left
		// to the caller.
		c.logger.Warn().
			Str("method", method).
			Str("endpoint", endpoint).
			Msg("Request rejected as unauthorized")
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Message:    extractMessage(body, resp.StatusCode),
			Body:       string(body),
		}
	}

	return body, nil
}

// getJSON performs a GET request and decodes the response into out.
func (c *Client) getJSON(ctx context.Context, endpoint string, params url.Values, out any) error {
	body, err := c.doRequest(ctx, http.MethodGet, endpoint, params, nil)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}

// BaseURL returns the API origin the client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

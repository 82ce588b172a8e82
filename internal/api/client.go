package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/appstoreserver/client-go/internal/apierrors"
)

// Default transport timeouts.
const (
	// DefaultOpenTimeout bounds connection establishment.
	DefaultOpenTimeout = 10 * time.Second
	// DefaultReadTimeout bounds the full request/response exchange.
	DefaultReadTimeout = 30 * time.Second
)

// ErrUnsupportedMethod is returned for HTTP methods the transport does
// not support. It fails before any network I/O.
var ErrUnsupportedMethod = errors.New("unsupported HTTP method")

var supportedMethods = map[string]bool{
	http.MethodGet:    true,
	http.MethodPost:   true,
	http.MethodPut:    true,
	http.MethodPatch:  true,
	http.MethodDelete: true,
}

// TokenSource supplies a fresh bearer token for each outbound request.
type TokenSource interface {
	Token() (string, error)
}

// Config holds the transport configuration.
type Config struct {
	// BaseURL is the environment-selected API origin.
	BaseURL string
	// Tokens generates bearer tokens.
	Tokens TokenSource
	// HTTPClient overrides the default client (timeouts are then the
	// caller's responsibility).
	HTTPClient *http.Client
	// OpenTimeout bounds connection establishment. Defaults to
	// DefaultOpenTimeout.
	OpenTimeout time.Duration
	// ReadTimeout bounds the full exchange. Defaults to DefaultReadTimeout.
	ReadTimeout time.Duration
	// Retry configures the backoff schedule. Defaults to
	// DefaultRetryConfig.
	Retry *RetryConfig
}

// Client is the HTTP transport for the App Store Server API. A single
// Client owns one long-lived connection pool and is safe for concurrent
// use.
type Client struct {
	mu         sync.RWMutex
	baseURL    string
	tokens     TokenSource
	httpClient *http.Client
	retry      *RetryConfig
}

// NewClient creates a transport from the given configuration.
func NewClient(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("base URL is required")
	}
	if cfg.Tokens == nil {
		return nil, fmt.Errorf("token source is required")
	}

	retry := cfg.Retry
	if retry == nil {
		retry = DefaultRetryConfig()
	}
	if err := retry.Validate(); err != nil {
		return nil, err
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		openTimeout := cfg.OpenTimeout
		if openTimeout <= 0 {
			openTimeout = DefaultOpenTimeout
		}
		readTimeout := cfg.ReadTimeout
		if readTimeout <= 0 {
			readTimeout = DefaultReadTimeout
		}
		httpClient = &http.Client{
			Timeout: readTimeout,
			Transport: &http.Transport{
				DialContext: (&net.Dialer{Timeout: openTimeout}).DialContext,
			},
		}
	}

	return &Client{
		baseURL:    cfg.BaseURL,
		tokens:     cfg.Tokens,
		httpClient: httpClient,
		retry:      retry,
	}, nil
}

// SetBaseURL switches the API origin, e.g. after an environment change.
func (c *Client) SetBaseURL(baseURL string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.baseURL = baseURL
}

// BaseURL returns the current API origin.
func (c *Client) BaseURL() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.baseURL
}

// Do executes one request with retry. Query parameters are appended for
// GET and DELETE; body is JSON-serialized for POST, PUT and PATCH. On a
// 2xx response the body is decoded into result (when non-nil). Non-2xx
// responses are classified into the shared error taxonomy; transport
// errors and 5xx responses are retried per the retry configuration.
func (c *Client) Do(ctx context.Context, method, path string, query url.Values, body any, result any) error {
	if !supportedMethods[method] {
		return fmt.Errorf("%w: %s", ErrUnsupportedMethod, method)
	}

	var bodyBytes []byte
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request body: %w", err)
		}
		bodyBytes = data
	}

	requestURL := c.BaseURL() + path
	if len(query) > 0 {
		requestURL += "?" + query.Encode()
	}

	start := time.Now()
	var resp *http.Response
	var respBody []byte

	for attempt := 1; ; attempt++ {
		var retryable bool
		var err error
		resp, respBody, retryable, err = c.send(ctx, method, requestURL, bodyBytes)

		transient := false
		switch {
		case err != nil:
			// Context cancellation is the caller's decision, never retried.
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if !retryable {
				return err
			}
			transient = true
		case resp.StatusCode >= 500:
			transient = true
		}

		if !transient {
			break
		}

		if !c.retry.ShouldRetry(attempt, time.Since(start)) {
			if err != nil {
				return &apierrors.NetworkError{Err: err, URL: requestURL, Attempt: attempt}
			}
			break
		}
		if waitErr := c.retry.Wait(ctx, attempt); waitErr != nil {
			return waitErr
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return apierrors.Classify(resp.StatusCode, respBody)
	}

	if result != nil {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

// send performs a single attempt. The request is rebuilt each time so a
// retried POST gets a fresh body reader and a fresh bearer token. The
// retryable flag distinguishes transport failures from request-setup
// failures, which must not consume the retry budget.
func (c *Client) send(ctx context.Context, method, requestURL string, body []byte) (resp *http.Response, respBody []byte, retryable bool, err error) {
	var bodyReader io.Reader
	if body != nil {
		bodyReader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, requestURL, bodyReader)
	if err != nil {
		return nil, nil, false, fmt.Errorf("create request: %w", err)
	}

	bearer, err := c.tokens.Token()
	if err != nil {
		return nil, nil, false, fmt.Errorf("generate bearer token: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+bearer)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err = c.httpClient.Do(req)
	if err != nil {
		return nil, nil, true, err
	}
	defer resp.Body.Close()

	respBody, err = io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, true, fmt.Errorf("read response body: %w", err)
	}
	return resp, respBody, false, nil
}

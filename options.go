package appstoreserver

import (
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/appstoreserver/client-go/internal/api"
)

// RetryConfig configures the backoff schedule for transient failures.
type RetryConfig = api.RetryConfig

// DefaultRetryConfig returns the default retry configuration: 3 tries,
// 0.5s base interval, 1.5 multiplier, 60s interval cap, 900s elapsed cap.
func DefaultRetryConfig() *RetryConfig {
	return api.DefaultRetryConfig()
}

// clientConfig holds the optional configuration for the client.
type clientConfig struct {
	baseURL     string
	httpClient  *http.Client
	openTimeout time.Duration
	readTimeout time.Duration
	retry       *RetryConfig
	tokenTTL    time.Duration
}

// Option configures the client.
type Option func(*clientConfig)

// HistoryOption configures a transaction-history request.
type HistoryOption func(url.Values)

// StatusOption configures a subscription-status request.
type StatusOption func(url.Values)

// WithBaseURL overrides the environment-selected API origin. Intended
// for testing against a local server.
func WithBaseURL(baseURL string) Option {
	return func(c *clientConfig) {
		c.baseURL = baseURL
	}
}

// WithHTTPClient sets a custom HTTP client. The open/read timeout
// options have no effect when this is set.
func WithHTTPClient(client *http.Client) Option {
	return func(c *clientConfig) {
		c.httpClient = client
	}
}

// WithOpenTimeout sets the connection-establishment timeout.
// Default: 10 seconds.
func WithOpenTimeout(timeout time.Duration) Option {
	return func(c *clientConfig) {
		c.openTimeout = timeout
	}
}

// WithReadTimeout sets the timeout for the full request/response
// exchange. Default: 30 seconds.
func WithReadTimeout(timeout time.Duration) Option {
	return func(c *clientConfig) {
		c.readTimeout = timeout
	}
}

// WithRetryConfig sets the retry policy for transient failures.
func WithRetryConfig(retry *RetryConfig) Option {
	return func(c *clientConfig) {
		c.retry = retry
	}
}

// WithTokenTTL sets the lifetime of generated bearer tokens. Must not
// exceed one hour. Default: 20 minutes.
func WithTokenTTL(ttl time.Duration) Option {
	return func(c *clientConfig) {
		c.tokenTTL = ttl
	}
}

// WithRevision requests the history page identified by a revision token
// from a previous response.
func WithRevision(revision string) HistoryOption {
	return func(q url.Values) {
		q.Set("revision", revision)
	}
}

// WithSort sets the ordering of the history page.
func WithSort(order SortOrder) HistoryOption {
	return func(q url.Values) {
		q.Set("sort", string(order))
	}
}

// WithStartDate limits history to transactions at or after the given time.
func WithStartDate(t time.Time) HistoryOption {
	return func(q url.Values) {
		q.Set("startDate", strconv.FormatInt(t.UnixMilli(), 10))
	}
}

// WithEndDate limits history to transactions before the given time.
func WithEndDate(t time.Time) HistoryOption {
	return func(q url.Values) {
		q.Set("endDate", strconv.FormatInt(t.UnixMilli(), 10))
	}
}

// WithProductID limits history to transactions for one product.
func WithProductID(productID string) HistoryOption {
	return func(q url.Values) {
		q.Add("productId", productID)
	}
}

// WithStatusFilter limits the subscription-status response to
// subscriptions in the given states.
func WithStatusFilter(statuses ...SubscriptionStatus) StatusOption {
	return func(q url.Values) {
		for _, s := range statuses {
			q.Add("status", strconv.Itoa(int(s)))
		}
	}
}

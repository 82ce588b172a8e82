package appstoreserver

import (
	"context"
	"fmt"
	"net/url"
	"sync"

	"github.com/appstoreserver/client-go/internal/api"
	"github.com/appstoreserver/client-go/internal/jws"
	"github.com/appstoreserver/client-go/internal/token"
)

// Config holds the credentials and identity the client signs requests
// with. All fields are required.
type Config struct {
	// PrivateKey is the PEM-encoded EC P-256 private key issued by App
	// Store Connect (the contents of the .p8 file).
	PrivateKey []byte
	// KeyID is the identifier of the private key.
	KeyID string
	// IssuerID is the issuer identifier from App Store Connect.
	IssuerID string
	// BundleID is the app's bundle identifier.
	BundleID string
	// Environment selects the production or sandbox API.
	Environment Environment
}

// Client is the App Store Server API client. It generates a fresh
// bearer token for every outbound request and retries transient
// failures with exponential backoff. A Client is safe for concurrent
// use; concurrent calls share one underlying connection pool.
type Client struct {
	mu         sync.RWMutex
	env        Environment
	overridden bool
	apiClient  *api.Client
	tokens     *token.Generator
}

// New creates a client for the given credentials.
func New(cfg Config, opts ...Option) (*Client, error) {
	baseURL, err := cfg.Environment.baseURL()
	if err != nil {
		return nil, err
	}

	cc := &clientConfig{}
	for _, opt := range opts {
		opt(cc)
	}

	tokens, err := token.NewGenerator(cfg.PrivateKey, cfg.KeyID, cfg.IssuerID, cfg.BundleID)
	if err != nil {
		return nil, err
	}
	if cc.tokenTTL > 0 {
		if err := tokens.SetLifetime(cc.tokenTTL); err != nil {
			return nil, err
		}
	}

	if cc.baseURL != "" {
		baseURL = cc.baseURL
	}

	apiClient, err := api.NewClient(api.Config{
		BaseURL:     baseURL,
		Tokens:      tokens,
		HTTPClient:  cc.httpClient,
		OpenTimeout: cc.openTimeout,
		ReadTimeout: cc.readTimeout,
		Retry:       cc.retry,
	})
	if err != nil {
		return nil, err
	}

	return &Client{
		env:        cfg.Environment,
		overridden: cc.baseURL != "",
		apiClient:  apiClient,
		tokens:     tokens,
	}, nil
}

// Environment returns the environment the client currently targets.
func (c *Client) Environment() Environment {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.env
}

// SetEnvironment switches the client to the other deployment. The same
// validation as construction applies. A base-URL override set at
// construction stays in effect.
func (c *Client) SetEnvironment(env Environment) error {
	baseURL, err := env.baseURL()
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.env = env
	if !c.overridden {
		c.apiClient.SetBaseURL(baseURL)
	}
	return nil
}

// GetTransactionInfo fetches the transaction for the given identifier
// and decodes its signed envelope.
func (c *Client) GetTransactionInfo(ctx context.Context, transactionID string) (*TransactionInfo, error) {
	resp, err := c.apiClient.GetTransactionInfo(ctx, transactionID)
	if err != nil {
		return nil, err
	}

	env, err := jws.Decode(resp.SignedTransactionInfo)
	if err != nil {
		return nil, fmt.Errorf("decode signed transaction: %w", err)
	}

	return &TransactionInfo{
		SignedTransactionInfo: resp.SignedTransactionInfo,
		Transaction:           env.Payload,
	}, nil
}

// GetTransactionHistory fetches one page of the customer's transaction
// history. The signed transactions are returned raw; decode them with
// DecodeSignedPayloads.
func (c *Client) GetTransactionHistory(ctx context.Context, transactionID string, opts ...HistoryOption) (*TransactionHistory, error) {
	query := url.Values{}
	for _, opt := range opts {
		opt(query)
	}

	resp, err := c.apiClient.GetTransactionHistory(ctx, transactionID, query)
	if err != nil {
		return nil, err
	}

	return &TransactionHistory{
		Revision:           resp.Revision,
		HasMore:            resp.HasMore,
		BundleID:           resp.BundleID,
		AppAppleID:         resp.AppAppleID,
		Environment:        environmentFromWire(resp.Environment),
		SignedTransactions: resp.SignedTransactions,
	}, nil
}

// GetAllSubscriptionStatuses fetches the status of every subscription
// the transaction's customer has, optionally filtered by state.
func (c *Client) GetAllSubscriptionStatuses(ctx context.Context, transactionID string, opts ...StatusOption) (*SubscriptionStatuses, error) {
	query := url.Values{}
	for _, opt := range opts {
		opt(query)
	}
	if err := validateStatusFilter(query["status"]); err != nil {
		return nil, err
	}

	resp, err := c.apiClient.GetAllSubscriptionStatuses(ctx, transactionID, query)
	if err != nil {
		return nil, err
	}

	return &SubscriptionStatuses{
		Environment: environmentFromWire(resp.Environment),
		BundleID:    resp.BundleID,
		AppAppleID:  resp.AppAppleID,
		Data:        resp.Data,
	}, nil
}

// RequestTestNotification asks the server to send a test notification
// and returns the token identifying it.
func (c *Client) RequestTestNotification(ctx context.Context) (string, error) {
	resp, err := c.apiClient.RequestTestNotification(ctx)
	if err != nil {
		return "", err
	}
	return resp.TestNotificationToken, nil
}

// GetTestNotificationStatus fetches the delivery status of a test
// notification and decodes its signed payload.
func (c *Client) GetTestNotificationStatus(ctx context.Context, testNotificationToken string) (*TestNotificationStatus, error) {
	resp, err := c.apiClient.GetTestNotificationStatus(ctx, testNotificationToken)
	if err != nil {
		return nil, err
	}

	env, err := jws.Decode(resp.SignedPayload)
	if err != nil {
		return nil, fmt.Errorf("decode signed payload: %w", err)
	}

	return &TestNotificationStatus{
		SignedPayload: resp.SignedPayload,
		Payload:       env.Payload,
		SendAttempts:  resp.SendAttempts,
	}, nil
}

// validateStatusFilter rejects status values outside 1-5 before any
// network I/O.
func validateStatusFilter(values []string) error {
	for _, v := range values {
		switch v {
		case "1", "2", "3", "4", "5":
		default:
			return fmt.Errorf("subscription status must be between 1 and 5, got %s", v)
		}
	}
	return nil
}

// environmentFromWire maps the server's environment strings onto the
// client's enum. The server reports "Production"/"Sandbox".
func environmentFromWire(s string) Environment {
	switch s {
	case "Sandbox":
		return EnvironmentSandbox
	case "Production":
		return EnvironmentProduction
	default:
		return Environment(s)
	}
}

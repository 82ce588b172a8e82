package appstoreserver

import "github.com/appstoreserver/client-go/internal/api"

// Environment selects which App Store Server API deployment the client
// talks to. Exactly two values are valid.
type Environment string

const (
	// EnvironmentProduction targets the production API.
	EnvironmentProduction Environment = "production"
	// EnvironmentSandbox targets the sandbox API.
	EnvironmentSandbox Environment = "sandbox"
)

const (
	productionBaseURL = "https://api.storekit.itunes.apple.com"
	sandboxBaseURL    = "https://api.storekit-sandbox.itunes.apple.com"
)

// baseURL returns the API origin for the environment, or an error for
// anything other than production/sandbox.
func (e Environment) baseURL() (string, error) {
	switch e {
	case EnvironmentProduction:
		return productionBaseURL, nil
	case EnvironmentSandbox:
		return sandboxBaseURL, nil
	default:
		return "", ErrInvalidEnvironment
	}
}

// SortOrder orders transaction history by modification date.
type SortOrder string

const (
	// SortAscending returns the oldest transactions first.
	SortAscending SortOrder = "ASCENDING"
	// SortDescending returns the most recent transactions first.
	SortDescending SortOrder = "DESCENDING"
)

// SubscriptionStatus is the renewal state of an auto-renewable
// subscription as reported by the subscription-status endpoint.
type SubscriptionStatus int

const (
	// SubscriptionActive means the subscription is active.
	SubscriptionActive SubscriptionStatus = 1
	// SubscriptionExpired means the subscription has expired.
	SubscriptionExpired SubscriptionStatus = 2
	// SubscriptionBillingRetry means the subscription is in a billing
	// retry period.
	SubscriptionBillingRetry SubscriptionStatus = 3
	// SubscriptionGracePeriod means the subscription is in a billing
	// grace period.
	SubscriptionGracePeriod SubscriptionStatus = 4
	// SubscriptionRevoked means the subscription was revoked.
	SubscriptionRevoked SubscriptionStatus = 5
)

// TransactionInfo is the result of GetTransactionInfo: the raw signed
// envelope plus its decoded transaction payload.
type TransactionInfo struct {
	// SignedTransactionInfo is the compact signed envelope as returned
	// by the server.
	SignedTransactionInfo string
	// Transaction is the decoded payload of the envelope.
	Transaction map[string]any
}

// TransactionHistory is one page of a customer's transaction history.
// SignedTransactions holds raw envelopes; decode them with
// DecodeSignedPayloads.
type TransactionHistory struct {
	Revision           string
	HasMore            bool
	BundleID           string
	AppAppleID         int64
	Environment        Environment
	SignedTransactions []string
}

// SubscriptionStatuses holds the statuses of every subscription the
// customer has, grouped by subscription group.
type SubscriptionStatuses struct {
	Environment Environment
	BundleID    string
	AppAppleID  int64
	Data        []SubscriptionGroupStatus
}

// SubscriptionGroupStatus is re-exported from the wire layer.
type SubscriptionGroupStatus = api.SubscriptionGroupStatus

// LastTransaction is re-exported from the wire layer.
type LastTransaction = api.LastTransaction

// SendAttempt is re-exported from the wire layer.
type SendAttempt = api.SendAttempt

// TestNotificationStatus is the result of GetTestNotificationStatus:
// the raw signed payload, its decoded form, and the delivery attempts
// made so far.
type TestNotificationStatus struct {
	SignedPayload string
	Payload       map[string]any
	SendAttempts  []SendAttempt
}

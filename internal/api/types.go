package api

// TransactionInfoResponse represents the
// GET /inApps/v1/transactions/{transactionId} response.
type TransactionInfoResponse struct {
	SignedTransactionInfo string `json:"signedTransactionInfo"`
}

// HistoryResponse represents the GET /inApps/v2/history/{transactionId}
// response.
type HistoryResponse struct {
	Revision           string   `json:"revision"`
	HasMore            bool     `json:"hasMore"`
	BundleID           string   `json:"bundleId"`
	AppAppleID         int64    `json:"appAppleId"`
	Environment        string   `json:"environment"`
	SignedTransactions []string `json:"signedTransactions"`
}

// StatusResponse represents the
// GET /inApps/v1/subscriptions/{transactionId} response.
type StatusResponse struct {
	Environment string                    `json:"environment"`
	BundleID    string                    `json:"bundleId"`
	AppAppleID  int64                     `json:"appAppleId"`
	Data        []SubscriptionGroupStatus `json:"data"`
}

// SubscriptionGroupStatus holds the last transactions of one
// subscription group.
type SubscriptionGroupStatus struct {
	SubscriptionGroupIdentifier string            `json:"subscriptionGroupIdentifier"`
	LastTransactions            []LastTransaction `json:"lastTransactions"`
}

// LastTransaction is the most recent transaction of one subscription.
type LastTransaction struct {
	Status                int32  `json:"status"`
	OriginalTransactionID string `json:"originalTransactionId"`
	SignedTransactionInfo string `json:"signedTransactionInfo"`
	SignedRenewalInfo     string `json:"signedRenewalInfo"`
}

// SendTestNotificationResponse represents the
// POST /inApps/v1/notifications/test response.
type SendTestNotificationResponse struct {
	TestNotificationToken string `json:"testNotificationToken"`
}

// CheckTestNotificationResponse represents the
// GET /inApps/v1/notifications/test/{token} response.
type CheckTestNotificationResponse struct {
	SignedPayload string        `json:"signedPayload"`
	SendAttempts  []SendAttempt `json:"sendAttempts"`
}

// SendAttempt records one delivery attempt of a notification.
type SendAttempt struct {
	AttemptDate       int64  `json:"attemptDate"`
	SendAttemptResult string `json:"sendAttemptResult"`
}

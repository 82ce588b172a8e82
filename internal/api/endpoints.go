package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

// GetTransactionInfo fetches the signed transaction for an identifier.
func (c *Client) GetTransactionInfo(ctx context.Context, transactionID string) (*TransactionInfoResponse, error) {
	path := fmt.Sprintf("/inApps/v1/transactions/%s", url.PathEscape(transactionID))
	var result TransactionInfoResponse
	if err := c.Do(ctx, http.MethodGet, path, nil, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// GetTransactionHistory fetches a page of the customer's transaction
// history. Query parameters carry revision, sort order and filters.
func (c *Client) GetTransactionHistory(ctx context.Context, transactionID string, query url.Values) (*HistoryResponse, error) {
	path := fmt.Sprintf("/inApps/v2/history/%s", url.PathEscape(transactionID))
	var result HistoryResponse
	if err := c.Do(ctx, http.MethodGet, path, query, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// GetAllSubscriptionStatuses fetches the subscription statuses for all
// subscription groups the transaction's customer belongs to.
func (c *Client) GetAllSubscriptionStatuses(ctx context.Context, transactionID string, query url.Values) (*StatusResponse, error) {
	path := fmt.Sprintf("/inApps/v1/subscriptions/%s", url.PathEscape(transactionID))
	var result StatusResponse
	if err := c.Do(ctx, http.MethodGet, path, query, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// RequestTestNotification asks the server to send a test notification.
// The endpoint takes an empty JSON object as its body.
func (c *Client) RequestTestNotification(ctx context.Context) (*SendTestNotificationResponse, error) {
	var result SendTestNotificationResponse
	if err := c.Do(ctx, http.MethodPost, "/inApps/v1/notifications/test", nil, struct{}{}, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// GetTestNotificationStatus fetches the delivery status of a previously
// requested test notification.
func (c *Client) GetTestNotificationStatus(ctx context.Context, token string) (*CheckTestNotificationResponse, error) {
	path := fmt.Sprintf("/inApps/v1/notifications/test/%s", url.PathEscape(token))
	var result CheckTestNotificationResponse
	if err := c.Do(ctx, http.MethodGet, path, nil, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

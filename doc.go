// Package appstoreserver provides a Go client for the App Store Server
// API. It signs every request with a short-lived ES256 bearer token,
// retries transient failures with bounded exponential backoff, decodes
// the compact signed envelopes the API returns, and classifies failure
// responses into a closed set of typed errors keyed by the server's
// numeric error code.
//
// Basic usage:
//
//	client, err := appstoreserver.New(appstoreserver.Config{
//	    PrivateKey:  pemKey,
//	    KeyID:       "2X9R4HXF34",
//	    IssuerID:    "57246542-96fe-1a63-e053-0824d011072a",
//	    BundleID:    "com.example.app",
//	    Environment: appstoreserver.EnvironmentSandbox,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	info, err := client.GetTransactionInfo(ctx, transactionID)
//	if errors.Is(err, appstoreserver.ErrTransactionIDNotFound) {
//	    // Handle unknown transaction
//	}
//
// Signed envelopes are decoded without verifying their signature; the
// signature segment is preserved for callers that add verification.
package appstoreserver

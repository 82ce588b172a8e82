// Package api provides the HTTP transport for the App Store Server
// API. It handles bearer-token authentication, request/response
// serialization, and automatic retry with exponential backoff for
// transient failures.
//
// # Retry Behavior
//
// Transport-level errors (connection failures, timeouts) and 5xx
// responses are retried. The wait after failed attempt n is
// BaseInterval * Multiplier^(n-1), capped at MaxInterval; retrying
// stops once Tries attempts have been made or the cumulative elapsed
// time would exceed MaxElapsedTime. The schedule is deterministic — no
// jitter is applied. 4xx responses are never retried; they are
// classified immediately.
//
// # Error Handling
//
// Non-2xx responses are classified into the closed taxonomy in the
// apierrors package, keyed by the server-supplied numeric error code.
// Network failures that survive all retries are returned as
// *apierrors.NetworkError wrapping the last transport error.
//
// # Thread Safety
//
// The [Client] type is safe for concurrent use. Multiple goroutines may
// call methods on a single Client simultaneously; each call owns its
// request state.
package api

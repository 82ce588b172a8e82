// Package apierrors provides the shared error taxonomy for the App
// Store Server API client. Failure responses are classified into a
// closed set of errors keyed by the server-supplied numeric code.
package apierrors

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Numeric error codes returned by the App Store Server API. The two
// 5000000-range codes are also used for failures synthesized locally
// (bare 500 responses and unparseable bodies).
const (
	CodeInvalidTransactionID          int64 = 4000006
	CodeInvalidTestNotificationToken  int64 = 4000020
	CodeUnauthorized                  int64 = 4010000
	CodeServerNotificationURLNotFound int64 = 4040007
	CodeTestNotificationNotFound      int64 = 4040008
	CodeTransactionIDNotFound         int64 = 4040010
	CodeRateLimitExceeded             int64 = 4290000
	CodeInternalServer                int64 = 5000000
	CodeInvalidResponse               int64 = 5000002
)

// Sentinel errors for errors.Is() checks. Every *APIError with a known
// code matches exactly one of these.
var (
	// ErrUnauthorized is returned for 401 responses, including tokens
	// presented against the wrong environment.
	ErrUnauthorized = errors.New("unauthorized error")

	// ErrInternalServer is returned for bare 500 responses.
	ErrInternalServer = errors.New("internal server error")

	// ErrInvalidResponse is returned when an error response body cannot
	// be parsed or lacks the errorCode/errorMessage keys.
	ErrInvalidResponse = errors.New("invalid response")

	// ErrInvalidTransactionID is returned for syntactically invalid
	// transaction identifiers.
	ErrInvalidTransactionID = errors.New("invalid transaction id")

	// ErrTransactionIDNotFound is returned when no transaction exists for
	// the given identifier.
	ErrTransactionIDNotFound = errors.New("transaction id not found")

	// ErrRateLimitExceeded is returned when the API rate limit is exceeded.
	ErrRateLimitExceeded = errors.New("rate limit exceeded")

	// ErrServerNotificationURLNotFound is returned when the app has no
	// server notification URL configured.
	ErrServerNotificationURLNotFound = errors.New("server notification URL not found")

	// ErrInvalidTestNotificationToken is returned for malformed test
	// notification tokens.
	ErrInvalidTestNotificationToken = errors.New("invalid test notification token")

	// ErrTestNotificationNotFound is returned when no test notification
	// exists for the given token.
	ErrTestNotificationNotFound = errors.New("test notification not found")
)

// sentinelByCode maps known error codes to their sentinel. Built once;
// unknown codes deliberately have no entry and match no sentinel.
var sentinelByCode = map[int64]error{
	CodeUnauthorized:                  ErrUnauthorized,
	CodeInternalServer:                ErrInternalServer,
	CodeInvalidResponse:               ErrInvalidResponse,
	CodeInvalidTransactionID:          ErrInvalidTransactionID,
	CodeTransactionIDNotFound:         ErrTransactionIDNotFound,
	CodeRateLimitExceeded:             ErrRateLimitExceeded,
	CodeServerNotificationURLNotFound: ErrServerNotificationURLNotFound,
	CodeInvalidTestNotificationToken:  ErrInvalidTestNotificationToken,
	CodeTestNotificationNotFound:      ErrTestNotificationNotFound,
}

// APIError represents an unsuccessful response from the App Store
// Server API. Code and Message come from the server where the body was
// parseable; Body always carries the raw response for diagnostics.
type APIError struct {
	StatusCode int
	Code       int64
	Message    string
	Body       []byte
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("API error %d (code %d): %s", e.StatusCode, e.Code, e.Message)
	}
	return fmt.Sprintf("API error %d (code %d)", e.StatusCode, e.Code)
}

// Is implements errors.Is for sentinel error matching via the code table.
func (e *APIError) Is(target error) bool {
	sentinel, ok := sentinelByCode[e.Code]
	return ok && target == sentinel
}

// errorBody is the JSON shape of App Store Server API error responses.
type errorBody struct {
	ErrorCode    *int64  `json:"errorCode"`
	ErrorMessage *string `json:"errorMessage"`
}

// Classify maps an unsuccessful HTTP response to an *APIError. Status
// is checked before the body: 401 and 500 classify unconditionally,
// everything else is classified by the errorCode in the body, falling
// back to the invalid-response error when the body is unusable. Unknown
// codes are carried verbatim rather than discarded.
func Classify(statusCode int, body []byte) *APIError {
	switch statusCode {
	case 401:
		return &APIError{
			StatusCode: statusCode,
			Code:       CodeUnauthorized,
			Message:    "unauthorized error",
			Body:       body,
		}
	case 500:
		return &APIError{
			StatusCode: statusCode,
			Code:       CodeInternalServer,
			Message:    "Internal Server Error",
			Body:       body,
		}
	}

	var parsed errorBody
	if err := json.Unmarshal(body, &parsed); err != nil || (parsed.ErrorCode == nil && parsed.ErrorMessage == nil) {
		return &APIError{
			StatusCode: statusCode,
			Code:       CodeInvalidResponse,
			Message:    "invalid response",
			Body:       body,
		}
	}

	apiErr := &APIError{StatusCode: statusCode, Body: body}
	if parsed.ErrorCode != nil {
		apiErr.Code = *parsed.ErrorCode
	}
	if parsed.ErrorMessage != nil {
		apiErr.Message = *parsed.ErrorMessage
	}
	return apiErr
}

// NetworkError represents a transport-level failure that survived all
// retry attempts. Unwrap exposes the underlying error unchanged.
type NetworkError struct {
	Err     error
	URL     string
	Attempt int
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error: %v", e.Err)
}

// Unwrap returns the underlying error.
func (e *NetworkError) Unwrap() error {
	return e.Err
}

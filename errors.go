package appstoreserver

import (
	"errors"

	"github.com/appstoreserver/client-go/internal/api"
	"github.com/appstoreserver/client-go/internal/apierrors"
	"github.com/appstoreserver/client-go/internal/jws"
	"github.com/appstoreserver/client-go/internal/token"
)

// Sentinel errors for errors.Is() checks. API errors carry the
// server-supplied numeric code on the *APIError they unwrap from.
var (
	// ErrUnauthorized is returned for 401 responses (code 4010000),
	// including tokens presented against the wrong environment.
	ErrUnauthorized = apierrors.ErrUnauthorized

	// ErrInternalServer is returned for bare 500 responses (code 5000000).
	ErrInternalServer = apierrors.ErrInternalServer

	// ErrInvalidResponse is returned when an error response body cannot
	// be parsed or lacks the errorCode/errorMessage keys (code 5000002).
	ErrInvalidResponse = apierrors.ErrInvalidResponse

	// ErrInvalidTransactionID is returned for syntactically invalid
	// transaction identifiers (code 4000006).
	ErrInvalidTransactionID = apierrors.ErrInvalidTransactionID

	// ErrTransactionIDNotFound is returned when no transaction exists for
	// the given identifier (code 4040010).
	ErrTransactionIDNotFound = apierrors.ErrTransactionIDNotFound

	// ErrRateLimitExceeded is returned when the API rate limit is
	// exceeded (code 4290000).
	ErrRateLimitExceeded = apierrors.ErrRateLimitExceeded

	// ErrServerNotificationURLNotFound is returned when the app has no
	// server notification URL configured (code 4040007).
	ErrServerNotificationURLNotFound = apierrors.ErrServerNotificationURLNotFound

	// ErrInvalidTestNotificationToken is returned for malformed test
	// notification tokens (code 4000020).
	ErrInvalidTestNotificationToken = apierrors.ErrInvalidTestNotificationToken

	// ErrTestNotificationNotFound is returned when no test notification
	// exists for the given token (code 4040008).
	ErrTestNotificationNotFound = apierrors.ErrTestNotificationNotFound

	// ErrInvalidEnvironment is returned when an environment other than
	// production or sandbox is configured.
	ErrInvalidEnvironment = errors.New("environment must be production or sandbox")

	// ErrInvalidPrivateKey is returned when the PEM key material cannot
	// be parsed as an EC P-256 private key.
	ErrInvalidPrivateKey = token.ErrInvalidPrivateKey

	// ErrTokenLifetimeExceeded is returned when a bearer-token lifetime
	// above 3600 seconds is requested.
	ErrTokenLifetimeExceeded = token.ErrLifetimeExceeded

	// ErrUnsupportedMethod is returned for HTTP methods outside
	// GET/POST/PUT/PATCH/DELETE, before any network I/O.
	ErrUnsupportedMethod = api.ErrUnsupportedMethod

	// ErrMalformedEnvelope is returned when a signed envelope cannot be
	// decoded.
	ErrMalformedEnvelope = jws.ErrMalformedEnvelope
)

// APIError represents an unsuccessful response from the App Store
// Server API: the HTTP status, the server-supplied numeric code, a
// human-readable message, and the raw body for diagnostics. Unknown
// codes are carried verbatim. Use errors.Is with the sentinels above to
// branch on the concrete kind.
type APIError = apierrors.APIError

// NetworkError represents a transport-level failure that survived all
// retry attempts. Unwrap exposes the underlying error unchanged.
type NetworkError = apierrors.NetworkError

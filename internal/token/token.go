// Package token generates the short-lived ES256 bearer tokens that
// authenticate requests against the App Store Server API.
package token

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/sha256"
	"crypto/x509"
	"encoding/base64"
	"encoding/json"
	"encoding/pem"
	"errors"
	"fmt"
	"time"
)

// MaxLifetime is the longest token lifetime the API accepts.
const MaxLifetime = 3600 * time.Second

// DefaultLifetime is the lifetime used when generating tokens for
// outbound requests. Tokens are never cached, so a short lifetime is
// more than enough for a single round-trip.
const DefaultLifetime = 20 * time.Minute

// Audience is the fixed aud claim the API expects.
const Audience = "appstoreconnect-v1"

var (
	// ErrInvalidPrivateKey is returned when the PEM key material cannot be
	// parsed as an EC P-256 private key.
	ErrInvalidPrivateKey = errors.New("invalid EC private key")

	// ErrLifetimeExceeded is returned when a token lifetime longer than
	// MaxLifetime is requested.
	ErrLifetimeExceeded = errors.New("token lifetime exceeds 3600 seconds")
)

type header struct {
	Alg string `json:"alg"`
	Kid string `json:"kid"`
	Typ string `json:"typ"`
}

type claims struct {
	Issuer   string `json:"iss"`
	IssuedAt int64  `json:"iat"`
	Expiry   int64  `json:"exp"`
	Audience string `json:"aud"`
	BundleID string `json:"bid"`
}

// Generator builds and signs bearer tokens for a single key/issuer/app
// identity. It is safe for concurrent use.
type Generator struct {
	key      *ecdsa.PrivateKey
	keyID    string
	issuerID string
	bundleID string
	lifetime time.Duration
	now      func() time.Time
}

// NewGenerator parses the PEM-encoded EC private key and returns a
// generator for the given identity. The key must be on P-256.
func NewGenerator(privateKey []byte, keyID, issuerID, bundleID string) (*Generator, error) {
	key, err := parsePrivateKey(privateKey)
	if err != nil {
		return nil, err
	}
	return &Generator{
		key:      key,
		keyID:    keyID,
		issuerID: issuerID,
		bundleID: bundleID,
		lifetime: DefaultLifetime,
		now:      time.Now,
	}, nil
}

// SetLifetime sets the lifetime used by Token. Lifetimes above
// MaxLifetime are rejected.
func (g *Generator) SetLifetime(d time.Duration) error {
	if d <= 0 || d > MaxLifetime {
		return ErrLifetimeExceeded
	}
	g.lifetime = d
	return nil
}

// Token generates a fresh bearer token for one outbound request.
func (g *Generator) Token() (string, error) {
	return g.Generate(g.now(), g.lifetime)
}

// Generate builds and signs a bearer token issued at issuedAt and
// expiring expiresIn later. Requesting a lifetime above MaxLifetime
// fails before any signing occurs.
func (g *Generator) Generate(issuedAt time.Time, expiresIn time.Duration) (string, error) {
	if expiresIn > MaxLifetime {
		return "", ErrLifetimeExceeded
	}

	hdr, err := json.Marshal(header{Alg: "ES256", Kid: g.keyID, Typ: "JWT"})
	if err != nil {
		return "", fmt.Errorf("marshal header: %w", err)
	}

	iat := issuedAt.Unix()
	pld, err := json.Marshal(claims{
		Issuer:   g.issuerID,
		IssuedAt: iat,
		Expiry:   iat + int64(expiresIn.Seconds()),
		Audience: Audience,
		BundleID: g.bundleID,
	})
	if err != nil {
		return "", fmt.Errorf("marshal claims: %w", err)
	}

	signingInput := base64.RawURLEncoding.EncodeToString(hdr) + "." + base64.RawURLEncoding.EncodeToString(pld)

	sig, err := g.sign(signingInput)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}

	return signingInput + "." + base64.RawURLEncoding.EncodeToString(sig), nil
}

// sign produces the raw 64-byte r||s ES256 signature over the input.
func (g *Generator) sign(input string) ([]byte, error) {
	digest := sha256.Sum256([]byte(input))

	r, s, err := ecdsa.Sign(rand.Reader, g.key, digest[:])
	if err != nil {
		return nil, err
	}

	// JWS wants fixed-width big-endian r||s, 32 bytes each for P-256.
	sig := make([]byte, 64)
	r.FillBytes(sig[:32])
	s.FillBytes(sig[32:])
	return sig, nil
}

// parsePrivateKey decodes PEM key material in either PKCS#8 (the format
// App Store Connect issues .p8 files in) or SEC1 form.
func parsePrivateKey(pemKey []byte) (*ecdsa.PrivateKey, error) {
	block, _ := pem.Decode(pemKey)
	if block == nil {
		return nil, fmt.Errorf("%w: no PEM block found", ErrInvalidPrivateKey)
	}

	var key *ecdsa.PrivateKey
	if parsed, err := x509.ParsePKCS8PrivateKey(block.Bytes); err == nil {
		ecKey, ok := parsed.(*ecdsa.PrivateKey)
		if !ok {
			return nil, fmt.Errorf("%w: not an EC key", ErrInvalidPrivateKey)
		}
		key = ecKey
	} else if ecKey, err := x509.ParseECPrivateKey(block.Bytes); err == nil {
		key = ecKey
	} else {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPrivateKey, err)
	}

	if key.Curve != elliptic.P256() {
		return nil, fmt.Errorf("%w: ES256 requires a P-256 key, got %s", ErrInvalidPrivateKey, key.Curve.Params().Name)
	}
	return key, nil
}

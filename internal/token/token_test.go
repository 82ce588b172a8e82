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
	"math/big"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testKey generates a P-256 key and returns it with its PKCS#8 PEM
// encoding, the format App Store Connect issues.
func testKey(t *testing.T) (*ecdsa.PrivateKey, []byte) {
	t.Helper()
	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)
	der, err := x509.MarshalPKCS8PrivateKey(key)
	require.NoError(t, err)
	return key, pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: der})
}

func newTestGenerator(t *testing.T) (*Generator, *ecdsa.PrivateKey) {
	t.Helper()
	key, pemKey := testKey(t)
	gen, err := NewGenerator(pemKey, "2X9R4HXF34", "issuer-id", "com.example.app")
	require.NoError(t, err)
	return gen, key
}

func decodeSegment(t *testing.T, segment string, into any) {
	t.Helper()
	raw, err := base64.RawURLEncoding.DecodeString(segment)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, into))
}

func TestGenerate_HeaderAndClaims(t *testing.T) {
	gen, _ := newTestGenerator(t)

	issuedAt := time.Date(2026, 8, 1, 12, 30, 45, 0, time.UTC)
	tok, err := gen.Generate(issuedAt, 30*time.Minute)
	require.NoError(t, err)

	parts := strings.Split(tok, ".")
	require.Len(t, parts, 3)

	var hdr map[string]any
	decodeSegment(t, parts[0], &hdr)
	assert.Equal(t, map[string]any{
		"alg": "ES256",
		"kid": "2X9R4HXF34",
		"typ": "JWT",
	}, hdr)

	var cls map[string]any
	decodeSegment(t, parts[1], &cls)
	assert.Equal(t, "issuer-id", cls["iss"])
	assert.Equal(t, float64(issuedAt.Unix()), cls["iat"])
	assert.Equal(t, float64(issuedAt.Unix()+1800), cls["exp"])
	assert.Equal(t, "appstoreconnect-v1", cls["aud"])
	assert.Equal(t, "com.example.app", cls["bid"])
}

func TestGenerate_SignatureVerifies(t *testing.T) {
	gen, key := newTestGenerator(t)

	tok, err := gen.Generate(time.Now(), 5*time.Minute)
	require.NoError(t, err)

	parts := strings.Split(tok, ".")
	require.Len(t, parts, 3)

	sig, err := base64.RawURLEncoding.DecodeString(parts[2])
	require.NoError(t, err)
	require.Len(t, sig, 64)

	digest := sha256.Sum256([]byte(parts[0] + "." + parts[1]))
	r := new(big.Int).SetBytes(sig[:32])
	s := new(big.Int).SetBytes(sig[32:])
	assert.True(t, ecdsa.Verify(&key.PublicKey, digest[:], r, s))
}

func TestGenerate_LifetimeCap(t *testing.T) {
	gen, _ := newTestGenerator(t)

	_, err := gen.Generate(time.Now(), 3601*time.Second)
	assert.ErrorIs(t, err, ErrLifetimeExceeded)

	// Exactly the cap is still valid.
	_, err = gen.Generate(time.Now(), 3600*time.Second)
	assert.NoError(t, err)
}

func TestToken_FreshPerCall(t *testing.T) {
	gen, key := newTestGenerator(t)

	first, err := gen.Token()
	require.NoError(t, err)
	second, err := gen.Token()
	require.NoError(t, err)

	// Claims may coincide when generated within the same second, but
	// both tokens must verify independently; exact signature bytes are
	// never asserted (ECDSA nonces differ).
	for _, tok := range []string{first, second} {
		parts := strings.Split(tok, ".")
		require.Len(t, parts, 3)
		sig, err := base64.RawURLEncoding.DecodeString(parts[2])
		require.NoError(t, err)
		digest := sha256.Sum256([]byte(parts[0] + "." + parts[1]))
		r := new(big.Int).SetBytes(sig[:32])
		s := new(big.Int).SetBytes(sig[32:])
		assert.True(t, ecdsa.Verify(&key.PublicKey, digest[:], r, s))
	}
}

func TestSetLifetime(t *testing.T) {
	gen, _ := newTestGenerator(t)

	assert.NoError(t, gen.SetLifetime(10*time.Minute))
	assert.ErrorIs(t, gen.SetLifetime(2*time.Hour), ErrLifetimeExceeded)
	assert.ErrorIs(t, gen.SetLifetime(0), ErrLifetimeExceeded)
}

func TestNewGenerator_SEC1Key(t *testing.T) {
	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)
	der, err := x509.MarshalECPrivateKey(key)
	require.NoError(t, err)
	pemKey := pem.EncodeToMemory(&pem.Block{Type: "EC PRIVATE KEY", Bytes: der})

	_, err = NewGenerator(pemKey, "kid", "iss", "bid")
	assert.NoError(t, err)
}

func TestNewGenerator_InvalidKeys(t *testing.T) {
	p384, err := ecdsa.GenerateKey(elliptic.P384(), rand.Reader)
	require.NoError(t, err)
	p384der, err := x509.MarshalPKCS8PrivateKey(p384)
	require.NoError(t, err)

	tests := []struct {
		name string
		pem  []byte
	}{
		{"not PEM", []byte("not a pem block")},
		{"garbage DER", pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: []byte("junk")})},
		{"wrong curve", pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: p384der})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewGenerator(tt.pem, "kid", "iss", "bid")
			assert.ErrorIs(t, err, ErrInvalidPrivateKey)
		})
	}
}

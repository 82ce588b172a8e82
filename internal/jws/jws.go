// Package jws decodes the compact signed envelopes (JWS compact
// serialization) returned by the App Store Server API. It extracts and
// JSON-parses the header and payload segments; the signature segment is
// carried through untouched and is never verified here.
package jws

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrMalformedEnvelope is returned when a signed envelope cannot be decoded.
var ErrMalformedEnvelope = errors.New("malformed signed envelope")

// Envelope is a decoded compact signed envelope.
type Envelope struct {
	Header  map[string]any
	Payload map[string]any
	// Signature is the raw base64url signature segment. It is kept for a
	// future verification layer and is not validated.
	Signature string
}

// Decode splits a compact signed envelope into its three dot-separated
// segments and JSON-parses the base64url-encoded header and payload.
func Decode(token string) (*Envelope, error) {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return nil, fmt.Errorf("%w: expected 3 segments, got %d", ErrMalformedEnvelope, len(parts))
	}

	header, err := decodeSegment(parts[0])
	if err != nil {
		return nil, fmt.Errorf("%w: header: %v", ErrMalformedEnvelope, err)
	}

	payload, err := decodeSegment(parts[1])
	if err != nil {
		return nil, fmt.Errorf("%w: payload: %v", ErrMalformedEnvelope, err)
	}

	return &Envelope{
		Header:    header,
		Payload:   payload,
		Signature: parts[2],
	}, nil
}

// DecodePayloads decodes a sequence of compact signed envelopes and
// returns their payloads in input order. An empty input yields an empty
// (non-nil) result.
func DecodePayloads(tokens []string) ([]map[string]any, error) {
	payloads := make([]map[string]any, 0, len(tokens))
	for i, token := range tokens {
		env, err := Decode(token)
		if err != nil {
			return nil, fmt.Errorf("envelope %d: %w", i, err)
		}
		payloads = append(payloads, env.Payload)
	}
	return payloads, nil
}

func decodeSegment(segment string) (map[string]any, error) {
	raw, err := base64.RawURLEncoding.DecodeString(segment)
	if err != nil {
		return nil, fmt.Errorf("base64url decode: %v", err)
	}

	var obj map[string]any
	if err := json.Unmarshal(raw, &obj); err != nil {
		return nil, fmt.Errorf("parse JSON: %v", err)
	}
	return obj, nil
}

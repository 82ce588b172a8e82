package appstoreserver

import "github.com/appstoreserver/client-go/internal/jws"

// Envelope is a decoded compact signed envelope: header and payload as
// JSON objects, and the raw base64url signature segment. The signature
// is not verified.
type Envelope = jws.Envelope

// DecodeSignedEnvelope decodes a single compact signed envelope
// (header.payload.signature, base64url-encoded) into its header and
// payload JSON objects.
func DecodeSignedEnvelope(signed string) (*Envelope, error) {
	return jws.Decode(signed)
}

// DecodeSignedPayloads decodes a sequence of compact signed envelopes
// and returns their payloads in input order. Use it on the
// SignedTransactions field of a TransactionHistory page.
func DecodeSignedPayloads(signed []string) ([]map[string]any, error) {
	return jws.DecodePayloads(signed)
}

package reqsign

import (
	"encoding/base64"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/net/http/httpguts"
)

// Header names used to carry the signature envelope on a request.
const (
	// HeaderSignature carries the base64 (standard encoding) signature.
	HeaderSignature = "X-Signature"

	// HeaderTimestamp carries the signing time in TimestampFormat.
	HeaderTimestamp = "X-Timestamp"

	// HeaderAppID carries the identifier of the calling application.
	HeaderAppID = "X-App-Id"

	// HeaderKeyID carries the identifier of the signing key. It is
	// omitted when the signer has no key id.
	HeaderKeyID = "X-Key-Id"
)

// TimestampFormat is the wire form of signed timestamps: UTC with second
// precision and a literal Z suffix, e.g. "2024-01-01T00:00:00Z". The Z in
// the layout is a literal byte, not a zone marker, so parsing accepts no
// numeric offsets and no lowercase z.
const TimestampFormat = "2006-01-02T15:04:05Z"

// Envelope is the set of signature values carried in request headers.
type Envelope struct {
	// Signature is the raw (decoded) signature bytes.
	Signature []byte

	// Timestamp is the signing time. It is formatted in UTC with second
	// precision on the wire.
	Timestamp time.Time

	// AppID identifies the calling application.
	AppID string

	// KeyID identifies the signing key. May be empty.
	KeyID string
}

// Apply writes the envelope to the given headers, replacing any previous
// values. The key id header is only set when KeyID is non-empty.
func (e *Envelope) Apply(h http.Header) {
	h.Set(HeaderSignature, base64.StdEncoding.EncodeToString(e.Signature))
	h.Set(HeaderTimestamp, e.Timestamp.UTC().Format(TimestampFormat))
	h.Set(HeaderAppID, e.AppID)

	if e.KeyID != "" {
		h.Set(HeaderKeyID, e.KeyID)
	}
}

// EnvelopeFromHeader extracts the signature envelope from request headers.
// It returns ErrMalformedEnvelope when the signature, timestamp, or app id
// header is missing or cannot be decoded. The key id header is optional.
func EnvelopeFromHeader(h http.Header) (*Envelope, error) {
	rawSig := h.Get(HeaderSignature)
	if rawSig == "" {
		return nil, fmt.Errorf("%w: missing %s header", ErrMalformedEnvelope, HeaderSignature)
	}

	sig, err := base64.StdEncoding.DecodeString(rawSig)
	if err != nil {
		return nil, fmt.Errorf("%w: signature is not valid base64", ErrMalformedEnvelope)
	}

	rawTS := h.Get(HeaderTimestamp)
	if rawTS == "" {
		return nil, fmt.Errorf("%w: missing %s header", ErrMalformedEnvelope, HeaderTimestamp)
	}

	ts, err := parseTimestamp(rawTS)
	if err != nil {
		return nil, err
	}

	appID := h.Get(HeaderAppID)
	if appID == "" {
		return nil, fmt.Errorf("%w: missing %s header", ErrMalformedEnvelope, HeaderAppID)
	}

	return &Envelope{
		Signature: sig,
		Timestamp: ts,
		AppID:     appID,
		KeyID:     h.Get(HeaderKeyID),
	}, nil
}

// parseTimestamp parses a wire timestamp, accepting only the exact
// TimestampFormat shape. time.Parse consumes a fractional second even when
// the layout has none, so the parsed value is formatted back and compared
// against the input to reject sub-second precision.
func parseTimestamp(raw string) (time.Time, error) {
	ts, err := time.Parse(TimestampFormat, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: invalid timestamp %q", ErrMalformedEnvelope, raw)
	}

	if ts.Format(TimestampFormat) != raw {
		return time.Time{}, fmt.Errorf("%w: invalid timestamp %q", ErrMalformedEnvelope, raw)
	}

	return ts, nil
}

// validFieldValue reports whether s is safe to embed as a line of the
// string to sign. Control bytes, CR, and LF would let one covered field
// masquerade as another, so they are rejected up front.
func validFieldValue(s string) bool {
	return httpguts.ValidHeaderFieldValue(s)
}

package reqsign

import (
	"fmt"
	"net/http"
	"time"
)

// SignConfig configures request signing.
type SignConfig struct {
	// Signer produces signatures. Required.
	Signer Signer

	// AppID identifies the calling application. Required.
	AppID string

	// Timestamp sets the signing time. When zero, time.Now() is used.
	// The value is converted to UTC and truncated to second precision
	// before signing, matching the wire format of the timestamp header.
	Timestamp time.Time
}

// Sign signs the request described by method, path, and body and returns
// the envelope to attach to it. The path must include the query string
// when one is present; body may be nil for bodyless requests.
func Sign(cfg SignConfig, method, path string, body []byte) (*Envelope, error) {
	if cfg.Signer == nil {
		return nil, ErrNoSigner
	}

	if cfg.AppID == "" {
		return nil, ErrNoAppID
	}

	if !validFieldValue(method) {
		return nil, fmt.Errorf("%w: method contains invalid bytes", ErrInvalidInput)
	}

	if !validFieldValue(path) {
		return nil, fmt.Errorf("%w: path contains invalid bytes", ErrInvalidInput)
	}

	if !validFieldValue(cfg.AppID) {
		return nil, fmt.Errorf("%w: app id contains invalid bytes", ErrInvalidInput)
	}

	keyID := cfg.Signer.KeyID()
	if !validFieldValue(keyID) {
		return nil, fmt.Errorf("%w: key id contains invalid bytes", ErrInvalidInput)
	}

	ts := cfg.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}

	ts = ts.UTC().Truncate(time.Second)

	canonical, err := CanonicalString(SignInput{
		Timestamp: ts.Format(TimestampFormat),
		Method:    method,
		Path:      path,
		AppID:     cfg.AppID,
		Body:      body,
	})
	if err != nil {
		return nil, err
	}

	sig, err := cfg.Signer.Sign([]byte(canonical))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSigningFailure, err)
	}

	return &Envelope{
		Signature: sig,
		Timestamp: ts,
		AppID:     cfg.AppID,
		KeyID:     keyID,
	}, nil
}

// SignRequest signs an HTTP request in-place by adding the X-Signature,
// X-Timestamp, X-App-Id, and optionally X-Key-Id headers. The request
// body, when present, is covered by the signature; r.Body is left
// readable for the subsequent send.
func SignRequest(r *http.Request, cfg SignConfig) error {
	body, err := requestBody(r)
	if err != nil {
		return err
	}

	env, err := Sign(cfg, r.Method, requestPath(r), body)
	if err != nil {
		return err
	}

	env.Apply(r.Header)

	return nil
}

package reqsign

import (
	"fmt"
	"net/http"
	"time"
)

// DefaultMaxSkew is the default tolerance between the signed timestamp and
// the verifier's clock, applied in both directions.
const DefaultMaxSkew = 5 * time.Minute

// KeyResolver looks up the verification key registered for an app id and
// key id pair. It returns ErrUnknownKey (or an error wrapping it) when no
// key is registered for the pair.
type KeyResolver func(appID, keyID string) (Verifier, error)

// VerifyConfig configures request verification.
type VerifyConfig struct {
	// Resolver looks up verification keys. Required.
	Resolver KeyResolver

	// MaxSkew bounds how far the signed timestamp may be from the
	// verifier's clock, in either direction. Zero or negative means
	// DefaultMaxSkew.
	MaxSkew time.Duration

	// Replay, when set, records accepted signatures and rejects ones
	// seen before. It is consulted only after the signature itself has
	// verified.
	Replay ReplayGuard
}

// Verify checks the signature in env against the received method, path,
// and body. The string to sign is rebuilt from the received request fields
// combined with the claimed timestamp and app id, so any mismatch between
// what was signed and what arrived fails the signature check.
//
// Checks run cheapest first: envelope shape, clock skew, key lookup, then
// the signature itself. The replay guard, when configured, runs last.
func Verify(cfg VerifyConfig, method, path string, body []byte, env *Envelope) error {
	if cfg.Resolver == nil {
		return ErrNoResolver
	}

	if env == nil {
		return fmt.Errorf("%w: envelope must not be nil", ErrMalformedEnvelope)
	}

	if env.AppID == "" {
		return fmt.Errorf("%w: app id must not be empty", ErrMalformedEnvelope)
	}

	if !validFieldValue(env.AppID) || !validFieldValue(env.KeyID) {
		return fmt.Errorf("%w: envelope contains invalid bytes", ErrMalformedEnvelope)
	}

	if !validFieldValue(method) || !validFieldValue(path) {
		return fmt.Errorf("%w: request fields contain invalid bytes", ErrMalformedEnvelope)
	}

	maxSkew := cfg.MaxSkew
	if maxSkew <= 0 {
		maxSkew = DefaultMaxSkew
	}

	skew := time.Since(env.Timestamp)
	if skew < 0 {
		skew = -skew
	}

	if skew > maxSkew {
		return ErrClockSkewExceeded
	}

	verifier, err := cfg.Resolver(env.AppID, env.KeyID)
	if err != nil {
		return err
	}

	canonical, err := CanonicalString(SignInput{
		Timestamp: env.Timestamp.UTC().Format(TimestampFormat),
		Method:    method,
		Path:      path,
		AppID:     env.AppID,
		Body:      body,
	})
	if err != nil {
		return err
	}

	if err := verifier.Verify([]byte(canonical), env.Signature); err != nil {
		return err
	}

	if cfg.Replay != nil {
		return cfg.Replay.Remember(env.AppID, env.Timestamp, env.Signature)
	}

	return nil
}

// VerifyRequest extracts the signature envelope from an HTTP request and
// verifies it against the request's method, path, and body. On success it
// returns the envelope so callers can attribute the request to the signed
// app id. r.Body is left readable for the handler.
func VerifyRequest(r *http.Request, cfg VerifyConfig) (*Envelope, error) {
	env, err := EnvelopeFromHeader(r.Header)
	if err != nil {
		return nil, err
	}

	body, err := requestBody(r)
	if err != nil {
		return nil, err
	}

	if err := Verify(cfg, r.Method, requestPath(r), body, env); err != nil {
		return nil, err
	}

	return env, nil
}

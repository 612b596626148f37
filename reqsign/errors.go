package reqsign

import "errors"

// Key material errors.
var (
	// ErrUnsupportedAlgorithm is returned when an algorithm identifier is
	// not one of the supported values.
	ErrUnsupportedAlgorithm = errors.New("reqsign: unsupported algorithm")

	// ErrInvalidKey is returned when key material is invalid (nil,
	// insufficient size, unparseable, etc.).
	ErrInvalidKey = errors.New("reqsign: invalid key material")

	// ErrKeyMismatch is returned when key material is valid but does not
	// match the requested algorithm (wrong key family or wrong curve).
	ErrKeyMismatch = errors.New("reqsign: key does not match algorithm")
)

// Signing errors.
var (
	// ErrNoSigner is returned when SignConfig has no Signer configured.
	ErrNoSigner = errors.New("reqsign: signer must not be nil")

	// ErrNoAppID is returned when SignConfig has an empty AppID.
	ErrNoAppID = errors.New("reqsign: app id must not be empty")

	// ErrInvalidInput is returned when a field of the string to sign is
	// empty or contains bytes that are not allowed on the wire.
	ErrInvalidInput = errors.New("reqsign: invalid signing input")

	// ErrSigningFailure is returned when the underlying cryptographic
	// signing operation fails.
	ErrSigningFailure = errors.New("reqsign: signing failed")
)

// Verification errors.
var (
	// ErrNoResolver is returned when VerifyConfig has no KeyResolver
	// configured.
	ErrNoResolver = errors.New("reqsign: key resolver must not be nil")

	// ErrMalformedEnvelope is returned when the signature headers are
	// missing, incomplete, or cannot be decoded.
	ErrMalformedEnvelope = errors.New("reqsign: malformed signature envelope")

	// ErrClockSkewExceeded is returned when the signed timestamp is too
	// far from the verifier's clock in either direction.
	ErrClockSkewExceeded = errors.New("reqsign: timestamp outside allowed clock skew")

	// ErrUnknownKey is returned when no verification key is registered
	// for the claimed app id and key id.
	ErrUnknownKey = errors.New("reqsign: unknown key")

	// ErrSignatureMismatch is returned when signature verification fails.
	ErrSignatureMismatch = errors.New("reqsign: signature verification failed")

	// ErrReplay is returned when a signature has already been accepted
	// within its validity window.
	ErrReplay = errors.New("reqsign: signature already seen")
)

// errReplayGuardFull is returned when the replay guard cannot record a new
// signature without exceeding its capacity. A signature that cannot be
// recorded is rejected rather than accepted unchecked.
var errReplayGuardFull = errors.New("reqsign: replay guard full")

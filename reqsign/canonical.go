package reqsign

import (
	"fmt"
	"strings"
)

// SignInput holds the request fields covered by a signature. Body is the
// raw request body; a nil or empty body is covered as an empty string.
type SignInput struct {
	// Timestamp is the signing time formatted with TimestampFormat.
	Timestamp string

	// Method is the HTTP method. It is uppercased before signing.
	Method string

	// Path is the request path including the query string, if any.
	Path string

	// AppID identifies the calling application.
	AppID string

	// Body is the raw request body.
	Body []byte
}

// CanonicalString builds the string to sign from the covered request
// fields:
//
//	timestamp "\n" method "\n" path "\n" appID "\n" body
//
// The result contains exactly four newline separators. Both sides of the
// exchange must produce the identical string for a signature to verify,
// so the construction is deterministic: the method is uppercased and an
// absent body contributes an empty final segment.
func CanonicalString(in SignInput) (string, error) {
	if in.Timestamp == "" {
		return "", fmt.Errorf("%w: timestamp must not be empty", ErrInvalidInput)
	}

	if in.Method == "" {
		return "", fmt.Errorf("%w: method must not be empty", ErrInvalidInput)
	}

	if in.Path == "" {
		return "", fmt.Errorf("%w: path must not be empty", ErrInvalidInput)
	}

	if in.AppID == "" {
		return "", fmt.Errorf("%w: app id must not be empty", ErrInvalidInput)
	}

	parts := []string{
		in.Timestamp,
		strings.ToUpper(in.Method),
		in.Path,
		in.AppID,
		string(in.Body),
	}

	return strings.Join(parts, "\n"), nil
}

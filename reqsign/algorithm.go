package reqsign

import "crypto"

// Algorithm identifies the asymmetric signature algorithm carried in key
// configuration and bound to signers and verifiers at construction time.
type Algorithm string

const (
	// AlgorithmRS256 is RSASSA-PKCS1-v1_5 using SHA-256.
	AlgorithmRS256 Algorithm = "RS256"

	// AlgorithmRS512 is RSASSA-PKCS1-v1_5 using SHA-512.
	AlgorithmRS512 Algorithm = "RS512"

	// AlgorithmES256 is ECDSA using curve P-256 and SHA-256.
	AlgorithmES256 Algorithm = "ES256"

	// AlgorithmES512 is ECDSA using curve P-521 and SHA-512.
	AlgorithmES512 Algorithm = "ES512"
)

// String returns the string representation of the algorithm as it appears
// in key configuration.
func (a Algorithm) String() string {
	return string(a)
}

// Valid reports whether the algorithm is one of the supported values.
func (a Algorithm) Valid() bool {
	switch a {
	case AlgorithmRS256, AlgorithmRS512, AlgorithmES256, AlgorithmES512:
		return true
	}

	return false
}

// Hash returns the hash function the algorithm digests the string to sign
// with. It returns 0 for unsupported algorithms.
func (a Algorithm) Hash() crypto.Hash {
	switch a {
	case AlgorithmRS256, AlgorithmES256:
		return crypto.SHA256
	case AlgorithmRS512, AlgorithmES512:
		return crypto.SHA512
	}

	return 0
}

// Signer creates signatures over request strings to sign.
type Signer interface {
	// Sign produces a signature over the given message bytes.
	Sign(message []byte) ([]byte, error)

	// Algorithm returns the algorithm identifier for this signer.
	Algorithm() Algorithm

	// KeyID returns the key identifier announced alongside signatures.
	KeyID() string
}

// Verifier validates signatures over request strings to sign.
type Verifier interface {
	// Verify checks that signature is valid for the given message bytes.
	// Returns nil on success, non-nil on failure.
	Verify(message, signature []byte) error

	// Algorithm returns the algorithm identifier for this verifier.
	Algorithm() Algorithm

	// KeyID returns the key identifier for this verifier.
	KeyID() string
}

package reqsign

import (
	"crypto"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"crypto/sha512"
	"fmt"
)

// Minimum RSA key size in bits.
const minRSAKeyBits = 2048

// --- RS256 ---

type rs256Signer struct {
	key   *rsa.PrivateKey
	keyID string
}

// NewRS256Signer creates a Signer using RSASSA-PKCS1-v1_5 with SHA-256.
func NewRS256Signer(keyID string, key *rsa.PrivateKey) (Signer, error) {
	if key == nil {
		return nil, fmt.Errorf("%w: rsa private key must not be nil", ErrInvalidKey)
	}

	if key.N.BitLen() < minRSAKeyBits {
		return nil, fmt.Errorf("%w: rsa key must be at least %d bits", ErrInvalidKey, minRSAKeyBits)
	}

	return &rs256Signer{key: key, keyID: keyID}, nil
}

func (s *rs256Signer) Sign(message []byte) ([]byte, error) {
	digest := sha256.Sum256(message)

	return rsa.SignPKCS1v15(rand.Reader, s.key, crypto.SHA256, digest[:])
}

func (s *rs256Signer) Algorithm() Algorithm { return AlgorithmRS256 }
func (s *rs256Signer) KeyID() string        { return s.keyID }

type rs256Verifier struct {
	key   *rsa.PublicKey
	keyID string
}

// NewRS256Verifier creates a Verifier using RSASSA-PKCS1-v1_5 with SHA-256.
func NewRS256Verifier(keyID string, key *rsa.PublicKey) (Verifier, error) {
	if key == nil {
		return nil, fmt.Errorf("%w: rsa public key must not be nil", ErrInvalidKey)
	}

	if key.N.BitLen() < minRSAKeyBits {
		return nil, fmt.Errorf("%w: rsa key must be at least %d bits", ErrInvalidKey, minRSAKeyBits)
	}

	return &rs256Verifier{key: key, keyID: keyID}, nil
}

func (v *rs256Verifier) Verify(message, signature []byte) error {
	digest := sha256.Sum256(message)

	err := rsa.VerifyPKCS1v15(v.key, crypto.SHA256, digest[:], signature)
	if err != nil {
		return ErrSignatureMismatch
	}

	return nil
}

func (v *rs256Verifier) Algorithm() Algorithm { return AlgorithmRS256 }
func (v *rs256Verifier) KeyID() string        { return v.keyID }

// --- RS512 ---

type rs512Signer struct {
	key   *rsa.PrivateKey
	keyID string
}

// NewRS512Signer creates a Signer using RSASSA-PKCS1-v1_5 with SHA-512.
func NewRS512Signer(keyID string, key *rsa.PrivateKey) (Signer, error) {
	if key == nil {
		return nil, fmt.Errorf("%w: rsa private key must not be nil", ErrInvalidKey)
	}

	if key.N.BitLen() < minRSAKeyBits {
		return nil, fmt.Errorf("%w: rsa key must be at least %d bits", ErrInvalidKey, minRSAKeyBits)
	}

	return &rs512Signer{key: key, keyID: keyID}, nil
}

func (s *rs512Signer) Sign(message []byte) ([]byte, error) {
	digest := sha512.Sum512(message)

	return rsa.SignPKCS1v15(rand.Reader, s.key, crypto.SHA512, digest[:])
}

func (s *rs512Signer) Algorithm() Algorithm { return AlgorithmRS512 }
func (s *rs512Signer) KeyID() string        { return s.keyID }

type rs512Verifier struct {
	key   *rsa.PublicKey
	keyID string
}

// NewRS512Verifier creates a Verifier using RSASSA-PKCS1-v1_5 with SHA-512.
func NewRS512Verifier(keyID string, key *rsa.PublicKey) (Verifier, error) {
	if key == nil {
		return nil, fmt.Errorf("%w: rsa public key must not be nil", ErrInvalidKey)
	}

	if key.N.BitLen() < minRSAKeyBits {
		return nil, fmt.Errorf("%w: rsa key must be at least %d bits", ErrInvalidKey, minRSAKeyBits)
	}

	return &rs512Verifier{key: key, keyID: keyID}, nil
}

func (v *rs512Verifier) Verify(message, signature []byte) error {
	digest := sha512.Sum512(message)

	err := rsa.VerifyPKCS1v15(v.key, crypto.SHA512, digest[:], signature)
	if err != nil {
		return ErrSignatureMismatch
	}

	return nil
}

func (v *rs512Verifier) Algorithm() Algorithm { return AlgorithmRS512 }
func (v *rs512Verifier) KeyID() string        { return v.keyID }

// --- ES256 ---

type es256Signer struct {
	key   *ecdsa.PrivateKey
	keyID string
}

// NewES256Signer creates a Signer using ECDSA with curve P-256 and SHA-256.
// Signatures are ASN.1 DER encoded.
func NewES256Signer(keyID string, key *ecdsa.PrivateKey) (Signer, error) {
	if key == nil {
		return nil, fmt.Errorf("%w: ecdsa private key must not be nil", ErrInvalidKey)
	}

	if key.Curve != elliptic.P256() {
		return nil, fmt.Errorf("%w: ES256 requires a P-256 key", ErrKeyMismatch)
	}

	return &es256Signer{key: key, keyID: keyID}, nil
}

func (s *es256Signer) Sign(message []byte) ([]byte, error) {
	digest := sha256.Sum256(message)

	return ecdsa.SignASN1(rand.Reader, s.key, digest[:])
}

func (s *es256Signer) Algorithm() Algorithm { return AlgorithmES256 }
func (s *es256Signer) KeyID() string        { return s.keyID }

type es256Verifier struct {
	key   *ecdsa.PublicKey
	keyID string
}

// NewES256Verifier creates a Verifier using ECDSA with curve P-256 and SHA-256.
func NewES256Verifier(keyID string, key *ecdsa.PublicKey) (Verifier, error) {
	if key == nil {
		return nil, fmt.Errorf("%w: ecdsa public key must not be nil", ErrInvalidKey)
	}

	if key.Curve != elliptic.P256() {
		return nil, fmt.Errorf("%w: ES256 requires a P-256 key", ErrKeyMismatch)
	}

	return &es256Verifier{key: key, keyID: keyID}, nil
}

func (v *es256Verifier) Verify(message, signature []byte) error {
	digest := sha256.Sum256(message)
	if !ecdsa.VerifyASN1(v.key, digest[:], signature) {
		return ErrSignatureMismatch
	}

	return nil
}

func (v *es256Verifier) Algorithm() Algorithm { return AlgorithmES256 }
func (v *es256Verifier) KeyID() string        { return v.keyID }

// --- ES512 ---

type es512Signer struct {
	key   *ecdsa.PrivateKey
	keyID string
}

// NewES512Signer creates a Signer using ECDSA with curve P-521 and SHA-512.
// Signatures are ASN.1 DER encoded.
func NewES512Signer(keyID string, key *ecdsa.PrivateKey) (Signer, error) {
	if key == nil {
		return nil, fmt.Errorf("%w: ecdsa private key must not be nil", ErrInvalidKey)
	}

	if key.Curve != elliptic.P521() {
		return nil, fmt.Errorf("%w: ES512 requires a P-521 key", ErrKeyMismatch)
	}

	return &es512Signer{key: key, keyID: keyID}, nil
}

func (s *es512Signer) Sign(message []byte) ([]byte, error) {
	digest := sha512.Sum512(message)

	return ecdsa.SignASN1(rand.Reader, s.key, digest[:])
}

func (s *es512Signer) Algorithm() Algorithm { return AlgorithmES512 }
func (s *es512Signer) KeyID() string        { return s.keyID }

type es512Verifier struct {
	key   *ecdsa.PublicKey
	keyID string
}

// NewES512Verifier creates a Verifier using ECDSA with curve P-521 and SHA-512.
func NewES512Verifier(keyID string, key *ecdsa.PublicKey) (Verifier, error) {
	if key == nil {
		return nil, fmt.Errorf("%w: ecdsa public key must not be nil", ErrInvalidKey)
	}

	if key.Curve != elliptic.P521() {
		return nil, fmt.Errorf("%w: ES512 requires a P-521 key", ErrKeyMismatch)
	}

	return &es512Verifier{key: key, keyID: keyID}, nil
}

func (v *es512Verifier) Verify(message, signature []byte) error {
	digest := sha512.Sum512(message)
	if !ecdsa.VerifyASN1(v.key, digest[:], signature) {
		return ErrSignatureMismatch
	}

	return nil
}

func (v *es512Verifier) Algorithm() Algorithm { return AlgorithmES512 }
func (v *es512Verifier) KeyID() string        { return v.keyID }

// --- Construction by algorithm ---

// NewSigner creates a Signer for the given algorithm from a generic private
// key, binding key and algorithm once at construction. It returns
// ErrUnsupportedAlgorithm for unknown algorithms, ErrKeyMismatch when the
// key family or curve does not fit the algorithm, and ErrInvalidKey for
// unusable key material.
func NewSigner(alg Algorithm, keyID string, key crypto.PrivateKey) (Signer, error) {
	switch alg {
	case AlgorithmRS256, AlgorithmRS512:
		rsaKey, ok := key.(*rsa.PrivateKey)
		if !ok {
			return nil, fmt.Errorf("%w: %s requires an RSA private key", ErrKeyMismatch, alg)
		}

		if alg == AlgorithmRS512 {
			return NewRS512Signer(keyID, rsaKey)
		}

		return NewRS256Signer(keyID, rsaKey)
	case AlgorithmES256, AlgorithmES512:
		ecKey, ok := key.(*ecdsa.PrivateKey)
		if !ok {
			return nil, fmt.Errorf("%w: %s requires an ECDSA private key", ErrKeyMismatch, alg)
		}

		if alg == AlgorithmES512 {
			return NewES512Signer(keyID, ecKey)
		}

		return NewES256Signer(keyID, ecKey)
	}

	return nil, fmt.Errorf("%w: %q", ErrUnsupportedAlgorithm, alg)
}

// NewVerifier creates a Verifier for the given algorithm from a generic
// public key. Error semantics match NewSigner.
func NewVerifier(alg Algorithm, keyID string, key crypto.PublicKey) (Verifier, error) {
	switch alg {
	case AlgorithmRS256, AlgorithmRS512:
		rsaKey, ok := key.(*rsa.PublicKey)
		if !ok {
			return nil, fmt.Errorf("%w: %s requires an RSA public key", ErrKeyMismatch, alg)
		}

		if alg == AlgorithmRS512 {
			return NewRS512Verifier(keyID, rsaKey)
		}

		return NewRS256Verifier(keyID, rsaKey)
	case AlgorithmES256, AlgorithmES512:
		ecKey, ok := key.(*ecdsa.PublicKey)
		if !ok {
			return nil, fmt.Errorf("%w: %s requires an ECDSA public key", ErrKeyMismatch, alg)
		}

		if alg == AlgorithmES512 {
			return NewES512Verifier(keyID, ecKey)
		}

		return NewES256Verifier(keyID, ecKey)
	}

	return nil, fmt.Errorf("%w: %q", ErrUnsupportedAlgorithm, alg)
}

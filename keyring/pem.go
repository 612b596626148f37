package keyring

import (
	"crypto"
	"crypto/x509"
	"encoding/pem"
	"fmt"

	"github.com/vitalvas/signet/reqsign"
)

// ParsePrivateKey parses a PEM-encoded private key. PKCS#8 ("PRIVATE
// KEY"), PKCS#1 ("RSA PRIVATE KEY"), and SEC 1 ("EC PRIVATE KEY") blocks
// are accepted.
func ParsePrivateKey(data []byte) (crypto.PrivateKey, error) {
	block, _ := pem.Decode(data)
	if block == nil {
		return nil, fmt.Errorf("%w: no PEM block found", reqsign.ErrInvalidKey)
	}

	if key, err := x509.ParsePKCS8PrivateKey(block.Bytes); err == nil {
		return key, nil
	}

	if key, err := x509.ParsePKCS1PrivateKey(block.Bytes); err == nil {
		return key, nil
	}

	if key, err := x509.ParseECPrivateKey(block.Bytes); err == nil {
		return key, nil
	}

	return nil, fmt.Errorf("%w: unsupported private key encoding", reqsign.ErrInvalidKey)
}

// ParsePublicKey parses a PEM-encoded public key. PKIX ("PUBLIC KEY") and
// PKCS#1 ("RSA PUBLIC KEY") blocks are accepted.
func ParsePublicKey(data []byte) (crypto.PublicKey, error) {
	block, _ := pem.Decode(data)
	if block == nil {
		return nil, fmt.Errorf("%w: no PEM block found", reqsign.ErrInvalidKey)
	}

	if key, err := x509.ParsePKIXPublicKey(block.Bytes); err == nil {
		return key, nil
	}

	if key, err := x509.ParsePKCS1PublicKey(block.Bytes); err == nil {
		return key, nil
	}

	return nil, fmt.Errorf("%w: unsupported public key encoding", reqsign.ErrInvalidKey)
}

// NewSignerFromPEM creates a Signer for the given algorithm from a
// PEM-encoded private key.
func NewSignerFromPEM(alg reqsign.Algorithm, keyID string, pemData []byte) (reqsign.Signer, error) {
	key, err := ParsePrivateKey(pemData)
	if err != nil {
		return nil, err
	}

	return reqsign.NewSigner(alg, keyID, key)
}

// NewVerifierFromPEM creates a Verifier for the given algorithm from a
// PEM-encoded public key.
func NewVerifierFromPEM(alg reqsign.Algorithm, keyID string, pemData []byte) (reqsign.Verifier, error) {
	key, err := ParsePublicKey(pemData)
	if err != nil {
		return nil, err
	}

	return reqsign.NewVerifier(alg, keyID, key)
}

package keygen

import (
	"crypto"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Kind selects the key family to generate.
type Kind string

const (
	// KindRSA generates an RSA key, usable for RS256 and RS512 signing.
	KindRSA Kind = "rsa"

	// KindECP256 generates a P-256 key for ES256 signing.
	KindECP256 Kind = "ec-p256"

	// KindECP521 generates a P-521 key for ES512 signing.
	KindECP521 Kind = "ec-p521"
)

// DefaultRSABits is the default and minimum RSA key size in bits.
const DefaultRSABits = 2048

// Options configures key generation.
type Options struct {
	// Kind selects the key family. Required.
	Kind Kind

	// RSABits sets the RSA key size. Zero means DefaultRSABits. Ignored
	// for EC kinds.
	RSABits int

	// KeyID names the pair. When empty, a random UUID is assigned.
	KeyID string
}

// Pair is a generated key pair in PEM encoding: PKCS#8 for the private
// key and PKIX for the public key.
type Pair struct {
	KeyID         string
	PrivateKeyPEM []byte
	PublicKeyPEM  []byte
}

// Generate creates a new key pair.
func Generate(opts Options) (*Pair, error) {
	keyID := opts.KeyID
	if keyID == "" {
		keyID = uuid.New().String()
	}

	key, err := generateKey(opts)
	if err != nil {
		return nil, err
	}

	privDER, err := x509.MarshalPKCS8PrivateKey(key)
	if err != nil {
		return nil, fmt.Errorf("keygen: encode private key: %w", err)
	}

	pubDER, err := x509.MarshalPKIXPublicKey(key.Public())
	if err != nil {
		return nil, fmt.Errorf("keygen: encode public key: %w", err)
	}

	return &Pair{
		KeyID:         keyID,
		PrivateKeyPEM: pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: privDER}),
		PublicKeyPEM:  pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: pubDER}),
	}, nil
}

func generateKey(opts Options) (crypto.Signer, error) {
	switch opts.Kind {
	case KindRSA:
		bits := opts.RSABits
		if bits == 0 {
			bits = DefaultRSABits
		}

		if bits < DefaultRSABits {
			return nil, fmt.Errorf("keygen: rsa key must be at least %d bits", DefaultRSABits)
		}

		return rsa.GenerateKey(rand.Reader, bits)
	case KindECP256:
		return ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	case KindECP521:
		return ecdsa.GenerateKey(elliptic.P521(), rand.Reader)
	}

	return nil, fmt.Errorf("keygen: unknown key kind %q", opts.Kind)
}

// WriteFiles writes the pair under dir as <key id>.key (mode 0600) and
// <key id>.pub (mode 0644), creating dir if needed. It returns the
// private and public key paths.
func (p *Pair) WriteFiles(dir string) (string, string, error) {
	if strings.ContainsAny(p.KeyID, `/\`) {
		return "", "", fmt.Errorf("keygen: key id %q is not a valid file name", p.KeyID)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", "", err
	}

	privPath := filepath.Join(dir, p.KeyID+".key")
	if err := os.WriteFile(privPath, p.PrivateKeyPEM, 0o600); err != nil {
		return "", "", err
	}

	pubPath := filepath.Join(dir, p.KeyID+".pub")
	if err := os.WriteFile(pubPath, p.PublicKeyPEM, 0o644); err != nil {
		return "", "", err
	}

	return privPath, pubPath, nil
}

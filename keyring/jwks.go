package keyring

import (
	"crypto"
	"crypto/ecdsa"
	"crypto/rsa"
	"errors"
	"fmt"

	"github.com/lestrrat-go/jwx/v2/jwk"

	"github.com/vitalvas/signet/reqsign"
)

// AddJWKS registers every key from a JWKS (RFC 7517 JSON Web Key Set)
// document for an app. Each key must carry both a "kid" and an "alg"
// member, since lookups are keyed by key id and every key is bound to one
// algorithm up front. Private JWKs are reduced to their public part.
//
// The whole set is validated before anything is registered, so a rejected
// key leaves the keyring unchanged.
func (k *Keyring) AddJWKS(appID string, data []byte) error {
	if appID == "" {
		return fmt.Errorf("%w: app id must not be empty", reqsign.ErrInvalidInput)
	}

	set, err := jwk.Parse(data)
	if err != nil {
		return fmt.Errorf("keyring: parse jwks: %w", err)
	}

	if set.Len() == 0 {
		return fmt.Errorf("keyring: jwks for app %q contains no keys", appID)
	}

	verifiers := make([]reqsign.Verifier, 0, set.Len())

	for i := 0; i < set.Len(); i++ {
		key, ok := set.Key(i)
		if !ok {
			continue
		}

		keyID := key.KeyID()
		if keyID == "" {
			return fmt.Errorf("keyring: jwks key %d for app %q has no kid", i, appID)
		}

		keyAlg := key.Algorithm()
		if keyAlg == nil || keyAlg.String() == "" {
			return fmt.Errorf("keyring: jwks key %q for app %q has no alg", keyID, appID)
		}

		alg := reqsign.Algorithm(keyAlg.String())
		if !alg.Valid() {
			return fmt.Errorf("keyring: jwks key %q for app %q: unsupported algorithm %q", keyID, appID, keyAlg.String())
		}

		var raw any
		if err := key.Raw(&raw); err != nil {
			return fmt.Errorf("keyring: jwks key %q for app %q: %w", keyID, appID, err)
		}

		pub, err := publicKeyOf(raw)
		if err != nil {
			return fmt.Errorf("keyring: jwks key %q for app %q: %w", keyID, appID, err)
		}

		v, err := reqsign.NewVerifier(alg, keyID, pub)
		if err != nil {
			return fmt.Errorf("keyring: jwks key %q for app %q: %w", keyID, appID, err)
		}

		verifiers = append(verifiers, v)
	}

	for _, v := range verifiers {
		if err := k.Add(appID, v); err != nil {
			return err
		}
	}

	return nil
}

func publicKeyOf(raw any) (crypto.PublicKey, error) {
	switch key := raw.(type) {
	case *rsa.PublicKey:
		return key, nil
	case *rsa.PrivateKey:
		return &key.PublicKey, nil
	case *ecdsa.PublicKey:
		return key, nil
	case *ecdsa.PrivateKey:
		return &key.PublicKey, nil
	}

	return nil, errors.New("not an RSA or ECDSA key")
}

package keyring

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/rsa"
	"encoding/json"
	"testing"

	"github.com/lestrrat-go/jwx/v2/jwa"
	"github.com/lestrrat-go/jwx/v2/jwk"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vitalvas/signet/reqsign"
)

type jwkSpec struct {
	raw   any
	keyID string
	alg   jwa.KeyAlgorithm
}

func buildJWKS(t *testing.T, specs ...jwkSpec) []byte {
	t.Helper()

	set := jwk.NewSet()

	for _, spec := range specs {
		key, err := jwk.FromRaw(spec.raw)
		require.NoError(t, err)

		if spec.keyID != "" {
			require.NoError(t, key.Set(jwk.KeyIDKey, spec.keyID))
		}

		if spec.alg != nil {
			require.NoError(t, key.Set(jwk.AlgorithmKey, spec.alg))
		}

		require.NoError(t, set.AddKey(key))
	}

	data, err := json.Marshal(set)
	require.NoError(t, err)

	return data
}

func TestAddJWKS(t *testing.T) {
	ecKey, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)

	signer, err := reqsign.NewES256Signer("key-1", ecKey)
	require.NoError(t, err)

	t.Run("registers public keys", func(t *testing.T) {
		data := buildJWKS(t, jwkSpec{raw: &ecKey.PublicKey, keyID: "key-1", alg: jwa.ES256})

		ring := New()
		require.NoError(t, ring.AddJWKS("app1", data))
		require.Equal(t, 1, ring.Len())

		verifier, err := ring.Resolve("app1", "key-1")
		require.NoError(t, err)

		sig, err := signer.Sign([]byte("jwks round trip"))
		require.NoError(t, err)

		assert.NoError(t, verifier.Verify([]byte("jwks round trip"), sig))
	})

	t.Run("private jwk reduced to public part", func(t *testing.T) {
		data := buildJWKS(t, jwkSpec{raw: ecKey, keyID: "key-1", alg: jwa.ES256})

		ring := New()
		require.NoError(t, ring.AddJWKS("app1", data))

		verifier, err := ring.Resolve("app1", "key-1")
		require.NoError(t, err)

		sig, err := signer.Sign([]byte("private jwk"))
		require.NoError(t, err)

		assert.NoError(t, verifier.Verify([]byte("private jwk"), sig))
	})

	t.Run("rsa keys", func(t *testing.T) {
		rsaKey, err := rsa.GenerateKey(rand.Reader, 2048)
		require.NoError(t, err)

		rsaSigner, err := reqsign.NewRS256Signer("rsa-1", rsaKey)
		require.NoError(t, err)

		data := buildJWKS(t, jwkSpec{raw: &rsaKey.PublicKey, keyID: "rsa-1", alg: jwa.RS256})

		ring := New()
		require.NoError(t, ring.AddJWKS("app1", data))

		verifier, err := ring.Resolve("app1", "rsa-1")
		require.NoError(t, err)

		sig, err := rsaSigner.Sign([]byte("rsa jwks"))
		require.NoError(t, err)

		assert.NoError(t, verifier.Verify([]byte("rsa jwks"), sig))
	})

	t.Run("multiple keys in one set", func(t *testing.T) {
		otherKey, err := ecdsa.GenerateKey(elliptic.P521(), rand.Reader)
		require.NoError(t, err)

		data := buildJWKS(t,
			jwkSpec{raw: &ecKey.PublicKey, keyID: "key-1", alg: jwa.ES256},
			jwkSpec{raw: &otherKey.PublicKey, keyID: "key-2", alg: jwa.ES512},
		)

		ring := New()
		require.NoError(t, ring.AddJWKS("app1", data))

		assert.Equal(t, 2, ring.Len())
	})

	t.Run("missing kid rejected", func(t *testing.T) {
		data := buildJWKS(t, jwkSpec{raw: &ecKey.PublicKey, alg: jwa.ES256})

		err := New().AddJWKS("app1", data)
		assert.ErrorContains(t, err, "no kid")
	})

	t.Run("missing alg rejected", func(t *testing.T) {
		data := buildJWKS(t, jwkSpec{raw: &ecKey.PublicKey, keyID: "key-1"})

		err := New().AddJWKS("app1", data)
		assert.ErrorContains(t, err, "no alg")
	})

	t.Run("unsupported alg rejected", func(t *testing.T) {
		p384Key, err := ecdsa.GenerateKey(elliptic.P384(), rand.Reader)
		require.NoError(t, err)

		data := buildJWKS(t, jwkSpec{raw: &p384Key.PublicKey, keyID: "key-1", alg: jwa.ES384})

		err = New().AddJWKS("app1", data)
		assert.ErrorContains(t, err, "unsupported algorithm")
	})

	t.Run("rejected key leaves keyring unchanged", func(t *testing.T) {
		data := buildJWKS(t,
			jwkSpec{raw: &ecKey.PublicKey, keyID: "key-1", alg: jwa.ES256},
			jwkSpec{raw: &ecKey.PublicKey, keyID: "key-2"},
		)

		ring := New()
		err := ring.AddJWKS("app1", data)

		assert.Error(t, err)
		assert.Equal(t, 0, ring.Len())
	})

	t.Run("invalid document rejected", func(t *testing.T) {
		err := New().AddJWKS("app1", []byte("{not jwks"))
		assert.Error(t, err)
	})

	t.Run("empty set rejected", func(t *testing.T) {
		err := New().AddJWKS("app1", []byte(`{"keys":[]}`))
		assert.ErrorContains(t, err, "no keys")
	})

	t.Run("empty app id rejected", func(t *testing.T) {
		data := buildJWKS(t, jwkSpec{raw: &ecKey.PublicKey, keyID: "key-1", alg: jwa.ES256})

		err := New().AddJWKS("", data)
		assert.ErrorIs(t, err, reqsign.ErrInvalidInput)
	})
}

package reqsign

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMiddleware(t *testing.T) {
	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)

	signer, err := NewES256Signer("mw-key", key)
	require.NoError(t, err)

	verifier, err := NewES256Verifier("mw-key", &key.PublicKey)
	require.NoError(t, err)

	resolver := func(appID, keyID string) (Verifier, error) {
		if appID == "app1" && keyID == "mw-key" {
			return verifier, nil
		}
		return nil, ErrUnknownKey
	}

	signCfg := SignConfig{Signer: signer, AppID: "app1"}

	okHandler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	t.Run("nil resolver returns error", func(t *testing.T) {
		_, err := Middleware(MiddlewareConfig{})
		assert.ErrorIs(t, err, ErrNoResolver)
	})

	t.Run("valid signed request passes through", func(t *testing.T) {
		mw, err := Middleware(MiddlewareConfig{
			Verify: VerifyConfig{Resolver: resolver},
		})
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/api/test", nil)
		require.NoError(t, SignRequest(req, signCfg))

		w := httptest.NewRecorder()
		mw(okHandler).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("envelope available in handler context", func(t *testing.T) {
		mw, err := Middleware(MiddlewareConfig{
			Verify: VerifyConfig{Resolver: resolver},
		})
		require.NoError(t, err)

		var seen *Envelope
		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			env, ok := FromContext(r.Context())
			require.True(t, ok)

			seen = env
			w.WriteHeader(http.StatusOK)
		})

		req := httptest.NewRequest(http.MethodGet, "/api/test", nil)
		require.NoError(t, SignRequest(req, signCfg))

		w := httptest.NewRecorder()
		mw(handler).ServeHTTP(w, req)

		require.NotNil(t, seen)
		assert.Equal(t, "app1", seen.AppID)
		assert.Equal(t, "mw-key", seen.KeyID)
	})

	t.Run("unsigned request returns 401", func(t *testing.T) {
		mw, err := Middleware(MiddlewareConfig{
			Verify: VerifyConfig{Resolver: resolver},
		})
		require.NoError(t, err)

		handlerCalled := false
		handler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			handlerCalled = true
		})

		req := httptest.NewRequest(http.MethodGet, "/api/test", nil)
		w := httptest.NewRecorder()
		mw(handler).ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.False(t, handlerCalled)
	})

	t.Run("tampered request returns 401", func(t *testing.T) {
		mw, err := Middleware(MiddlewareConfig{
			Verify: VerifyConfig{Resolver: resolver},
		})
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/api/test", nil)
		require.NoError(t, SignRequest(req, signCfg))

		req.URL.Path = "/api/admin"

		w := httptest.NewRecorder()
		mw(okHandler).ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("all failures look identical", func(t *testing.T) {
		mw, err := Middleware(MiddlewareConfig{
			Verify: VerifyConfig{Resolver: resolver},
		})
		require.NoError(t, err)

		unsigned := httptest.NewRequest(http.MethodGet, "/api/test", nil)

		unknownApp := httptest.NewRequest(http.MethodGet, "/api/test", nil)
		require.NoError(t, SignRequest(unknownApp, SignConfig{Signer: signer, AppID: "ghost"}))

		stale := httptest.NewRequest(http.MethodGet, "/api/test", nil)
		require.NoError(t, SignRequest(stale, SignConfig{
			Signer:    signer,
			AppID:     "app1",
			Timestamp: time.Now().Add(-time.Hour),
		}))

		tampered := httptest.NewRequest(http.MethodGet, "/api/test", nil)
		require.NoError(t, SignRequest(tampered, signCfg))
		tampered.Method = http.MethodDelete

		var responses []*httptest.ResponseRecorder
		for _, req := range []*http.Request{unsigned, unknownApp, stale, tampered} {
			w := httptest.NewRecorder()
			mw(okHandler).ServeHTTP(w, req)
			responses = append(responses, w)
		}

		for _, w := range responses {
			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.Empty(t, w.Body.String())
		}
	})

	t.Run("custom error handler", func(t *testing.T) {
		var capturedErr error
		mw, err := Middleware(MiddlewareConfig{
			Verify: VerifyConfig{Resolver: resolver},
			OnError: func(w http.ResponseWriter, _ *http.Request, err error) {
				capturedErr = err
				w.WriteHeader(http.StatusForbidden)
			},
		})
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/api/test", nil)
		w := httptest.NewRecorder()
		mw(okHandler).ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.ErrorIs(t, capturedErr, ErrMalformedEnvelope)
	})

	t.Run("replay guard rejects the second delivery", func(t *testing.T) {
		mw, err := Middleware(MiddlewareConfig{
			Verify: VerifyConfig{
				Resolver: resolver,
				Replay:   NewMemoryReplayGuard(MemoryReplayGuardConfig{}),
			},
		})
		require.NoError(t, err)

		signed := httptest.NewRequest(http.MethodGet, "/api/test", nil)
		require.NoError(t, SignRequest(signed, signCfg))

		first := httptest.NewRecorder()
		mw(okHandler).ServeHTTP(first, signed.Clone(signed.Context()))

		second := httptest.NewRecorder()
		mw(okHandler).ServeHTTP(second, signed.Clone(signed.Context()))

		assert.Equal(t, http.StatusOK, first.Code)
		assert.Equal(t, http.StatusUnauthorized, second.Code)
	})

	t.Run("end to end with transport and middleware", func(t *testing.T) {
		mw, err := Middleware(MiddlewareConfig{
			Verify: VerifyConfig{Resolver: resolver},
		})
		require.NoError(t, err)

		server := httptest.NewServer(mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			env, ok := FromContext(r.Context())
			require.True(t, ok)
			assert.Equal(t, "app1", env.AppID)

			w.WriteHeader(http.StatusOK)
			w.Write([]byte("ok"))
		})))
		defer server.Close()

		client := &http.Client{
			Transport: NewTransport(nil, signCfg),
		}

		resp, err := client.Post(server.URL+"/api/data", "application/json", strings.NewReader(`{"key":"value"}`))
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})
}

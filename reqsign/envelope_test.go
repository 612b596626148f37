package reqsign

import (
	"encoding/base64"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvelopeApply(t *testing.T) {
	t.Run("sets all headers", func(t *testing.T) {
		env := &Envelope{
			Signature: []byte{0x01, 0x02, 0x03},
			Timestamp: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			AppID:     "app1",
			KeyID:     "key-1",
		}

		h := make(http.Header)
		env.Apply(h)

		assert.Equal(t, base64.StdEncoding.EncodeToString(env.Signature), h.Get(HeaderSignature))
		assert.Equal(t, "2024-01-01T00:00:00Z", h.Get(HeaderTimestamp))
		assert.Equal(t, "app1", h.Get(HeaderAppID))
		assert.Equal(t, "key-1", h.Get(HeaderKeyID))
	})

	t.Run("omits key id header when empty", func(t *testing.T) {
		env := &Envelope{
			Signature: []byte{0x01},
			Timestamp: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			AppID:     "app1",
		}

		h := make(http.Header)
		env.Apply(h)

		_, present := h[HeaderKeyID]
		assert.False(t, present)
	})

	t.Run("formats timestamp in UTC", func(t *testing.T) {
		zone := time.FixedZone("UTC+3", 3*60*60)
		env := &Envelope{
			Signature: []byte{0x01},
			Timestamp: time.Date(2024, 1, 1, 3, 0, 0, 0, zone),
			AppID:     "app1",
		}

		h := make(http.Header)
		env.Apply(h)

		assert.Equal(t, "2024-01-01T00:00:00Z", h.Get(HeaderTimestamp))
	})
}

func TestEnvelopeFromHeader(t *testing.T) {
	validHeader := func() http.Header {
		h := make(http.Header)
		h.Set(HeaderSignature, base64.StdEncoding.EncodeToString([]byte("sig-bytes")))
		h.Set(HeaderTimestamp, "2024-01-01T00:00:00Z")
		h.Set(HeaderAppID, "app1")
		h.Set(HeaderKeyID, "key-1")

		return h
	}

	t.Run("parses complete envelope", func(t *testing.T) {
		env, err := EnvelopeFromHeader(validHeader())
		require.NoError(t, err)

		assert.Equal(t, []byte("sig-bytes"), env.Signature)
		assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), env.Timestamp)
		assert.Equal(t, "app1", env.AppID)
		assert.Equal(t, "key-1", env.KeyID)
	})

	t.Run("key id is optional", func(t *testing.T) {
		h := validHeader()
		h.Del(HeaderKeyID)

		env, err := EnvelopeFromHeader(h)
		require.NoError(t, err)

		assert.Empty(t, env.KeyID)
	})

	t.Run("round trip through apply", func(t *testing.T) {
		original := &Envelope{
			Signature: []byte{0xde, 0xad, 0xbe, 0xef},
			Timestamp: time.Date(2024, 6, 15, 10, 30, 0, 0, time.UTC),
			AppID:     "billing",
			KeyID:     "2024-rotation",
		}

		h := make(http.Header)
		original.Apply(h)

		parsed, err := EnvelopeFromHeader(h)
		require.NoError(t, err)

		assert.Equal(t, original, parsed)
	})

	t.Run("missing headers rejected", func(t *testing.T) {
		for _, header := range []string{HeaderSignature, HeaderTimestamp, HeaderAppID} {
			t.Run(header, func(t *testing.T) {
				h := validHeader()
				h.Del(header)

				_, err := EnvelopeFromHeader(h)
				assert.ErrorIs(t, err, ErrMalformedEnvelope)
			})
		}
	})

	t.Run("invalid base64 signature rejected", func(t *testing.T) {
		h := validHeader()
		h.Set(HeaderSignature, "not base64!!!")

		_, err := EnvelopeFromHeader(h)
		assert.ErrorIs(t, err, ErrMalformedEnvelope)
	})

	t.Run("malformed timestamps rejected", func(t *testing.T) {
		tests := []struct {
			name  string
			value string
		}{
			{"fractional seconds", "2024-01-01T00:00:00.123456Z"},
			{"numeric offset", "2024-01-01T00:00:00+00:00"},
			{"lowercase z", "2024-01-01t00:00:00z"},
			{"no zone suffix", "2024-01-01T00:00:00"},
			{"unix seconds", "1704067200"},
			{"rfc1123", "Mon, 01 Jan 2024 00:00:00 GMT"},
			{"trailing garbage", "2024-01-01T00:00:00Zx"},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				h := validHeader()
				h.Set(HeaderTimestamp, tt.value)

				_, err := EnvelopeFromHeader(h)
				assert.ErrorIs(t, err, ErrMalformedEnvelope)
			})
		}
	})
}

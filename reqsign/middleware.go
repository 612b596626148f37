package reqsign

import (
	"context"
	"net/http"
)

// MiddlewareFunc wraps an http.Handler with additional behavior.
type MiddlewareFunc func(http.Handler) http.Handler

type envelopeKey struct{}

// FromContext returns the verified signature envelope stored in the
// request context by Middleware, and whether one is present.
func FromContext(ctx context.Context) (*Envelope, bool) {
	env, ok := ctx.Value(envelopeKey{}).(*Envelope)

	return env, ok
}

// MiddlewareConfig configures the server-side signature verification
// middleware.
type MiddlewareConfig struct {
	// Verify configures how signatures are verified.
	Verify VerifyConfig

	// OnError is called when verification fails. When nil, every failure
	// gets the same bare 401 Unauthorized response, with no detail about
	// which check failed.
	OnError func(w http.ResponseWriter, r *http.Request, err error)
}

// Middleware returns a MiddlewareFunc that verifies the signature on every
// incoming request. Requests that verify proceed to the next handler with
// the envelope stored in the request context, retrievable via FromContext.
// Requests that do not are handed to OnError and go no further.
//
// It returns ErrNoResolver if VerifyConfig.Resolver is nil.
func Middleware(cfg MiddlewareConfig) (MiddlewareFunc, error) {
	if cfg.Verify.Resolver == nil {
		return nil, ErrNoResolver
	}

	onError := cfg.OnError
	if onError == nil {
		onError = defaultOnError
	}

	verifyCfg := cfg.Verify

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			env, err := VerifyRequest(r, verifyCfg)
			if err != nil {
				onError(w, r, err)
				return
			}

			ctx := context.WithValue(r.Context(), envelopeKey{}, env)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}, nil
}

// defaultOnError writes a 401 Unauthorized response with no body.
func defaultOnError(w http.ResponseWriter, _ *http.Request, _ error) {
	w.WriteHeader(http.StatusUnauthorized)
}

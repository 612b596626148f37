// Package reqsign signs and verifies HTTP API requests with asymmetric
// keys. The caller holds a private key and attaches a signature to each
// request; the server holds only public keys and verifies that the
// request came from the claimed application and was not altered in
// transit.
//
// A signature covers the timestamp, method, path (with query string),
// app id, and body, joined with newlines into a single string to sign.
// The signature travels in the X-Signature header alongside X-Timestamp,
// X-App-Id, and optionally X-Key-Id.
//
// # Supported Algorithms
//
// Four signature algorithms are supported:
//
//   - RS256 (RSASSA-PKCS1-v1_5 with SHA-256)
//   - RS512 (RSASSA-PKCS1-v1_5 with SHA-512)
//   - ES256 (ECDSA P-256 with SHA-256)
//   - ES512 (ECDSA P-521 with SHA-512)
//
// ECDSA signatures use ASN.1 DER encoding. Keys and algorithms are bound
// once at construction; a P-256 key cannot be used with ES512, and such
// mismatches fail when the signer or verifier is created rather than per
// request.
//
// # Signing Requests
//
// Use SignRequest to add the signature headers to an HTTP request:
//
//	signer, err := reqsign.NewES256Signer("key-1", privateKey)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	err = reqsign.SignRequest(req, reqsign.SignConfig{
//	    Signer: signer,
//	    AppID:  "app1",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// # Verifying Requests
//
// Use VerifyRequest to verify the signature on an incoming request. The
// resolver maps the claimed app id and key id to a verification key:
//
//	resolver := func(appID, keyID string) (reqsign.Verifier, error) {
//	    // Look up the verifier registered for the pair.
//	    return verifier, nil
//	}
//
//	env, err := reqsign.VerifyRequest(req, reqsign.VerifyConfig{
//	    Resolver: resolver,
//	    MaxSkew:  5 * time.Minute,
//	})
//
// Verification rebuilds the string to sign from the request that actually
// arrived, so a request whose method, path, or body was altered after
// signing fails with ErrSignatureMismatch. Timestamps more than MaxSkew
// from the server clock fail with ErrClockSkewExceeded before any key
// lookup happens.
//
// # Client Transport
//
// NewTransport creates an http.RoundTripper that signs all outgoing
// requests. Pass an *http.Transport to configure proxy, TLS, and timeout
// settings. Pass nil for sensible defaults:
//
//	client := &http.Client{
//	    Transport: reqsign.NewTransport(nil, reqsign.SignConfig{
//	        Signer: signer,
//	        AppID:  "app1",
//	    }),
//	}
//
//	resp, err := client.Get("https://api.example.com/resource")
//
// Client offers a thinner alternative with per-verb helpers and a fixed
// base URL:
//
//	c, err := reqsign.NewClient(reqsign.ClientConfig{
//	    BaseURL: "https://api.example.com",
//	    Sign:    reqsign.SignConfig{Signer: signer, AppID: "app1"},
//	})
//
//	resp, err := c.Post(ctx, "/api/users", payload)
//
// # Server Middleware
//
// Middleware wraps an http.Handler and rejects requests that fail
// verification. All failures produce the same bare 401 response, so
// callers learn nothing about which check failed:
//
//	mw, err := reqsign.Middleware(reqsign.MiddlewareConfig{
//	    Verify: reqsign.VerifyConfig{Resolver: ring.Resolver()},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	handler := mw(apiHandler)
//
// Handlers behind the middleware can attribute requests via FromContext:
//
//	env, ok := reqsign.FromContext(r.Context())
//
// # Replay Protection
//
// A ReplayGuard rejects signatures that were already accepted once. The
// in-memory implementation suits single-instance deployments:
//
//	guard := reqsign.NewMemoryReplayGuard(reqsign.MemoryReplayGuardConfig{})
//
//	env, err := reqsign.VerifyRequest(req, reqsign.VerifyConfig{
//	    Resolver: ring.Resolver(),
//	    Replay:   guard,
//	})
package reqsign

// Package keyring manages the verification keys a server accepts signed
// requests against. It maps (app id, key id) pairs to reqsign.Verifier
// values and plugs into reqsign.VerifyConfig through Resolver.
//
// # Building a Keyring
//
// Keys can be registered one at a time:
//
//	ring := keyring.New()
//
//	v, err := keyring.NewVerifierFromPEM(reqsign.AlgorithmES256, "key-1", pemBytes)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	ring.Add("billing", v)
//
// or loaded from a YAML config file:
//
//	apps:
//	  - app_id: billing
//	    keys:
//	      - key_id: 2024-rotation
//	        algorithm: ES256
//	        public_key_file: billing.pub
//
//	ring, err := keyring.LoadFile("keys.yml")
//
// or from a JWKS document published by the calling application:
//
//	ring := keyring.New()
//	err := ring.AddJWKS("billing", jwksBytes)
//
// # Key Rotation
//
// An app may have several keys registered at once, distinguished by key
// id. During rotation, register the new key, let callers switch over, and
// Remove the old one. Lookups always match the exact (app id, key id)
// pair claimed by the request.
//
// # Resolving
//
// Resolver hands the keyring to the verifier:
//
//	env, err := reqsign.VerifyRequest(r, reqsign.VerifyConfig{
//	    Resolver: ring.Resolver(),
//	})
package keyring

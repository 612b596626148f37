// Package keygen generates signing key pairs for applications calling a
// signed API. Private keys are written as PKCS#8 PEM, public keys as PKIX
// PEM, the encodings the keyring and reqsign packages load.
package keygen

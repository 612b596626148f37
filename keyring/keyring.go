package keyring

import (
	"fmt"
	"sync"

	"github.com/vitalvas/signet/reqsign"
)

type ringKey struct {
	appID string
	keyID string
}

// Keyring maps (app id, key id) pairs to verification keys. Lookups match
// exactly: a request without a key id only matches a key registered with
// an empty key id. Keyring is safe for concurrent use, so keys can be
// added and removed while a server resolves against it.
type Keyring struct {
	mu      sync.RWMutex
	entries map[ringKey]reqsign.Verifier
}

// New creates an empty Keyring.
func New() *Keyring {
	return &Keyring{
		entries: make(map[ringKey]reqsign.Verifier),
	}
}

// Add registers a verifier for an app. The verifier's own key id becomes
// part of the lookup key; adding a verifier for an occupied (app id, key
// id) pair replaces the earlier entry, which is how key rotation rolls
// over.
func (k *Keyring) Add(appID string, v reqsign.Verifier) error {
	if appID == "" {
		return fmt.Errorf("%w: app id must not be empty", reqsign.ErrInvalidInput)
	}

	if v == nil {
		return fmt.Errorf("%w: verifier must not be nil", reqsign.ErrInvalidKey)
	}

	k.mu.Lock()
	defer k.mu.Unlock()

	k.entries[ringKey{appID: appID, keyID: v.KeyID()}] = v

	return nil
}

// Remove drops the verifier registered for the pair, if any.
func (k *Keyring) Remove(appID, keyID string) {
	k.mu.Lock()
	defer k.mu.Unlock()

	delete(k.entries, ringKey{appID: appID, keyID: keyID})
}

// Len returns the number of registered keys.
func (k *Keyring) Len() int {
	k.mu.RLock()
	defer k.mu.RUnlock()

	return len(k.entries)
}

// Resolve returns the verifier registered for the pair, or
// reqsign.ErrUnknownKey when none is.
func (k *Keyring) Resolve(appID, keyID string) (reqsign.Verifier, error) {
	k.mu.RLock()
	defer k.mu.RUnlock()

	v, ok := k.entries[ringKey{appID: appID, keyID: keyID}]
	if !ok {
		return nil, reqsign.ErrUnknownKey
	}

	return v, nil
}

// Resolver returns the keyring's lookup as a reqsign.KeyResolver for use
// in reqsign.VerifyConfig.
func (k *Keyring) Resolver() reqsign.KeyResolver {
	return k.Resolve
}

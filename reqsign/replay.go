package reqsign

import (
	"encoding/base64"
	"sync"
	"time"
)

// ReplayGuard records accepted signatures so that a captured request
// cannot be accepted a second time within its validity window.
type ReplayGuard interface {
	// Remember records an accepted signature. It returns ErrReplay when
	// the same signature was already recorded and is still retained, and
	// a non-nil error when the signature cannot be recorded. A signature
	// that cannot be recorded must be treated as rejected.
	Remember(appID string, ts time.Time, signature []byte) error
}

// Default capacity of the in-memory replay guard.
const defaultReplayMaxEntries = 65536

// MemoryReplayGuardConfig configures an in-memory ReplayGuard.
type MemoryReplayGuardConfig struct {
	// Retention is how long a recorded signature is held. It must cover
	// the verifier's full acceptance window, so it should be at least
	// twice the configured MaxSkew. Zero means twice DefaultMaxSkew.
	Retention time.Duration

	// MaxEntries caps the number of signatures held at once. When the
	// cap is reached and sweeping expired entries frees no room,
	// Remember fails closed. Zero means 65536.
	MaxEntries int

	// Now overrides the clock used for expiry. Intended for tests.
	Now func() time.Time
}

type memoryReplayGuard struct {
	mu         sync.Mutex
	seen       map[string]time.Time
	retention  time.Duration
	maxEntries int
	now        func() time.Time
}

// NewMemoryReplayGuard creates a ReplayGuard backed by a process-local
// map. It is safe for concurrent use. Expired entries are swept when the
// guard reaches capacity.
//
// A process-local guard only protects a single verifier instance; behind
// a load balancer each instance keeps its own view.
func NewMemoryReplayGuard(cfg MemoryReplayGuardConfig) ReplayGuard {
	retention := cfg.Retention
	if retention <= 0 {
		retention = 2 * DefaultMaxSkew
	}

	maxEntries := cfg.MaxEntries
	if maxEntries <= 0 {
		maxEntries = defaultReplayMaxEntries
	}

	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	return &memoryReplayGuard{
		seen:       make(map[string]time.Time),
		retention:  retention,
		maxEntries: maxEntries,
		now:        now,
	}
}

func (g *memoryReplayGuard) Remember(appID string, ts time.Time, signature []byte) error {
	// NUL cannot appear in the app id, the formatted timestamp, or the
	// base64 signature, so the joined key is unambiguous.
	key := appID + "\x00" + ts.UTC().Format(TimestampFormat) + "\x00" + base64.StdEncoding.EncodeToString(signature)

	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.now()

	if expiry, ok := g.seen[key]; ok && now.Before(expiry) {
		return ErrReplay
	}

	if len(g.seen) >= g.maxEntries {
		g.sweep(now)

		if len(g.seen) >= g.maxEntries {
			return errReplayGuardFull
		}
	}

	g.seen[key] = now.Add(g.retention)

	return nil
}

// sweep removes expired entries. The caller must hold g.mu.
func (g *memoryReplayGuard) sweep(now time.Time) {
	for key, expiry := range g.seen {
		if !now.Before(expiry) {
			delete(g.seen, key)
		}
	}
}

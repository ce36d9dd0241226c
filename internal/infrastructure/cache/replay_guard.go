package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// ReplayGuard remembers delivered webhook signatures so a redelivery is
// acknowledged without being processed twice
type ReplayGuard struct {
	store      Store
	expiration time.Duration
}

// NewReplayGuard creates a guard that remembers deliveries for expiration
func NewReplayGuard(store Store, expiration time.Duration) *ReplayGuard {
	return &ReplayGuard{
		store:      store,
		expiration: expiration,
	}
}

func (g *ReplayGuard) key(delivery string) string {
	sum := sha256.Sum256([]byte(delivery))
	return "webhook:hume:" + hex.EncodeToString(sum[:])
}

// Claim reports whether delivery is seen for the first time and reserves it
func (g *ReplayGuard) Claim(ctx context.Context, delivery string) (bool, error) {
	return g.store.SetIfAbsent(ctx, g.key(delivery), "1", g.expiration)
}

// Release forgets delivery so a retry of a failed delivery is processed again
func (g *ReplayGuard) Release(ctx context.Context, delivery string) error {
	return g.store.Delete(ctx, g.key(delivery))
}

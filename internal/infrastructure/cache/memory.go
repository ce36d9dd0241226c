package cache

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// Store is a key-value store with per-key expiration
type Store interface {
	// SetIfAbsent stores value only when key is missing or expired
	SetIfAbsent(ctx context.Context, key, value string, expiration time.Duration) (bool, error)
	Delete(ctx context.Context, key string) error
}

// MemoryStore is a process-local Store for single-instance deployments
type MemoryStore struct {
	items *gocache.Cache
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore creates a new in-memory store. Expired items are purged every five minutes.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{items: gocache.New(gocache.NoExpiration, 5*time.Minute)}
}

// SetIfAbsent stores a key-value pair with expiration unless the key is live
func (ms *MemoryStore) SetIfAbsent(_ context.Context, key, value string, expiration time.Duration) (bool, error) {
	if err := ms.items.Add(key, value, expiration); err != nil {
		return false, nil
	}
	return true, nil
}

// Delete removes a key
func (ms *MemoryStore) Delete(_ context.Context, key string) error {
	ms.items.Delete(key)
	return nil
}

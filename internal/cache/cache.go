// Package cache stores rendered pages for a revalidation window.
package cache

import (
	"context"
	"time"
)

// Store is a key/value store with per-entry expiry.
type Store interface {
	// Get returns the value for key and whether it was present.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	// Purge removes every entry of this store.
	Purge(ctx context.Context) error
	Close() error
}

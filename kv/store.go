// api/kv/store.go
package kv

import (
	"context"
	"time"
)

// Store is a minimal TTL'd key-value abstraction. Implementations must treat
// a missing key as (value "", ok false, err nil), never as an error. All
// operations are idempotent.
type Store interface {
	// Set stores value under key, auto-expiring after ttl. A ttl of zero
	// means no expiry.
	Set(ctx context.Context, key, value string, ttl time.Duration) error

	// Get returns the value and whether the key was present.
	Get(ctx context.Context, key string) (string, bool, error)

	// Delete removes the key immediately. Deleting an absent key is not an
	// error.
	Delete(ctx context.Context, key string) error

	// DeleteByPrefix removes every key under the given prefix.
	DeleteByPrefix(ctx context.Context, prefix string) error
}

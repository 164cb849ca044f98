// api/kv/memory_test.go
package kv

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMemoryStoreSetGet(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	err := store.Set(ctx, "greeting", "hello", 0)
	assert.NoError(t, err)

	value, found, err := store.Get(ctx, "greeting")
	assert.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "hello", value)

	_, found, err = store.Get(ctx, "missing")
	assert.NoError(t, err)
	assert.False(t, found)
}

func TestMemoryStoreTTLExpiry(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	store.Now = func() time.Time { return now }

	err := store.Set(ctx, "session", "abc", time.Hour)
	assert.NoError(t, err)

	_, found, err := store.Get(ctx, "session")
	assert.NoError(t, err)
	assert.True(t, found)

	// One second before expiry the entry is still live.
	now = now.Add(time.Hour - time.Second)
	_, found, _ = store.Get(ctx, "session")
	assert.True(t, found)

	// At expiry it is gone.
	now = now.Add(time.Second)
	_, found, _ = store.Get(ctx, "session")
	assert.False(t, found)
	assert.Equal(t, 0, store.Len())
}

func TestMemoryStoreDelete(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	_ = store.Set(ctx, "key", "value", 0)
	err := store.Delete(ctx, "key")
	assert.NoError(t, err)

	_, found, _ := store.Get(ctx, "key")
	assert.False(t, found)

	// Deleting an absent key is a no-op, not an error.
	assert.NoError(t, store.Delete(ctx, "key"))
}

func TestMemoryStoreDeleteByPrefix(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	_ = store.Set(ctx, "courses:all", "[]", 0)
	_ = store.Set(ctx, "courses:featured", "[]", 0)
	_ = store.Set(ctx, "bl_token", "true", 0)

	err := store.DeleteByPrefix(ctx, "courses")
	assert.NoError(t, err)

	_, found, _ := store.Get(ctx, "courses:all")
	assert.False(t, found)
	_, found, _ = store.Get(ctx, "courses:featured")
	assert.False(t, found)

	_, found, _ = store.Get(ctx, "bl_token")
	assert.True(t, found)
}

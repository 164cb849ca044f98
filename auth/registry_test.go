// api/auth/registry_test.go
package auth

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/sagelms/sage/api/kv"
	logger "github.com/sagelms/sage/api/logging"
)

func TestMain(m *testing.M) {
	logger.InitTestLogger()
	os.Exit(m.Run())
}

// brokenStore fails every operation, simulating a Redis outage.
type brokenStore struct{}

func (brokenStore) Set(context.Context, string, string, time.Duration) error {
	return errors.New("connection refused")
}

func (brokenStore) Get(context.Context, string) (string, bool, error) {
	return "", false, errors.New("connection refused")
}

func (brokenStore) Delete(context.Context, string) error {
	return errors.New("connection refused")
}

func (brokenStore) DeleteByPrefix(context.Context, string) error {
	return errors.New("connection refused")
}

func TestRevokeThenIsRevoked(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemoryStore()
	registry := NewRevocationRegistry(store)

	err := registry.Revoke(ctx, "token-a", time.Hour)
	assert.NoError(t, err)

	assert.True(t, registry.IsRevoked(ctx, "token-a"))
	assert.False(t, registry.IsRevoked(ctx, "token-b"))
}

func TestRevocationExpiresWithToken(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemoryStore()
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	store.Now = func() time.Time { return now }
	registry := NewRevocationRegistry(store)

	err := registry.Revoke(ctx, "token-a", 3600*time.Second)
	assert.NoError(t, err)
	assert.True(t, registry.IsRevoked(ctx, "token-a"))

	// Once the token itself would have expired, the blacklist entry lapses.
	now = now.Add(3601 * time.Second)
	assert.False(t, registry.IsRevoked(ctx, "token-a"))
}

func TestRevokeExpiredTokenIsNoop(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemoryStore()
	registry := NewRevocationRegistry(store)

	assert.NoError(t, registry.Revoke(ctx, "token-a", 0))
	assert.NoError(t, registry.Revoke(ctx, "token-b", -time.Minute))
	assert.Equal(t, 0, store.Len())
}

func TestRevokeSurfacesStoreError(t *testing.T) {
	registry := NewRevocationRegistry(brokenStore{})

	err := registry.Revoke(context.Background(), "token-a", time.Hour)
	assert.Error(t, err)
}

func TestIsRevokedFailsClosed(t *testing.T) {
	registry := NewRevocationRegistry(brokenStore{})

	// A store outage must never let a logged-out token back in.
	assert.True(t, registry.IsRevoked(context.Background(), "token-a"))
}

// api/auth/registry.go
package auth

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/sagelms/sage/api/kv"
	logger "github.com/sagelms/sage/api/logging"
)

// Tokens are blacklisted under this namespace for exactly their remaining
// validity window, so the registry is self-cleaning.
const blacklistPrefix = "bl_"

// RevocationRegistry tracks session tokens that were invalidated before
// their natural expiry, e.g. on logout.
type RevocationRegistry struct {
	store kv.Store
}

func NewRevocationRegistry(store kv.Store) *RevocationRegistry {
	return &RevocationRegistry{store: store}
}

// Revoke blacklists a token for its remaining lifetime. Tokens already at or
// past expiry need no tracking and are skipped.
func (r *RevocationRegistry) Revoke(ctx context.Context, token string, remaining time.Duration) error {
	if remaining <= 0 {
		return nil
	}
	if err := r.store.Set(ctx, blacklistPrefix+token, "true", remaining); err != nil {
		return fmt.Errorf("failed to blacklist token: %w", err)
	}
	logger.Debug("Token revoked", zap.Duration("remaining", remaining))
	return nil
}

// IsRevoked reports whether the token is blacklisted. A store error counts
// as revoked (fail closed), so a Redis outage never lets a logged-out token
// back in.
func (r *RevocationRegistry) IsRevoked(ctx context.Context, token string) bool {
	_, found, err := r.store.Get(ctx, blacklistPrefix+token)
	if err != nil {
		logger.Error("Revocation check failed, treating token as revoked", zap.Error(err))
		return true
	}
	return found
}

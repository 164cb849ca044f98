// api/errors/errors.go
package errors

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidInput   = errors.New("invalid input")
	ErrUnauthorized   = errors.New("unauthorized")
	ErrForbidden      = errors.New("forbidden")
	ErrUpstream       = errors.New("upstream failure")
	ErrInternal       = errors.New("internal server error")
	ErrDatabaseOp     = errors.New("database operation failed")
	ErrTokenExpired   = errors.New("token expired")
	ErrTokenRevoked   = errors.New("token revoked")
	ErrInvalidToken   = errors.New("invalid token")
	ErrCredentials    = errors.New("invalid email or password")
	ErrUserConflict   = errors.New("user already exists")
	ErrEnrollConflict = errors.New("already enrolled")
)

// Forbidden wraps ErrForbidden with a denial reason so callers can both
// match with errors.Is and surface the reason.
func Forbidden(reason string) error {
	return fmt.Errorf("%w: %s", ErrForbidden, reason)
}

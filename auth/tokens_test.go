// api/auth/tokens_test.go
package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/sagelms/sage/api/errors"
	"github.com/sagelms/sage/api/model"
)

func TestIssueAndParse(t *testing.T) {
	manager := NewTokenManager("test-secret", 24*time.Hour)
	user := &model.User{ID: "user-1", Role: model.RoleTeacher}

	token, err := manager.Issue(user)
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := manager.Parse(token)
	assert.NoError(t, err)
	assert.Equal(t, "user-1", claims.Subject)
	assert.Equal(t, model.RoleTeacher, claims.Role)
	assert.NotEmpty(t, claims.ID)

	principal := claims.Principal()
	assert.Equal(t, "user-1", principal.UserID)
	assert.Equal(t, model.RoleTeacher, principal.Role)
}

func TestParseExpiredToken(t *testing.T) {
	manager := NewTokenManager("test-secret", time.Hour)
	manager.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }

	token, err := manager.Issue(&model.User{ID: "user-1", Role: model.RoleStudent})
	assert.NoError(t, err)

	manager.now = time.Now
	_, err = manager.Parse(token)
	assert.ErrorIs(t, err, errors.ErrTokenExpired)
}

func TestParseWrongSecret(t *testing.T) {
	issuer := NewTokenManager("secret-a", time.Hour)
	verifier := NewTokenManager("secret-b", time.Hour)

	token, err := issuer.Issue(&model.User{ID: "user-1", Role: model.RoleStudent})
	assert.NoError(t, err)

	_, err = verifier.Parse(token)
	assert.ErrorIs(t, err, errors.ErrInvalidToken)
}

func TestParseGarbage(t *testing.T) {
	manager := NewTokenManager("test-secret", time.Hour)

	_, err := manager.Parse("not-a-jwt")
	assert.ErrorIs(t, err, errors.ErrInvalidToken)
}

func TestRemaining(t *testing.T) {
	manager := NewTokenManager("test-secret", time.Hour)
	issuedAt := time.Now().Truncate(time.Second)
	manager.now = func() time.Time { return issuedAt }

	token, err := manager.Issue(&model.User{ID: "user-1", Role: model.RoleStudent})
	assert.NoError(t, err)

	claims, err := manager.Parse(token)
	assert.NoError(t, err)

	manager.now = func() time.Time { return issuedAt.Add(20 * time.Minute) }
	assert.Equal(t, 40*time.Minute, manager.Remaining(claims))

	manager.now = func() time.Time { return issuedAt.Add(2 * time.Hour) }
	assert.True(t, manager.Remaining(claims) <= 0)
}

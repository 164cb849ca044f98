// api/service/auth_service.go
package service

import (
	"context"
	stderrors "errors"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/sagelms/sage/api/audit"
	"github.com/sagelms/sage/api/auth"
	"github.com/sagelms/sage/api/errors"
	logger "github.com/sagelms/sage/api/logging"
	"github.com/sagelms/sage/api/model"
)

// UserStore is the persistence surface AuthService needs.
type UserStore interface {
	CreateUser(ctx context.Context, user *model.User) error
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	GetUserByID(ctx context.Context, id string) (*model.User, error)
}

type IAuthService interface {
	Register(ctx context.Context, name, email, password string, role model.Role) (*model.User, error)
	Login(ctx context.Context, email, password string) (string, *model.User, error)
	Logout(ctx context.Context, token string) error
	Authenticate(ctx context.Context, token string) (model.Principal, error)
}

// AuthService handles registration, login, logout and session validation.
type AuthService struct {
	users    UserStore
	tokens   *auth.TokenManager
	registry *auth.RevocationRegistry
	auditSvc audit.Service
}

func NewAuthService(users UserStore, tokens *auth.TokenManager, registry *auth.RevocationRegistry, auditSvc audit.Service) *AuthService {
	return &AuthService{
		users:    users,
		tokens:   tokens,
		registry: registry,
		auditSvc: auditSvc,
	}
}

func (s *AuthService) Register(ctx context.Context, name, email, password string, role model.Role) (*model.User, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(strings.ToLower(email))
	if name == "" || email == "" || password == "" {
		return nil, errors.ErrInvalidInput
	}
	if role != model.RoleStudent && role != model.RoleTeacher {
		return nil, errors.ErrInvalidInput
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errors.ErrInternal
	}

	user := &model.User{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
	}
	if err := s.users.CreateUser(ctx, user); err != nil {
		if stderrors.Is(err, errors.ErrUserConflict) {
			return nil, errors.ErrUserConflict
		}
		logger.Error("Failed to create user", zap.Error(err), zap.String("email", email))
		return nil, errors.ErrDatabaseOp
	}

	logger.Info("User registered", zap.String("userID", user.ID), zap.String("role", string(role)))
	return user, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (string, *model.User, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || password == "" {
		return "", nil, errors.ErrInvalidInput
	}

	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if stderrors.Is(err, errors.ErrUserNotFound) {
			return "", nil, errors.ErrCredentials
		}
		logger.Error("Failed to look up user", zap.Error(err), zap.String("email", email))
		return "", nil, errors.ErrDatabaseOp
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, errors.ErrCredentials
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		logger.Error("Failed to issue token", zap.Error(err), zap.String("userID", user.ID))
		return "", nil, errors.ErrInternal
	}

	s.auditSvc.Record(ctx, audit.Entry{
		UserID: user.ID,
		Action: audit.ActionLogin,
	})
	return token, user, nil
}

// Logout revokes the session token for the remainder of its validity
// window. A token past expiry needs no registry entry.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	claims, err := s.tokens.Parse(token)
	if err != nil {
		if stderrors.Is(err, errors.ErrTokenExpired) {
			return nil
		}
		return errors.ErrInvalidToken
	}

	remaining := s.tokens.Remaining(claims)
	if err := s.registry.Revoke(ctx, token, remaining); err != nil {
		logger.Error("Failed to revoke token", zap.Error(err), zap.String("userID", claims.Subject))
		return errors.ErrUpstream
	}

	s.auditSvc.Record(ctx, audit.Entry{
		UserID: claims.Subject,
		Action: audit.ActionTokenRevoked,
	})
	return nil
}

// Authenticate validates signature, expiry, and the revocation registry.
// Registry presence always wins over an otherwise-valid token.
func (s *AuthService) Authenticate(ctx context.Context, token string) (model.Principal, error) {
	claims, err := s.tokens.Parse(token)
	if err != nil {
		return model.Principal{}, err
	}
	if s.registry.IsRevoked(ctx, token) {
		return model.Principal{}, errors.ErrTokenRevoked
	}
	return claims.Principal(), nil
}

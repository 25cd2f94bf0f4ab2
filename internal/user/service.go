package user

import (
	"context"
	"errors"
	"strings"

	"fstore-be/internal/logger"
	"fstore-be/internal/utils"

	"go.uber.org/zap"
)

type Service interface {
	Register(ctx context.Context, email, password, name string) (*User, error)
	// GetAuthorizedUser resolves the caller from the identity the auth
	// middleware put on ctx.
	GetAuthorizedUser(ctx context.Context) (*User, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Register(ctx context.Context, email, password, name string) (*User, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Register"),
	)

	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, ErrInvalidCredential
	}

	hashed, err := HashPassword(password)
	if err != nil {
		log.Error("failed to hash password", zap.Error(err))
		return nil, err
	}

	u := &User{
		Email:    email,
		Password: hashed,
		Name:     strings.TrimSpace(name),
		Role:     RoleUser,
	}
	if err := s.repo.Create(ctx, u); err != nil {
		log.Warn("failed to create user", zap.String("email", email), zap.Error(err))
		return nil, err
	}

	log.Info("user registered", zap.Uint("user_id", u.ID))
	return u, nil
}

func (s *service) GetAuthorizedUser(ctx context.Context) (*User, error) {
	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok || userID == 0 {
		return nil, ErrNotAuthenticated
	}

	u, err := s.repo.GetByID(ctx, userID)
	if errors.Is(err, ErrUserNotFound) {
		// A valid token for a deleted account.
		return nil, ErrNotAuthenticated
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}

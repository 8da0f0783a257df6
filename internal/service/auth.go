package service

import (
	"context"
	"fmt"
	"time"

	"github.com/discoshop/backend/internal/hash"
	"github.com/discoshop/backend/internal/models"
	"github.com/discoshop/backend/internal/repo"
	"github.com/discoshop/backend/internal/session"
)

type AuthService struct {
	Repo          *repo.GormRepo
	JWTSecret     []byte
	RefreshSecret []byte
}

func (s *AuthService) Register(ctx context.Context, name, email, password string) (*models.User, error) {
	taken, err := s.Repo.EmailExists(ctx, email)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, fmt.Errorf("email %q already registered: %w", email, ErrConflict)
	}

	hashed, err := hash.Password(password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Name:         name,
		Email:        email,
		Role:         models.RoleUser,
		PasswordHash: hashed,
	}
	if err := s.Repo.CreateUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

type TokenPair struct {
	Access     string
	AccessExp  time.Time
	Refresh    string
	RefreshExp time.Time
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*models.User, *TokenPair, error) {
	user, err := s.Repo.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid credentials: %w", ErrValidation)
	}
	if !hash.Check(user.PasswordHash, password) {
		return nil, nil, fmt.Errorf("invalid credentials: %w", ErrValidation)
	}

	now := time.Now().UTC()
	pair := &TokenPair{
		AccessExp:  now.Add(session.AccessTokenTTL),
		RefreshExp: now.Add(session.RefreshTokenTTL),
	}

	pair.Access, err = session.SignAccessToken(user.ID, user.Role, s.JWTSecret, pair.AccessExp)
	if err != nil {
		return nil, nil, err
	}
	pair.Refresh, err = session.SignRefreshToken(user.ID, s.RefreshSecret, pair.RefreshExp)
	if err != nil {
		return nil, nil, err
	}

	stored := &models.RefreshToken{
		Token:     pair.Refresh,
		UserID:    user.ID,
		ExpiresAt: pair.RefreshExp.Unix(),
	}
	if err := s.Repo.CreateRefreshToken(ctx, stored); err != nil {
		return nil, nil, err
	}

	return user, pair, nil
}

func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	return s.Repo.RevokeRefreshToken(ctx, refreshToken)
}

package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/discoshop/backend/internal/hash"
	"github.com/discoshop/backend/internal/models"
	"github.com/discoshop/backend/internal/repo"
)

type UserService struct {
	Repo *repo.GormRepo
}

func (s *UserService) GetUser(ctx context.Context, id uint) (*models.User, error) {
	user, err := s.Repo.GetUser(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("user %d: %w", id, ErrNotFound)
	}
	return user, err
}

type AccountUpdate struct {
	Name  *string
	Image *string
}

// UpdateAccount is the self-service path: name and avatar only, owner
// only, and a request that carries no recognized field is a rejected
// no-op rather than a silent success.
func (s *UserService) UpdateAccount(ctx context.Context, id uint, in AccountUpdate) (*models.User, error) {
	fields := map[string]any{}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if len(name) < 2 {
			return nil, fmt.Errorf("%w: name too short", ErrValidation)
		}
		fields["name"] = name
	}
	if in.Image != nil {
		fields["image"] = *in.Image
	}
	if len(fields) == 0 {
		return nil, ErrNothingToUpdate
	}

	return s.update(ctx, id, fields)
}

type UserUpdate struct {
	Name *string
	Role *models.Role
}

func (s *UserService) UpdateUser(ctx context.Context, id uint, in UserUpdate) (*models.User, error) {
	fields := map[string]any{}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if len(name) < 2 {
			return nil, fmt.Errorf("%w: name too short", ErrValidation)
		}
		fields["name"] = name
	}
	if in.Role != nil {
		if !in.Role.Valid() {
			return nil, fmt.Errorf("%w: unknown role %q", ErrValidation, *in.Role)
		}
		fields["role"] = *in.Role
	}
	if len(fields) == 0 {
		return nil, ErrNothingToUpdate
	}

	return s.update(ctx, id, fields)
}

// ChangeEmail checks uniqueness before writing so a taken address surfaces
// as a conflict, not a bare constraint failure.
func (s *UserService) ChangeEmail(ctx context.Context, id uint, email string) (*models.User, error) {
	taken, err := s.Repo.EmailExists(ctx, email)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, fmt.Errorf("email %q already registered: %w", email, ErrConflict)
	}

	return s.update(ctx, id, map[string]any{"email": email})
}

func (s *UserService) ChangePassword(ctx context.Context, id uint, password string) error {
	hashed, err := hash.Password(password)
	if err != nil {
		return err
	}
	_, err = s.update(ctx, id, map[string]any{"password_hash": hashed})
	return err
}

func (s *UserService) DeleteUser(ctx context.Context, id uint) error {
	err := s.Repo.DeleteUser(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("user %d: %w", id, ErrNotFound)
	}
	return err
}

func (s *UserService) update(ctx context.Context, id uint, fields map[string]any) (*models.User, error) {
	user, err := s.Repo.UpdateUserFields(ctx, id, fields)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("user %d: %w", id, ErrNotFound)
	}
	return user, err
}

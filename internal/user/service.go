// AngelaMos | 2026
// service.go

package user

import (
	"context"
	"errors"
	"fmt"

	"github.com/carterperez-dev/heritage-museum/internal/core"
	"github.com/carterperez-dev/heritage-museum/internal/middleware"
)

var ErrPasswordRequired = fmt.Errorf("%w: password is required", core.ErrInvalidInput)

// Service is the identity store. Emails are normalized before they reach
// the repository.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) FindByEmail(ctx context.Context, email string) (*User, error) {
	return s.repo.GetByEmail(ctx, NormalizeEmail(email))
}

func (s *Service) GetByID(ctx context.Context, id int64) (*User, error) {
	return s.repo.GetByID(ctx, id)
}

// Create registers a regular account. The pre-check and the unique index
// both surface as core.ErrDuplicateKey.
func (s *Service) Create(
	ctx context.Context,
	email, password string,
) (*User, error) {
	return s.create(ctx, email, password, false)
}

func (s *Service) create(
	ctx context.Context,
	email, password string,
	isAdmin bool,
) (*User, error) {
	normalized := NormalizeEmail(email)

	_, err := s.repo.GetByEmail(ctx, normalized)
	switch {
	case err == nil:
		return nil, fmt.Errorf("create user: %w", core.ErrDuplicateKey)
	case !errors.Is(err, core.ErrNotFound):
		return nil, err
	}

	hash, err := core.HashPassword(password)
	if err != nil {
		return nil, err
	}

	u := &User{
		Email:        normalized,
		PasswordHash: hash,
		IsActive:     true,
		IsAdmin:      isAdmin,
	}

	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}

	return u, nil
}

// Authenticate returns core.ErrUnauthorized for an unknown email and for a
// wrong password alike.
func (s *Service) Authenticate(
	ctx context.Context,
	email, password string,
) (*User, error) {
	u, err := s.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.VerifyPasswordTimingSafe(password, nil)
			return nil, core.ErrUnauthorized
		}
		return nil, err
	}

	if !core.VerifyPassword(password, u.PasswordHash) {
		return nil, core.ErrUnauthorized
	}

	return u, nil
}

func (s *Service) ResolveIdentity(
	ctx context.Context,
	email string,
) (*middleware.Identity, error) {
	u, err := s.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	return &middleware.Identity{
		ID:       u.ID,
		Email:    u.Email,
		IsActive: u.IsActive,
		IsAdmin:  u.IsAdmin,
	}, nil
}

// EnsureAdmin promotes an existing account or creates a new admin. The
// password is only used when the account does not exist yet.
func (s *Service) EnsureAdmin(
	ctx context.Context,
	email, password string,
) (u *User, created bool, err error) {
	existing, err := s.FindByEmail(ctx, email)
	if err != nil && !errors.Is(err, core.ErrNotFound) {
		return nil, false, err
	}

	if existing != nil {
		if !existing.IsAdmin {
			if err := s.repo.SetAdmin(ctx, existing.ID, true); err != nil {
				return nil, false, err
			}
			existing.IsAdmin = true
		}
		return existing, false, nil
	}

	if password == "" {
		return nil, false, ErrPasswordRequired
	}

	u, err = s.create(ctx, email, password, true)
	if err != nil {
		return nil, false, err
	}
	return u, true, nil
}

func (s *Service) Count(ctx context.Context) (int, error) {
	return s.repo.Count(ctx)
}

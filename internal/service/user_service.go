package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/dom/banner-admin/internal/domain"
	"github.com/dom/banner-admin/internal/repository"
	"github.com/dom/banner-admin/internal/security"
	"github.com/google/uuid"
)

// UserService manages user records for the admin dashboard. Passwords are
// always stored hashed.
type UserService struct {
	userRepo repository.UserRepository
	hasher   *security.Hasher
}

func NewUserService(userRepo repository.UserRepository, hasher *security.Hasher) *UserService {
	return &UserService{userRepo: userRepo, hasher: hasher}
}

type CreateUserInput struct {
	Email    string
	Password string
	Name     string
}

// UpdateUserInput holds optional fields; nil leaves the stored value unchanged.
type UpdateUserInput struct {
	Email    *string
	Password *string
	Name     *string
}

func (s *UserService) List(ctx context.Context) ([]*domain.User, error) {
	return s.userRepo.List(ctx)
}

func (s *UserService) Get(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *UserService) Create(ctx context.Context, input CreateUserInput) (*domain.User, error) {
	if input.Email == "" || input.Password == "" {
		return nil, ErrMissingCredentials
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		ID:           uuid.New(),
		Email:        input.Email,
		PasswordHash: hash,
		Name:         input.Name,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrDuplicateKey) {
			return nil, ErrUserExists
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	return user, nil
}

func (s *UserService) Update(ctx context.Context, id uuid.UUID, input UpdateUserInput) (*domain.User, error) {
	user, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Email != nil {
		if *input.Email == "" {
			return nil, ErrMissingCredentials
		}
		user.Email = *input.Email
	}
	if input.Password != nil {
		if *input.Password == "" {
			return nil, ErrMissingCredentials
		}
		hash, err := s.hasher.Hash(*input.Password)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		user.PasswordHash = hash
	}
	if input.Name != nil {
		user.Name = *input.Name
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		switch {
		case errors.Is(err, domain.ErrDuplicateKey):
			return nil, ErrUserExists
		case errors.Is(err, domain.ErrNotFound):
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("update user: %w", err)
	}

	return user, nil
}

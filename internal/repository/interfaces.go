package repository

import (
	"context"

	"github.com/dom/banner-admin/internal/domain"
	"github.com/google/uuid"
)

// UserRepository is the credential store. Email uniqueness is enforced by the
// store itself; Create and Update return domain.ErrDuplicateKey on violation.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
}

type BannerRepository interface {
	Create(ctx context.Context, banner *domain.Banner) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Banner, error)
	List(ctx context.Context) ([]*domain.Banner, error)
	Update(ctx context.Context, banner *domain.Banner) error
	// Hide sets visible=false only if the banner is visible with the given
	// countdown, and reports whether it did.
	Hide(ctx context.Context, id uuid.UUID, countdown int) (bool, error)
}

type Repositories struct {
	User   UserRepository
	Banner BannerRepository
}

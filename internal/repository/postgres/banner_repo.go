package postgres

import (
	"context"

	"github.com/dom/banner-admin/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type bannerRepository struct {
	db *gorm.DB
}

func NewBannerRepository(db *gorm.DB) *bannerRepository {
	return &bannerRepository{db: db}
}

func (r *bannerRepository) Create(ctx context.Context, banner *domain.Banner) error {
	return translateError(r.db.WithContext(ctx).Create(banner).Error)
}

func (r *bannerRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Banner, error) {
	var banner domain.Banner
	err := r.db.WithContext(ctx).First(&banner, "id = ?", id).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &banner, nil
}

func (r *bannerRepository) List(ctx context.Context) ([]*domain.Banner, error) {
	var banners []*domain.Banner
	err := r.db.WithContext(ctx).Order("created_at ASC").Find(&banners).Error
	if err != nil {
		return nil, err
	}
	return banners, nil
}

// Update writes every column, including zero values such as Visible=false.
func (r *bannerRepository) Update(ctx context.Context, banner *domain.Banner) error {
	result := r.db.WithContext(ctx).Model(banner).Select("*").Omit("created_at").Updates(banner)
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Hide writes only the visible column, and only while the countdown still matches.
func (r *bannerRepository) Hide(ctx context.Context, id uuid.UUID, countdown int) (bool, error) {
	result := r.db.WithContext(ctx).Model(&domain.Banner{}).
		Where("id = ? AND visible = ? AND countdown = ?", id, true, countdown).
		Update("visible", false)
	if result.Error != nil {
		return false, translateError(result.Error)
	}
	return result.RowsAffected > 0, nil
}

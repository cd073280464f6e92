package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dom/banner-admin/internal/domain"
	"github.com/dom/banner-admin/internal/repository"
	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"
)

var ErrBannerNotFound = errors.New("banner not found")

const (
	listKey     = "banners:list"
	listTimeout = 10 * time.Second
)

// BannerNotifier is told about every persisted banner change.
type BannerNotifier interface {
	BannerCreated(banner *domain.Banner)
	BannerUpdated(banner *domain.Banner)
}

type nopNotifier struct{}

func (nopNotifier) BannerCreated(*domain.Banner) {}
func (nopNotifier) BannerUpdated(*domain.Banner) {}

type BannerService struct {
	bannerRepo repository.BannerRepository
	notifier   BannerNotifier
	sf         singleflight.Group
}

// NewBannerService returns a BannerService. A nil notifier discards events.
func NewBannerService(bannerRepo repository.BannerRepository, notifier BannerNotifier) *BannerService {
	if notifier == nil {
		notifier = nopNotifier{}
	}
	return &BannerService{bannerRepo: bannerRepo, notifier: notifier}
}

type CreateBannerInput struct {
	Title       string
	Description string
	ImageURL    string
	Link        string
	Visible     bool
	Countdown   int
}

// UpdateBannerInput holds optional fields; nil leaves the stored value unchanged.
type UpdateBannerInput struct {
	Title       *string
	Description *string
	ImageURL    *string
	Link        *string
	Visible     *bool
	Countdown   *int
}

// List returns every banner in creation order. Concurrent calls share one
// store query, so callers must not modify the returned banners. The shared
// query is detached from any single caller, so one caller going away does not
// fail the others.
func (s *BannerService) List(ctx context.Context) ([]*domain.Banner, error) {
	ch := s.sf.DoChan(listKey, func() (interface{}, error) {
		lookupCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), listTimeout)
		defer cancel()
		return s.bannerRepo.List(lookupCtx)
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.([]*domain.Banner), nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (s *BannerService) Get(ctx context.Context, id uuid.UUID) (*domain.Banner, error) {
	banner, err := s.bannerRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrBannerNotFound
		}
		return nil, err
	}
	return banner, nil
}

func (s *BannerService) Create(ctx context.Context, input CreateBannerInput) (*domain.Banner, error) {
	if input.Countdown < 0 {
		return nil, domain.ErrInvalidCountdown
	}

	banner := &domain.Banner{
		ID:          uuid.New(),
		Title:       input.Title,
		Description: input.Description,
		ImageURL:    input.ImageURL,
		Link:        input.Link,
		Visible:     input.Visible,
		Countdown:   input.Countdown,
	}

	if err := s.bannerRepo.Create(ctx, banner); err != nil {
		return nil, fmt.Errorf("create banner: %w", err)
	}

	s.notifier.BannerCreated(banner)
	return banner, nil
}

func (s *BannerService) Update(ctx context.Context, id uuid.UUID, input UpdateBannerInput) (*domain.Banner, error) {
	if input.Countdown != nil && *input.Countdown < 0 {
		return nil, domain.ErrInvalidCountdown
	}

	banner, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		banner.Title = *input.Title
	}
	if input.Description != nil {
		banner.Description = *input.Description
	}
	if input.ImageURL != nil {
		banner.ImageURL = *input.ImageURL
	}
	if input.Link != nil {
		banner.Link = *input.Link
	}
	if input.Visible != nil {
		banner.Visible = *input.Visible
	}
	if input.Countdown != nil {
		banner.Countdown = *input.Countdown
	}

	if err := s.save(ctx, banner); err != nil {
		return nil, err
	}
	return banner, nil
}

// Expire hides a banner whose countdown of the given length ran out. The hide
// is a single conditional write, so edits made meanwhile are kept; if the
// banner was hidden or its countdown changed in the meantime nothing is written.
func (s *BannerService) Expire(ctx context.Context, id uuid.UUID, countdown int) (*domain.Banner, error) {
	hidden, err := s.bannerRepo.Hide(ctx, id, countdown)
	if err != nil {
		return nil, fmt.Errorf("hide banner: %w", err)
	}

	banner, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if hidden {
		s.notifier.BannerUpdated(banner)
	}
	return banner, nil
}

// ResumeTimers re-announces every banner with a running countdown, so timers
// restart after a process restart.
func (s *BannerService) ResumeTimers(ctx context.Context) (int, error) {
	banners, err := s.bannerRepo.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("list banners: %w", err)
	}

	resumed := 0
	for _, b := range banners {
		if b.HasTimer() {
			s.notifier.BannerUpdated(b)
			resumed++
		}
	}
	return resumed, nil
}

func (s *BannerService) save(ctx context.Context, banner *domain.Banner) error {
	if err := s.bannerRepo.Update(ctx, banner); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return ErrBannerNotFound
		}
		return fmt.Errorf("update banner: %w", err)
	}
	s.notifier.BannerUpdated(banner)
	return nil
}

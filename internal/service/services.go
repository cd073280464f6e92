package service

import (
	"github.com/dom/banner-admin/internal/config"
	"github.com/dom/banner-admin/internal/repository"
	"github.com/dom/banner-admin/internal/security"
)

type Services struct {
	Auth   *AuthService
	User   *UserService
	Banner *BannerService
}

func NewServices(repos *repository.Repositories, cfg *config.Config, notifier BannerNotifier) *Services {
	hasher := security.NewHasher(cfg.BcryptCost)
	tokens := security.NewTokenManager([]byte(cfg.JWTSecret), security.DefaultTokenTTL)

	return &Services{
		Auth:   NewAuthService(repos.User, hasher, tokens),
		User:   NewUserService(repos.User, hasher),
		Banner: NewBannerService(repos.Banner, notifier),
	}
}

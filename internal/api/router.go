package api

import (
	"net/http"

	"github.com/dom/banner-admin/internal/api/handlers"
	"github.com/dom/banner-admin/internal/api/middleware"
	"github.com/dom/banner-admin/internal/config"
	"github.com/dom/banner-admin/internal/service"
	"github.com/dom/banner-admin/internal/websocket"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
)

func NewRouter(services *service.Services, hub *websocket.Hub, cfg *config.Config) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.RequestID)
	r.Use(middleware.CORS(cfg.CORSOrigins))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	authHandler := handlers.NewAuthHandler(services.Auth)
	userHandler := handlers.NewUserHandler(services.User)
	bannerHandler := handlers.NewBannerHandler(services.Banner)
	wsHandler := handlers.NewWebSocketHandler(hub, services.Auth)

	requireAuth := middleware.Auth(services.Auth)

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/signup", authHandler.Signup)
			r.Post("/login", authHandler.Login)

			r.With(requireAuth).Get("/me", authHandler.Me)
		})

		// Banner reads are public so storefront pages can render them
		r.Get("/banners", bannerHandler.List)
		r.Get("/banners/{id}", bannerHandler.Get)

		r.Group(func(r chi.Router) {
			r.Use(requireAuth)

			r.Route("/users", func(r chi.Router) {
				r.Get("/", userHandler.List)
				r.Post("/", userHandler.Create)
				r.Get("/{id}", userHandler.Get)
				r.Put("/{id}", userHandler.Update)
			})

			r.Post("/banners", bannerHandler.Create)
			r.Put("/banners/{id}", bannerHandler.Update)
		})

		// Token is passed as a query parameter
		r.Get("/ws", wsHandler.Handle)
	})

	return r
}

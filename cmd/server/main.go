package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dom/banner-admin/internal/api"
	"github.com/dom/banner-admin/internal/config"
	"github.com/dom/banner-admin/internal/repository/postgres"
	"github.com/dom/banner-admin/internal/service"
	"github.com/dom/banner-admin/internal/websocket"
	"gorm.io/gorm/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logLevel := logger.Info
	if cfg.IsProduction() {
		logLevel = logger.Warn
	}

	// Initialize database
	db, err := postgres.NewConnection(cfg.DatabaseURL, logLevel)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	repos := postgres.NewRepositories(db)

	// Initialize WebSocket hub and the banner feed on top of it
	hub := websocket.NewHub()
	go hub.Run()
	feed := websocket.NewBannerFeed(hub, time.Second)

	services := service.NewServices(repos, cfg, feed)
	feed.SetExpirer(services.Banner)

	resumed, err := services.Banner.ResumeTimers(context.Background())
	if err != nil {
		log.Printf("ERROR [main] failed to resume banner timers: %v", err)
	} else if resumed > 0 {
		log.Printf("Resumed %d banner countdowns", resumed)
	}

	router := api.NewRouter(services, hub, cfg)

	srv := &http.Server{
		Addr:         "0.0.0.0:" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Server starting on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}

	feed.Stop()
	hub.Stop()

	log.Println("Server stopped")
}

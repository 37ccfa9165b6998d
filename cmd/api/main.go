package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"

	"github.com/octobees/leadsite/api/internal/auth"
	"github.com/octobees/leadsite/api/internal/config"
	"github.com/octobees/leadsite/api/internal/database"
	"github.com/octobees/leadsite/api/internal/handler"
	"github.com/octobees/leadsite/api/internal/images"
	middlewarepkg "github.com/octobees/leadsite/api/internal/middleware"
	"github.com/octobees/leadsite/api/internal/ratelimit"
	"github.com/octobees/leadsite/api/internal/repository"
	"github.com/octobees/leadsite/api/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := database.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}
	defer pool.Close()

	sessions := auth.NewSessionManager(cfg.SessionSecret, cfg.SessionTTL)

	leadsRepo := repository.NewPGXLeadsRepository(pool)

	leadsService := service.NewLeadsService(leadsRepo, cfg.PhoneRegion)
	authService, err := service.NewAuthService(cfg.AdminEmail, cfg.AdminPassword, sessions)
	if err != nil {
		log.Fatalf("failed to prepare admin credentials: %v", err)
	}

	leadsHandler := handler.NewLeadsHandler(leadsService)
	authHandler := handler.NewAuthHandler(authService, sessions)
	pagesHandler := handler.NewPagesHandler(cfg.WebRoot)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middlewarepkg.RequestID())
	e.Use(middlewarepkg.Logging())
	e.Use(echoMiddleware.Recover())

	e.GET("/health", func(c echo.Context) error {
		return handler.OK(c, http.StatusOK, nil)
	})

	e.Static("/static", filepath.Join(cfg.WebRoot, "static"))
	e.GET("/", pagesHandler.View("index.html"))
	e.GET("/home", pagesHandler.View("home.html"))
	e.GET("/about", pagesHandler.View("about.html"))
	e.GET("/products", pagesHandler.View("products.html"))
	e.GET("/contact", pagesHandler.View("contact.html"))
	e.GET("/login", pagesHandler.View("login.html"))
	e.GET("/dashboard", pagesHandler.View("dashboard.html"), middlewarepkg.SessionPage(sessions, "/login"))

	intakeLimiter := ratelimit.NewSlidingWindow(cfg.RateLimitLeads.Requests, cfg.RateLimitLeads.Interval)
	e.POST("/api/leads", leadsHandler.Create, middlewarepkg.IntakeRateLimiter(intakeLimiter))

	e.POST("/api/login", authHandler.Login)
	e.POST("/api/logout", authHandler.Logout)

	if cfg.GoogleAPIKey != "" && cfg.GoogleCSEID != "" {
		fetcher, err := images.NewGoogleFetcher(context.Background(), cfg.GoogleAPIKey, cfg.GoogleCSEID)
		if err != nil {
			log.Fatalf("failed to build image search client: %v", err)
		}
		imagesHandler := handler.NewImagesHandler(images.NewSearcher(fetcher, cfg.ImageCacheTTL))
		e.GET("/api/images", imagesHandler.Get, middlewarepkg.ImageRateLimiter(cfg.RateLimitImages))
	} else {
		log.Printf("image search disabled: GOOGLE_API_KEY or GOOGLE_CSE_ID not set")
	}

	secured := e.Group("/api/leads")
	secured.Use(middlewarepkg.Session(sessions))
	secured.GET("", leadsHandler.List)
	secured.GET("/summary", leadsHandler.Summary)
	secured.GET("/campaigns", leadsHandler.Campaigns)
	secured.GET("/:id", leadsHandler.Detail)
	secured.PATCH("/:id/status", leadsHandler.UpdateStatus)

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- e.Start(":" + cfg.Port)
	}()
	log.Printf("listening on :%s", cfg.Port)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		log.Printf("received signal %s, shutting down", sig)
	case err := <-serverErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
		return
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}
}

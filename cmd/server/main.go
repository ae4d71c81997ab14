package main

import (
	"log"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"

	"pulseralux/internal/catalog"
	"pulseralux/internal/config"
	"pulseralux/internal/db"
	"pulseralux/internal/handler"
	"pulseralux/internal/kv"
	"pulseralux/internal/metrics"
	"pulseralux/internal/model"
	"pulseralux/internal/repository"
	"pulseralux/internal/router"
	"pulseralux/internal/service"
	"pulseralux/internal/session"
)

// @title PulseraLux Storefront API
// @version 1.0
// @description Storefront API: catalog browsing, cart, favorites, sessions and order checkout via an external form relay.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the session token.
func main() {
	cfg := config.Load()

	e := echo.New()
	e.Use(middleware.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	// First-use initialization: the user table and its unique email index.
	if err := gormDB.AutoMigrate(&model.User{}); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cat, err := catalog.Load(cfg.CatalogPath)
	if err != nil {
		log.Fatalf("load catalog: %v", err)
	}
	log.Printf("catalog loaded: %d products", cat.Len())

	store := kv.NewRedis(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	registry := prometheus.NewRegistry()
	collector := metrics.NewCollector(registry)

	// Initialize repositories and session components
	userRepo := repository.NewUserRepository(gormDB)
	tokenService := session.NewTokenService(cfg.JWTSecret)
	sessionStore := session.NewStore(store)

	// Initialize services
	authService := service.NewAuthService(userRepo, tokenService, sessionStore, collector)
	favoritesService := service.NewFavoritesService(store)
	catalogService := service.NewCatalogService(cat, favoritesService)
	cartService := service.NewCartService(cat, store, collector)
	checkoutService := service.NewCheckoutService(cartService, cfg.RelayURL, cfg.RelayFormID, collector)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	catalogHandler := handler.NewCatalogHandler(catalogService)
	cartHandler := handler.NewCartHandler(cartService)
	favoritesHandler := handler.NewFavoritesHandler(favoritesService)
	checkoutHandler := handler.NewCheckoutHandler(checkoutService)

	// Register routes
	router.Register(
		e,
		cfg,
		registry,
		authHandler,
		catalogHandler,
		cartHandler,
		favoritesHandler,
		checkoutHandler,
	)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}

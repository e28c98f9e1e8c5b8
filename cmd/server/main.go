package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/syande/shoestore-service/internal/config"
	"github.com/syande/shoestore-service/internal/db"
	"github.com/syande/shoestore-service/internal/db/repository"
	"github.com/syande/shoestore-service/internal/router"
	"github.com/syande/shoestore-service/internal/service"
	"github.com/syande/shoestore-service/internal/session"
	"github.com/syande/shoestore-service/internal/websockets"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize database
	database, err := db.NewPostgres(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close()

	// Run database migrations
	if err := database.Migrate(cfg.Database); err != nil {
		log.Fatalf("Failed to run database migrations: %v", err)
	}

	// Initialize WebSocket hub
	hub := websockets.NewHub()
	go hub.Run()

	repos := repository.NewRepositories(database)
	sessions := session.NewStore()

	authService := service.NewAuthService(repos.User, repos.Credential, &service.LogMailer{}, service.AuthConfig{
		OTPValidity:          time.Duration(cfg.OTP.ValidityMinutes) * time.Minute,
		OTPCooldown:          time.Duration(cfg.OTP.CooldownSeconds) * time.Second,
		SessionTimeout:       time.Duration(cfg.Session.TimeoutMinutes) * time.Minute,
		SuperadminIdentifier: cfg.Superadmin.Identifier,
	})
	saleService := service.NewSaleService(repos.Sale, repos.Variant,
		websockets.NewPublisher(hub), cfg.Inventory.LowStockThreshold)
	catalogService := service.NewCatalogService(repos.Catalog, repos.Variant,
		cfg.Inventory.LowStockThreshold)
	managementService := service.NewManagementService(repos.User, repos.Credential)

	// Initialize router
	r := router.New(router.Services{
		Auth:       authService,
		Sale:       saleService,
		Catalog:    catalogService,
		Management: managementService,
	}, sessions, cfg.Session.CookieName, hub)

	// Create HTTP server
	server := &http.Server{
		Addr:    cfg.Server.Address,
		Handler: r,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Server starting on %s", cfg.Server.Address)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	// Create shutdown context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Attempt graceful shutdown
	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited properly")
}

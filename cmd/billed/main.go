package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Sevrus/billed/internal/api"
	"github.com/Sevrus/billed/internal/api/handlers"
	"github.com/Sevrus/billed/internal/repository"
	"github.com/Sevrus/billed/internal/service"
	"github.com/Sevrus/billed/pkg/auth"
	"github.com/Sevrus/billed/pkg/config"
	"github.com/Sevrus/billed/pkg/logger"
	"github.com/Sevrus/billed/pkg/postgres"

	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize global logger
	if err := logger.Init(cfg.Logger.Level); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	appLogger := logger.Get()
	appLogger.Info("Starting Billed service")

	// Initialize database
	ctx := context.Background()
	db, err := postgres.NewPool(ctx, &cfg.Database, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	// Initialize repositories
	userRepo := repository.NewUserRepository(db, appLogger)
	billRepo := repository.NewBillRepository(db, cfg.Upload.Dir, cfg.Upload.PublicURL, appLogger)

	// Initialize JWT manager
	jwtManager := auth.NewJWTManager(cfg.JWT.SecretKey, cfg.JWT.Expiration, cfg.JWT.RefreshExp)

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtManager, appLogger)
	billsService := service.NewBillsService(billRepo, appLogger)

	// Navigation is client-side; the server records where a finished
	// submission sends the employee.
	navigate := func(route string) {
		appLogger.Info("Navigation requested", zap.String("route", route))
	}
	newBillService := service.NewNewBillService(billRepo, navigate, appLogger)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService, appLogger)
	billHandler := handlers.NewBillHandler(billsService, newBillService, appLogger)

	// Setup router
	app := api.SetupRouter(authHandler, billHandler, jwtManager, cfg.Upload.Dir, appLogger)

	// Start server
	go func() {
		addr := ":" + cfg.Server.Port
		appLogger.Info("Server starting", zap.String("address", addr))
		if err := app.Listen(addr); err != nil {
			appLogger.Fatal("Server failed", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server")
	if err := app.Shutdown(); err != nil {
		appLogger.Error("Server shutdown error", zap.Error(err))
	}
}

// Package main initializes and starts the PassVault HTTP server,
// setting up configuration, logging, the database connection,
// repositories, services, handlers and routing.
package main

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"time"

	nethttp "net/http"

	"go.uber.org/zap"

	"github.com/vknyazev/passvault/internal/config"
	"github.com/vknyazev/passvault/internal/db"
	"github.com/vknyazev/passvault/internal/logger"
	"github.com/vknyazev/passvault/internal/repository"
	"github.com/vknyazev/passvault/internal/server/handler/http"
	"github.com/vknyazev/passvault/internal/service"
)

var (
	// version holds the build version set via ldflags.
	version string
	// buildDate holds the build timestamp set via ldflags.
	buildDate string
)

func main() {
	// Parse command-line and environment configuration.
	options := config.Parse()

	// Print build metadata (or "N/A" if unset).
	fmt.Printf("Build version: %s\n", cmp.Or(version, "N/A"))
	fmt.Printf("Build date: %s\n", cmp.Or(buildDate, "N/A"))

	// Initialize structured logging.
	log := logger.New()
	defer func() { _ = log.Log.Sync() }()
	if err := log.Init("Info"); err != nil {
		log.Log.Fatal("failed to init logger", zap.Error(err))
	}
	zapLogger := log.Log

	if options.JWTSecret == "" {
		zapLogger.Fatal("jwt secret is required (-s flag or JWT_SECRET)")
	}

	// Initialize PostgreSQL connection and apply migrations.
	postgresDB, err := db.InitPostgres(context.Background(), options.DatabaseDSN)
	if err != nil {
		zapLogger.Fatal("cannot init database", zap.Error(err))
	}

	// Initialize repositories.
	userRepo := repository.NewPostgresUserRepository(postgresDB)
	vaultRepo := repository.NewPostgresVaultRepository(postgresDB)
	itemRepo := repository.NewPostgresItemRepository(postgresDB)
	folderRepo := repository.NewPostgresFolderRepository(postgresDB)

	// Initialize business-logic services.
	authService := service.NewAuthService(userRepo, []byte(options.JWTSecret), options.TokenTTL, options.BcryptCost)
	vaultService := service.NewVaultService(vaultRepo)
	itemService := service.NewItemService(itemRepo, vaultRepo)
	folderService := service.NewFolderService(folderRepo, itemRepo)

	// Create HTTP handlers.
	authHandler := &http.AuthHandler{AuthService: authService}
	vaultHandler := &http.VaultHandler{VaultService: vaultService}
	itemHandler := &http.ItemHandler{ItemService: itemService}
	folderHandler := &http.FolderHandler{FolderService: folderService}

	// Build the router with middleware and routes.
	router := http.NewRouter(authHandler, vaultHandler, itemHandler, folderHandler, authService, zapLogger)

	// Create and start the HTTP server.
	server := &nethttp.Server{
		Addr:    options.Address,
		Handler: router,
		// Timeouts prevent resource exhaustion from slow clients
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	zapLogger.Info("starting HTTP server", zap.String("addr", options.Address))
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, nethttp.ErrServerClosed) {
		zapLogger.Fatal("failed to start HTTP server", zap.Error(err))
	}
}

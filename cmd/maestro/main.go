// Command maestro runs the Maestro HTTP resource API.
//
// Startup order: environment, configuration, logger, document store,
// repositories, HTTP server. Shutdown drains in-flight requests before
// closing the store connection.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/dcollard/maestro/internal/api"
	"github.com/dcollard/maestro/internal/auth"
	"github.com/dcollard/maestro/internal/composer"
	"github.com/dcollard/maestro/internal/infrastructure/config"
	"github.com/dcollard/maestro/internal/infrastructure/database"
	"github.com/dcollard/maestro/internal/infrastructure/logging"
	"github.com/dcollard/maestro/internal/person"
	"github.com/dcollard/maestro/internal/roster"
	"github.com/dcollard/maestro/internal/shopper"
)

// version is set at build time via -ldflags.
var version = "dev"

// shutdownTimeout bounds graceful shutdown of the HTTP server and store.
const shutdownTimeout = 15 * time.Second

// Collection names.
const (
	collComposers = "composers"
	collCustomers = "customers"
	collPersons   = "persons"
	collTeams     = "teams"
	collUsers     = "users"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "maestro: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// .env is optional; real deployments set environment variables directly.
	_ = godotenv.Load()

	configPath := os.Getenv("MAESTRO_CONFIG")
	if configPath == "" {
		configPath = "configs/config.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := logging.New(cfg.Logging, version)
	logger.Info("maestro starting", "config", configPath)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := database.Open(ctx, database.Config{
		URI:            cfg.Mongo.URI,
		Database:       cfg.Mongo.Database,
		ConnectTimeout: cfg.GetConnectTimeout(),
	})
	if err != nil {
		return err
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := store.Close(closeCtx); err != nil {
			logger.Error("closing document store", "error", err)
		}
	}()
	logger.Info("document store connected", "database", store.Name())

	userRepo := auth.NewUserRepository(store.Collection(collUsers))
	if err := userRepo.EnsureIndexes(ctx); err != nil {
		return err
	}

	//nolint:gosec // G115: config validation rejects negative cost parameters
	authenticator := auth.NewAuthenticator(userRepo, auth.Params{
		Time:      uint32(cfg.Security.Password.Time),
		MemoryKiB: uint32(cfg.Security.Password.MemoryKiB),
		Threads:   uint8(cfg.Security.Password.Threads),
	})

	server, err := api.New(api.Deps{
		Config:        cfg.API,
		Security:      cfg.Security,
		Logger:        logger,
		Version:       version,
		Composers:     composer.NewRepository(store.Collection(collComposers)),
		Persons:       person.NewRepository(store.Collection(collPersons)),
		Customers:     shopper.NewRepository(store.Collection(collCustomers)),
		Teams:         roster.NewRepository(store.Collection(collTeams)),
		Authenticator: authenticator,
		Store:         store,
	})
	if err != nil {
		return err
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return err
		}
	case <-ctx.Done():
		logger.Info("shutdown signal received")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Close(shutdownCtx); err != nil {
			logger.Error("shutting down api server", "error", err)
		}
		if err := <-errCh; err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
	}

	logger.Info("maestro stopped")
	return nil
}

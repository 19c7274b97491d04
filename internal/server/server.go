// Package server provides the main server initialization and run logic.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/localroots/marketplace/internal/api"
	"github.com/localroots/marketplace/internal/auth"
	"github.com/localroots/marketplace/internal/config"
	"github.com/localroots/marketplace/internal/db"
	"github.com/localroots/marketplace/internal/events"
	"github.com/localroots/marketplace/internal/logger"
	"github.com/localroots/marketplace/internal/uploads"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

// Config holds the server configuration options.
type Config struct {
	Port    int    // Port to run the server on (0 = use config default)
	Version string // Version string to report
}

// Run starts the server with the given configuration and blocks until the context is canceled.
func Run(ctx context.Context, cfg Config) error {
	// Load configuration
	appCfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Override port from CLI flag if provided
	if cfg.Port != 0 {
		appCfg.Server.Port = cfg.Port
	}

	// Initialize logger
	logger.Init(appCfg.Log.Format, appCfg.Log.Level)
	slog.Info("Starting Local Roots API", "version", cfg.Version, "mode", appCfg.Server.Mode)

	if err := appCfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if !appCfg.IsProduction() {
		slog.Warn("Running outside production: the identity header is trusted without verification",
			"header", appCfg.Auth.IdentityHeader)
	}

	// Immutable auth state, built once
	issuer, err := auth.NewTokenIssuer(appCfg.Auth.JWTSecret, appCfg.Auth.TokenDuration)
	if err != nil {
		return fmt.Errorf("failed to initialize token issuer: %w", err)
	}
	admins := auth.ParseAllowList(appCfg.Auth.AdminEmails)
	if admins.Len() == 0 {
		slog.Warn("No admin e-mails configured; privileged endpoints will return 403")
	}

	// Initialize database, retrying until it answers
	database, err := db.Connect(ctx, appCfg.Database)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer func() {
		if sqlDB, err := database.DB(); err == nil {
			sqlDB.Close()
		}
	}()
	slog.Info("Database initialized", "driver", appCfg.Database.Driver)

	// Run migrations
	if err := db.Migrate(database); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	slog.Info("Database migrations completed")

	if appCfg.Seed.Demo {
		if err := db.SeedDemo(database); err != nil {
			return fmt.Errorf("failed to seed demo data: %w", err)
		}
	}

	uploader, err := uploads.New(ctx, appCfg.Uploads, appCfg.BaseURL())
	if err != nil {
		return fmt.Errorf("failed to initialize uploads: %w", err)
	}
	slog.Info("Uploads initialized", "backend", appCfg.Uploads.Backend)

	publisher, err := events.New(appCfg.Events)
	if err != nil {
		return fmt.Errorf("failed to initialize events: %w", err)
	}
	defer publisher.Close()
	slog.Info("Events initialized", "backend", appCfg.Events.Backend)

	router := api.NewRouter(appCfg, database, api.Dependencies{
		Resolver:  auth.NewResolver(issuer, appCfg.IsProduction(), slog.Default()),
		Gate:      auth.NewGate(admins),
		Issuer:    issuer,
		Uploader:  uploader,
		Publisher: publisher,
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", appCfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	ln, err := net.Listen("tcp", srv.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", srv.Addr, err)
	}
	return serve(ctx, srv, ln)
}

// serve runs srv on ln until ctx is canceled, then shuts it down gracefully.
func serve(ctx context.Context, srv *http.Server, ln net.Listener) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		slog.Info("Server listening", "address", ln.Addr().String())
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		slog.Info("Shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server forced to shutdown: %w", err)
		}
		slog.Info("Server stopped")
		return nil
	})

	return g.Wait()
}

// RunWithSignalHandling starts the server and handles OS signals for graceful shutdown.
func RunWithSignalHandling(cfg Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := Run(ctx, cfg)
	slog.Info("Local Roots API exited")
	return err
}

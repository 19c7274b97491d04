package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/localroots/marketplace/internal/config"
	"github.com/localroots/marketplace/internal/db"
	"github.com/localroots/marketplace/internal/events"
	"github.com/localroots/marketplace/internal/logger"
	"github.com/localroots/marketplace/internal/service"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

const (
	cliActor           = "cli"
	cliConnectAttempts = 3
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Inspect or reset the site settings document",
}

var settingsClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete the site settings so clients fall back to their defaults",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSettings(cmd.Context(), func(ctx context.Context, svc *service.SettingsService) error {
			existed, err := svc.Clear(ctx, cliActor)
			if err != nil {
				return err
			}
			if existed {
				fmt.Fprintln(cmd.OutOrStdout(), "Site settings cleared. Clients will fall back to defaults.")
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), "No site settings stored; nothing to clear.")
			}
			return nil
		})
	},
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the stored site settings as JSON",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSettings(cmd.Context(), func(ctx context.Context, svc *service.SettingsService) error {
			value, err := svc.Get(ctx)
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(value)
		})
	},
}

func init() {
	settingsCmd.AddCommand(settingsClearCmd)
	settingsCmd.AddCommand(settingsShowCmd)
}

// withSettings connects to the configured database and runs fn with a
// settings service. Connection attempts are bounded so the command fails
// instead of waiting forever.
func withSettings(parent context.Context, fn func(context.Context, *service.SettingsService) error) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	slog.SetDefault(logger.New(os.Stderr, cfg.Log.Format, "warn"))

	if cfg.Database.ConnectAttempts == 0 {
		cfg.Database.ConnectAttempts = cliConnectAttempts
	}
	database, err := db.Connect(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer closeDB(database)

	if err := db.Migrate(database); err != nil {
		return err
	}

	publisher, err := events.New(cfg.Events)
	if err != nil {
		return fmt.Errorf("failed to initialize events: %w", err)
	}
	defer publisher.Close()

	return fn(ctx, service.NewSettingsService(database, publisher))
}

func closeDB(database *gorm.DB) {
	if sqlDB, err := database.DB(); err == nil {
		sqlDB.Close()
	}
}

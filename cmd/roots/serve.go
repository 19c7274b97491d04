package main

import (
	"fmt"
	"os"

	"github.com/localroots/marketplace/internal/server"
	"github.com/spf13/cobra"
)

var servePort int

// @title Local Roots API
// @version 1.0
// @description Marketplace API for local artisan communities
// @host localhost:8080
// @BasePath /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the API server",
	Long: `Start the Local Roots API server.

Examples:
  roots serve                    # Run with config.yaml / environment settings
  roots serve --port 9090        # Override port

Environment variables:
  ROOTS_SERVER_PORT          Server port (default: 8080, legacy: PORT)
  ROOTS_SERVER_MODE          development or production (legacy: NODE_ENV)
  ROOTS_DATABASE_DRIVER      Database driver: sqlite, postgres
  ROOTS_DATABASE_DSN         Database connection string (legacy: DATABASE_URL)
  ROOTS_AUTH_JWT_SECRET      JWT signing secret, required (legacy: JWT_SECRET)
  ROOTS_AUTH_ADMIN_EMAILS    Comma-separated admin e-mails (legacy: ADMIN_EMAILS)
  ROOTS_UPLOADS_BACKEND      Image storage: local, s3
  ROOTS_EVENTS_BACKEND       Change notifications: none, valkey, nats`,
	Args: cobra.NoArgs,
	Run:  runServe,
}

func init() {
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "Port to run server on (overrides config)")
}

func runServe(cmd *cobra.Command, args []string) {
	cfg := server.Config{
		Port:    servePort,
		Version: Version,
	}

	if err := server.RunWithSignalHandling(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

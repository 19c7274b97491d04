package main

import (
	"os"

	"github.com/spf13/cobra"
)

// Version is set via ldflags at build time
var Version = "dev"

var rootCmd = &cobra.Command{
	Use:   "roots",
	Short: "Local Roots - marketplace API for local artisan communities",
	Long:  `Local Roots serves the marketplace REST API and provides operator tooling for its data.`,
	Example: `  # Run the API server
  roots serve --port 8080

  # Reset the site settings so the frontend falls back to its defaults
  roots settings clear

  # Mint a token for an admin account
  roots token mint --email admin@example.com`,
	SilenceUsage: true,
}

func init() {
	rootCmd.AddGroup(
		&cobra.Group{ID: "server", Title: "Server Commands:"},
		&cobra.Group{ID: "admin", Title: "Admin Commands:"},
	)

	serveCmd.GroupID = "server"
	settingsCmd.GroupID = "admin"
	tokenCmd.GroupID = "admin"

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(settingsCmd)
	rootCmd.AddCommand(tokenCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/localroots/marketplace/internal/auth"
	"github.com/localroots/marketplace/internal/config"
	"github.com/spf13/cobra"
)

var (
	tokenEmail string
	tokenName  string
	tokenID    string
	tokenTTL   time.Duration
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Manage API bearer tokens",
}

var tokenMintCmd = &cobra.Command{
	Use:   "mint",
	Short: "Sign a bearer token with the configured secret",
	Long: `Sign a bearer token for the given identity using ROOTS_AUTH_JWT_SECRET.

The e-mail decides admin access: it must appear in ROOTS_AUTH_ADMIN_EMAILS
for the token to pass admin-only endpoints.

Examples:
  roots token mint --email admin@example.com
  roots token mint --email ops@example.com --name Ops --ttl 1h`,
	Args: cobra.NoArgs,
	RunE: runTokenMint,
}

func init() {
	tokenMintCmd.Flags().StringVar(&tokenEmail, "email", "", "E-mail carried by the token (required)")
	tokenMintCmd.Flags().StringVar(&tokenName, "name", "", "Display name carried by the token")
	tokenMintCmd.Flags().StringVar(&tokenID, "id", "", "User ID (subject); a random UUID when empty")
	tokenMintCmd.Flags().DurationVar(&tokenTTL, "ttl", 0, "Token validity (defaults to auth.token_duration)")
	_ = tokenMintCmd.MarkFlagRequired("email")

	tokenCmd.AddCommand(tokenMintCmd)
}

func runTokenMint(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	ttl := tokenTTL
	if ttl <= 0 {
		ttl = cfg.Auth.TokenDuration
	}
	issuer, err := auth.NewTokenIssuer(cfg.Auth.JWTSecret, ttl)
	if err != nil {
		return err
	}

	id := strings.TrimSpace(tokenID)
	if id == "" {
		id = uuid.NewString()
	}
	token, err := issuer.Sign(auth.Identity{
		ID:    id,
		Email: strings.TrimSpace(tokenEmail),
		Name:  strings.TrimSpace(tokenName),
	})
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), token)
	return nil
}

package db

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/localroots/marketplace/internal/config"
	"gorm.io/gorm"
)

const (
	defaultConnectBaseDelay = time.Second
	defaultConnectMaxDelay  = 30 * time.Second
	// Configuration failures (bad credentials) stop retrying after this many attempts.
	configErrorAttempts = 3
)

type opener func(cfg config.DatabaseConfig) (*gorm.DB, error)

// newBackOff builds the retry schedule: base doubled per failed attempt,
// capped at the max delay, no jitter, no elapsed-time limit.
func newBackOff(cfg config.DatabaseConfig) *backoff.ExponentialBackOff {
	base := cfg.ConnectBaseDelay
	if base <= 0 {
		base = defaultConnectBaseDelay
	}
	maxDelay := cfg.ConnectMaxDelay
	if maxDelay < base {
		maxDelay = defaultConnectMaxDelay
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = base
	b.Multiplier = 2
	b.RandomizationFactor = 0
	b.MaxInterval = maxDelay
	b.MaxElapsedTime = 0
	b.Reset()
	return b
}

// Connect opens the database and pings it, retrying with exponential backoff
// until it answers, the attempts run out or ctx ends.
func Connect(ctx context.Context, cfg config.DatabaseConfig) (*gorm.DB, error) {
	return connect(ctx, cfg, New, nil)
}

// connect runs the retry loop. A nil timer uses real time.
func connect(ctx context.Context, cfg config.DatabaseConfig, open opener, timer backoff.Timer) (*gorm.DB, error) {
	var policy backoff.BackOff = newBackOff(cfg)
	if cfg.ConnectAttempts > 0 {
		policy = backoff.WithMaxRetries(policy, uint64(cfg.ConnectAttempts-1))
	}
	policy = backoff.WithContext(policy, ctx)

	var (
		database *gorm.DB
		attempt  int
	)
	operation := func() error {
		attempt++
		db, err := open(cfg)
		if err == nil {
			if err = Ping(ctx, db); err == nil {
				database = db
				return nil
			}
			if sqlDB, dbErr := db.DB(); dbErr == nil {
				sqlDB.Close()
			}
		}
		if attempt >= configErrorAttempts && isConfigError(err) {
			return backoff.Permanent(fmt.Errorf("database rejected configuration, not retrying: %w", err))
		}
		return err
	}
	notify := func(err error, delay time.Duration) {
		slog.Error("Database connection failed, retrying",
			"attempt", attempt,
			"retry_in", delay.String(),
			"error", err)
	}

	err := backoff.RetryNotifyWithTimer(operation, policy, notify, timer)
	switch {
	case err == nil:
		if attempt > 1 {
			slog.Info("Database connection established", "attempt", attempt)
		}
		return database, nil
	case ctx.Err() != nil:
		return nil, fmt.Errorf("database connection aborted: %w", err)
	case isConfigError(err):
		return nil, err
	default:
		return nil, fmt.Errorf("database unavailable after %d attempts: %w", attempt, err)
	}
}

// isConfigError reports authentication failures that retrying will not fix.
func isConfigError(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// Class 28: invalid authorization specification
		return len(pgErr.Code) == 5 && pgErr.Code[:2] == "28"
	}
	return false
}

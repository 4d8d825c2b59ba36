package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const pingTimeout = 5 * time.Second

// Connect opens a PostgreSQL connection via GORM and verifies connectivity.
// TranslateError is on so adapters can match gorm.ErrDuplicatedKey and
// friends instead of parsing driver strings.
func Connect(ctx context.Context, dsn string) (*gorm.DB, error) {
	if strings.TrimSpace(dsn) == "" {
		return nil, fmt.Errorf("postgres DSN is empty")
	}
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	// Checkout runs its order insert and stock decrements in one transaction,
	// so keep a few idle connections warm.
	sqlDB.SetMaxOpenConns(envInt("POSTGRES_MAX_OPEN_CONNS", 25))
	sqlDB.SetMaxIdleConns(envInt("POSTGRES_MAX_IDLE_CONNS", 5))
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := sqlDB.PingContext(pingCtx); err != nil {
		sqlDB.Close()
		return nil, err
	}
	return db, nil
}

// ConnectFromEnv dials PostgreSQL using POSTGRES_DSN and returns the DB plus
// a cleanup function. A missing DSN or a failed dial is reported through the
// logger and yields nil with a no-op cleanup so callers can fall back to the
// in-memory repositories.
func ConnectFromEnv(ctx context.Context, logger *slog.Logger) (*gorm.DB, func()) {
	noop := func() {}
	dsn := strings.TrimSpace(os.Getenv("POSTGRES_DSN"))
	if dsn == "" {
		warn(logger, "POSTGRES_DSN not set, falling back to in-memory repositories", nil)
		return nil, noop
	}
	db, err := Connect(ctx, dsn)
	if err != nil {
		warn(logger, "failed to connect to postgres, falling back to in-memory repositories", err)
		return nil, noop
	}
	sqlDB, err := db.DB()
	if err != nil {
		warn(logger, "failed to unwrap postgres connection, falling back to in-memory repositories", err)
		return nil, noop
	}
	if logger != nil {
		logger.Info("postgres connection established")
	}
	return db, func() { _ = sqlDB.Close() }
}

func warn(logger *slog.Logger, msg string, err error) {
	if logger == nil {
		return
	}
	if err != nil {
		logger.Warn(msg, slog.String("error", err.Error()))
		return
	}
	logger.Warn(msg)
}

func envInt(key string, fallback int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value <= 0 {
		return fallback
	}
	return value
}

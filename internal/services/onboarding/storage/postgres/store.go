// Package postgres opens the Postgres-backed onboarding store through the
// pgx database/sql driver.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/louisbranch/inpact/internal/platform/storage/migrate"
	"github.com/louisbranch/inpact/internal/services/onboarding/storage/postgres/migrations"
	"github.com/louisbranch/inpact/internal/services/onboarding/storage/sqlstore"
)

const uniqueViolation = "23505"

// Open connects to Postgres and applies embedded migrations.
func Open(ctx context.Context, dsn string) (*sqlstore.Store, error) {
	if strings.TrimSpace(dsn) == "" {
		return nil, fmt.Errorf("postgres dsn is required")
	}
	sqlDB, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres db: %w", err)
	}
	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetConnMaxIdleTime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(pingCtx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping postgres db: %w", err)
	}
	if err := Migrate(ctx, sqlDB); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}
	return sqlstore.New(sqlDB, migrate.Postgres, isUniqueViolation), nil
}

// Migrate applies the embedded schema to an open Postgres handle.
func Migrate(ctx context.Context, sqlDB *sql.DB) error {
	if err := migrate.ApplyMigrations(ctx, sqlDB, migrations.FS, "", migrate.Postgres); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == uniqueViolation
	}
	return false
}

package repository

import (
	"context"
	"database/sql"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/pressly/goose/v3"

	"github.com/ecowatt/ecowatt-go/internal/repository/migrations"
)

// NewDB creates a new MySQL database connection pool with the given DSN.
func NewDB(dsn string) (*sql.DB, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

// gooseUpContext is a seam for testing Migrate without a real database.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string) error {
	return goose.UpContext(ctx, db, dir)
}

// Migrate applies the embedded schema migrations in order. Safe to run at
// every startup; goose records applied versions.
func Migrate(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("mysql"); err != nil {
		return err
	}
	return gooseUpContext(ctx, db, ".")
}

// Reset drops every application table and reapplies the migrations from
// scratch. Development only; mounted behind the debug surface.
func Reset(ctx context.Context, db *sql.DB) error {
	drops := []string{
		"DROP TABLE IF EXISTS energy_usage",
		"DROP TABLE IF EXISTS password_resets",
		"DROP TABLE IF EXISTS energy_tips",
		"DROP TABLE IF EXISTS users",
		"DROP TABLE IF EXISTS goose_db_version",
	}
	for _, stmt := range drops {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return Migrate(ctx, db)
}

// Package migrations applies the embedded goose migrations at startup
// so the binary carries its own schema.
package migrations

import (
    "context"
    "database/sql"
    "embed"
    "fmt"

    "github.com/pressly/goose/v3"
)

//go:embed *.sql
var migrationFiles embed.FS

// Apply runs all pending migrations against db.
func Apply(ctx context.Context, db *sql.DB) error {
    goose.SetBaseFS(migrationFiles)
    if err := goose.SetDialect("mysql"); err != nil {
        return fmt.Errorf("set goose dialect: %w", err)
    }
    if err := goose.UpContext(ctx, db, "."); err != nil {
        return fmt.Errorf("apply migrations: %w", err)
    }
    return nil
}

// Version reports the current migration version.
func Version(ctx context.Context, db *sql.DB) (int64, error) {
    if err := goose.SetDialect("mysql"); err != nil {
        return 0, fmt.Errorf("set goose dialect: %w", err)
    }
    v, err := goose.GetDBVersionContext(ctx, db)
    if err != nil {
        return 0, fmt.Errorf("get version: %w", err)
    }
    return v, nil
}

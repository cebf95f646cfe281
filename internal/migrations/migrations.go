// Package migrations embeds the goose SQL migrations for every supported
// database dialect and runs them against a *sql.DB.
package migrations

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"

	"github.com/pressly/goose/v3"

	"dailydiet/internal/config"
)

//go:embed mysql/*.sql postgres/*.sql
var files embed.FS

// FS returns the migration files for driver, rooted at the dialect directory.
func FS(driver string) (fs.FS, error) {
	switch driver {
	case config.DriverMySQL, config.DriverPostgres:
		return fs.Sub(files, driver)
	default:
		return nil, fmt.Errorf("no migrations for driver %q", driver)
	}
}

// seams for tests
var (
	gooseUp     = goose.UpContext
	gooseDown   = goose.DownContext
	gooseStatus = goose.StatusContext
)

func prepare(driver string) error {
	fsys, err := FS(driver)
	if err != nil {
		return err
	}
	goose.SetBaseFS(fsys)
	if err := goose.SetDialect(driver); err != nil {
		return fmt.Errorf("set goose dialect failed: %w", err)
	}
	return nil
}

func Up(ctx context.Context, db *sql.DB, driver string) error {
	if err := prepare(driver); err != nil {
		return err
	}
	if err := gooseUp(ctx, db, "."); err != nil {
		return fmt.Errorf("apply migrations failed: %w", err)
	}
	return nil
}

// Down rolls back the most recent migration.
func Down(ctx context.Context, db *sql.DB, driver string) error {
	if err := prepare(driver); err != nil {
		return err
	}
	if err := gooseDown(ctx, db, "."); err != nil {
		return fmt.Errorf("roll back migration failed: %w", err)
	}
	return nil
}

// Status prints the applied state of every migration through goose's logger.
func Status(ctx context.Context, db *sql.DB, driver string) error {
	if err := prepare(driver); err != nil {
		return err
	}
	return gooseStatus(ctx, db, ".")
}

package cli

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/spf13/cobra"

	"dailydiet/internal/config"
	"dailydiet/internal/logging"
	"dailydiet/internal/migrations"
	"dailydiet/internal/platform/database"
)

type migrateFunc func(ctx context.Context, db *sql.DB, driver string) error

// NewMigrateCommand creates the migrate command and its up, down and status
// subcommands.
func NewMigrateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the database schema",
	}

	cmd.AddCommand(newMigrateSubcommand(rootOpts, "up", "Apply all pending migrations", migrations.Up))
	cmd.AddCommand(newMigrateSubcommand(rootOpts, "down", "Roll back the latest migration", migrations.Down))
	cmd.AddCommand(newMigrateSubcommand(rootOpts, "status", "Show applied and pending migrations", migrations.Status))

	return cmd
}

func newMigrateSubcommand(rootOpts *RootOptions, use, short string, run migrateFunc) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := rootOpts.loadConfig()
			if err != nil {
				return fmt.Errorf("load config failed: %w", err)
			}
			return runMigrate(cmd.Context(), cfg, run)
		},
	}
}

func runMigrate(ctx context.Context, cfg *config.Config, run migrateFunc) error {
	if cfg.Database.Driver == config.DriverMemory {
		return fmt.Errorf("database driver %q has no schema to migrate", cfg.Database.Driver)
	}

	logger := logging.New(cfg.Log)
	db, err := database.Open(ctx, cfg, logger)
	if err != nil {
		return err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("get sql db failed: %w", err)
	}
	defer sqlDB.Close()

	return run(ctx, sqlDB, cfg.Database.Driver)
}

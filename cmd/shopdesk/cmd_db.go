package main

import (
	"context"
	"fmt"

	"github.com/go-faster/errors"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/shashiranjanraj/shopdesk/config"
	_ "github.com/shashiranjanraj/shopdesk/database/migrations"
	"github.com/shashiranjanraj/shopdesk/database/seeders"
	"github.com/shashiranjanraj/shopdesk/internal/kernel"
	"github.com/shashiranjanraj/shopdesk/pkg/database"
	"github.com/shashiranjanraj/shopdesk/pkg/migration"
)

// openSQL loads config and opens the configured SQL database. Migrations
// only exist for the gorm backends.
func openSQL() (*gorm.DB, error) {
	if err := config.Load(); err != nil {
		return nil, err
	}
	driver := config.DatabaseDriver()
	if !config.IsSQLDriver(driver) {
		return nil, errors.Errorf("DB_DRIVER %q has no migrations", driver)
	}
	return database.OpenSQL(driver, config.DatabaseDSN())
}

// withKernel boots the application, runs fn and shuts it down again.
func withKernel(cmd *cobra.Command, fn func(ctx context.Context, k *kernel.Kernel) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	k, err := kernel.Boot(ctx, cmd.OutOrStdout())
	if err != nil {
		return err
	}

	runErr := fn(ctx, k)
	if err := k.Shutdown(context.Background()); err != nil && runErr == nil {
		runErr = err
	}
	return runErr
}

// shopdesk migrate
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run all pending database migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openSQL()
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Running migrations…")
		_, err = migration.New(db, cmd.OutOrStdout()).Run()
		return err
	},
}

// shopdesk migrate:rollback
var migrateRollbackCmd = &cobra.Command{
	Use:   "migrate:rollback",
	Short: "Rollback the last batch of migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openSQL()
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Rolling back last batch…")
		_, err = migration.New(db, cmd.OutOrStdout()).Rollback()
		return err
	},
}

// shopdesk migrate:status
var migrateStatusCmd = &cobra.Command{
	Use:   "migrate:status",
	Short: "Show the status of each migration",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openSQL()
		if err != nil {
			return err
		}
		return migration.New(db, cmd.OutOrStdout()).Status()
	},
}

// shopdesk seed
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Run all database seeders",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withKernel(cmd, func(ctx context.Context, k *kernel.Kernel) error {
			fmt.Fprintln(cmd.OutOrStdout(), "Running seeders…")
			return seeders.RunAll(ctx, cmd.OutOrStdout(), seeders.Deps{
				Users:    k.Users,
				Products: k.Products,
			})
		})
	},
}

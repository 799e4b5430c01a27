// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package main

import (
	"context"
	"database/sql"
	"fmt"

	"codeberg.org/oliverandrich/jokebox/internal/config"
	"codeberg.org/oliverandrich/jokebox/internal/database"
	"github.com/urfave/cli/v3"
)

func migrateCommand() *cli.Command {
	return &cli.Command{
		Name:  "migrate",
		Usage: "Manage the database schema",
		Commands: []*cli.Command{
			migrateAction("up", "Apply all pending migrations", database.RunMigrations),
			migrateAction("down", "Roll back the latest migration", database.MigrateDown),
			migrateAction("reset", "Roll back every migration", database.MigrateReset),
			migrateAction("status", "Print the current schema version", func(*sql.DB) error { return nil }),
		},
	}
}

// migrateAction opens the configured database, which applies pending
// migrations, runs fn and reports the resulting version.
func migrateAction(name, usage string, fn func(*sql.DB) error) *cli.Command {
	return &cli.Command{
		Name:  name,
		Usage: usage,
		Action: func(_ context.Context, cmd *cli.Command) error {
			cfg := config.NewFromCLI(cmd)

			db, err := database.Open(cfg.Database.DSN)
			if err != nil {
				return fmt.Errorf("failed to open database: %w", err)
			}
			defer func() { _ = database.Close(db) }()

			if err := fn(db.DB); err != nil {
				return fmt.Errorf("migrate %s: %w", name, err)
			}

			version, err := database.MigrationVersion(db.DB)
			if err != nil {
				return fmt.Errorf("failed to read schema version: %w", err)
			}
			_, err = fmt.Fprintf(cmd.Root().Writer, "schema version %d\n", version)
			return err
		},
	}
}

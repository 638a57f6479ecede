// Copyright (C) 2026 l3montree GmbH
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package database

import (
	"embed"
	"errors"
	"fmt"
	"log/slog"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/l3montree-dev/supplyguard/shared"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

// withMigrator opens a migrator on a dedicated connection of gormDB and
// releases the connection once fn returns.
func withMigrator(gormDB shared.DB, fn func(m *migrate.Migrate) error) error {
	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	driver, err := postgres.WithInstance(sqlDB, &postgres.Config{MigrationsTable: "schema_migrations"})
	if err != nil {
		return fmt.Errorf("failed to create migration driver: %w", err)
	}
	source, err := iofs.New(migrationFiles, "migrations")
	if err != nil {
		return fmt.Errorf("failed to read embedded migrations: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", source, "postgres", driver)
	if err != nil {
		return fmt.Errorf("failed to create migrator: %w", err)
	}
	defer func() {
		if srcErr, dbErr := m.Close(); srcErr != nil || dbErr != nil {
			slog.Warn("could not close migrator", "sourceErr", srcErr, "dbErr", dbErr)
		}
	}()
	return fn(m)
}

// RunMigrationsWithDB applies every pending migration.
func RunMigrationsWithDB(gormDB shared.DB) error {
	return withMigrator(gormDB, func(m *migrate.Migrate) error {
		err := m.Up()
		switch {
		case errors.Is(err, migrate.ErrNoChange):
			slog.Info("no pending migrations")
			return nil
		case err != nil:
			return fmt.Errorf("failed to run migrations: %w", err)
		}
		slog.Info("migrations completed successfully")
		return nil
	})
}

// RollbackMigrationsWithDB reverts the given number of migrations.
func RollbackMigrationsWithDB(gormDB shared.DB, steps int) error {
	if steps <= 0 {
		return fmt.Errorf("steps must be positive, got %d", steps)
	}
	return withMigrator(gormDB, func(m *migrate.Migrate) error {
		if err := m.Steps(-steps); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return fmt.Errorf("failed to roll back migrations: %w", err)
		}
		slog.Info("rolled back migrations", "steps", steps)
		return nil
	})
}

// GetMigrationVersionWithDB returns the applied version and whether the last
// migration failed halfway. An empty database reports version 0.
func GetMigrationVersionWithDB(gormDB shared.DB) (uint, bool, error) {
	var (
		version uint
		dirty   bool
	)
	err := withMigrator(gormDB, func(m *migrate.Migrate) error {
		var err error
		version, dirty, err = m.Version()
		if errors.Is(err, migrate.ErrNilVersion) {
			return nil
		}
		return err
	})
	return version, dirty, err
}

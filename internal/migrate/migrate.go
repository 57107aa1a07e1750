// Package migrate applies the embedded pidstore schema migrations.
package migrate

import (
	"database/sql"
	"embed"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed migrations/postgres/*.sql migrations/sqlite/*.sql
var migrationsFS embed.FS

// RunMigrations applies all pending migrations for the given database
// driver. The identifier tables need driver-specific DDL (sequences,
// uuid columns), so each driver carries its own migration set.
func RunMigrations(db *sql.DB, driver string) error {
	m, err := newMigrator(db, driver)
	if err != nil {
		return err
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("migration failed: %w", err)
	}
	return nil
}

// GetMigrationVersion returns the current migration version.
func GetMigrationVersion(db *sql.DB, driver string) (version uint, dirty bool, err error) {
	m, err := newMigrator(db, driver)
	if err != nil {
		return 0, false, err
	}
	return m.Version()
}

func newMigrator(db *sql.DB, driver string) (*migrate.Migrate, error) {
	if driver != "postgres" && driver != "sqlite" {
		return nil, fmt.Errorf("unsupported database driver: %s (supported: postgres, sqlite)", driver)
	}

	sourceDriver, err := iofs.New(migrationsFS, "migrations/"+driver)
	if err != nil {
		return nil, fmt.Errorf("failed to load migration source: %w", err)
	}

	var databaseDriver database.Driver
	switch driver {
	case "postgres":
		databaseDriver, err = postgres.WithInstance(db, &postgres.Config{})
	case "sqlite":
		databaseDriver, err = sqlite.WithInstance(db, &sqlite.Config{})
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create %s driver: %w", driver, err)
	}

	m, err := migrate.NewWithInstance("iofs", sourceDriver, driver, databaseDriver)
	if err != nil {
		return nil, fmt.Errorf("failed to create migration instance: %w", err)
	}
	return m, nil
}

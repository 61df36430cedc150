package database

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"log"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	sqlitemigrate "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed migrations/postgres/*.sql migrations/sqlite/*.sql
var migrationFiles embed.FS

// RunPostgresMigrations applies the embedded PostgreSQL migrations against databaseURL.
func RunPostgresMigrations(databaseURL string) error {
	src, err := iofs.New(migrationFiles, "migrations/postgres")
	if err != nil {
		return fmt.Errorf("failed to load postgres migrations: %w", err)
	}

	m, err := migrate.NewWithSourceInstance("iofs", src, databaseURL)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}
	defer m.Close()

	return up(m, "postgres")
}

// RunSQLiteMigrations applies the embedded SQLite migrations on an open handle.
// The migrate instance is not closed: its driver would close db with it.
func RunSQLiteMigrations(db *sql.DB) error {
	src, err := iofs.New(migrationFiles, "migrations/sqlite")
	if err != nil {
		return fmt.Errorf("failed to load sqlite migrations: %w", err)
	}

	driver, err := sqlitemigrate.WithInstance(db, &sqlitemigrate.Config{})
	if err != nil {
		return fmt.Errorf("failed to create sqlite migrate driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, "sqlite", driver)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}

	return up(m, "sqlite")
}

func up(m *migrate.Migrate, name string) error {
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to apply %s migrations: %w", name, err)
	}

	version, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("failed to read %s migration version: %w", name, err)
	}
	log.Printf("%s schema at version %d (dirty=%t)", name, version, dirty)
	return nil
}

package database

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	// registers the pure-Go driver as "sqlite"
	_ "modernc.org/sqlite"
)

// NewSQLiteDB opens (or creates) the database file at path with WAL journaling
// and a busy timeout so concurrent turns do not fail with SQLITE_BUSY.
// The parent directory is created when missing.
func NewSQLiteDB(path string) (*sql.DB, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create sqlite directory %q: %w", dir, err)
		}
	}

	dsn := path +
		"?_pragma=journal_mode(WAL)" +
		"&_pragma=busy_timeout(5000)" +
		"&_pragma=synchronous(NORMAL)"

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite %q: %w", path, err)
	}

	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(2)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping sqlite %q: %w", path, err)
	}

	return db, nil
}

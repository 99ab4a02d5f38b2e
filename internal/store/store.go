// Package store archives generated maps in SQL: run metadata plus the
// grid as a cell blob. It speaks SQLite for local use and PostgreSQL for
// shared deployments through the Dialect abstraction.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// ErrUnknownDriver is returned by Open for a driver name that is neither
// sqlite nor postgres.
var ErrUnknownDriver = errors.New("store: unknown driver")

// Store wraps the database connection for the map archive.
type Store struct {
	db      *sql.DB
	dialect Dialect
	qb      *QueryBuilder
}

// Open connects to the archive database and runs migrations. For the
// sqlite driver the DSN is a file path whose directory is created if
// missing; for postgres it is a connection string.
func Open(driver, dsn string) (*Store, error) {
	var dialect Dialect
	switch DialectType(driver) {
	case DialectSQLite:
		dialect = &SQLiteDialect{}
		if dir := filepath.Dir(dsn); dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, fmt.Errorf("failed to create store directory: %w", err)
			}
		}
	case DialectPostgres:
		dialect = &PostgresDialect{}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, driver)
	}

	db, err := sql.Open(dialect.DriverName(), dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}

	for _, stmt := range dialect.InitStatements() {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("init statement failed: %w", err)
		}
	}

	s := &Store{db: db, dialect: dialect, qb: NewQueryBuilder(dialect)}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// DB returns the underlying sql.DB for advanced operations.
func (s *Store) DB() *sql.DB {
	return s.db
}

// migrate creates the archive schema if it doesn't exist.
func (s *Store) migrate() error {
	migrations := sqliteSchema
	if _, ok := s.dialect.(*PostgresDialect); ok {
		migrations = postgresSchema
	}

	for _, m := range migrations {
		if _, err := s.db.Exec(m); err != nil {
			return fmt.Errorf("migration failed: %w\nSQL: %s", err, m)
		}
	}
	return nil
}

// Timestamps are stored as unix seconds so both drivers scan them the
// same way.
var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS maps (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		profile TEXT NOT NULL,
		map_config TEXT NOT NULL,
		seed INTEGER NOT NULL,
		width INTEGER NOT NULL,
		height INTEGER NOT NULL,
		spawn_x INTEGER NOT NULL,
		spawn_y INTEGER NOT NULL,
		steps INTEGER NOT NULL,
		finished INTEGER NOT NULL DEFAULT 0,
		cells BLOB NOT NULL,
		created_at INTEGER NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_maps_name ON maps(name)`,
	`CREATE INDEX IF NOT EXISTS idx_maps_created_at ON maps(created_at)`,
}

var postgresSchema = []string{
	`CREATE TABLE IF NOT EXISTS maps (
		id BIGSERIAL PRIMARY KEY,
		name TEXT NOT NULL,
		profile TEXT NOT NULL,
		map_config TEXT NOT NULL,
		seed BIGINT NOT NULL,
		width INTEGER NOT NULL,
		height INTEGER NOT NULL,
		spawn_x INTEGER NOT NULL,
		spawn_y INTEGER NOT NULL,
		steps INTEGER NOT NULL,
		finished BOOLEAN NOT NULL DEFAULT FALSE,
		cells BYTEA NOT NULL,
		created_at BIGINT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_maps_name ON maps(name)`,
	`CREATE INDEX IF NOT EXISTS idx_maps_created_at ON maps(created_at)`,
}

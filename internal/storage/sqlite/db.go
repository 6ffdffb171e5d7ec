// Package sqlite implements the device-local stores on a single SQLite
// file under the app directory.
package sqlite

import (
	"database/sql"
	"fmt"
	"io/fs"
	"log/slog"
	"sort"
	"strconv"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"github.com/wordwings/wordwings/internal/storage/migrations"
)

// dsnOptions enables WAL so reads don't block the sync drain, and keeps
// writers waiting instead of failing when the file is briefly locked.
const dsnOptions = "_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=5000"

// DB is the shared handle every store in this package operates on.
type DB struct {
	*sql.DB
}

// Open opens (creating if needed) the SQLite file at path.
func Open(path string) (*DB, error) {
	db, err := sql.Open("sqlite3", fmt.Sprintf("file:%s?%s", path, dsnOptions))
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	// Single connection: the stores do read-modify-write sequences, and
	// one connection keeps each call atomic with respect to the others.
	db.SetMaxOpenConns(1)

	return &DB{DB: db}, nil
}

type migrationFile struct {
	version int
	name    string
}

// Migrate brings the schema up to the latest embedded migration. Safe to
// call on every startup; already-applied versions are skipped.
func (db *DB) Migrate() error {
	_, err := db.Exec(`CREATE TABLE IF NOT EXISTS schema_migrations (
		version    INTEGER PRIMARY KEY,
		applied_at DATETIME NOT NULL DEFAULT (datetime('now'))
	)`)
	if err != nil {
		return fmt.Errorf("create schema_migrations: %w", err)
	}

	current, err := db.Version()
	if err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}

	pending, err := pendingMigrations(current)
	if err != nil {
		return err
	}

	for _, m := range pending {
		if err := db.apply(m); err != nil {
			return err
		}
		slog.Info("applied migration", "name", m.name, "version", m.version)
	}
	return nil
}

// Version returns the highest applied schema version, 0 for a fresh file.
func (db *DB) Version() (int, error) {
	var version int
	err := db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations").Scan(&version)
	return version, err
}

// apply runs one migration and records its version in the same transaction.
func (db *DB) apply(m migrationFile) error {
	data, err := fs.ReadFile(migrations.FS, m.name)
	if err != nil {
		return fmt.Errorf("read migration %s: %w", m.name, err)
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin migration %s: %w", m.name, err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(string(data)); err != nil {
		return fmt.Errorf("apply migration %s: %w", m.name, err)
	}
	if _, err := tx.Exec("INSERT INTO schema_migrations (version) VALUES (?)", m.version); err != nil {
		return fmt.Errorf("record migration %s: %w", m.name, err)
	}
	return tx.Commit()
}

// pendingMigrations lists embedded migrations newer than current, in order.
func pendingMigrations(current int) ([]migrationFile, error) {
	names, err := fs.Glob(migrations.FS, "*.sql")
	if err != nil {
		return nil, fmt.Errorf("list migrations: %w", err)
	}

	var pending []migrationFile
	for _, name := range names {
		prefix, _, ok := strings.Cut(name, "_")
		if !ok {
			continue
		}
		version, err := strconv.Atoi(prefix)
		if err != nil {
			return nil, fmt.Errorf("migration %s: bad version prefix: %w", name, err)
		}
		if version > current {
			pending = append(pending, migrationFile{version: version, name: name})
		}
	}
	sort.Slice(pending, func(i, j int) bool { return pending[i].version < pending[j].version })
	return pending, nil
}

// internal/db/db.go
//
// Database helpers for the solver service.
// Responsibilities:
//   - Opening a SQLite database with safe defaults (WAL, busy timeout, foreign keys).
//   - Applying *.sql migrations from an fs.FS, each exactly once.
//
// Note: This file assumes SQLite but can be adapted for other backends.

package db

import (
	"database/sql"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog/log"
)

// Open opens (and creates if missing) a SQLite database file.
//
//   - Ensures the parent directory exists for relative DSNs (e.g. ./data/solver.db).
//   - Configures busy timeout and WAL journaling mode.
//   - Enforces foreign keys.
func Open(dsn string) (*sql.DB, error) {
	dir := filepath.Dir(dsn)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("mkdir %s: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite3", dsn+"?_busy_timeout=5000&_journal_mode=WAL")
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(`PRAGMA foreign_keys = ON; PRAGMA journal_mode = WAL;`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("set pragmas: %w", err)
	}
	return db, nil
}

// Migrate brings the schema up to date with the *.sql files at the root of
// migrations. Files run once each, in name order; the names already applied
// are kept in the _migrations table. A file and its _migrations row commit
// together, so a failing file leaves no trace. Files that open their own
// transaction (BEGIN ...) are executed as-is.
func Migrate(db *sql.DB, migrations fs.FS) error {
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS _migrations (name TEXT PRIMARY KEY);`); err != nil {
		return fmt.Errorf("create _migrations: %w", err)
	}

	names, err := fs.Glob(migrations, "*.sql")
	if err != nil {
		return fmt.Errorf("list migrations: %w", err)
	}
	sort.Strings(names)

	applied, err := appliedMigrations(db)
	if err != nil {
		return err
	}

	pending := 0
	for _, name := range names {
		if applied[name] {
			continue
		}
		body, err := fs.ReadFile(migrations, name)
		if err != nil {
			return fmt.Errorf("read %s: %w", name, err)
		}
		if err := applyMigration(db, name, string(body)); err != nil {
			return err
		}
		pending++
		log.Info().Str("migration", name).Msg("applied")
	}
	log.Debug().Int("applied", pending).Int("total", len(names)).Msg("schema up to date")
	return nil
}

func appliedMigrations(db *sql.DB) (map[string]bool, error) {
	rows, err := db.Query(`SELECT name FROM _migrations`)
	if err != nil {
		return nil, fmt.Errorf("query _migrations: %w", err)
	}
	defer rows.Close()
	out := make(map[string]bool)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		out[name] = true
	}
	return out, rows.Err()
}

const recordMigration = `INSERT INTO _migrations(name) VALUES (?)`

func applyMigration(db *sql.DB, name, script string) error {
	if ownsTransaction(script) {
		if _, err := db.Exec(script); err != nil {
			return fmt.Errorf("apply %s: %w", name, err)
		}
		if _, err := db.Exec(recordMigration, name); err != nil {
			return fmt.Errorf("record %s: %w", name, err)
		}
		return nil
	}

	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()
	if _, err := tx.Exec(script); err != nil {
		return fmt.Errorf("apply %s: %w", name, err)
	}
	if _, err := tx.Exec(recordMigration, name); err != nil {
		return fmt.Errorf("record %s: %w", name, err)
	}
	return tx.Commit()
}

// ownsTransaction reports whether script starts a transaction of its own.
func ownsTransaction(script string) bool {
	for _, line := range strings.Split(script, "\n") {
		f := strings.Fields(strings.ToUpper(line))
		if len(f) > 0 && strings.TrimSuffix(f[0], ";") == "BEGIN" {
			return true
		}
	}
	return false
}

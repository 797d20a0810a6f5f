// Package sqlite is the store of record: categories, recurring templates,
// and concrete transactions, persisted in a single SQLite database.
package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// DB wraps the SQLite connection and exposes typed operations.
type DB struct {
	db *sql.DB
}

// Open creates (if needed) and migrates the database under dir.
func Open(dir string) (*DB, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	path := filepath.Join(dir, "centavo.db")
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)", path)
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	db := &DB{db: sqlDB}
	if err := db.migrate(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return db, nil
}

// Close closes the underlying connection.
func (db *DB) Close() error { return db.db.Close() }

// migrate applies the schema. Each string is a single SQL statement
// (SQLite executes one at a time).
func (db *DB) migrate() error {
	for _, stmt := range Migrations() {
		if _, err := db.db.Exec(stmt); err != nil {
			return fmt.Errorf("exec %q: %w", stmt[:min(40, len(stmt))], err)
		}
	}
	return nil
}

// Migrations returns the schema migration statements.
func Migrations() []string {
	return []string{
		// User-curated categories with keyword lists (JSON array)
		`CREATE TABLE IF NOT EXISTS categories (
			id            TEXT PRIMARY KEY,
			owner_id      TEXT NOT NULL,
			name          TEXT NOT NULL,
			direction     TEXT NOT NULL,
			keywords_json TEXT NOT NULL DEFAULT '[]',
			created_at    TEXT NOT NULL DEFAULT (datetime('now'))
		)`,
		`CREATE INDEX IF NOT EXISTS idx_categories_owner ON categories(owner_id, direction)`,

		// Recurring templates — never ledger entries themselves
		`CREATE TABLE IF NOT EXISTS recurring_templates (
			id             TEXT PRIMARY KEY,
			owner_id       TEXT NOT NULL,
			direction      TEXT NOT NULL,
			amount_cents   INTEGER NOT NULL,
			description    TEXT NOT NULL DEFAULT '',
			category_id    TEXT NOT NULL,
			anchor_date    TEXT NOT NULL,
			frequency      TEXT NOT NULL,
			end_date       TEXT,
			last_processed TEXT NOT NULL,
			active         INTEGER NOT NULL DEFAULT 1,
			created_at     TEXT NOT NULL DEFAULT (datetime('now'))
		)`,
		`CREATE INDEX IF NOT EXISTS idx_templates_due ON recurring_templates(active, end_date)`,

		// Concrete ledger entries. template_id is set only on instances
		// materialized from a recurring template.
		`CREATE TABLE IF NOT EXISTS transactions (
			id           TEXT PRIMARY KEY,
			owner_id     TEXT NOT NULL,
			template_id  TEXT REFERENCES recurring_templates(id),
			direction    TEXT NOT NULL,
			amount_cents INTEGER NOT NULL,
			description  TEXT NOT NULL DEFAULT '',
			category_id  TEXT NOT NULL,
			tx_date      TEXT NOT NULL,
			created_at   TEXT NOT NULL DEFAULT (datetime('now'))
		)`,
		// Idempotency backstop: one materialized instance per template per date.
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_tx_occurrence
			ON transactions(template_id, tx_date) WHERE template_id IS NOT NULL`,
		`CREATE INDEX IF NOT EXISTS idx_tx_owner_date ON transactions(owner_id, tx_date)`,
	}
}

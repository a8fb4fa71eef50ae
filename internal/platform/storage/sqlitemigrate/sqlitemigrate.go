// Package sqlitemigrate applies embedded SQL migrations to a SQLite database.
//
// Migration files are plain .sql files with sql-migrate style section
// markers; only the "-- +migrate Up" section is executed. Each file runs
// at most once, tracked by name in a schema_migrations table.
package sqlitemigrate

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
	"time"
)

const (
	upMarker   = "-- +migrate Up"
	downMarker = "-- +migrate Down"

	ledgerSchema = `
CREATE TABLE IF NOT EXISTS schema_migrations (
    name TEXT PRIMARY KEY,
    applied_at INTEGER NOT NULL
);
`
)

// ApplyMigrations runs every pending .sql migration under root, in
// lexical filename order, each inside its own transaction.
func ApplyMigrations(sqlDB *sql.DB, migrationFS fs.FS, root string) error {
	if sqlDB == nil {
		return fmt.Errorf("sql db is required")
	}
	root = strings.TrimSpace(root)
	if root == "" {
		root = "."
	}

	if _, err := sqlDB.Exec(ledgerSchema); err != nil {
		return fmt.Errorf("ensure migration ledger: %w", err)
	}

	names, err := listMigrations(migrationFS, root)
	if err != nil {
		return err
	}

	for _, name := range names {
		key := name
		if root != "." {
			key = path.Join(root, name)
		}

		done, err := isApplied(sqlDB, key)
		if err != nil {
			return fmt.Errorf("check migration %s: %w", name, err)
		}
		if done {
			continue
		}

		content, err := fs.ReadFile(migrationFS, path.Join(root, name))
		if err != nil {
			return fmt.Errorf("read migration %s: %w", name, err)
		}
		if err := applyOne(sqlDB, key, ExtractUpMigration(string(content))); err != nil {
			return fmt.Errorf("apply migration %s: %w", name, err)
		}
	}
	return nil
}

func listMigrations(migrationFS fs.FS, root string) ([]string, error) {
	entries, err := fs.ReadDir(migrationFS, root)
	if err != nil {
		return nil, fmt.Errorf("read migrations dir: %w", err)
	}
	var names []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".sql") {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

func applyOne(sqlDB *sql.DB, key, upSQL string) error {
	if strings.TrimSpace(upSQL) == "" {
		return nil
	}

	tx, err := sqlDB.BeginTx(context.Background(), nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	if _, err := tx.Exec(upSQL); err != nil && !IsAlreadyExistsError(err) {
		_ = tx.Rollback()
		return err
	}
	if _, err := tx.Exec(
		"INSERT OR IGNORE INTO schema_migrations (name, applied_at) VALUES (?, ?)",
		key, time.Now().UTC().UnixMilli(),
	); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("record migration: %w", err)
	}
	return tx.Commit()
}

// ExtractUpMigration returns the SQL between the Up and Down markers.
// Files without markers run whole.
func ExtractUpMigration(content string) string {
	up := strings.Index(content, upMarker)
	if up == -1 {
		return content
	}
	body := content[up+len(upMarker):]
	if down := strings.Index(body, downMarker); down != -1 {
		body = body[:down]
	}
	return body
}

// IsAlreadyExistsError reports whether this error indicates idempotent
// DDL success, so reruns of partially recorded migrations stay safe.
func IsAlreadyExistsError(err error) bool {
	value := strings.ToLower(err.Error())
	return strings.Contains(value, "already exists") || strings.Contains(value, "duplicate column name")
}

func isApplied(sqlDB *sql.DB, name string) (bool, error) {
	var found int
	err := sqlDB.QueryRow("SELECT 1 FROM schema_migrations WHERE name = ?", name).Scan(&found)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

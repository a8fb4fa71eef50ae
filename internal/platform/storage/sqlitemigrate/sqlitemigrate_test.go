package sqlitemigrate

import (
	"database/sql"
	"path/filepath"
	"testing"
	"testing/fstest"

	_ "modernc.org/sqlite"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "migrate.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestApplyMigrationsAppliesOncePerFile(t *testing.T) {
	db := openTestDB(t)
	migrations := fstest.MapFS{
		"001_init.sql": &fstest.MapFile{Data: []byte(`
-- +migrate Up
CREATE TABLE widgets (id TEXT PRIMARY KEY);
-- +migrate Down
DROP TABLE widgets;
`)},
	}

	if err := ApplyMigrations(db, migrations, "."); err != nil {
		t.Fatalf("first apply: %v", err)
	}
	if err := ApplyMigrations(db, migrations, "."); err != nil {
		t.Fatalf("second apply: %v", err)
	}

	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&count); err != nil {
		t.Fatalf("count migrations: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 recorded migration, got %d", count)
	}
	if _, err := db.Exec("INSERT INTO widgets (id) VALUES ('a')"); err != nil {
		t.Fatalf("expected widgets table to exist: %v", err)
	}
}

func TestApplyMigrationsOrdersFiles(t *testing.T) {
	db := openTestDB(t)
	migrations := fstest.MapFS{
		"002_add_column.sql": &fstest.MapFile{Data: []byte(`
-- +migrate Up
ALTER TABLE widgets ADD COLUMN name TEXT;
`)},
		"001_init.sql": &fstest.MapFile{Data: []byte(`
-- +migrate Up
CREATE TABLE widgets (id TEXT PRIMARY KEY);
`)},
	}

	if err := ApplyMigrations(db, migrations, "."); err != nil {
		t.Fatalf("apply: %v", err)
	}
	if _, err := db.Exec("INSERT INTO widgets (id, name) VALUES ('a', 'b')"); err != nil {
		t.Fatalf("expected both migrations applied: %v", err)
	}
}

func TestExtractUpMigration(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"no markers", "CREATE TABLE t (id TEXT);", "CREATE TABLE t (id TEXT);"},
		{"up only", "-- +migrate Up\nCREATE TABLE t (id TEXT);", "\nCREATE TABLE t (id TEXT);"},
		{"up and down", "-- +migrate Up\nCREATE TABLE t (id TEXT);\n-- +migrate Down\nDROP TABLE t;", "\nCREATE TABLE t (id TEXT);\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractUpMigration(tt.content)
			if got != tt.want {
				t.Errorf("ExtractUpMigration() = %q, want %q", got, tt.want)
			}
		})
	}
}

package database_test

import (
	"path/filepath"
	"testing"

	"github.com/mbolis/survey-studio/database"
)

func TestOpenMigrates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.sqlite")

	db, err := database.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if _, err := db.Exec("INSERT INTO kv (key, value) VALUES ('a', '1')"); err != nil {
		t.Fatalf("insert: %v", err)
	}
	db.Close()

	// reopening an up to date file is a no-op migration
	db, err = database.Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer db.Close()

	var value string
	if err := db.QueryRow("SELECT value FROM kv WHERE key = 'a'").Scan(&value); err != nil {
		t.Fatalf("select: %v", err)
	}
	if value != "1" {
		t.Fatalf("expected 1, got %q", value)
	}

	var (
		version int
		dirty   bool
	)
	if err := db.QueryRow("SELECT version, dirty FROM schema_migrations").Scan(&version, &dirty); err != nil {
		t.Fatalf("schema version: %v", err)
	}
	if version != 1 || dirty {
		t.Fatalf("unexpected schema state: version=%d dirty=%v", version, dirty)
	}
}

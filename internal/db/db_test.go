package db

import (
	"path/filepath"
	"testing"
)

func TestDSN(t *testing.T) {
	got := DSN("anbud", "db.internal", 3307, "anbud_acme")
	want := "anbud@tcp(db.internal:3307)/anbud_acme?parseTime=true&charset=utf8mb4"
	if got != want {
		t.Errorf("DSN = %q, want %q", got, want)
	}
}

func TestConnect_SQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "anbud.db")
	gormDB, err := Connect(path, "", "", 0, "")
	if err != nil {
		t.Fatalf("Connect: %v", err)
	}
	if err := Ping(gormDB); err != nil {
		t.Fatalf("Ping: %v", err)
	}
	if err := AutoMigrate(gormDB); err != nil {
		t.Fatalf("AutoMigrate: %v", err)
	}

	// All workflow tables exist after migration.
	for _, m := range AllModels() {
		if !gormDB.Migrator().HasTable(m) {
			t.Errorf("missing table for %T", m)
		}
	}
}

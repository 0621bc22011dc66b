package db_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	dbfs "github.com/uplandimports/storefront/db"
	"github.com/uplandimports/storefront/internal/config"
	"github.com/uplandimports/storefront/internal/db"
)

// TestMigrateOnStart_TempWorkdir runs the startup path for the sqlite driver
// with every file kept inside a temporary directory.
func TestMigrateOnStart_TempWorkdir(t *testing.T) {
	ctx := context.Background()

	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	cfgY := "addr: \":0\"\n" +
		"env: development\n" +
		"storage:\n" +
		"  driver: sqlite\n" +
		"  database_path: '" + dbPath + "'\n" +
		"  migrate_on_start: true\n"

	cfgPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(cfgPath, []byte(cfgY), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("validate config: %v", err)
	}
	if !cfg.Storage.MigrateOnStart {
		t.Fatalf("expected migrate_on_start to be enabled")
	}

	dbCtx, dbCancel := context.WithTimeout(ctx, cfg.APITimeout)
	defer dbCancel()

	d, err := db.New(dbCtx, cfg.Storage.DatabasePath)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer d.Close()

	if err := db.Migrate(dbCtx, d, dbfs.Migrations, dbfs.SeedFiles); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}

	var count int
	if err := d.QueryRow(ctx, `SELECT COUNT(1) FROM schema_migrations`).Scan(&count); err != nil {
		t.Fatalf("scan schema_migrations count: %v", err)
	}
	if count == 0 {
		t.Fatalf("expected migrations recorded, got 0")
	}

	if _, err := os.Stat(dbPath); err != nil {
		t.Fatalf("expected database file at %s: %v", dbPath, err)
	}
}

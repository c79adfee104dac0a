package testutil

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/jmoiron/sqlx"

	"github.com/xxxsen/mtodo/internal/config"
	"github.com/xxxsen/mtodo/internal/db"
)

// OpenTestDB returns a migrated database. It uses postgres when TEST_DB_DSN
// is set and a throwaway sqlite file otherwise.
func OpenTestDB(t *testing.T) *sqlx.DB {
	t.Helper()
	cfg := config.DatabaseConfig{
		Driver: config.DriverSQLite,
		DSN:    filepath.Join(t.TempDir(), "mtodo_test.db"),
	}
	if dsn := os.Getenv("TEST_DB_DSN"); dsn != "" {
		cfg = config.DatabaseConfig{Driver: config.DriverPostgres, DSN: dsn}
	}
	ctx := context.Background()
	conn, err := db.Open(ctx, cfg)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.ApplyMigrations(ctx, conn); err != nil {
		t.Fatalf("migrations: %v", err)
	}
	if cfg.Driver == config.DriverPostgres {
		if _, err := conn.ExecContext(ctx, "TRUNCATE todos, users"); err != nil {
			t.Fatalf("truncate: %v", err)
		}
	}
	t.Cleanup(func() {
		_ = conn.Close()
	})
	return conn
}

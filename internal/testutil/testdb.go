package testutil

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/alexanderramin/steril/internal/db"
	"github.com/stretchr/testify/require"
)

// NewTestDB opens an in-memory store with the sessions and activities schema
// applied. It is closed when the test completes.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()
	return openTestDB(t, db.MemoryPath)
}

// TestDBFile returns a fresh database path under the test's temp dir. Each
// OpenTestFileDB call on it behaves like a separate steril process.
func TestDBFile(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "steril.db")
}

// OpenTestFileDB opens path with the same DSN the CLI uses.
func OpenTestFileDB(t *testing.T, path string) *sql.DB {
	t.Helper()
	return openTestDB(t, path)
}

func openTestDB(t *testing.T, path string) *sql.DB {
	t.Helper()
	database, err := db.OpenDB(path)
	require.NoError(t, err, "opening test database")
	t.Cleanup(func() { _ = database.Close() })
	return database
}

// NewTestUoW creates a UnitOfWork backed by the given test database.
func NewTestUoW(database *sql.DB) db.UnitOfWork {
	return db.NewSQLiteUnitOfWork(database)
}

package db

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := OpenDB(MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestMigrate_Idempotent(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, Migrate(db))
	require.NoError(t, Migrate(db))
}

func TestMigrate_CreatesTablesAndIndexes(t *testing.T) {
	db := openTestDB(t)

	for _, table := range []string{"sessions", "activities"} {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name=?`, table).Scan(&name)
		require.NoError(t, err, "table %s should exist", table)
	}
	for _, idx := range []string{"idx_sessions_owner", "idx_sessions_one_active", "idx_activities_owner"} {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='index' AND name=?`, idx).Scan(&name)
		require.NoError(t, err, "index %s should exist", idx)
	}
}

func TestMigrate_ForeignKeysEnabled(t *testing.T) {
	db := openTestDB(t)

	var fk int
	require.NoError(t, db.QueryRow(`PRAGMA foreign_keys`).Scan(&fk))
	assert.Equal(t, 1, fk)
}

func TestMigrate_InMemoryJournalMode(t *testing.T) {
	// WAL only applies to file databases; in-memory reports "memory".
	db := openTestDB(t)

	var mode string
	require.NoError(t, db.QueryRow(`PRAGMA journal_mode`).Scan(&mode))
	assert.Equal(t, "memory", mode)
}

func TestMigrate_OneProcessingSessionPerOwner(t *testing.T) {
	db := openTestDB(t)
	insert := `INSERT INTO sessions (id, owner, duration_min, started_at, status, created_at) VALUES (?, ?, 5, 0, ?, 0)`

	_, err := db.Exec(insert, "a", "budi", "processing")
	require.NoError(t, err)
	_, err = db.Exec(insert, "b", "budi", "processing")
	assert.Error(t, err, "second processing session for the same owner must be rejected")

	_, err = db.Exec(insert, "c", "budi", "completed")
	assert.NoError(t, err)
	_, err = db.Exec(insert, "d", "sari", "processing")
	assert.NoError(t, err)
}

func TestMigrate_RejectsBadRows(t *testing.T) {
	db := openTestDB(t)

	_, err := db.Exec(`INSERT INTO sessions (id, owner, duration_min, started_at, status, created_at) VALUES ('x', 'o', 0, 0, 'processing', 0)`)
	assert.Error(t, err, "zero duration")

	_, err = db.Exec(`INSERT INTO activities (id, owner, status) VALUES ('y', 'o', 'paused')`)
	assert.Error(t, err, "unknown status")
}

func TestOpenDB_FileDatabaseUsesWAL(t *testing.T) {
	path := t.TempDir() + "/nested/steril.db"
	db, err := OpenDB(path)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	var mode string
	require.NoError(t, db.QueryRow(`PRAGMA journal_mode`).Scan(&mode))
	assert.Equal(t, "wal", mode)
}

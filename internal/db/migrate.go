package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations. Every statement is safe to re-run.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// ALTER TABLE ADD COLUMN is re-run on every open.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	if err := migrateBackfillActivities(db); err != nil {
		return fmt.Errorf("backfilling activities: %w", err)
	}
	return nil
}

// migrateBackfillActivities gives every session written before the
// activities table existed its matching history row.
func migrateBackfillActivities(db *sql.DB) error {
	_, err := db.Exec(`INSERT INTO activities (id, owner, label, status, started_at, finished_at)
		SELECT s.id, s.owner, s.label, s.status, s.started_at, s.finished_at
		FROM sessions s
		WHERE NOT EXISTS (SELECT 1 FROM activities a WHERE a.id = s.id)
		ORDER BY s.started_at, s.id`)
	return err
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS sessions (
		id           TEXT PRIMARY KEY,
		owner        TEXT NOT NULL,
		label        TEXT NOT NULL DEFAULT '',
		duration_min REAL NOT NULL CHECK(duration_min > 0),
		started_at   INTEGER NOT NULL,
		status       TEXT NOT NULL DEFAULT 'processing'
		             CHECK(status IN ('processing','completed','stopped')),
		created_at   INTEGER NOT NULL
	)`,
	`ALTER TABLE sessions ADD COLUMN finished_at INTEGER`,
	`CREATE INDEX IF NOT EXISTS idx_sessions_owner ON sessions(owner, started_at)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_sessions_one_active
		ON sessions(owner) WHERE status = 'processing'`,

	`CREATE TABLE IF NOT EXISTS activities (
		seq         INTEGER PRIMARY KEY AUTOINCREMENT,
		id          TEXT NOT NULL UNIQUE,
		owner       TEXT NOT NULL,
		label       TEXT NOT NULL DEFAULT '',
		status      TEXT NOT NULL
		            CHECK(status IN ('processing','completed','stopped')),
		started_at  INTEGER,
		finished_at INTEGER,
		at          INTEGER
	)`,
	`CREATE INDEX IF NOT EXISTS idx_activities_owner ON activities(owner, seq)`,
}

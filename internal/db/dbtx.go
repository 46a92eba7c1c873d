package db

import (
	"context"
	"database/sql"
)

// DBTX is what repositories run their statements against: the pool for
// single-table reads and writes, or a *sql.Tx when a session and its
// activity row must change together.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

var (
	_ DBTX = (*sql.DB)(nil)
	_ DBTX = (*sql.Tx)(nil)
)

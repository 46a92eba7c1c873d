package testutil

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/alexanderramin/steril/internal/db"
)

// ErrInjected is returned by FailOnNthExecUoW when Err is unset.
var ErrInjected = errors.New("injected exec failure")

// FailOnNthExecUoW fails the FailOn-th ExecContext call (counted from 1)
// inside a transaction and rolls back. Reads are not counted. Use it to
// check that a session and its activity row are written together or not
// at all.
type FailOnNthExecUoW struct {
	DB     *sql.DB
	FailOn int32
	Err    error

	// Calls counts ExecContext calls across every transaction run so far.
	Calls atomic.Int32
}

func (u *FailOnNthExecUoW) WithinTx(ctx context.Context, fn func(ctx context.Context, tx db.DBTX) error) error {
	tx, err := u.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}

	injected := u.Err
	if injected == nil {
		injected = ErrInjected
	}
	wrapped := &failOnNthExec{DBTX: tx, uow: u, err: injected}
	if fnErr := fn(ctx, wrapped); fnErr != nil {
		_ = tx.Rollback()
		return fnErr
	}
	return tx.Commit()
}

type failOnNthExec struct {
	db.DBTX
	uow   *FailOnNthExecUoW
	count int32
	err   error
}

func (f *failOnNthExec) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	f.uow.Calls.Add(1)
	f.count++
	if f.count == f.uow.FailOn {
		return nil, f.err
	}
	return f.DBTX.ExecContext(ctx, query, args...)
}

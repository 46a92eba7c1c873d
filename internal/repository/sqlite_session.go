package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/steril/internal/db"
	"github.com/alexanderramin/steril/internal/domain"
)

const sessionColumns = `id, owner, label, duration_min, started_at, status, finished_at, created_at`

// SQLiteSessionRepo implements SessionRepo using a SQLite database.
type SQLiteSessionRepo struct {
	db db.DBTX
}

// NewSQLiteSessionRepo creates a new SQLiteSessionRepo.
func NewSQLiteSessionRepo(conn db.DBTX) *SQLiteSessionRepo {
	return &SQLiteSessionRepo{db: conn}
}

func (r *SQLiteSessionRepo) Create(ctx context.Context, s *domain.Session) error {
	query := `INSERT INTO sessions (` + sessionColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		s.ID,
		s.Owner,
		s.Label,
		s.DurationMinutes,
		toMillis(s.StartedAt),
		string(s.Status),
		nullableMillis(s.FinishedAt),
		toMillis(s.CreatedAt),
	)
	if isUniqueViolation(err) {
		return fmt.Errorf("inserting session: %w", domain.ErrSessionAlreadyActive)
	}
	if err != nil {
		return fmt.Errorf("inserting session: %w", err)
	}
	return nil
}

func (r *SQLiteSessionRepo) GetByID(ctx context.Context, id string) (*domain.Session, error) {
	query := `SELECT ` + sessionColumns + ` FROM sessions WHERE id = ?`
	return r.scanSession(r.db.QueryRowContext(ctx, query, id))
}

func (r *SQLiteSessionRepo) GetActive(ctx context.Context, owner string) (*domain.Session, error) {
	query := `SELECT ` + sessionColumns + ` FROM sessions WHERE owner = ? AND status = 'processing'`
	return r.scanSession(r.db.QueryRowContext(ctx, query, owner))
}

func (r *SQLiteSessionRepo) Finish(ctx context.Context, id string, status domain.SessionStatus, at time.Time) error {
	if !status.IsTerminal() {
		return fmt.Errorf("finishing session %s: status %q is not terminal", id, status)
	}
	query := `UPDATE sessions SET status = ?, finished_at = ? WHERE id = ? AND status = 'processing'`
	res, err := r.db.ExecContext(ctx, query, string(status), toMillis(at), id)
	if err != nil {
		return fmt.Errorf("finishing session: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("finishing session: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("session %s: %w", id, domain.ErrNotRunning)
	}
	return nil
}

func (r *SQLiteSessionRepo) ListByOwner(ctx context.Context, owner string) ([]*domain.Session, error) {
	query := `SELECT ` + sessionColumns + ` FROM sessions WHERE owner = ? ORDER BY started_at DESC, id`
	rows, err := r.db.QueryContext(ctx, query, owner)
	if err != nil {
		return nil, fmt.Errorf("listing sessions by owner: %w", err)
	}
	defer rows.Close()

	var sessions []*domain.Session
	for rows.Next() {
		s, err := scanSessionRow(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning session row: %w", err)
		}
		sessions = append(sessions, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating sessions: %w", err)
	}
	return sessions, nil
}

func (r *SQLiteSessionRepo) scanSession(row *sql.Row) (*domain.Session, error) {
	s, err := scanSessionRow(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("session: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning session: %w", err)
	}
	return s, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSessionRow(row rowScanner) (*domain.Session, error) {
	var (
		s                  domain.Session
		status             string
		startedMs, created int64
		finished           sql.NullInt64
	)
	if err := row.Scan(&s.ID, &s.Owner, &s.Label, &s.DurationMinutes, &startedMs, &status, &finished, &created); err != nil {
		return nil, err
	}
	s.Status = domain.SessionStatus(status)
	s.StartedAt = fromMillis(startedMs)
	s.FinishedAt = parseNullableMillis(finished)
	s.CreatedAt = fromMillis(created)
	return &s, nil
}

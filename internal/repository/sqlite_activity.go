package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alexanderramin/steril/internal/db"
	"github.com/alexanderramin/steril/internal/domain"
)

const activityColumns = `seq, id, owner, label, status, started_at, finished_at, at`

// SQLiteActivityRepo implements ActivityRepo using a SQLite database.
type SQLiteActivityRepo struct {
	db db.DBTX
}

// NewSQLiteActivityRepo creates a new SQLiteActivityRepo.
func NewSQLiteActivityRepo(conn db.DBTX) *SQLiteActivityRepo {
	return &SQLiteActivityRepo{db: conn}
}

// Create inserts rec and sets rec.Seq to its creation order.
func (r *SQLiteActivityRepo) Create(ctx context.Context, rec *domain.ActivityRecord) error {
	query := `INSERT INTO activities (id, owner, label, status, started_at, finished_at, at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, query, activityArgs(rec)...)
	if err != nil {
		return fmt.Errorf("inserting activity: %w", err)
	}
	seq, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("reading activity seq: %w", err)
	}
	rec.Seq = seq
	return nil
}

func (r *SQLiteActivityRepo) CreateIfAbsent(ctx context.Context, rec *domain.ActivityRecord) (bool, error) {
	query := `INSERT INTO activities (id, owner, label, status, started_at, finished_at, at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING`
	res, err := r.db.ExecContext(ctx, query, activityArgs(rec)...)
	if err != nil {
		return false, fmt.Errorf("importing activity: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("importing activity: %w", err)
	}
	if n == 0 {
		return false, nil
	}
	if seq, err := res.LastInsertId(); err == nil {
		rec.Seq = seq
	}
	return true, nil
}

func activityArgs(rec *domain.ActivityRecord) []any {
	return []any{
		rec.ID,
		rec.Owner,
		rec.Label,
		string(rec.Status),
		nullableMillis(rec.StartedAt),
		nullableMillis(rec.FinishedAt),
		nullableMillis(rec.At),
	}
}

func (r *SQLiteActivityRepo) Finish(ctx context.Context, id string, status domain.SessionStatus, at time.Time) error {
	if !status.IsTerminal() {
		return fmt.Errorf("finishing activity %s: status %q is not terminal", id, status)
	}
	query := `UPDATE activities SET status = ?, finished_at = ? WHERE id = ? AND status = 'processing'`
	res, err := r.db.ExecContext(ctx, query, string(status), toMillis(at), id)
	if err != nil {
		return fmt.Errorf("finishing activity: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("finishing activity: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("activity %s: %w", id, domain.ErrNotRunning)
	}
	return nil
}

func (r *SQLiteActivityRepo) ListByOwner(ctx context.Context, owner string) ([]domain.ActivityRecord, error) {
	query := `SELECT ` + activityColumns + ` FROM activities WHERE owner = ? ORDER BY seq`
	return r.list(ctx, "listing activities by owner", query, owner)
}

func (r *SQLiteActivityRepo) ListAll(ctx context.Context) ([]domain.ActivityRecord, error) {
	query := `SELECT ` + activityColumns + ` FROM activities ORDER BY seq`
	return r.list(ctx, "listing activities", query)
}

func (r *SQLiteActivityRepo) ListRecent(ctx context.Context, owner string, limit int) ([]domain.ActivityRecord, error) {
	if limit <= 0 {
		return nil, nil
	}
	query := `SELECT ` + activityColumns + ` FROM activities WHERE owner = ? ORDER BY seq DESC LIMIT ?`
	return r.list(ctx, "listing recent activities", query, owner, limit)
}

func (r *SQLiteActivityRepo) CountByOwner(ctx context.Context) ([]OwnerCount, error) {
	query := `SELECT owner,
			COUNT(*),
			COALESCE(SUM(status = 'completed'), 0),
			COALESCE(SUM(status = 'stopped'), 0),
			COALESCE(SUM(status = 'processing'), 0)
		FROM activities
		GROUP BY owner
		ORDER BY owner`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("counting activities by owner: %w", err)
	}
	defer rows.Close()

	var out []OwnerCount
	for rows.Next() {
		var c OwnerCount
		if err := rows.Scan(&c.Owner, &c.Total, &c.Completed, &c.Stopped, &c.Processing); err != nil {
			return nil, fmt.Errorf("scanning owner count: %w", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating owner counts: %w", err)
	}
	return out, nil
}

func (r *SQLiteActivityRepo) list(ctx context.Context, op, query string, args ...any) ([]domain.ActivityRecord, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var out []domain.ActivityRecord
	for rows.Next() {
		var (
			rec                   domain.ActivityRecord
			status                string
			started, finished, at sql.NullInt64
		)
		if err := rows.Scan(&rec.Seq, &rec.ID, &rec.Owner, &rec.Label, &status, &started, &finished, &at); err != nil {
			return nil, fmt.Errorf("scanning activity row: %w", err)
		}
		rec.Status = domain.SessionStatus(status)
		rec.StartedAt = parseNullableMillis(started)
		rec.FinishedAt = parseNullableMillis(finished)
		rec.At = parseNullableMillis(at)
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return out, nil
}

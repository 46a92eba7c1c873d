package repository

import (
	"context"
	"errors"
	"time"

	"github.com/alexanderramin/steril/internal/domain"
)

// ErrNotFound is wrapped by every lookup that matches no row.
var ErrNotFound = errors.New("not found")

// OwnerCount is one row of the per-owner session totals.
type OwnerCount struct {
	Owner      string
	Total      int
	Completed  int
	Stopped    int
	Processing int
}

type SessionRepo interface {
	Create(ctx context.Context, s *domain.Session) error
	GetByID(ctx context.Context, id string) (*domain.Session, error)
	// GetActive returns the owner's processing session or ErrNotFound.
	GetActive(ctx context.Context, owner string) (*domain.Session, error)
	// Finish moves a processing session to status. It returns
	// domain.ErrNotRunning when no processing row matched.
	Finish(ctx context.Context, id string, status domain.SessionStatus, at time.Time) error
	ListByOwner(ctx context.Context, owner string) ([]*domain.Session, error)
}

type ActivityRepo interface {
	Create(ctx context.Context, rec *domain.ActivityRecord) error
	// CreateIfAbsent inserts rec unless its ID is already stored.
	CreateIfAbsent(ctx context.Context, rec *domain.ActivityRecord) (bool, error)
	Finish(ctx context.Context, id string, status domain.SessionStatus, at time.Time) error
	ListByOwner(ctx context.Context, owner string) ([]domain.ActivityRecord, error)
	ListAll(ctx context.Context) ([]domain.ActivityRecord, error)
	// ListRecent returns the owner's latest records, newest first.
	ListRecent(ctx context.Context, owner string, limit int) ([]domain.ActivityRecord, error)
	CountByOwner(ctx context.Context) ([]OwnerCount, error)
}

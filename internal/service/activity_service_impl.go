package service

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/alexanderramin/steril/internal/app"
	"github.com/alexanderramin/steril/internal/db"
	"github.com/alexanderramin/steril/internal/domain"
	"github.com/alexanderramin/steril/internal/importer"
	"github.com/alexanderramin/steril/internal/repository"
)

type activityService struct {
	activities repository.ActivityRepo
	uow        db.UnitOfWork
	observer   UseCaseObserver
}

func NewActivityService(activities repository.ActivityRepo, uow db.UnitOfWork, observers ...UseCaseObserver) ActivityService {
	return &activityService{
		activities: activities,
		uow:        uow,
		observer:   useCaseObserverOrNoop(observers),
	}
}

func (s *activityService) ListRecent(ctx context.Context, owner string, limit int) ([]domain.ActivityRecord, error) {
	return s.activities.ListRecent(ctx, owner, limit)
}

// Import stores every entry of an import file in one transaction. Entries
// whose ID is already stored are counted as duplicates and left untouched.
func (s *activityService) Import(ctx context.Context, owner string, r io.Reader) (result *app.ImportResult, err error) {
	startedAt := time.Now()
	fields := map[string]any{"owner": owner}
	defer func() {
		if result != nil {
			fields["imported"] = result.Imported
			fields["duplicates"] = result.Duplicates
		}
		observe(ctx, s.observer, "import-activities", startedAt, fields, err)
	}()

	if owner == "" {
		return nil, fmt.Errorf("owner is required")
	}
	entries, err := importer.ParseActivities(r)
	if err != nil {
		return nil, err
	}
	if errs := importer.ValidateActivities(entries); len(errs) > 0 {
		return nil, formatValidationErrors(errs)
	}
	records := importer.Convert(entries, owner)

	res := &app.ImportResult{Read: len(entries)}
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		repo := repository.NewSQLiteActivityRepo(tx)
		for i := range records {
			inserted, err := repo.CreateIfAbsent(ctx, &records[i])
			if err != nil {
				return fmt.Errorf("importing activity %s: %w", records[i].ID, err)
			}
			if !inserted {
				res.Duplicates++
				continue
			}
			res.Imported++
			if _, err := records[i].Timestamp(); err != nil {
				res.Untimed++
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

func formatValidationErrors(errs []error) error {
	msg := fmt.Sprintf("import validation failed (%d errors):", len(errs))
	for _, e := range errs {
		msg += "\n  - " + e.Error()
	}
	return fmt.Errorf("%s", msg)
}

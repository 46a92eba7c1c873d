package importer

import (
	"strings"

	"github.com/alexanderramin/steril/internal/domain"
	"github.com/google/uuid"
)

// Convert turns validated entries into activity records owned by owner.
// Call ValidateActivities first; entries with an unknown status are skipped.
func Convert(entries []ActivityImport, owner string) []domain.ActivityRecord {
	out := make([]domain.ActivityRecord, 0, len(entries))
	for _, e := range entries {
		status, ok := NormalizeStatus(e.Status)
		if !ok {
			continue
		}
		id := strings.TrimSpace(e.ID)
		if id == "" {
			id = uuid.New().String()
		}
		out = append(out, domain.ActivityRecord{
			ID:         id,
			Owner:      owner,
			Label:      entryLabel(e),
			Status:     status,
			FinishedAt: e.FinishedAt.Time,
			StartedAt:  e.StartedAt.Time,
			At:         domain.FirstTime(e.At.Time, e.Time.Time),
		})
	}
	return out
}

func entryLabel(e ActivityImport) string {
	food := ""
	if strings.TrimSpace(e.Food) != "" {
		food = domain.FoodLabel(e.Food)
	}
	return domain.CoalesceStr(strings.TrimSpace(e.Label), food)
}

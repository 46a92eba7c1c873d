package importer

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/steril/internal/domain"
)

var statusAliases = map[string]domain.SessionStatus{
	"processing": domain.StatusProcessing,
	"proses":     domain.StatusProcessing,
	"completed":  domain.StatusCompleted,
	"selesai":    domain.StatusCompleted,
	"berhasil":   domain.StatusCompleted,
	"stopped":    domain.StatusStopped,
	"dihentikan": domain.StatusStopped,
	"gagal":      domain.StatusStopped,
}

// NormalizeStatus maps an imported status to a SessionStatus.
func NormalizeStatus(s string) (domain.SessionStatus, bool) {
	st, ok := statusAliases[strings.ToLower(strings.TrimSpace(s))]
	return st, ok
}

// ValidateActivities checks entries before conversion and returns every
// problem found. Missing timestamps are not an error.
func ValidateActivities(entries []ActivityImport) []error {
	var errs []error
	seen := make(map[string]int)
	for i, e := range entries {
		if _, ok := NormalizeStatus(e.Status); !ok {
			errs = append(errs, fmt.Errorf("activities[%d].status: invalid value %q", i, e.Status))
		}
		if e.ID == "" {
			continue
		}
		if prev, dup := seen[e.ID]; dup {
			errs = append(errs, fmt.Errorf("activities[%d].id: %q duplicates activities[%d]", i, e.ID, prev))
			continue
		}
		seen[e.ID] = i
	}
	return errs
}

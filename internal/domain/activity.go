package domain

import "time"

// ActivityRecord is a timestamped, status-tagged unit counted by statistics.
// Any of the timestamps may be missing on imported records.
type ActivityRecord struct {
	Seq        int64
	ID         string
	Owner      string
	Label      string
	Status     SessionStatus
	StartedAt  *time.Time
	FinishedAt *time.Time
	At         *time.Time
}

// Timestamp returns the authoritative instant used for bucketing:
// finish, then start, then the generic timestamp. A record without any of
// them reports ErrMissingTimestamp and must be left out of aggregation.
func (a ActivityRecord) Timestamp() (time.Time, error) {
	if t := FirstTime(a.FinishedAt, a.StartedAt, a.At); t != nil {
		return *t, nil
	}
	return time.Time{}, ErrMissingTimestamp
}

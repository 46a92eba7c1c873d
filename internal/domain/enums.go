package domain

// SessionStatus is the lifecycle state shared by sessions and activity records.
type SessionStatus string

const (
	StatusProcessing SessionStatus = "processing"
	StatusCompleted  SessionStatus = "completed"
	StatusStopped    SessionStatus = "stopped"
)

// ValidSessionStatuses is the canonical set of accepted status strings.
var ValidSessionStatuses = map[string]bool{
	"processing": true, "completed": true, "stopped": true,
}

// IsTerminal reports whether no further transition is allowed from s.
func (s SessionStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusStopped
}

// Granularity selects the bucket scheme used for aggregation.
type Granularity string

const (
	GranularityDaily          Granularity = "daily"
	GranularityWeekly         Granularity = "weekly"
	GranularityMonthly        Granularity = "monthly"
	GranularityFiveDaySegment Granularity = "segment"
)

// StatusFilter selects which terminal records are counted.
type StatusFilter string

const (
	FilterTotal     StatusFilter = "total"
	FilterCompleted StatusFilter = "completed"
	FilterStopped   StatusFilter = "stopped"
)

// Matches reports whether a record with the given status passes the filter.
// Processing records never match: they have not reached a terminal state.
func (f StatusFilter) Matches(s SessionStatus) bool {
	switch f {
	case FilterTotal:
		return s.IsTerminal()
	case FilterCompleted:
		return s == StatusCompleted
	case FilterStopped:
		return s == StatusStopped
	default:
		return false
	}
}

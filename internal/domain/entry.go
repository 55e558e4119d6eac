package domain

import "time"

// EntryKind discriminates the two recordable clock actions.
type EntryKind string

const (
	KindClockIn  EntryKind = "clock_in"
	KindClockOut EntryKind = "clock_out"
)

func (k EntryKind) Valid() bool {
	return k == KindClockIn || k == KindClockOut
}

type TimeEntry struct {
	ID         string     `json:"id"`
	EmployeeID string     `json:"employeeId"`
	Kind       EntryKind  `json:"kind"`
	Note       string     `json:"note,omitempty"`
	Latitude   *float64   `json:"lat,omitempty"`
	Longitude  *float64   `json:"lng,omitempty"`
	ClientTime *time.Time `json:"clientTime,omitempty"`
	RecordedAt time.Time  `json:"recordedAt"`
}

// DashboardSummary is the aggregate shown on the admin dashboard.
type DashboardSummary struct {
	TotalEmployees int         `json:"totalEmployees"`
	ClockedIn      int         `json:"clockedIn"`
	Entries        []TimeEntry `json:"entries"`
}

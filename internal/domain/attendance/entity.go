package attendance

import "time"

type Status string

const (
	StatusPresent Status = "present"
	StatusAbsent  Status = "absent"
	StatusHalfDay Status = "half-day"
	StatusLeave   Status = "leave"
)

// Attendance is one ledger row per (employee, calendar day). The composite
// uniqueness lives in the database; see NormalizeDay for the day boundary.
type Attendance struct {
	ID         string
	EmployeeID string
	Date       time.Time
	CheckIn    *time.Time
	CheckOut   *time.Time
	Status     Status
	Remarks    *string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// NormalizeDay truncates a timestamp to midnight UTC. Every reader and writer
// of the (employee_id, date) key goes through this helper: a caller that
// normalizes to a local midnight instead would silently dodge the uniqueness
// check across time zones.
func NormalizeDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

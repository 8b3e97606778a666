package attendance

import (
	"context"
	"time"
)

// AttendanceRepository defines data access for attendance rows. Create must
// surface the (employee_id, date) unique violation so the service can turn a
// concurrent double check-in into ErrDuplicateCheckIn instead of a silent
// overwrite.
type AttendanceRepository interface {
	Create(ctx context.Context, record Attendance) (Attendance, error)
	GetByID(ctx context.Context, id string) (Attendance, error)
	GetByEmployeeAndDate(ctx context.Context, employeeID string, day time.Time) (*Attendance, error)
	SetCheckOut(ctx context.Context, id string, checkOut time.Time) error
	SetStatus(ctx context.Context, id string, status Status, remarks *string) error
	List(ctx context.Context, filter ListFilter) ([]Attendance, error)
	DeleteByEmployeeID(ctx context.Context, employeeID string) error
}

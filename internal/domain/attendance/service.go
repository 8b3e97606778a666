package attendance

import "context"

// AttendanceService defines the attendance rule engine
type AttendanceService interface {
	// CheckIn opens today's record for the authenticated employee;
	// fails with ErrDuplicateCheckIn when one already exists
	CheckIn(ctx context.Context) (AttendanceResponse, error)

	// CheckOut closes today's record; fails with ErrNoCheckInFound,
	// ErrAlreadyCheckedOut or ErrCheckOutBeforeIn
	CheckOut(ctx context.Context) (AttendanceResponse, error)

	// SetStatus overwrites status and remarks on any record regardless of
	// its check-in/out state (admin/HR only); used for retroactive absence
	// or leave marking
	SetStatus(ctx context.Context, req UpdateStatusRequest) (AttendanceResponse, error)

	// GetMyAttendance lists the authenticated employee's records
	GetMyAttendance(ctx context.Context, filter ListFilter) ([]AttendanceResponse, error)

	// GetEmployeeAttendance lists one employee's records (owner or admin/HR)
	GetEmployeeAttendance(ctx context.Context, filter ListFilter) ([]AttendanceResponse, error)

	// ListAttendance lists every employee's records (admin/HR only)
	ListAttendance(ctx context.Context, filter ListFilter) ([]AttendanceResponse, error)
}

package leave

import (
	"context"
	"time"
)

type LeaveRepository interface {
	Create(ctx context.Context, request LeaveRequest) (LeaveRequest, error)
	GetByID(ctx context.Context, id string) (LeaveRequest, error)
	List(ctx context.Context, filter ListFilter) ([]LeaveRequest, error)

	// Decide sets status, approver and comments; implementations must only
	// touch rows still in pending so a concurrent double-decision loses.
	Decide(ctx context.Context, id string, status Status, approvedBy string, comments *string) (LeaveRequest, error)

	// ApprovedInYear returns approved requests of one type overlapping the
	// given year, for balance aggregation.
	ApprovedInYear(ctx context.Context, employeeID string, leaveType Type, year int) ([]LeaveRequest, error)

	// HasApprovedOverlap reports whether an approved request of any type
	// intersects [start, end].
	HasApprovedOverlap(ctx context.Context, employeeID string, start, end time.Time) (bool, error)

	DeleteByEmployeeID(ctx context.Context, employeeID string) error
}

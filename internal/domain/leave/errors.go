package leave

import "errors"

var (
	ErrLeaveRequestNotFound = errors.New("leave request not found")
	ErrInvalidDateRange     = errors.New("end date cannot be earlier than start date")
	ErrNotPending           = errors.New("leave request has already been approved or rejected")
	ErrOverlappingLeave     = errors.New("an approved leave already covers part of this range")
	ErrUnauthorized         = errors.New("not authorized to access this leave request")
)

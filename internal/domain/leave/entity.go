package leave

import "time"

type Type string

const (
	TypePaid   Type = "paid"
	TypeSick   Type = "sick"
	TypeUnpaid Type = "unpaid"
	TypeCasual Type = "casual"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// IsTerminal reports whether a status permits no further transition.
func (s Status) IsTerminal() bool {
	return s == StatusApproved || s == StatusRejected
}

// LeaveRequest is an employee's dated leave application. Approver fields are
// set only on the single transition out of pending.
type LeaveRequest struct {
	ID               string
	EmployeeID       string
	Type             Type
	StartDate        time.Time
	EndDate          time.Time
	Reason           *string
	Status           Status
	ApprovedBy       *string
	ApproverComments *string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// Days returns the inclusive day count of the request: end − start + 1.
func (l LeaveRequest) Days() int {
	return int(l.EndDate.Sub(l.StartDate).Hours()/24) + 1
}

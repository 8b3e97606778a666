package leave

import (
	"time"

	"github.com/peoplebase/hrm-backend-go/internal/pkg/validator"
)

type ApplyRequest struct {
	Type      string  `json:"leave_type"`
	StartDate string  `json:"start_date"`
	EndDate   string  `json:"end_date"`
	Reason    *string `json:"reason,omitempty"`
}

func (r *ApplyRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsInSlice(r.Type, []string{
		string(TypePaid), string(TypeSick), string(TypeUnpaid), string(TypeCasual),
	}) {
		errs = append(errs, validator.ValidationError{
			Field:   "leave_type",
			Message: "leave_type must be one of paid, sick, unpaid, casual",
		})
	}

	start, startOK := validator.IsValidDate(r.StartDate)
	if !startOK {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date must be a YYYY-MM-DD date",
		})
	}
	end, endOK := validator.IsValidDate(r.EndDate)
	if !endOK {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must be a YYYY-MM-DD date",
		})
	}
	if startOK && endOK && end.Before(start) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date cannot be earlier than start_date",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type Decision string

const (
	DecisionApprove Decision = "approve"
	DecisionReject  Decision = "reject"
)

type DecideRequest struct {
	ID       string  `json:"-"`
	Decision string  `json:"decision"`
	Comments *string `json:"comments,omitempty"`
}

func (r *DecideRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "leave request id is required",
		})
	}
	if !validator.IsInSlice(r.Decision, []string{string(DecisionApprove), string(DecisionReject)}) {
		errs = append(errs, validator.ValidationError{
			Field:   "decision",
			Message: "decision must be approve or reject",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// ListFilter narrows leave reads; empty fields mean unfiltered.
type ListFilter struct {
	EmployeeID string
	Status     string
}

type LeaveResponse struct {
	ID               string  `json:"id"`
	EmployeeID       string  `json:"employee_id"`
	Type             string  `json:"leave_type"`
	StartDate        string  `json:"start_date"`
	EndDate          string  `json:"end_date"`
	Days             int     `json:"days"`
	Reason           *string `json:"reason,omitempty"`
	Status           string  `json:"status"`
	ApprovedBy       *string `json:"approved_by,omitempty"`
	ApproverComments *string `json:"approver_comments,omitempty"`
}

func ToLeaveResponse(l LeaveRequest) LeaveResponse {
	return LeaveResponse{
		ID:               l.ID,
		EmployeeID:       l.EmployeeID,
		Type:             string(l.Type),
		StartDate:        l.StartDate.Format("2006-01-02"),
		EndDate:          l.EndDate.Format("2006-01-02"),
		Days:             l.Days(),
		Reason:           l.Reason,
		Status:           string(l.Status),
		ApprovedBy:       l.ApprovedBy,
		ApproverComments: l.ApproverComments,
	}
}

type BalanceResponse struct {
	EmployeeID string         `json:"employee_id"`
	Year       int            `json:"year"`
	AsOf       string         `json:"as_of"`
	Balances   []BalanceEntry `json:"balances"`
}

type BalanceEntry struct {
	Type      string `json:"leave_type"`
	Allotment int    `json:"allotment"`
	Used      int    `json:"used"`
	Remaining int    `json:"remaining"`
}

// YearOf returns the calendar year a balance query aggregates over.
func YearOf(asOf time.Time) int {
	return asOf.UTC().Year()
}

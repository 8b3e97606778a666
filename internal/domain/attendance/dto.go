package attendance

import (
	"time"

	"github.com/peoplebase/hrm-backend-go/internal/pkg/validator"
)

// ListFilter narrows attendance reads to a date range. Zero values mean
// unbounded.
type ListFilter struct {
	EmployeeID string
	StartDate  time.Time
	EndDate    time.Time
}

type UpdateStatusRequest struct {
	ID      string  `json:"-"`
	Status  string  `json:"status"`
	Remarks *string `json:"remarks,omitempty"`
}

func (r *UpdateStatusRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "attendance id is required",
		})
	}
	if !validator.IsInSlice(r.Status, []string{
		string(StatusPresent), string(StatusAbsent), string(StatusHalfDay), string(StatusLeave),
	}) {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of present, absent, half-day, leave",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type AttendanceResponse struct {
	ID         string  `json:"id"`
	EmployeeID string  `json:"employee_id"`
	Date       string  `json:"date"`
	CheckIn    *string `json:"check_in,omitempty"`
	CheckOut   *string `json:"check_out,omitempty"`
	Status     string  `json:"status"`
	Remarks    *string `json:"remarks,omitempty"`
}

func ToAttendanceResponse(a Attendance) AttendanceResponse {
	resp := AttendanceResponse{
		ID:         a.ID,
		EmployeeID: a.EmployeeID,
		Date:       a.Date.Format("2006-01-02"),
		Status:     string(a.Status),
		Remarks:    a.Remarks,
	}
	if a.CheckIn != nil {
		in := a.CheckIn.UTC().Format(time.RFC3339)
		resp.CheckIn = &in
	}
	if a.CheckOut != nil {
		out := a.CheckOut.UTC().Format(time.RFC3339)
		resp.CheckOut = &out
	}
	return resp
}

package profile

import (
	"time"

	"github.com/shopspring/decimal"
)

type EmploymentType string

const (
	EmploymentFullTime EmploymentType = "full-time"
	EmploymentPartTime EmploymentType = "part-time"
	EmploymentIntern   EmploymentType = "intern"
)

// Profile is the personal/job/compensation record attached to a user. It holds
// a non-owning back-reference (UserID); deleting the user cascades explicitly
// through the user service, never through the storage layer.
type Profile struct {
	ID         string
	UserID     string
	EmployeeID string

	// Personal fields, writable by the owner or admin/HR
	FirstName   string
	LastName    string
	DateOfBirth *time.Time
	Gender      *string
	Phone       *string
	Address     *string

	// Job fields, admin/HR only
	Designation    *string
	Department     *string
	JoiningDate    *time.Time
	EmploymentType EmploymentType

	// Compensation, admin/HR only
	AnnualSalary decimal.Decimal

	CreatedAt time.Time
	UpdatedAt time.Time

	// Joined for list views
	Email *string
	Role  *string
}

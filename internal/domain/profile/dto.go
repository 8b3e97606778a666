package profile

import (
	"github.com/shopspring/decimal"

	"github.com/peoplebase/hrm-backend-go/internal/pkg/validator"
)

// UpdatePersonalRequest carries owner-writable fields. Nil pointers leave the
// stored value untouched.
type UpdatePersonalRequest struct {
	EmployeeID  string  `json:"-"`
	FirstName   *string `json:"first_name,omitempty"`
	LastName    *string `json:"last_name,omitempty"`
	DateOfBirth *string `json:"date_of_birth,omitempty"`
	Gender      *string `json:"gender,omitempty"`
	Phone       *string `json:"phone,omitempty"`
	Address     *string `json:"address,omitempty"`
}

func (r *UpdatePersonalRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.FirstName != nil && validator.IsEmpty(*r.FirstName) {
		errs = append(errs, validator.ValidationError{
			Field:   "first_name",
			Message: "first_name must not be empty",
		})
	}
	if r.LastName != nil && validator.IsEmpty(*r.LastName) {
		errs = append(errs, validator.ValidationError{
			Field:   "last_name",
			Message: "last_name must not be empty",
		})
	}
	if r.DateOfBirth != nil {
		if _, ok := validator.IsValidDate(*r.DateOfBirth); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "date_of_birth",
				Message: "date_of_birth must be a YYYY-MM-DD date",
			})
		}
	}
	if r.Gender != nil && !validator.IsInSlice(*r.Gender, []string{"Male", "Female", "Other"}) {
		errs = append(errs, validator.ValidationError{
			Field:   "gender",
			Message: "gender must be one of Male, Female, Other",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// UpdateJobRequest carries admin-writable job and compensation fields.
type UpdateJobRequest struct {
	EmployeeID     string           `json:"-"`
	Designation    *string          `json:"designation,omitempty"`
	Department     *string          `json:"department,omitempty"`
	JoiningDate    *string          `json:"joining_date,omitempty"`
	EmploymentType *string          `json:"employment_type,omitempty"`
	AnnualSalary   *decimal.Decimal `json:"annual_salary,omitempty"`
}

func (r *UpdateJobRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.JoiningDate != nil {
		if _, ok := validator.IsValidDate(*r.JoiningDate); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "joining_date",
				Message: "joining_date must be a YYYY-MM-DD date",
			})
		}
	}
	if r.EmploymentType != nil && !validator.IsInSlice(*r.EmploymentType, []string{
		string(EmploymentFullTime), string(EmploymentPartTime), string(EmploymentIntern),
	}) {
		errs = append(errs, validator.ValidationError{
			Field:   "employment_type",
			Message: "employment_type must be one of full-time, part-time, intern",
		})
	}
	if r.AnnualSalary != nil && r.AnnualSalary.IsNegative() {
		errs = append(errs, validator.ValidationError{
			Field:   "annual_salary",
			Message: "annual_salary must not be negative",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ProfileResponse struct {
	ID         string `json:"id"`
	EmployeeID string `json:"employee_id"`

	FirstName   string  `json:"first_name"`
	LastName    string  `json:"last_name"`
	DateOfBirth *string `json:"date_of_birth,omitempty"`
	Gender      *string `json:"gender,omitempty"`
	Phone       *string `json:"phone,omitempty"`
	Address     *string `json:"address,omitempty"`

	Designation    *string `json:"designation,omitempty"`
	Department     *string `json:"department,omitempty"`
	JoiningDate    *string `json:"joining_date,omitempty"`
	EmploymentType string  `json:"employment_type"`

	AnnualSalary decimal.Decimal `json:"annual_salary"`

	Email *string `json:"email,omitempty"`
	Role  *string `json:"role,omitempty"`
}

func ToProfileResponse(p Profile) ProfileResponse {
	resp := ProfileResponse{
		ID:             p.ID,
		EmployeeID:     p.EmployeeID,
		FirstName:      p.FirstName,
		LastName:       p.LastName,
		Gender:         p.Gender,
		Phone:          p.Phone,
		Address:        p.Address,
		Designation:    p.Designation,
		Department:     p.Department,
		EmploymentType: string(p.EmploymentType),
		AnnualSalary:   p.AnnualSalary,
		Email:          p.Email,
		Role:           p.Role,
	}
	if p.DateOfBirth != nil {
		dob := p.DateOfBirth.Format("2006-01-02")
		resp.DateOfBirth = &dob
	}
	if p.JoiningDate != nil {
		jd := p.JoiningDate.Format("2006-01-02")
		resp.JoiningDate = &jd
	}
	return resp
}

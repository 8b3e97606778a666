package user

import "github.com/peoplebase/hrm-backend-go/internal/pkg/validator"

type UpdateRoleRequest struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
}

func (r *UpdateRoleRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.UserID) {
		errs = append(errs, validator.ValidationError{
			Field:   "user_id",
			Message: "user_id is required",
		})
	}
	if !validator.IsInSlice(r.Role, []string{string(RoleAdmin), string(RoleHR), string(RoleEmployee)}) {
		errs = append(errs, validator.ValidationError{
			Field:   "role",
			Message: "role must be one of admin, hr, employee",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type UserResponse struct {
	ID            string `json:"id"`
	EmployeeID    string `json:"employee_id"`
	Email         string `json:"email"`
	Role          string `json:"role"`
	EmailVerified bool   `json:"email_verified"`
}

func ToUserResponse(u User) UserResponse {
	return UserResponse{
		ID:            u.ID,
		EmployeeID:    u.EmployeeID,
		Email:         u.Email,
		Role:          string(u.Role),
		EmailVerified: u.EmailVerified,
	}
}

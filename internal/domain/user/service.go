package user

import "context"

// UserService covers admin identity management. Registration and sign-in live
// in the auth domain.
type UserService interface {
	// ListUsers returns every account (admin/HR only)
	ListUsers(ctx context.Context) ([]UserResponse, error)

	// UpdateRole changes an account's role (admin only)
	UpdateRole(ctx context.Context, req UpdateRoleRequest) error

	// DeleteUser removes an account together with its profile, attendance,
	// leave and payroll records in one transaction (admin only)
	DeleteUser(ctx context.Context, userID string) error
}

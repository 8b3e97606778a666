package user

import "time"

type Role string

const (
	RoleAdmin    Role = "admin"    // Full access to every record
	RoleHR       Role = "hr"       // Same visibility as admin for HR resources
	RoleEmployee Role = "employee" // Regular employee, own records only
)

type User struct {
	ID            string
	EmployeeID    string
	Email         string
	PasswordHash  string
	Role          Role
	EmailVerified bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// IsAdmin checks if user has the admin role
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// CanManage checks if user can read and write other employees' records
func (u *User) CanManage() bool {
	return u.Role == RoleAdmin || u.Role == RoleHR
}

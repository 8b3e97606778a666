package user

import "errors"

var (
	ErrUserNotFound           = errors.New("user not found")
	ErrUserEmailExists        = errors.New("email already registered")
	ErrEmployeeIDExists       = errors.New("employee id already registered")
	ErrEmailNotVerified       = errors.New("email not verified")
	ErrInvalidRole            = errors.New("invalid role")
	ErrAdminPrivilegeRequired = errors.New("admin privilege required")
	ErrForbidden              = errors.New("not authorized to access this resource")
)

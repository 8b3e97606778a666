package profile

import "errors"

var (
	ErrProfileNotFound = errors.New("employee profile not found")
	ErrProfileExists   = errors.New("profile already exists for this user")
	ErrUnauthorized    = errors.New("not authorized to access this profile")
)

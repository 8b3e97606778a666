package attendance

import "errors"

// Attendance domain errors
var (
	// Check-in / check-out rule failures
	ErrDuplicateCheckIn   = errors.New("already checked in today")
	ErrNoCheckInFound     = errors.New("no check-in found for today")
	ErrAlreadyCheckedOut  = errors.New("already checked out today")
	ErrCheckOutBeforeIn   = errors.New("check-out cannot be earlier than check-in")

	// General errors
	ErrAttendanceNotFound = errors.New("attendance record not found")
	ErrInvalidStatus      = errors.New("invalid attendance status")
	ErrUnauthorized       = errors.New("not authorized to access this attendance record")
)

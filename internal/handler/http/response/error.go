package response

import (
	"errors"
	"net/http"

	"github.com/peoplebase/hrm-backend-go/internal/domain/attendance"
	"github.com/peoplebase/hrm-backend-go/internal/domain/auth"
	"github.com/peoplebase/hrm-backend-go/internal/domain/leave"
	"github.com/peoplebase/hrm-backend-go/internal/domain/payroll"
	"github.com/peoplebase/hrm-backend-go/internal/domain/profile"
	"github.com/peoplebase/hrm-backend-go/internal/domain/user"
	"github.com/peoplebase/hrm-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, "Invalid email or password")
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or malformed token")
	case errors.Is(err, auth.ErrTokenExpired):
		Unauthorized(w, "Token expired")
	case errors.Is(err, auth.ErrRefreshTokenRevoked):
		Unauthorized(w, "Refresh token revoked")
	case errors.Is(err, auth.ErrVerificationTokenInvalid):
		BadRequest(w, "Verification token invalid or expired", nil)

	// User domain errors
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, user.ErrUserEmailExists):
		Conflict(w, "Email already registered")
	case errors.Is(err, user.ErrEmployeeIDExists):
		Conflict(w, "Employee ID already registered")
	case errors.Is(err, user.ErrEmailNotVerified):
		Forbidden(w, "Email not verified")
	case errors.Is(err, user.ErrAdminPrivilegeRequired):
		Forbidden(w, "Admin privilege required")
	case errors.Is(err, user.ErrForbidden):
		Forbidden(w, "Not authorized to access this resource")
	case errors.Is(err, user.ErrInvalidRole):
		BadRequest(w, "Invalid role", nil)

	// Profile domain errors
	case errors.Is(err, profile.ErrProfileNotFound):
		NotFound(w, "Employee profile not found")
	case errors.Is(err, profile.ErrProfileExists):
		Conflict(w, "Profile already exists")
	case errors.Is(err, profile.ErrUnauthorized):
		Forbidden(w, "Not authorized to access this profile")

	// Attendance domain errors
	case errors.Is(err, attendance.ErrDuplicateCheckIn):
		Conflict(w, "Already checked in today")
	case errors.Is(err, attendance.ErrNoCheckInFound):
		BadRequest(w, "No check-in found for today", nil)
	case errors.Is(err, attendance.ErrAlreadyCheckedOut):
		Conflict(w, "Already checked out today")
	case errors.Is(err, attendance.ErrCheckOutBeforeIn):
		BadRequest(w, "Check-out cannot be earlier than check-in", nil)
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, "Attendance record not found")
	case errors.Is(err, attendance.ErrInvalidStatus):
		BadRequest(w, "Invalid attendance status", nil)
	case errors.Is(err, attendance.ErrUnauthorized):
		Forbidden(w, "Not authorized to access this attendance record")

	// Leave domain errors
	case errors.Is(err, leave.ErrLeaveRequestNotFound):
		NotFound(w, "Leave request not found")
	case errors.Is(err, leave.ErrInvalidDateRange):
		BadRequest(w, "End date cannot be earlier than start date", nil)
	case errors.Is(err, leave.ErrNotPending):
		Conflict(w, "Leave request already approved or rejected")
	case errors.Is(err, leave.ErrOverlappingLeave):
		Conflict(w, "An approved leave already covers part of this range")
	case errors.Is(err, leave.ErrUnauthorized):
		Forbidden(w, "Not authorized to access this leave request")

	// Payroll domain errors
	case errors.Is(err, payroll.ErrPayrollNotFound):
		NotFound(w, "Payroll record not found")
	case errors.Is(err, payroll.ErrNegativeNetSalary):
		BadRequest(w, "Net salary would be negative", nil)
	case errors.Is(err, payroll.ErrPeriodConflict):
		Conflict(w, "Payroll record for this period already exists")
	case errors.Is(err, payroll.ErrUnauthorized):
		Forbidden(w, "Not authorized to access this payroll record")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}

package response

import (
	"errors"
	"net/http"

	"github.com/bress-dev/absensi-backend-go/internal/domain/attendance"
	"github.com/bress-dev/absensi-backend-go/internal/domain/auth"
	"github.com/bress-dev/absensi-backend-go/internal/domain/permission"
	"github.com/bress-dev/absensi-backend-go/internal/domain/report"
	"github.com/bress-dev/absensi-backend-go/internal/domain/user"
	"github.com/bress-dev/absensi-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	// Check-out before the minimum work duration carries the remaining time
	// so the client can show a countdown. Duration syntax keeps the seconds;
	// the display format would truncate a 1s remainder to "0j 0m".
	var minDurationErr *attendance.MinimumDurationError
	if errors.As(err, &minDurationErr) {
		BadRequest(w, minDurationErr.Error(), map[string]string{
			"remaining": minDurationErr.Remaining.String(),
		})
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")
	case errors.Is(err, auth.ErrRefreshTokenRevoked):
		Unauthorized(w, "Refresh token revoked")
	case errors.Is(err, auth.ErrUserNotFound), errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")

	// User domain errors
	case errors.Is(err, user.ErrUserEmailExists):
		Conflict(w, "Email already registered")
	case errors.Is(err, user.ErrAdminPrivilegeRequired):
		Forbidden(w, err.Error())

	// Attendance domain errors
	case errors.Is(err, attendance.ErrAlreadyCheckedIn),
		errors.Is(err, attendance.ErrAttendanceCompleted),
		errors.Is(err, attendance.ErrPermissionExistsToday):
		Conflict(w, err.Error())
	case errors.Is(err, attendance.ErrNotCheckedIn),
		errors.Is(err, attendance.ErrOutsideOfficeRadius):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, "Attendance record not found")

	// Permission domain errors
	case errors.Is(err, permission.ErrAlreadyRequested),
		errors.Is(err, permission.ErrAttendanceExistsToday):
		Conflict(w, err.Error())
	case errors.Is(err, permission.ErrPermissionNotFound):
		NotFound(w, "Permission record not found")

	// Report domain errors
	case errors.Is(err, report.ErrInvalidRange):
		BadRequest(w, err.Error(), nil)

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}

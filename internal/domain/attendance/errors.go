package attendance

import (
	"errors"
	"fmt"
	"time"
)

// Attendance domain errors
var (
	// Check-in errors
	ErrAlreadyCheckedIn      = errors.New("anda sudah melakukan absen masuk hari ini")
	ErrPermissionExistsToday = errors.New("anda sudah mengajukan izin hari ini")
	ErrOutsideOfficeRadius   = errors.New("lokasi anda berada di luar radius kantor")

	// Check-out errors
	ErrNotCheckedIn        = errors.New("anda belum melakukan absen masuk hari ini")
	ErrAttendanceCompleted = errors.New("anda sudah melakukan absen pulang hari ini")

	// General errors
	ErrAttendanceNotFound = errors.New("attendance record not found")
)

// MinimumDurationError rejects a check-out attempted before the configured
// minimum work duration has elapsed.
type MinimumDurationError struct {
	Minimum   time.Duration
	Remaining time.Duration
}

func (e *MinimumDurationError) Error() string {
	return fmt.Sprintf("durasi kerja minimal %s belum terpenuhi, sisa %s", e.Minimum, e.Remaining)
}

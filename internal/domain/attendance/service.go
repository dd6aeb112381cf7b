package attendance

import (
	"context"
)

// AttendanceService defines business logic for the per-day check-in/check-out
// state machine: NoRecord → CheckedIn → CheckedOut (terminal for the day).
type AttendanceService interface {
	// CheckIn creates today's record. Fails with ErrAlreadyCheckedIn on a
	// duplicate, ErrAttendanceCompleted after check-out, and
	// ErrPermissionExistsToday when a permission blocks attendance.
	CheckIn(ctx context.Context, req CheckInRequest) (AttendanceResponse, error)

	// CheckOut completes today's record. Fails with ErrNotCheckedIn,
	// ErrAttendanceCompleted, or *MinimumDurationError.
	CheckOut(ctx context.Context, req CheckOutRequest) (AttendanceResponse, error)

	// Today retrieves the caller's record for the current WIB day, if any.
	Today(ctx context.Context, userID string) (TodayResponse, error)

	// History retrieves the caller's records, newest first.
	History(ctx context.Context, userID string, filter HistoryFilter) ([]AttendanceResponse, error)

	// HasRecordOnDate reports whether a record exists for (user, date);
	// used by the permission domain to enforce mutual exclusivity.
	HasRecordOnDate(ctx context.Context, userID string, dateKey string) (bool, error)

	// Monitoring lists every user's live status for the current WIB day
	// (admin only).
	Monitoring(ctx context.Context) ([]MonitoringRow, error)
}

package attendance

import (
	"context"
	"time"
)

// AttendanceRepository defines data access methods for attendance records.
type AttendanceRepository interface {
	// Create creates a new attendance record. The (user_id, date) unique
	// constraint turns a concurrent double check-in into ErrAlreadyCheckedIn.
	Create(ctx context.Context, att Attendance) (Attendance, error)

	// GetByUserAndDate retrieves the record for one user on one WIB day,
	// nil when none exists.
	GetByUserAndDate(ctx context.Context, userID string, date time.Time) (*Attendance, error)

	// Update updates an existing attendance record
	Update(ctx context.Context, att Attendance) error

	// ListByDateRange retrieves records whose date falls in [start, end],
	// optionally restricted to one user (empty userID means all users).
	ListByDateRange(ctx context.Context, userID string, start, end time.Time) ([]Attendance, error)

	// ListByUser retrieves a user's records, newest first, capped at limit.
	ListByUser(ctx context.Context, userID string, limit int) ([]Attendance, error)
}

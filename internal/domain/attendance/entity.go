package attendance

import (
	"time"
)

// Attendance status values, fixed at check-in time.
const (
	StatusPresent = "present"
	StatusLate    = "late"
)

// Attendance is one row per user per WIB calendar day. Date is always
// midnight WIB; a (user_id, date) unique constraint enforces the one-row
// invariant at the storage layer.
type Attendance struct {
	ID                string
	UserID            string
	Date              time.Time
	CheckInTime       *time.Time
	CheckOutTime      *time.Time
	CheckInLatitude   *float64
	CheckInLongitude  *float64
	CheckOutLatitude  *float64
	CheckOutLongitude *float64
	Status            string
	Notes             *string
	CreatedAt         time.Time
	UpdatedAt         time.Time

	// Join
	UserName  *string
	UserEmail *string
}

// WorkDuration returns the elapsed time between check-in and check-out,
// zero while either side is missing.
func (a *Attendance) WorkDuration() time.Duration {
	if a.CheckInTime == nil || a.CheckOutTime == nil {
		return 0
	}
	return a.CheckOutTime.Sub(*a.CheckInTime)
}

// IsComplete reports whether the day's record is terminal (checked out).
func (a *Attendance) IsComplete() bool {
	return a.CheckOutTime != nil
}

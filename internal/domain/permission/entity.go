package permission

import "time"

// Permission types
const (
	TypeIzin  = "izin"  // Personal leave, note required
	TypeSakit = "sakit" // Sick day
	TypeLibur = "libur" // Requested day off
)

// Permission statuses
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// Permission is one row per user per WIB calendar day, mutually exclusive
// with an attendance record for the same day.
type Permission struct {
	ID        string
	UserID    string
	Date      time.Time
	Type      string
	Note      *string
	Status    string
	CreatedAt time.Time
	UpdatedAt time.Time

	// Join
	UserName  *string
	UserEmail *string
}

func ValidType(t string) bool {
	return t == TypeIzin || t == TypeSakit || t == TypeLibur
}

func ValidStatus(s string) bool {
	return s == StatusPending || s == StatusApproved || s == StatusRejected
}

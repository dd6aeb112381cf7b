package attendance

import (
	"time"

	"github.com/bress-dev/absensi-backend-go/internal/pkg/validator"
)

type CheckInRequest struct {
	UserID    string  `json:"-"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	// Timestamp is the client-reported event time (RFC3339). The server
	// still derives "today" from its own clock in WIB.
	Timestamp string `json:"timestamp"`
}

func (r *CheckInRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Latitude < -90 || r.Latitude > 90 {
		errs = append(errs, validator.ValidationError{
			Field:   "latitude",
			Message: "latitude must be between -90 and 90",
		})
	}

	if r.Longitude < -180 || r.Longitude > 180 {
		errs = append(errs, validator.ValidationError{
			Field:   "longitude",
			Message: "longitude must be between -180 and 180",
		})
	}

	if r.Timestamp != "" {
		if _, ok := validator.IsValidDateTime(r.Timestamp); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "timestamp",
				Message: "timestamp must be an RFC3339 datetime",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type CheckOutRequest struct {
	UserID    string  `json:"-"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Timestamp string  `json:"timestamp"`
}

func (r *CheckOutRequest) Validate() error {
	in := CheckInRequest{Latitude: r.Latitude, Longitude: r.Longitude, Timestamp: r.Timestamp}
	return in.Validate()
}

type AttendanceResponse struct {
	ID                string   `json:"id"`
	UserID            string   `json:"user_id"`
	UserName          *string  `json:"user_name,omitempty"`
	Date              string   `json:"date"`
	CheckInTime       *string  `json:"check_in_time"`
	CheckOutTime      *string  `json:"check_out_time"`
	CheckInLatitude   *float64 `json:"check_in_latitude,omitempty"`
	CheckInLongitude  *float64 `json:"check_in_longitude,omitempty"`
	CheckOutLatitude  *float64 `json:"check_out_latitude,omitempty"`
	CheckOutLongitude *float64 `json:"check_out_longitude,omitempty"`
	Status            string   `json:"status"`
	WorkHours         string   `json:"work_hours"`
	Notes             *string  `json:"notes,omitempty"`
}

type HistoryFilter struct {
	Limit int
}

type TodayResponse struct {
	Attendance *AttendanceResponse `json:"attendance"`
}

// MonitoringRow is one employee's live status on the admin monitoring view.
// Open sessions show elapsed work hours suffixed "(berjalan)".
type MonitoringRow struct {
	UserID       string  `json:"user_id"`
	Name         string  `json:"name"`
	Email        string  `json:"email"`
	Status       string  `json:"status"`
	CheckInTime  *string `json:"check_in_time"`
	CheckOutTime *string `json:"check_out_time"`
	WorkHours    string  `json:"work_hours"`
}

// Event is broadcast over SSE to admin monitoring subscribers whenever an
// employee checks in or out.
type Event struct {
	Type      string    `json:"type"` // "checkin" or "checkout"
	UserID    string    `json:"user_id"`
	UserName  string    `json:"user_name"`
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

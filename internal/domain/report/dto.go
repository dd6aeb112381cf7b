package report

import (
	"time"

	"github.com/bress-dev/absensi-backend-go/internal/pkg/dateutil"
	"github.com/bress-dev/absensi-backend-go/internal/pkg/validator"
)

// Reconciled per-day statuses. Exactly one applies to every (user, day)
// pair; precedence is attendance > permission > holiday > weekend > absent.
const (
	StatusPresent    = "present"
	StatusLate       = "late"
	StatusPermission = "permission"
	StatusHoliday    = "holiday"
	StatusWeekend    = "weekend"
	StatusAbsent     = "absent"
)

// Day classifications independent of any individual's attendance.
const (
	DayHoliday = "holiday"
	DayWeekend = "weekend"
	DayWorkday = "workday"
)

type RekapRequest struct {
	Start  string `json:"start"`
	End    string `json:"end"`
	UserID string `json:"user_id,omitempty"`
}

func (r *RekapRequest) Validate() error {
	var errs validator.ValidationErrors

	start, startErr := dateutil.ParseDay(r.Start)
	if startErr != nil {
		errs = append(errs, validator.ValidationError{
			Field:   "start",
			Message: "start must be in YYYY-MM-DD format",
		})
	}

	end, endErr := dateutil.ParseDay(r.End)
	if endErr != nil {
		errs = append(errs, validator.ValidationError{
			Field:   "end",
			Message: "end must be in YYYY-MM-DD format",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	if end.Before(start) {
		return ErrInvalidRange
	}
	return nil
}

// Range returns the parsed inclusive day range. Call Validate first.
func (r *RekapRequest) Range() (start, end time.Time) {
	start, _ = dateutil.ParseDay(r.Start)
	end, _ = dateutil.ParseDay(r.End)
	return start, end
}

// DayRecord is the reconciled status of one user on one calendar day.
type DayRecord struct {
	UserID           string  `json:"user_id"`
	Name             string  `json:"name"`
	Email            string  `json:"email"`
	Date             string  `json:"date"`
	Status           string  `json:"status"`
	CheckIn          *string `json:"check_in"`
	CheckOut         *string `json:"check_out"`
	WorkHours        string  `json:"work_hours"`
	WorkMinutes      int     `json:"work_minutes"`
	PermissionType   *string `json:"permission_type"`
	PermissionStatus *string `json:"permission_status"`
	Notes            string  `json:"notes"`
	DayType          string  `json:"day_type"`
	HolidayName      *string `json:"holiday_name"`
}

// UserSummary aggregates one user's statuses over the requested range.
type UserSummary struct {
	UserID         string `json:"user_id"`
	Name           string `json:"name"`
	Email          string `json:"email"`
	Present        int    `json:"present"`
	Late           int    `json:"late"`
	Permission     int    `json:"permission"`
	Absent         int    `json:"absent"`
	Holiday        int    `json:"holiday"`
	Weekend        int    `json:"weekend"`
	TotalWorkHours string `json:"total_work_hours"`
}

// TotalDays is the sum of all six status counters; for a correct
// reconciliation it equals the number of days in the range.
func (s *UserSummary) TotalDays() int {
	return s.Present + s.Late + s.Permission + s.Absent + s.Holiday + s.Weekend
}

type RekapResponse struct {
	Summary   []UserSummary `json:"summary"`
	Detail    []DayRecord   `json:"detail"`
	DateRange DateRange     `json:"date_range"`
	TotalDays int           `json:"total_days"`
	Holidays  []HolidayInfo `json:"holidays"`
}

type DateRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

type HolidayInfo struct {
	Date string `json:"date"`
	Name string `json:"name"`
}

// RekapDocument is the grouped, print-oriented form of a rekap: one section
// per user, summary first, then the day-by-day detail.
type RekapDocument struct {
	Title       string        `json:"title"`
	DateRange   DateRange     `json:"date_range"`
	GeneratedAt string        `json:"generated_at"`
	Sections    []UserSection `json:"sections"`
}

type UserSection struct {
	Summary UserSummary `json:"summary"`
	Rows    []DayRecord `json:"rows"`
}

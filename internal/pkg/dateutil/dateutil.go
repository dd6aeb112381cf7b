package dateutil

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// WIB is the fixed reference timezone (UTC+7) for every day-boundary
// computation in the system. Host-local time is never used: records written
// around midnight would otherwise land on the wrong day.
var WIB = time.FixedZone("WIB", 7*60*60)

// NowWIB returns the current time in WIB.
func NowWIB() time.Time {
	return time.Now().In(WIB)
}

// DayOf normalizes a timestamp to midnight WIB of its calendar day.
func DayOf(t time.Time) time.Time {
	local := t.In(WIB)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, WIB)
}

// NextDay returns midnight WIB of the day after t.
func NextDay(t time.Time) time.Time {
	return DayOf(t).AddDate(0, 0, 1)
}

// DayKey formats a timestamp as its WIB calendar-day key ("2006-01-02").
func DayKey(t time.Time) string {
	return t.In(WIB).Format("2006-01-02")
}

// ParseDay parses a "2006-01-02" string into midnight WIB of that day.
func ParseDay(s string) (time.Time, error) {
	t, err := time.ParseInLocation("2006-01-02", s, WIB)
	if err != nil {
		return time.Time{}, err
	}
	return t, nil
}

// EnumerateDays returns every calendar day in [start, end] inclusive, one
// entry per day, normalized to midnight WIB. Returns nil when end precedes
// start.
func EnumerateDays(start, end time.Time) []time.Time {
	first := DayOf(start)
	last := DayOf(end)
	if last.Before(first) {
		return nil
	}

	var days []time.Time
	for d := first; !d.After(last); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

// IsWeekend reports whether t falls on a Saturday or Sunday in WIB.
func IsWeekend(t time.Time) bool {
	day := t.In(WIB).Weekday()
	return day == time.Saturday || day == time.Sunday
}

// WeekendName returns the Indonesian weekend day name, or "" for weekdays.
func WeekendName(t time.Time) string {
	switch t.In(WIB).Weekday() {
	case time.Saturday:
		return "Sabtu"
	case time.Sunday:
		return "Minggu"
	default:
		return ""
	}
}

// TimeOfDay is a wall-clock time within a day, used for the late threshold.
type TimeOfDay struct {
	Hour   int
	Minute int
	Second int
}

// ParseTimeOfDay parses a "15:04:05" string.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	t, err := time.Parse("15:04:05", s)
	if err != nil {
		return TimeOfDay{}, fmt.Errorf("invalid time of day %q: %w", s, err)
	}
	return TimeOfDay{Hour: t.Hour(), Minute: t.Minute(), Second: t.Second()}, nil
}

// On anchors the wall-clock time to the WIB calendar day of t.
func (td TimeOfDay) On(t time.Time) time.Time {
	day := DayOf(t)
	return time.Date(day.Year(), day.Month(), day.Day(), td.Hour, td.Minute, td.Second, 0, WIB)
}

// FormatWorkDuration renders a duration in the "Hj Mm" display form used
// across the detail, summary and export views ("7j 30m"). Seconds are
// truncated, whole minutes are never dropped.
func FormatWorkDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	totalMinutes := int(d / time.Minute)
	return fmt.Sprintf("%dj %dm", totalMinutes/60, totalMinutes%60)
}

var workDurationRegex = regexp.MustCompile(`^(\d+)j\s*(\d+)m`)

// ParseWorkDuration parses the "Hj Mm" display form back into a duration.
// The two representations are interconvertible: minutes round-trip exactly.
func ParseWorkDuration(s string) (time.Duration, bool) {
	m := workDurationRegex.FindStringSubmatch(s)
	if m == nil {
		return 0, false
	}
	hours, _ := strconv.Atoi(m[1])
	minutes, _ := strconv.Atoi(m[2])
	return time.Duration(hours)*time.Hour + time.Duration(minutes)*time.Minute, true
}

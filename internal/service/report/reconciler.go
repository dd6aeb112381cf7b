package report

import (
	"time"

	"github.com/bress-dev/absensi-backend-go/internal/domain/attendance"
	"github.com/bress-dev/absensi-backend-go/internal/domain/permission"
	"github.com/bress-dev/absensi-backend-go/internal/domain/report"
	"github.com/bress-dev/absensi-backend-go/internal/domain/user"
	"github.com/bress-dev/absensi-backend-go/internal/pkg/dateutil"
	"github.com/bress-dev/absensi-backend-go/internal/pkg/holiday"
)

// Reconcile merges three sparse per-day sources (attendance, permissions,
// holiday calendar) plus weekend arithmetic into one dense status timeline:
// exactly one DayRecord per (user, day) over [start, end], plus one summary
// per user in input order.
//
// Precedence per day: attendance > permission > holiday > weekend > absent.
// Holiday and weekend are only consulted when neither an attendance nor a
// permission record exists; an employee who worked a holiday is credited
// present/late, not holiday.
//
// The function is pure: no clock, no I/O, deterministic for equal inputs.
func Reconcile(
	users []user.User,
	start, end time.Time,
	attendances []attendance.Attendance,
	permissions []permission.Permission,
	holidays []holiday.Entry,
) ([]report.DayRecord, []report.UserSummary) {
	days := dateutil.EnumerateDays(start, end)

	// One calendar lookup table per call, not per user.
	holidayByDate := make(map[string]holiday.Entry, len(holidays))
	for _, h := range holidays {
		if _, exists := holidayByDate[h.Date]; !exists {
			holidayByDate[h.Date] = h
		}
	}

	// Upstream uniqueness on (user, date) can be violated by bad imports;
	// resolve duplicates deterministically by keeping the most recently
	// created row rather than crashing or picking at random.
	attByKey := make(map[string]attendance.Attendance, len(attendances))
	for _, a := range attendances {
		key := a.UserID + "|" + dateutil.DayKey(a.Date)
		if prev, ok := attByKey[key]; ok && !a.CreatedAt.After(prev.CreatedAt) {
			continue
		}
		attByKey[key] = a
	}

	permByKey := make(map[string]permission.Permission, len(permissions))
	for _, p := range permissions {
		key := p.UserID + "|" + dateutil.DayKey(p.Date)
		if prev, ok := permByKey[key]; ok && !p.CreatedAt.After(prev.CreatedAt) {
			continue
		}
		permByKey[key] = p
	}

	detail := make([]report.DayRecord, 0, len(users)*len(days))
	summary := make([]report.UserSummary, 0, len(users))

	for _, u := range users {
		sum := report.UserSummary{
			UserID: u.ID,
			Name:   displayName(u),
			Email:  u.Email,
		}
		var totalWork time.Duration

		for _, day := range days {
			dayKey := dateutil.DayKey(day)
			row := reconcileDay(u, day, dayKey, attByKey, permByKey, holidayByDate)

			switch row.Status {
			case report.StatusPresent:
				sum.Present++
			case report.StatusLate:
				sum.Late++
			case report.StatusPermission:
				sum.Permission++
			case report.StatusHoliday:
				sum.Holiday++
			case report.StatusWeekend:
				sum.Weekend++
			default:
				sum.Absent++
			}
			totalWork += time.Duration(row.WorkMinutes) * time.Minute

			detail = append(detail, row)
		}

		sum.TotalWorkHours = dateutil.FormatWorkDuration(totalWork)
		summary = append(summary, sum)
	}

	return detail, summary
}

func reconcileDay(
	u user.User,
	day time.Time,
	dayKey string,
	attByKey map[string]attendance.Attendance,
	permByKey map[string]permission.Permission,
	holidayByDate map[string]holiday.Entry,
) report.DayRecord {
	row := report.DayRecord{
		UserID:    u.ID,
		Name:      displayName(u),
		Email:     u.Email,
		Date:      dayKey,
		Status:    report.StatusAbsent,
		WorkHours: dateutil.FormatWorkDuration(0),
		DayType:   report.DayWorkday,
	}

	if h, ok := holidayByDate[dayKey]; ok {
		row.DayType = report.DayHoliday
		name := h.Name
		row.HolidayName = &name
	} else if dateutil.IsWeekend(day) {
		row.DayType = report.DayWeekend
		name := dateutil.WeekendName(day)
		row.HolidayName = &name
	}

	att, hasAtt := attByKey[u.ID+"|"+dayKey]
	perm, hasPerm := permByKey[u.ID+"|"+dayKey]

	switch {
	case hasAtt:
		row.Status = att.Status
		row.CheckIn = formatClock(att.CheckInTime)
		row.CheckOut = formatClock(att.CheckOutTime)
		if att.CheckInTime != nil && att.CheckOutTime != nil {
			work := att.CheckOutTime.Sub(*att.CheckInTime)
			row.WorkHours = dateutil.FormatWorkDuration(work)
			row.WorkMinutes = int(work / time.Minute)
		}
		if att.Notes != nil {
			row.Notes = *att.Notes
		}
	case hasPerm:
		row.Status = report.StatusPermission
		permType := perm.Type
		permStatus := perm.Status
		row.PermissionType = &permType
		row.PermissionStatus = &permStatus
		if perm.Note != nil {
			row.Notes = *perm.Note
		}
	case row.DayType == report.DayHoliday, row.DayType == report.DayWeekend:
		row.Status = row.DayType
		if row.HolidayName != nil {
			row.Notes = *row.HolidayName
		}
	}

	return row
}

func displayName(u user.User) string {
	if u.Name != "" {
		return u.Name
	}
	return u.Email
}

func formatClock(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.In(dateutil.WIB).Format("15:04")
	return &s
}

package attendance

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/bress-dev/absensi-backend-go/internal/config"
	"github.com/bress-dev/absensi-backend-go/internal/domain/attendance"
	"github.com/bress-dev/absensi-backend-go/internal/domain/permission"
	"github.com/bress-dev/absensi-backend-go/internal/domain/user"
	"github.com/bress-dev/absensi-backend-go/internal/pkg/dateutil"
	"github.com/bress-dev/absensi-backend-go/internal/pkg/sse"
	"github.com/bress-dev/absensi-backend-go/internal/pkg/utils"
)

// MonitoringTopic is the SSE topic check-in/check-out events are broadcast
// on for the admin monitoring view.
const MonitoringTopic = "attendance:monitoring"

const defaultHistoryLimit = 30
const maxHistoryLimit = 100

type AttendanceServiceImpl struct {
	attendanceRepo attendance.AttendanceRepository
	permissionRepo permission.PermissionRepository
	userRepo       user.UserRepository
	hub            *sse.Hub
	cfg            config.AttendanceConfig
	lateThreshold  dateutil.TimeOfDay
	now            func() time.Time
}

func NewAttendanceService(
	attendanceRepo attendance.AttendanceRepository,
	permissionRepo permission.PermissionRepository,
	userRepo user.UserRepository,
	hub *sse.Hub,
	cfg config.AttendanceConfig,
) attendance.AttendanceService {
	// Config validation guarantees the threshold parses; fall back to the
	// standard workday start just in case.
	threshold, err := dateutil.ParseTimeOfDay(cfg.LateThreshold)
	if err != nil {
		threshold = dateutil.TimeOfDay{Hour: 8}
	}

	return &AttendanceServiceImpl{
		attendanceRepo: attendanceRepo,
		permissionRepo: permissionRepo,
		userRepo:       userRepo,
		hub:            hub,
		cfg:            cfg,
		lateThreshold:  threshold,
		now:            dateutil.NowWIB,
	}
}

// CheckIn implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) CheckIn(ctx context.Context, req attendance.CheckInRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	now := s.now()
	today := dateutil.DayOf(now)

	if err := s.checkOfficeRadius(req.Latitude, req.Longitude); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	existing, err := s.attendanceRepo.GetByUserAndDate(ctx, req.UserID, today)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to get today's attendance: %w", err)
	}
	if existing != nil {
		if existing.IsComplete() {
			return attendance.AttendanceResponse{}, attendance.ErrAttendanceCompleted
		}
		return attendance.AttendanceResponse{}, attendance.ErrAlreadyCheckedIn
	}

	perm, err := s.permissionRepo.GetByUserAndDate(ctx, req.UserID, today)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to get today's permission: %w", err)
	}
	if perm != nil {
		return attendance.AttendanceResponse{}, attendance.ErrPermissionExistsToday
	}

	// The status is fixed at check-in time and never recomputed.
	status := attendance.StatusPresent
	if now.After(s.lateThreshold.On(now)) {
		status = attendance.StatusLate
	}

	lat, lng := req.Latitude, req.Longitude
	created, err := s.attendanceRepo.Create(ctx, attendance.Attendance{
		UserID:           req.UserID,
		Date:             today,
		CheckInTime:      &now,
		CheckInLatitude:  &lat,
		CheckInLongitude: &lng,
		Status:           status,
	})
	if err != nil {
		// The repository maps the (user_id, date) unique violation to
		// ErrAlreadyCheckedIn, so a concurrent double tap loses cleanly.
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to create attendance record: %w", err)
	}

	s.publishEvent(ctx, "checkin", created, now)

	return s.toResponse(created), nil
}

// CheckOut implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) CheckOut(ctx context.Context, req attendance.CheckOutRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	now := s.now()
	today := dateutil.DayOf(now)

	if err := s.checkOfficeRadius(req.Latitude, req.Longitude); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	existing, err := s.attendanceRepo.GetByUserAndDate(ctx, req.UserID, today)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to get today's attendance: %w", err)
	}
	if existing == nil || existing.CheckInTime == nil {
		return attendance.AttendanceResponse{}, attendance.ErrNotCheckedIn
	}
	if existing.IsComplete() {
		return attendance.AttendanceResponse{}, attendance.ErrAttendanceCompleted
	}

	if elapsed := now.Sub(*existing.CheckInTime); elapsed < s.cfg.MinWorkDuration {
		return attendance.AttendanceResponse{}, &attendance.MinimumDurationError{
			Minimum:   s.cfg.MinWorkDuration,
			Remaining: s.cfg.MinWorkDuration - elapsed,
		}
	}

	lat, lng := req.Latitude, req.Longitude
	existing.CheckOutTime = &now
	existing.CheckOutLatitude = &lat
	existing.CheckOutLongitude = &lng

	if err := s.attendanceRepo.Update(ctx, *existing); err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to update attendance record: %w", err)
	}

	s.publishEvent(ctx, "checkout", *existing, now)

	return s.toResponse(*existing), nil
}

// Today implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) Today(ctx context.Context, userID string) (attendance.TodayResponse, error) {
	today := dateutil.DayOf(s.now())

	record, err := s.attendanceRepo.GetByUserAndDate(ctx, userID, today)
	if err != nil {
		return attendance.TodayResponse{}, fmt.Errorf("failed to get today's attendance: %w", err)
	}
	if record == nil {
		return attendance.TodayResponse{}, nil
	}

	resp := s.toResponse(*record)
	return attendance.TodayResponse{Attendance: &resp}, nil
}

// History implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) History(ctx context.Context, userID string, filter attendance.HistoryFilter) ([]attendance.AttendanceResponse, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	if limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}

	records, err := s.attendanceRepo.ListByUser(ctx, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance history: %w", err)
	}

	responses := make([]attendance.AttendanceResponse, 0, len(records))
	for _, record := range records {
		responses = append(responses, s.toResponse(record))
	}
	return responses, nil
}

// HasRecordOnDate implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) HasRecordOnDate(ctx context.Context, userID string, dateKey string) (bool, error) {
	date, err := dateutil.ParseDay(dateKey)
	if err != nil {
		return false, fmt.Errorf("invalid date %q: %w", dateKey, err)
	}

	record, err := s.attendanceRepo.GetByUserAndDate(ctx, userID, date)
	if err != nil {
		return false, fmt.Errorf("failed to get attendance record: %w", err)
	}
	return record != nil, nil
}

// Monitoring implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) Monitoring(ctx context.Context) ([]attendance.MonitoringRow, error) {
	now := s.now()
	today := dateutil.DayOf(now)

	users, err := s.userRepo.List(ctx, user.ListFilter{Role: user.RoleUser})
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	records, err := s.attendanceRepo.ListByDateRange(ctx, "", today, today)
	if err != nil {
		return nil, fmt.Errorf("failed to list today's attendance: %w", err)
	}

	recordByUser := make(map[string]attendance.Attendance, len(records))
	for _, record := range records {
		recordByUser[record.UserID] = record
	}

	rows := make([]attendance.MonitoringRow, 0, len(users))
	for _, u := range users {
		row := attendance.MonitoringRow{
			UserID:    u.ID,
			Name:      u.Name,
			Email:     u.Email,
			Status:    "absent",
			WorkHours: "-",
		}

		if record, ok := recordByUser[u.ID]; ok {
			row.Status = record.Status
			row.CheckInTime = clockPtr(record.CheckInTime)
			row.CheckOutTime = clockPtr(record.CheckOutTime)

			switch {
			case record.IsComplete():
				row.WorkHours = dateutil.FormatWorkDuration(record.WorkDuration())
			case record.CheckInTime != nil:
				// Open session: show elapsed hours so far.
				row.WorkHours = dateutil.FormatWorkDuration(now.Sub(*record.CheckInTime)) + " (berjalan)"
			}
		}

		rows = append(rows, row)
	}

	return rows, nil
}

func (s *AttendanceServiceImpl) checkOfficeRadius(lat, lng float64) error {
	if s.cfg.OfficeRadiusMeters <= 0 {
		return nil
	}

	distance := utils.CalculateHaversineDistance(lat, lng, s.cfg.OfficeLatitude, s.cfg.OfficeLongitude)
	if distance > s.cfg.OfficeRadiusMeters {
		return attendance.ErrOutsideOfficeRadius
	}
	return nil
}

// publishEvent broadcasts a check-in/check-out event to admin monitoring
// subscribers. Best effort: a missing user name never fails the operation.
func (s *AttendanceServiceImpl) publishEvent(ctx context.Context, eventType string, record attendance.Attendance, at time.Time) {
	userName := record.UserID
	if u, err := s.userRepo.GetByID(ctx, record.UserID); err != nil {
		slog.Warn("failed to resolve user for attendance event", "user_id", record.UserID, "error", err)
	} else if u.Name != "" {
		userName = u.Name
	}

	s.hub.Publish(MonitoringTopic, sse.Event{
		Topic: MonitoringTopic,
		Event: eventType,
		Data: attendance.Event{
			Type:      eventType,
			UserID:    record.UserID,
			UserName:  userName,
			Status:    record.Status,
			Timestamp: at,
		},
	})
}

func (s *AttendanceServiceImpl) toResponse(record attendance.Attendance) attendance.AttendanceResponse {
	return attendance.AttendanceResponse{
		ID:                record.ID,
		UserID:            record.UserID,
		UserName:          record.UserName,
		Date:              dateutil.DayKey(record.Date),
		CheckInTime:       clockPtr(record.CheckInTime),
		CheckOutTime:      clockPtr(record.CheckOutTime),
		CheckInLatitude:   record.CheckInLatitude,
		CheckInLongitude:  record.CheckInLongitude,
		CheckOutLatitude:  record.CheckOutLatitude,
		CheckOutLongitude: record.CheckOutLongitude,
		Status:            record.Status,
		WorkHours:         dateutil.FormatWorkDuration(record.WorkDuration()),
		Notes:             record.Notes,
	}
}

// clockPtr safely formats a *time.Time as a WIB wall-clock string.
func clockPtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.In(dateutil.WIB).Format("15:04:05")
	return &s
}

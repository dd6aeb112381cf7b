package permission

import (
	"context"
	"fmt"
	"strings"

	"github.com/bress-dev/absensi-backend-go/internal/domain/attendance"
	"github.com/bress-dev/absensi-backend-go/internal/domain/permission"
	"github.com/bress-dev/absensi-backend-go/internal/pkg/dateutil"
)

const defaultHistoryLimit = 30
const maxHistoryLimit = 100

type PermissionServiceImpl struct {
	permissionRepo permission.PermissionRepository
	attendanceRepo attendance.AttendanceRepository
}

func NewPermissionService(
	permissionRepo permission.PermissionRepository,
	attendanceRepo attendance.AttendanceRepository,
) permission.PermissionService {
	return &PermissionServiceImpl{
		permissionRepo: permissionRepo,
		attendanceRepo: attendanceRepo,
	}
}

// Create implements permission.PermissionService.
func (s *PermissionServiceImpl) Create(ctx context.Context, req permission.CreateRequest) (permission.PermissionResponse, error) {
	if err := req.Validate(); err != nil {
		return permission.PermissionResponse{}, err
	}

	today := dateutil.DayOf(dateutil.NowWIB())

	existing, err := s.permissionRepo.GetByUserAndDate(ctx, req.UserID, today)
	if err != nil {
		return permission.PermissionResponse{}, fmt.Errorf("failed to get today's permission: %w", err)
	}
	if existing != nil {
		return permission.PermissionResponse{}, permission.ErrAlreadyRequested
	}

	// An attendance record for the day, open or complete, blocks a
	// permission request. The two are mutually exclusive.
	record, err := s.attendanceRepo.GetByUserAndDate(ctx, req.UserID, today)
	if err != nil {
		return permission.PermissionResponse{}, fmt.Errorf("failed to get today's attendance: %w", err)
	}
	if record != nil {
		return permission.PermissionResponse{}, permission.ErrAttendanceExistsToday
	}

	var note *string
	if trimmed := strings.TrimSpace(req.Note); trimmed != "" {
		note = &trimmed
	}

	// Requests are effective immediately; an admin can still reject later.
	created, err := s.permissionRepo.Create(ctx, permission.Permission{
		UserID: req.UserID,
		Date:   today,
		Type:   req.Type,
		Note:   note,
		Status: permission.StatusApproved,
	})
	if err != nil {
		return permission.PermissionResponse{}, fmt.Errorf("failed to create permission record: %w", err)
	}

	return toResponse(created), nil
}

// Today implements permission.PermissionService.
func (s *PermissionServiceImpl) Today(ctx context.Context, userID string) (permission.TodayResponse, error) {
	today := dateutil.DayOf(dateutil.NowWIB())

	record, err := s.permissionRepo.GetByUserAndDate(ctx, userID, today)
	if err != nil {
		return permission.TodayResponse{}, fmt.Errorf("failed to get today's permission: %w", err)
	}
	if record == nil {
		return permission.TodayResponse{}, nil
	}

	resp := toResponse(*record)
	return permission.TodayResponse{HasPermission: true, Permission: &resp}, nil
}

// History implements permission.PermissionService.
func (s *PermissionServiceImpl) History(ctx context.Context, userID string, limit int) ([]permission.PermissionResponse, error) {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	if limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}

	records, err := s.permissionRepo.ListByUser(ctx, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list permission history: %w", err)
	}

	responses := make([]permission.PermissionResponse, 0, len(records))
	for _, record := range records {
		responses = append(responses, toResponse(record))
	}
	return responses, nil
}

// UpdateStatus implements permission.PermissionService.
func (s *PermissionServiceImpl) UpdateStatus(ctx context.Context, req permission.UpdateStatusRequest) (permission.PermissionResponse, error) {
	if err := req.Validate(); err != nil {
		return permission.PermissionResponse{}, err
	}

	record, err := s.permissionRepo.GetByID(ctx, req.ID)
	if err != nil {
		return permission.PermissionResponse{}, err
	}

	if err := s.permissionRepo.UpdateStatus(ctx, req.ID, req.Status); err != nil {
		return permission.PermissionResponse{}, fmt.Errorf("failed to update permission status: %w", err)
	}

	record.Status = req.Status
	return toResponse(record), nil
}

// HasPermissionOnDate implements permission.PermissionService.
func (s *PermissionServiceImpl) HasPermissionOnDate(ctx context.Context, userID string, dateKey string) (bool, error) {
	date, err := dateutil.ParseDay(dateKey)
	if err != nil {
		return false, fmt.Errorf("invalid date %q: %w", dateKey, err)
	}

	record, err := s.permissionRepo.GetByUserAndDate(ctx, userID, date)
	if err != nil {
		return false, fmt.Errorf("failed to get permission record: %w", err)
	}
	return record != nil, nil
}

func toResponse(record permission.Permission) permission.PermissionResponse {
	return permission.PermissionResponse{
		ID:       record.ID,
		UserID:   record.UserID,
		UserName: record.UserName,
		Date:     dateutil.DayKey(record.Date),
		Type:     record.Type,
		Note:     record.Note,
		Status:   record.Status,
	}
}

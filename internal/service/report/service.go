package report

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/bress-dev/absensi-backend-go/internal/domain/attendance"
	"github.com/bress-dev/absensi-backend-go/internal/domain/permission"
	"github.com/bress-dev/absensi-backend-go/internal/domain/report"
	"github.com/bress-dev/absensi-backend-go/internal/domain/user"
	"github.com/bress-dev/absensi-backend-go/internal/pkg/dateutil"
	"github.com/bress-dev/absensi-backend-go/internal/pkg/holiday"
)

type ReportServiceImpl struct {
	userRepo       user.UserRepository
	attendanceRepo attendance.AttendanceRepository
	permissionRepo permission.PermissionRepository
	holidayCache   *holiday.Cache
}

func NewReportService(
	userRepo user.UserRepository,
	attendanceRepo attendance.AttendanceRepository,
	permissionRepo permission.PermissionRepository,
	holidayCache *holiday.Cache,
) report.ReportService {
	return &ReportServiceImpl{
		userRepo:       userRepo,
		attendanceRepo: attendanceRepo,
		permissionRepo: permissionRepo,
		holidayCache:   holidayCache,
	}
}

// Rekap implements report.ReportService.
func (s *ReportServiceImpl) Rekap(ctx context.Context, req report.RekapRequest) (report.RekapResponse, error) {
	if err := req.Validate(); err != nil {
		return report.RekapResponse{}, err
	}
	start, end := req.Range()

	users, err := s.userRepo.List(ctx, user.ListFilter{Role: user.RoleUser, UserID: req.UserID})
	if err != nil {
		return report.RekapResponse{}, fmt.Errorf("failed to list users: %w", err)
	}

	attendances, err := s.attendanceRepo.ListByDateRange(ctx, req.UserID, start, end)
	if err != nil {
		return report.RekapResponse{}, fmt.Errorf("failed to list attendance records: %w", err)
	}

	permissions, err := s.permissionRepo.ListByDateRange(ctx, req.UserID, start, end)
	if err != nil {
		return report.RekapResponse{}, fmt.Errorf("failed to list permission records: %w", err)
	}

	// Best-effort calendar: a provider outage degrades to weekend/workday
	// classification only.
	holidays := s.holidayCache.ForRange(ctx, start, end)

	detail, summary := Reconcile(users, start, end, attendances, permissions, holidays)

	holidayInfos := make([]report.HolidayInfo, 0, len(holidays))
	for _, h := range holidays {
		if h.Date >= req.Start && h.Date <= req.End {
			holidayInfos = append(holidayInfos, report.HolidayInfo{Date: h.Date, Name: h.Name})
		}
	}

	return report.RekapResponse{
		Summary:   summary,
		Detail:    detail,
		DateRange: report.DateRange{Start: req.Start, End: req.End},
		TotalDays: len(dateutil.EnumerateDays(start, end)),
		Holidays:  holidayInfos,
	}, nil
}

// RekapCSV implements report.ReportService.
func (s *ReportServiceImpl) RekapCSV(ctx context.Context, req report.RekapRequest, w io.Writer) error {
	rekap, err := s.Rekap(ctx, req)
	if err != nil {
		return err
	}
	return WriteCSV(w, rekap.Detail)
}

// RekapDocument implements report.ReportService.
func (s *ReportServiceImpl) RekapDocument(ctx context.Context, req report.RekapRequest) (report.RekapDocument, error) {
	rekap, err := s.Rekap(ctx, req)
	if err != nil {
		return report.RekapDocument{}, err
	}

	rowsByUser := make(map[string][]report.DayRecord, len(rekap.Summary))
	for _, row := range rekap.Detail {
		rowsByUser[row.UserID] = append(rowsByUser[row.UserID], row)
	}

	// Sections follow summary order, which follows user-directory order.
	sections := make([]report.UserSection, 0, len(rekap.Summary))
	for _, sum := range rekap.Summary {
		sections = append(sections, report.UserSection{
			Summary: sum,
			Rows:    rowsByUser[sum.UserID],
		})
	}

	return report.RekapDocument{
		Title:       fmt.Sprintf("Rekap Absensi %s s/d %s", req.Start, req.End),
		DateRange:   report.DateRange{Start: req.Start, End: req.End},
		GeneratedAt: time.Now().In(dateutil.WIB).Format(time.RFC3339),
		Sections:    sections,
	}, nil
}

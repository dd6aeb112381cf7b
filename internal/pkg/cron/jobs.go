package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/bress-dev/absensi-backend-go/internal/pkg/dateutil"
	"github.com/bress-dev/absensi-backend-go/internal/pkg/holiday"
	"github.com/bress-dev/absensi-backend-go/internal/repository/postgresql"
)

// MaintenanceJobs holds the background jobs: keeping the holiday calendar
// warm and pruning expired refresh tokens.
type MaintenanceJobs struct {
	holidayCache *holiday.Cache
	jwtRepo      postgresql.JWTRepository
}

func NewMaintenanceJobs(holidayCache *holiday.Cache, jwtRepo postgresql.JWTRepository) *MaintenanceJobs {
	return &MaintenanceJobs{
		holidayCache: holidayCache,
		jwtRepo:      jwtRepo,
	}
}

func (j *MaintenanceJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("refresh_holiday_calendar", 6*time.Hour, j.RefreshHolidayCalendar)
	scheduler.AddJob("cleanup_expired_tokens", 1*time.Hour, j.CleanupExpiredTokens)
}

// RefreshHolidayCalendar re-fetches the current year (and, in December, the
// next year) so rekap requests never pay the provider latency.
func (j *MaintenanceJobs) RefreshHolidayCalendar(ctx context.Context) error {
	now := dateutil.NowWIB()
	years := []int{now.Year()}
	if now.Month() == time.December {
		years = append(years, now.Year()+1)
	}

	for _, year := range years {
		if err := j.holidayCache.Refresh(ctx, year); err != nil {
			return fmt.Errorf("failed to refresh holiday calendar for %d: %w", year, err)
		}
		slog.Info("Cron: Holiday calendar refreshed", "year", year)
	}
	return nil
}

// CleanupExpiredTokens removes refresh tokens past their expiry.
func (j *MaintenanceJobs) CleanupExpiredTokens(ctx context.Context) error {
	// Only run at midnight WIB (00:00-00:59)
	if dateutil.NowWIB().Hour() != 0 {
		return nil
	}

	deleted, err := j.jwtRepo.DeleteExpiredTokens(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete expired tokens: %w", err)
	}
	if deleted > 0 {
		slog.Info("Cron: Expired refresh tokens removed", "count", deleted)
	}
	return nil
}

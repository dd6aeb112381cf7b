package permission

import (
	"context"
)

// PermissionService defines business logic for permission requests.
type PermissionService interface {
	// Create files a permission for the current WIB day. Fails with
	// ErrAlreadyRequested on a duplicate and ErrAttendanceExistsToday when
	// an attendance record (even an open one) already exists.
	Create(ctx context.Context, req CreateRequest) (PermissionResponse, error)

	// Today retrieves the caller's permission for the current WIB day, if any.
	Today(ctx context.Context, userID string) (TodayResponse, error)

	// History retrieves the caller's permissions, newest first.
	History(ctx context.Context, userID string, limit int) ([]PermissionResponse, error)

	// UpdateStatus changes a permission's approval status (admin only).
	UpdateStatus(ctx context.Context, req UpdateStatusRequest) (PermissionResponse, error)

	// HasPermissionOnDate reports whether a permission exists for (user,
	// date); used by the attendance domain to enforce mutual exclusivity.
	HasPermissionOnDate(ctx context.Context, userID string, dateKey string) (bool, error)
}

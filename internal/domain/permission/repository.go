package permission

import (
	"context"
	"time"
)

// PermissionRepository defines data access methods for permission records.
type PermissionRepository interface {
	// Create creates a new permission record. The (user_id, date) unique
	// constraint turns a concurrent duplicate into ErrAlreadyRequested.
	Create(ctx context.Context, perm Permission) (Permission, error)

	// GetByUserAndDate retrieves the record for one user on one WIB day,
	// nil when none exists.
	GetByUserAndDate(ctx context.Context, userID string, date time.Time) (*Permission, error)

	GetByID(ctx context.Context, id string) (Permission, error)

	// ListByDateRange retrieves records whose date falls in [start, end],
	// optionally restricted to one user (empty userID means all users).
	ListByDateRange(ctx context.Context, userID string, start, end time.Time) ([]Permission, error)

	// ListByUser retrieves a user's records, newest first, capped at limit.
	ListByUser(ctx context.Context, userID string, limit int) ([]Permission, error)

	UpdateStatus(ctx context.Context, id string, status string) error
}

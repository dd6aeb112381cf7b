package user

import (
	"context"
)

// UserService defines the admin user directory operations plus the
// logged-in user's own profile.
type UserService interface {
	List(ctx context.Context, filter ListFilter) ([]UserResponse, error)
	Get(ctx context.Context, id string) (UserResponse, error)
	Update(ctx context.Context, req UpdateUserRequest) (UserResponse, error)
	Delete(ctx context.Context, id string) error

	Profile(ctx context.Context, userID string) (UserResponse, error)
	UpdateProfile(ctx context.Context, req UpdateProfileRequest) (UserResponse, error)
}

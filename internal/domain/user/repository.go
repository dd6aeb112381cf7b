package user

import (
	"context"
)

type UserRepository interface {
	GetByEmail(ctx context.Context, email string) (User, error)
	GetByID(ctx context.Context, id string) (User, error)
	Create(ctx context.Context, newUser User) (User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)

	// List returns users ordered by name. An empty role returns everyone.
	List(ctx context.Context, filter ListFilter) ([]User, error)

	Update(ctx context.Context, req UpdateUserRequest) error
	UpdateProfile(ctx context.Context, req UpdateProfileRequest) error
	Delete(ctx context.Context, id string) error
}

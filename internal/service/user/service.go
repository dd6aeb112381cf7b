package user

import (
	"context"
	"fmt"
	"time"

	"github.com/bress-dev/absensi-backend-go/internal/domain/user"
	"github.com/bress-dev/absensi-backend-go/internal/pkg/database"
	"github.com/bress-dev/absensi-backend-go/internal/repository/postgresql"
)

type UserServiceImpl struct {
	db       *database.DB
	userRepo user.UserRepository
	jwtRepo  postgresql.JWTRepository
}

func NewUserService(db *database.DB, userRepo user.UserRepository, jwtRepo postgresql.JWTRepository) user.UserService {
	return &UserServiceImpl{
		db:       db,
		userRepo: userRepo,
		jwtRepo:  jwtRepo,
	}
}

// List implements user.UserService.
func (s *UserServiceImpl) List(ctx context.Context, filter user.ListFilter) ([]user.UserResponse, error) {
	users, err := s.userRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	responses := make([]user.UserResponse, 0, len(users))
	for _, u := range users {
		responses = append(responses, toResponse(u))
	}
	return responses, nil
}

// Get implements user.UserService.
func (s *UserServiceImpl) Get(ctx context.Context, id string) (user.UserResponse, error) {
	u, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return user.UserResponse{}, err
	}
	return toResponse(u), nil
}

// Update implements user.UserService.
func (s *UserServiceImpl) Update(ctx context.Context, req user.UpdateUserRequest) (user.UserResponse, error) {
	if err := req.Validate(); err != nil {
		return user.UserResponse{}, err
	}

	if req.Email != nil {
		current, err := s.userRepo.GetByID(ctx, req.ID)
		if err != nil {
			return user.UserResponse{}, err
		}
		if current.Email != *req.Email {
			exists, err := s.userRepo.ExistsByEmail(ctx, *req.Email)
			if err != nil {
				return user.UserResponse{}, fmt.Errorf("failed to check email: %w", err)
			}
			if exists {
				return user.UserResponse{}, user.ErrUserEmailExists
			}
		}
	}

	if err := s.userRepo.Update(ctx, req); err != nil {
		return user.UserResponse{}, err
	}

	updated, err := s.userRepo.GetByID(ctx, req.ID)
	if err != nil {
		return user.UserResponse{}, err
	}
	return toResponse(updated), nil
}

// Profile implements user.UserService.
func (s *UserServiceImpl) Profile(ctx context.Context, userID string) (user.UserResponse, error) {
	u, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return user.UserResponse{}, err
	}
	return toResponse(u), nil
}

// UpdateProfile implements user.UserService.
func (s *UserServiceImpl) UpdateProfile(ctx context.Context, req user.UpdateProfileRequest) (user.UserResponse, error) {
	if err := req.Validate(); err != nil {
		return user.UserResponse{}, err
	}

	if err := s.userRepo.UpdateProfile(ctx, req); err != nil {
		return user.UserResponse{}, err
	}

	updated, err := s.userRepo.GetByID(ctx, req.UserID)
	if err != nil {
		return user.UserResponse{}, err
	}
	return toResponse(updated), nil
}

// Delete implements user.UserService. The account row and its live refresh
// tokens go in one transaction so a deleted employee cannot keep a session.
func (s *UserServiceImpl) Delete(ctx context.Context, id string) error {
	return postgresql.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		if err := s.jwtRepo.RevokeAllForUser(txCtx, id); err != nil {
			return fmt.Errorf("failed to revoke refresh tokens: %w", err)
		}
		return s.userRepo.Delete(txCtx, id)
	})
}

func toResponse(u user.User) user.UserResponse {
	return user.UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Phone:     u.Phone,
		Address:   u.Address,
		Role:      string(u.Role),
		CreatedAt: u.CreatedAt.Format(time.RFC3339),
	}
}

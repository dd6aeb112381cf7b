package user

import (
	"github.com/bress-dev/absensi-backend-go/internal/pkg/validator"
)

type ListFilter struct {
	Role   Role
	UserID string
}

type UpdateUserRequest struct {
	ID    string
	Name  *string `json:"name"`
	Email *string `json:"email"`
	Role  *string `json:"role"`
}

func (r *UpdateUserRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "user id is required",
		})
	}

	if r.Email != nil && !validator.IsValidEmail(*r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "invalid email format",
		})
	}

	if r.Role != nil && !validator.IsInSlice(*r.Role, []string{string(RoleAdmin), string(RoleUser)}) {
		errs = append(errs, validator.ValidationError{
			Field:   "role",
			Message: "role must be admin or user",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// UpdateProfileRequest is the self-service profile edit: a user may change
// their own name and contact details, never their email or role.
type UpdateProfileRequest struct {
	UserID  string  `json:"-"`
	Name    *string `json:"name"`
	Phone   *string `json:"phone"`
	Address *string `json:"address"`
}

func (r *UpdateProfileRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Name != nil && validator.IsEmpty(*r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name must not be empty",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UserResponse struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Email     string  `json:"email"`
	Phone     *string `json:"phone"`
	Address   *string `json:"address"`
	Role      string  `json:"role"`
	CreatedAt string  `json:"created_at"`
}

package permission

import (
	"strings"

	"github.com/bress-dev/absensi-backend-go/internal/pkg/validator"
)

type CreateRequest struct {
	UserID string `json:"-"`
	Type   string `json:"type"`
	Note   string `json:"note"`
}

func (r *CreateRequest) Validate() error {
	var errs validator.ValidationErrors

	if !ValidType(r.Type) {
		errs = append(errs, validator.ValidationError{
			Field:   "type",
			Message: "type must be izin, sakit, or libur",
		})
	}

	if r.Type == TypeIzin && strings.TrimSpace(r.Note) == "" {
		errs = append(errs, validator.ValidationError{
			Field:   "note",
			Message: "note is required for izin",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateStatusRequest struct {
	ID     string `json:"-"`
	Status string `json:"status"`
}

func (r *UpdateStatusRequest) Validate() error {
	var errs validator.ValidationErrors

	if !ValidStatus(r.Status) {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be pending, approved, or rejected",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type PermissionResponse struct {
	ID       string  `json:"id"`
	UserID   string  `json:"user_id"`
	UserName *string `json:"user_name,omitempty"`
	Date     string  `json:"date"`
	Type     string  `json:"type"`
	Note     *string `json:"note"`
	Status   string  `json:"status"`
}

type TodayResponse struct {
	HasPermission bool                `json:"has_permission"`
	Permission    *PermissionResponse `json:"permission"`
}

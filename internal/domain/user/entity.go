package user

import "time"

type Role string

const (
	RoleAdmin Role = "admin" // Can manage employees and reports
	RoleUser  Role = "user"  // Regular employee
)

type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Phone        *string
	Address      *string
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsAdmin checks if the user can access admin endpoints
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

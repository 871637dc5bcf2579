package dto

import (
	"time"

	"github.com/tmkontra/fullstack-boilerplate/internal/auth/domain"
)

type UserOutput struct {
	ID        string     `json:"id"`
	Email     string     `json:"email"`
	IsAdmin   bool       `json:"is_admin"`
	DeletedAt *time.Time `json:"deleted_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

func NewUserOutput(u *domain.User) UserOutput {
	return UserOutput{
		ID:        u.ID,
		Email:     u.Email,
		IsAdmin:   u.IsAdmin,
		DeletedAt: u.DeletedAt,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// UpdateUserInput carries the editable user fields for the admin panel.
// Pointer fields are left unchanged when absent. A non-empty Password is
// re-hashed before storage; the stored hash itself is never editable.
type UpdateUserInput struct {
	Email    *string `json:"email"`
	IsAdmin  *bool   `json:"is_admin"`
	Deleted  *bool   `json:"deleted"`
	Password *string `json:"password"`
}

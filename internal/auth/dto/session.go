package dto

import (
	"time"

	"github.com/tmkontra/fullstack-boilerplate/internal/auth/domain"
)

type SessionOutput struct {
	ID          string     `json:"id"`
	UserID      string     `json:"user_id"`
	ExpiresAt   time.Time  `json:"expires_at"`
	LoggedOutAt *time.Time `json:"logged_out_at,omitempty"`
	Active      bool       `json:"active"`
	CreatedAt   time.Time  `json:"created_at"`
}

func NewSessionOutput(s *domain.UserSession) SessionOutput {
	return SessionOutput{
		ID:          s.ID,
		UserID:      s.UserID,
		ExpiresAt:   s.ExpiresAt,
		LoggedOutAt: s.LoggedOutAt,
		Active:      s.Active(time.Now()),
		CreatedAt:   s.CreatedAt,
	}
}

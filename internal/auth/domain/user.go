package domain

import "time"

type User struct {
	ID           string
	Email        string
	PasswordHash string
	IsAdmin      bool
	DeletedAt    *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type UserSession struct {
	ID          string
	UserID      string
	SessionID   string
	ExpiresAt   time.Time
	LoggedOutAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Active reports whether the session can still authenticate requests.
// It is recomputed from the wall clock on every call, never cached.
func (s *UserSession) Active(now time.Time) bool {
	return s.LoggedOutAt == nil && s.ExpiresAt.After(now)
}

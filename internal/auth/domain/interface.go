package domain

//go:generate mockgen -destination=../../mocks/mock_user_repository.go -package=mocks github.com/tmkontra/fullstack-boilerplate/internal/auth/domain UserRepository
//go:generate mockgen -destination=../../mocks/mock_session_repository.go -package=mocks github.com/tmkontra/fullstack-boilerplate/internal/auth/domain SessionRepository

import (
	"context"
	"time"
)

type UserRepository interface {
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
	Create(ctx context.Context, user *User) error
	Update(ctx context.Context, user *User) error
	Count(ctx context.Context) (int, error)
	List(ctx context.Context) ([]User, error)
}

type SessionRepository interface {
	Create(ctx context.Context, session *UserSession) error
	GetByToken(ctx context.Context, sessionID string) (*UserSession, error)
	GetByID(ctx context.Context, id string) (*UserSession, error)
	List(ctx context.Context) ([]UserSession, error)
	Invalidate(ctx context.Context, id string, at time.Time) error
}

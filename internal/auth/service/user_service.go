package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/tmkontra/fullstack-boilerplate/internal/auth/domain"
	"github.com/tmkontra/fullstack-boilerplate/internal/auth/dto"
	autherror "github.com/tmkontra/fullstack-boilerplate/internal/errors"
)

type UserService struct {
	repo      domain.UserRepository
	passwords *PasswordService
	sessions  *SessionService
}

func NewUserService(repo domain.UserRepository, passwords *PasswordService, sessions *SessionService) *UserService {
	return &UserService{
		repo:      repo,
		passwords: passwords,
		sessions:  sessions,
	}
}

func (s *UserService) Register(ctx context.Context, input dto.RegisterInput) (*domain.User, error) {
	if input.Email == "" || input.Password == "" {
		return nil, errors.New("email and password are required")
	}

	existingUser, err := s.repo.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if existingUser != nil {
		return nil, autherror.ErrEmailAlreadyInUse
	}

	hashedPassword, err := s.passwords.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	user := &domain.User{
		ID:           uuid.NewString(),
		Email:        input.Email,
		PasswordHash: hashedPassword,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// Login verifies credentials and opens a session. A missing user and a wrong
// password collapse into the same error so callers cannot probe for accounts.
func (s *UserService) Login(ctx context.Context, input dto.LoginInput) (*domain.User, *domain.UserSession, error) {
	user, err := s.repo.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, nil, err
	}

	if user == nil || !s.passwords.Verify(input.Password, user.PasswordHash) {
		return nil, nil, autherror.ErrInvalidCredentials
	}

	session, err := s.sessions.Create(ctx, user.ID)
	if err != nil {
		return nil, nil, err
	}

	return user, session, nil
}

// Logout invalidates the session behind the token. An absent or already
// inactive session is a no-op success: logout is idempotent.
func (s *UserService) Logout(ctx context.Context, token string) error {
	session, err := s.sessions.OptionalSession(ctx, token)
	if err != nil {
		return err
	}
	if session == nil {
		return nil
	}

	return s.sessions.Invalidate(ctx, session)
}

// Update applies the admin edit form to a user. A new password goes through
// the hasher; the stored digest is never settable directly.
func (s *UserService) Update(ctx context.Context, id string, input dto.UpdateUserInput) (*domain.User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, autherror.ErrUserNotFound
	}

	if input.Email != nil {
		user.Email = *input.Email
	}
	if input.IsAdmin != nil {
		user.IsAdmin = *input.IsAdmin
	}
	if input.Deleted != nil {
		if *input.Deleted {
			if user.DeletedAt == nil {
				now := time.Now()
				user.DeletedAt = &now
			}
		} else {
			user.DeletedAt = nil
		}
	}
	if input.Password != nil && *input.Password != "" {
		hashed, err := s.passwords.Hash(*input.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hashed
	}

	user.UpdatedAt = time.Now()
	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

func (s *UserService) Get(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, autherror.ErrUserNotFound
	}
	return user, nil
}

func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	return s.repo.List(ctx)
}

func (s *UserService) Count(ctx context.Context) (int, error) {
	return s.repo.Count(ctx)
}

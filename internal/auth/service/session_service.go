package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/tmkontra/fullstack-boilerplate/internal/auth/domain"
	autherror "github.com/tmkontra/fullstack-boilerplate/internal/errors"
)

// tokenBytes is the entropy of a session token: 256 bits, base64url encoded.
const tokenBytes = 32

// SessionService owns the session lifecycle and the request authorization
// chain: token -> session -> user -> privilege. Every step is recomputed per
// request from stored state and the wall clock.
type SessionService struct {
	users    domain.UserRepository
	sessions domain.SessionRepository
	ttl      time.Duration
}

func NewSessionService(users domain.UserRepository, sessions domain.SessionRepository, ttl time.Duration) *SessionService {
	return &SessionService{
		users:    users,
		sessions: sessions,
		ttl:      ttl,
	}
}

func generateToken() (string, error) {
	buf := make([]byte, tokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate session token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// Create opens a new session for the user with expiry now+ttl and persists it.
// The returned SessionID is the bearer credential handed to the client.
func (s *SessionService) Create(ctx context.Context, userID string) (*domain.UserSession, error) {
	token, err := generateToken()
	if err != nil {
		return nil, err
	}

	now := time.Now()
	session := &domain.UserSession{
		ID:        uuid.NewString(),
		UserID:    userID,
		SessionID: token,
		ExpiresAt: now.Add(s.ttl),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	return session, nil
}

// RequireSession resolves the token to an active session. A missing token, an
// unknown token, and an expired or logged-out session all fail with the same
// ErrUnauthenticated so callers cannot probe token validity.
func (s *SessionService) RequireSession(ctx context.Context, token string) (*domain.UserSession, error) {
	if token == "" {
		return nil, autherror.ErrUnauthenticated
	}

	session, err := s.sessions.GetByToken(ctx, token)
	if err != nil {
		return nil, err
	}
	if session == nil || !session.Active(time.Now()) {
		return nil, autherror.ErrUnauthenticated
	}

	return session, nil
}

// OptionalSession is RequireSession for routes where authentication is
// advisory: same matching logic, but no session yields (nil, nil).
func (s *SessionService) OptionalSession(ctx context.Context, token string) (*domain.UserSession, error) {
	session, err := s.RequireSession(ctx, token)
	if err != nil {
		if errors.Is(err, autherror.ErrUnauthenticated) {
			return nil, nil
		}
		return nil, err
	}
	return session, nil
}

// ResolveUser loads the user owning the session. A session must never outlive
// its user, so a missing row is data corruption rather than an auth failure.
func (s *SessionService) ResolveUser(ctx context.Context, session *domain.UserSession) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, session.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("%w: session %s references user %s",
			autherror.ErrSessionUserMissing, session.ID, session.UserID)
	}

	return user, nil
}

// RequireUser composes RequireSession with user resolution.
func (s *SessionService) RequireUser(ctx context.Context, token string) (*domain.User, error) {
	session, err := s.RequireSession(ctx, token)
	if err != nil {
		return nil, err
	}
	return s.ResolveUser(ctx, session)
}

// RequireAdmin composes RequireUser with the admin privilege check.
func (s *SessionService) RequireAdmin(ctx context.Context, token string) (*domain.User, error) {
	user, err := s.RequireUser(ctx, token)
	if err != nil {
		return nil, err
	}
	if !user.IsAdmin {
		return nil, autherror.ErrForbidden
	}

	return user, nil
}

// Invalidate logs the session out. Invalidating an already-invalidated
// session is a no-op.
func (s *SessionService) Invalidate(ctx context.Context, session *domain.UserSession) error {
	return s.sessions.Invalidate(ctx, session.ID, time.Now())
}

func (s *SessionService) Get(ctx context.Context, id string) (*domain.UserSession, error) {
	session, err := s.sessions.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, autherror.ErrSessionNotFound
	}
	return session, nil
}

func (s *SessionService) List(ctx context.Context) ([]domain.UserSession, error) {
	return s.sessions.List(ctx)
}

// InvalidateByID is the admin force-logout path.
func (s *SessionService) InvalidateByID(ctx context.Context, id string) error {
	session, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	return s.Invalidate(ctx, session)
}

package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/tmkontra/fullstack-boilerplate/internal/auth/domain"
)

type SessionRepository struct {
	db DB
}

func NewSessionRepository(db DB) *SessionRepository {
	return &SessionRepository{db: db}
}

const sessionColumns = `id, user_id, session_id, expires_at, logged_out_at, created_at, updated_at`

func (r *SessionRepository) Create(ctx context.Context, session *domain.UserSession) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO user_sessions (id, user_id, session_id, expires_at, logged_out_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, session.ID, session.UserID, session.SessionID, session.ExpiresAt,
		session.LoggedOutAt, session.CreatedAt, session.UpdatedAt)

	return err
}

func (r *SessionRepository) GetByToken(ctx context.Context, sessionID string) (*domain.UserSession, error) {
	query := `
		SELECT ` + sessionColumns + `
		FROM user_sessions
		WHERE session_id = $1
		LIMIT 1;
	`
	session, err := scanSession(r.db.QueryRow(ctx, query, sessionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get session by token: %w", err)
	}

	return session, nil
}

func (r *SessionRepository) GetByID(ctx context.Context, id string) (*domain.UserSession, error) {
	query := `
		SELECT ` + sessionColumns + `
		FROM user_sessions
		WHERE id = $1
		LIMIT 1;
	`
	session, err := scanSession(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get session by id: %w", err)
	}

	return session, nil
}

func (r *SessionRepository) List(ctx context.Context) ([]domain.UserSession, error) {
	query := `
		SELECT ` + sessionColumns + `
		FROM user_sessions
		ORDER BY created_at;
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	defer rows.Close()

	var sessions []domain.UserSession
	for rows.Next() {
		session, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan session: %w", err)
		}
		sessions = append(sessions, *session)
	}

	return sessions, rows.Err()
}

// Invalidate sets logged_out_at once. A session that is already logged out
// keeps its original timestamp; repeated calls match zero rows and succeed.
func (r *SessionRepository) Invalidate(ctx context.Context, id string, at time.Time) error {
	_, err := r.db.Exec(ctx, `
		UPDATE user_sessions
		SET logged_out_at = $2, updated_at = $2
		WHERE id = $1 AND logged_out_at IS NULL
	`, id, at)

	return err
}

func scanSession(row pgx.Row) (*domain.UserSession, error) {
	var session domain.UserSession
	err := row.Scan(&session.ID, &session.UserID, &session.SessionID, &session.ExpiresAt,
		&session.LoggedOutAt, &session.CreatedAt, &session.UpdatedAt)
	if err != nil {
		return nil, err
	}

	return &session, nil
}

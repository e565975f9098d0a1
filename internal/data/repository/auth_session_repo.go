package repository

import (
	"context"
	"fmt"
	"time"

	"cinema-tickets/internal/data/entity"
	"cinema-tickets/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type AuthSessionRepository interface {
	Create(ctx context.Context, session *entity.AuthSession) error
	FindValidSession(ctx context.Context, token string) (*entity.AuthSession, error)
	Touch(ctx context.Context, token string, at time.Time) error
	Revoke(ctx context.Context, token string) error
	RevokeAllUserSessions(ctx context.Context, userID uuid.UUID) error
	CleanExpiredSessions(ctx context.Context) error
}

type authSessionRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewAuthSessionRepository(db database.PgxIface, log *zap.Logger) AuthSessionRepository {
	return &authSessionRepository{
		db:  db,
		log: log.With(zap.String("repository", "auth_session")),
	}
}

func (r *authSessionRepository) Create(ctx context.Context, session *entity.AuthSession) error {
	query := `
		INSERT INTO auth_sessions (id, user_id, token, user_agent, ip_address,
		                           expires_at, last_activity_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.Exec(ctx, query,
		session.ID,
		session.UserID,
		session.Token,
		session.UserAgent,
		session.IPAddress,
		session.ExpiresAt,
		session.LastActivityAt,
		session.CreatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create auth session",
			zap.Error(err),
			zap.String("user_id", session.UserID.String()),
		)
		return fmt.Errorf("create auth session: %w", err)
	}

	return nil
}

func (r *authSessionRepository) FindValidSession(ctx context.Context, token string) (*entity.AuthSession, error) {
	query := `
		SELECT id, user_id, token, user_agent, ip_address,
		       expires_at, revoked_at, last_activity_at, created_at
		FROM auth_sessions
		WHERE token = $1
		  AND revoked_at IS NULL
		  AND expires_at > NOW()
	`

	var session entity.AuthSession
	err := r.db.QueryRow(ctx, query, token).Scan(
		&session.ID,
		&session.UserID,
		&session.Token,
		&session.UserAgent,
		&session.IPAddress,
		&session.ExpiresAt,
		&session.RevokedAt,
		&session.LastActivityAt,
		&session.CreatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find valid auth session", zap.Error(err))
		return nil, fmt.Errorf("find auth session: %w", err)
	}

	return &session, nil
}

// Touch records the rolling last-activity timestamp used by the idle-logout
// policy of the browser front-end.
func (r *authSessionRepository) Touch(ctx context.Context, token string, at time.Time) error {
	query := `
		UPDATE auth_sessions
		SET last_activity_at = $2
		WHERE token = $1 AND revoked_at IS NULL
	`

	if _, err := r.db.Exec(ctx, query, token, at); err != nil {
		r.log.Error("Failed to touch auth session", zap.Error(err))
		return fmt.Errorf("touch auth session: %w", err)
	}

	return nil
}

func (r *authSessionRepository) Revoke(ctx context.Context, token string) error {
	query := `
		UPDATE auth_sessions
		SET revoked_at = NOW()
		WHERE token = $1 AND revoked_at IS NULL
	`

	result, err := r.db.Exec(ctx, query, token)
	if err != nil {
		r.log.Error("Failed to revoke auth session", zap.Error(err))
		return fmt.Errorf("revoke auth session: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("auth session not found or already revoked")
	}

	return nil
}

func (r *authSessionRepository) RevokeAllUserSessions(ctx context.Context, userID uuid.UUID) error {
	query := `
		UPDATE auth_sessions
		SET revoked_at = NOW()
		WHERE user_id = $1 AND revoked_at IS NULL
	`

	_, err := r.db.Exec(ctx, query, userID)
	if err != nil {
		r.log.Error("Failed to revoke all user auth sessions",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return fmt.Errorf("revoke auth sessions: %w", err)
	}

	return nil
}

func (r *authSessionRepository) CleanExpiredSessions(ctx context.Context) error {
	query := `
		DELETE FROM auth_sessions
		WHERE expires_at < NOW() - INTERVAL '7 days'
	`

	_, err := r.db.Exec(ctx, query)
	if err != nil {
		r.log.Error("Failed to clean expired auth sessions", zap.Error(err))
		return fmt.Errorf("clean auth sessions: %w", err)
	}

	return nil
}

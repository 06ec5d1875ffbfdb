package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/yasinhessnawi1/BotAnnotator_Backend/internal/database"
	"github.com/yasinhessnawi1/BotAnnotator_Backend/internal/models"
	"github.com/yasinhessnawi1/BotAnnotator_Backend/internal/utils"
)

// SessionRepository stores the server-side sessions behind bearer tokens.
type SessionRepository interface {
	// Create stores a session, generating its ID when empty.
	Create(ctx context.Context, session *models.Session) error

	// GetByJWTID retrieves the session backing a token.
	GetByJWTID(ctx context.Context, jwtID string) (*models.Session, error)

	// DeleteByJWTID revokes the session backing a token.
	DeleteByJWTID(ctx context.Context, jwtID string) error

	// DeleteByUserID revokes every session of a user.
	DeleteByUserID(ctx context.Context, userID int64) error

	// DeleteExpired removes expired sessions and returns how many were deleted.
	DeleteExpired(ctx context.Context) (int64, error)

	// IsValidSession reports whether an unexpired session exists for the token.
	IsValidSession(ctx context.Context, jwtID string) (bool, error)
}

// SQLSessionRepository is the database/sql implementation of SessionRepository.
type SQLSessionRepository struct {
	db *database.Pool
}

// NewSessionRepository creates a new SessionRepository.
func NewSessionRepository(db *database.Pool) SessionRepository {
	return &SQLSessionRepository{
		db: db,
	}
}

// Create adds a new session to the database.
func (r *SQLSessionRepository) Create(ctx context.Context, session *models.Session) error {
	startTime := time.Now()

	if session.ID == "" {
		session.ID = uuid.New().String()
	}
	session.ExpiresAt = session.ExpiresAt.UTC()
	session.CreatedAt = session.CreatedAt.UTC()

	query := `
		INSERT INTO sessions (id, user_id, jwt_id, expires_at, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.db.ExecContext(
		ctx,
		r.db.Rebind(query),
		session.ID,
		session.UserID,
		session.JWTID,
		session.ExpiresAt,
		session.CreatedAt,
	)

	utils.LogDBQuery(
		query,
		[]interface{}{session.ID, session.UserID, session.JWTID, session.ExpiresAt, session.CreatedAt},
		time.Since(startTime),
		err,
	)

	if err != nil {
		if utils.IsUniqueViolation(err) {
			return utils.NewDuplicateError("Session", "jwt_id", session.JWTID)
		}
		return fmt.Errorf("failed to create session: %w", err)
	}

	log.Debug().
		Str("session_id", session.ID).
		Int64("user_id", session.UserID).
		Time("expires_at", session.ExpiresAt).
		Msg("Session created")

	return nil
}

// GetByJWTID retrieves a session by its JWT ID.
func (r *SQLSessionRepository) GetByJWTID(ctx context.Context, jwtID string) (*models.Session, error) {
	startTime := time.Now()

	query := `
		SELECT id, user_id, jwt_id, expires_at, created_at
		FROM sessions
		WHERE jwt_id = $1
	`

	session := &models.Session{}
	err := r.db.QueryRowContext(ctx, r.db.Rebind(query), jwtID).Scan(
		&session.ID,
		&session.UserID,
		&session.JWTID,
		&session.ExpiresAt,
		&session.CreatedAt,
	)

	utils.LogDBQuery(query, []interface{}{jwtID}, time.Since(startTime), err)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, utils.NewNotFoundError("Session", "token")
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	return session, nil
}

// DeleteByJWTID deletes the session for a token. A missing session is a not found error.
func (r *SQLSessionRepository) DeleteByJWTID(ctx context.Context, jwtID string) error {
	startTime := time.Now()

	query := `DELETE FROM sessions WHERE jwt_id = $1`

	result, err := r.db.ExecContext(ctx, r.db.Rebind(query), jwtID)

	utils.LogDBQuery(query, []interface{}{jwtID}, time.Since(startTime), err)

	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return utils.NewNotFoundError("Session", "token")
	}

	return nil
}

// DeleteByUserID deletes all sessions for a user.
func (r *SQLSessionRepository) DeleteByUserID(ctx context.Context, userID int64) error {
	startTime := time.Now()

	query := `DELETE FROM sessions WHERE user_id = $1`

	result, err := r.db.ExecContext(ctx, r.db.Rebind(query), userID)

	utils.LogDBQuery(query, []interface{}{userID}, time.Since(startTime), err)

	if err != nil {
		return fmt.Errorf("failed to delete user sessions: %w", err)
	}

	if count, err := result.RowsAffected(); err == nil {
		log.Info().
			Int64("user_id", userID).
			Int64("count", count).
			Msg("User sessions deleted")
	}

	return nil
}

// DeleteExpired deletes all expired sessions.
func (r *SQLSessionRepository) DeleteExpired(ctx context.Context) (int64, error) {
	startTime := time.Now()

	query := `DELETE FROM sessions WHERE expires_at < $1`

	cutoff := now()
	result, err := r.db.ExecContext(ctx, r.db.Rebind(query), cutoff)

	utils.LogDBQuery(query, []interface{}{cutoff}, time.Since(startTime), err)

	if err != nil {
		return 0, fmt.Errorf("failed to delete expired sessions: %w", err)
	}

	count, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}

	log.Info().
		Int64("count", count).
		Msg("Expired sessions deleted")

	return count, nil
}

// IsValidSession checks if a session with the given JWT ID exists and is not expired.
func (r *SQLSessionRepository) IsValidSession(ctx context.Context, jwtID string) (bool, error) {
	startTime := time.Now()

	query := `SELECT COUNT(*) FROM sessions WHERE jwt_id = $1 AND expires_at > $2`

	cutoff := now()
	var count int
	err := r.db.QueryRowContext(ctx, r.db.Rebind(query), jwtID, cutoff).Scan(&count)

	utils.LogDBQuery(query, []interface{}{jwtID, cutoff}, time.Since(startTime), err)

	if err != nil {
		return false, fmt.Errorf("failed to check session validity: %w", err)
	}

	return count > 0, nil
}

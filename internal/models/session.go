package models

import (
	"time"

	"github.com/yasinhessnawi1/BotAnnotator_Backend/internal/constants"
)

// Session represents a user authentication session.
// It is used to track active JWT tokens and enable logout functionality.
type Session struct {
	// ID is the unique identifier for this session
	ID string `json:"id" db:"id"`

	// UserID references the user who owns this session
	UserID int64 `json:"user_id" db:"user_id"`

	// JWTID is the jti claim of the token this session backs
	JWTID string `json:"jwt_id" db:"jwt_id"`

	// ExpiresAt defines when this session will automatically expire
	ExpiresAt time.Time `json:"expires_at" db:"expires_at"`

	// CreatedAt records when this session was initiated
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// TableName returns the database table name for the Session model.
func (s *Session) TableName() string {
	return constants.TableSessions
}

// NewSession creates a new Session expiring after expiryDuration.
// The ID is assigned when the session is stored.
func NewSession(userID int64, jwtID string, expiryDuration time.Duration) *Session {
	now := time.Now()
	return &Session{
		UserID:    userID,
		JWTID:     jwtID,
		ExpiresAt: now.Add(expiryDuration),
		CreatedAt: now,
	}
}

// IsExpired checks if the session has expired.
func (s *Session) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}

// Package models defines the records stored by the annotation backend and the
// request and response shapes exchanged over HTTP.
package models

import (
	"time"

	"github.com/yasinhessnawi1/BotAnnotator_Backend/internal/constants"
)

// User represents a registered annotator.
type User struct {
	ID           int64     `json:"id" db:"id"`
	Username     string    `json:"username" db:"username"`
	PasswordHash string    `json:"-" db:"password_hash"`
	Salt         string    `json:"-" db:"salt"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// NewUser creates a new User with the given username.
// Password fields are populated later during registration.
func NewUser(username string) *User {
	now := time.Now()
	return &User{
		Username:  username,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// TableName returns the database table name for the User model.
func (u *User) TableName() string {
	return constants.TableUsers
}

// Sanitize returns a copy of the user without credential material.
func (u *User) Sanitize() *User {
	sanitized := *u
	sanitized.PasswordHash = ""
	sanitized.Salt = ""
	return &sanitized
}

// UserCredentials are the login inputs. Password policy is not checked here
// so a failed login never reveals it.
type UserCredentials struct {
	Username string `json:"username" form:"username" validate:"required"`
	Password string `json:"password" form:"password" validate:"required"`
}

// UserRegistration represents the data required for user registration.
type UserRegistration struct {
	Username string `json:"username" form:"username" validate:"required,min=3,max=50,username"`
	Password string `json:"password" form:"password" validate:"required,min=6"`
}

// LoginResponse is returned on a successful login.
type LoginResponse struct {
	Token     string `json:"token"`
	Username  string `json:"username"`
	TokenType string `json:"token_type"`
	ExpiresIn int64  `json:"expires_in"`
}

// MessageResponse carries a single human-readable confirmation.
type MessageResponse struct {
	Message string `json:"message"`
}

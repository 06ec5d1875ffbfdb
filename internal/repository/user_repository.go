package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/yasinhessnawi1/BotAnnotator_Backend/internal/database"
	"github.com/yasinhessnawi1/BotAnnotator_Backend/internal/models"
	"github.com/yasinhessnawi1/BotAnnotator_Backend/internal/utils"
)

// UserRepository defines methods for interacting with user data
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
}

// SQLUserRepository is the database/sql implementation of UserRepository
type SQLUserRepository struct {
	db *database.Pool
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *database.Pool) UserRepository {
	return &SQLUserRepository{
		db: db,
	}
}

// Create adds a new user. A taken username yields a duplicate error.
func (r *SQLUserRepository) Create(ctx context.Context, user *models.User) error {
	startTime := time.Now()

	user.CreatedAt = now()
	user.UpdatedAt = user.CreatedAt

	query := `
        INSERT INTO users (username, password_hash, salt, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id
    `

	err := r.db.QueryRowContext(
		ctx,
		r.db.Rebind(query),
		user.Username,
		user.PasswordHash,
		user.Salt,
		user.CreatedAt,
		user.UpdatedAt,
	).Scan(&user.ID)

	utils.LogDBQuery(
		query,
		[]interface{}{user.Username, user.PasswordHash, user.Salt, user.CreatedAt, user.UpdatedAt},
		time.Since(startTime),
		err,
	)

	if err != nil {
		if utils.IsUniqueViolation(err) {
			return utils.NewDuplicateError("User", "username", user.Username)
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	log.Info().
		Int64("user_id", user.ID).
		Str("username", user.Username).
		Msg("User created")

	return nil
}

// GetByID retrieves a user by ID
func (r *SQLUserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	query := `
        SELECT id, username, password_hash, salt, created_at, updated_at
        FROM users
        WHERE id = $1
    `
	return r.getOne(ctx, query, "id", id)
}

// GetByUsername retrieves a user by username
func (r *SQLUserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	query := `
        SELECT id, username, password_hash, salt, created_at, updated_at
        FROM users
        WHERE username = $1
    `
	return r.getOne(ctx, query, "username", username)
}

func (r *SQLUserRepository) getOne(ctx context.Context, query, field string, arg interface{}) (*models.User, error) {
	startTime := time.Now()

	user := &models.User{}
	err := r.db.QueryRowContext(ctx, r.db.Rebind(query), arg).Scan(
		&user.ID,
		&user.Username,
		&user.PasswordHash,
		&user.Salt,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	utils.LogDBQuery(query, []interface{}{arg}, time.Since(startTime), err)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, utils.NewNotFoundError("User", arg)
		}
		return nil, fmt.Errorf("failed to get user by %s: %w", field, err)
	}

	return user, nil
}

// ExistsByUsername checks if a username is already taken
func (r *SQLUserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	startTime := time.Now()

	query := `SELECT COUNT(*) FROM users WHERE username = $1`

	var count int
	err := r.db.QueryRowContext(ctx, r.db.Rebind(query), username).Scan(&count)

	utils.LogDBQuery(query, []interface{}{username}, time.Since(startTime), err)

	if err != nil {
		return false, fmt.Errorf("failed to check username existence: %w", err)
	}

	return count > 0, nil
}

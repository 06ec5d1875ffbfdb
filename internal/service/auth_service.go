// Package service provides business logic implementations.
package service

import (
	"context"
	"fmt"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/yasinhessnawi1/BotAnnotator_Backend/internal/auth"
	"github.com/yasinhessnawi1/BotAnnotator_Backend/internal/constants"
	"github.com/yasinhessnawi1/BotAnnotator_Backend/internal/models"
	"github.com/yasinhessnawi1/BotAnnotator_Backend/internal/repository"
	"github.com/yasinhessnawi1/BotAnnotator_Backend/internal/utils"
)

// AuthService handles authentication operations
type AuthService struct {
	userRepo    repository.UserRepository
	sessionRepo repository.SessionRepository
	jwtService  *auth.JWTService
	passwordCfg *auth.PasswordConfig
}

// NewAuthService creates a new AuthService
func NewAuthService(
	userRepo repository.UserRepository,
	sessionRepo repository.SessionRepository,
	jwtService *auth.JWTService,
	passwordCfg *auth.PasswordConfig,
) *AuthService {
	if passwordCfg == nil {
		passwordCfg = auth.DefaultPasswordConfig()
	}
	return &AuthService{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		jwtService:  jwtService,
		passwordCfg: passwordCfg,
	}
}

// RegisterUser creates a new user account. A taken username is reported as a
// conflict with status 400, which is what the dashboard expects.
func (s *AuthService) RegisterUser(ctx context.Context, reg *models.UserRegistration) (*models.User, error) {
	exists, err := s.userRepo.ExistsByUsername(ctx, reg.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to check username existence: %w", err)
	}
	if exists {
		utils.LogAuth("register_failed", "0", reg.Username, false, "username taken")
		return nil, utils.NewConflictError(http.StatusBadRequest, constants.MsgUsernameExists)
	}

	passwordHash, salt, err := auth.HashPassword(reg.Password, s.passwordCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.NewUser(reg.Username)
	user.PasswordHash = passwordHash
	user.Salt = salt

	if err := s.userRepo.Create(ctx, user); err != nil {
		// lost a race with a concurrent registration
		if utils.IsDuplicateError(err) {
			return nil, utils.NewConflictError(http.StatusBadRequest, constants.MsgUsernameExists)
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	utils.LogAuth("register_success", utils.FormatInt64(user.ID), user.Username, true, "")

	return user.Sanitize(), nil
}

// AuthenticateUser verifies user credentials, opens a session and returns its token.
func (s *AuthService) AuthenticateUser(ctx context.Context, creds *models.UserCredentials) (*models.LoginResponse, error) {
	user, err := s.userRepo.GetByUsername(ctx, creds.Username)
	if err != nil {
		if utils.IsNotFoundError(err) {
			utils.LogAuth("login_failed", "0", creds.Username, false, "user not found")
			return nil, utils.NewInvalidCredentialsError()
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	match, err := auth.VerifyPassword(creds.Password, user.PasswordHash, user.Salt)
	if err != nil {
		return nil, fmt.Errorf("failed to verify password: %w", err)
	}
	if !match {
		utils.LogAuth("login_failed", utils.FormatInt64(user.ID), user.Username, false, "invalid password")
		return nil, utils.NewInvalidCredentialsError()
	}

	token, jwtID, err := s.jwtService.GenerateAccessToken(user.ID, user.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	expiry := s.jwtService.GetConfig().Expiry
	session := models.NewSession(user.ID, jwtID, expiry)
	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	utils.LogAuth("login_success", utils.FormatInt64(user.ID), user.Username, true, "")

	return &models.LoginResponse{
		Token:     token,
		Username:  user.Username,
		TokenType: constants.TokenTypeBearer,
		ExpiresIn: int64(expiry.Seconds()),
	}, nil
}

// Logout revokes the session behind a token. An already revoked session is not an error.
func (s *AuthService) Logout(ctx context.Context, jwtID string) error {
	if err := s.sessionRepo.DeleteByJWTID(ctx, jwtID); err != nil {
		if utils.IsNotFoundError(err) {
			return nil
		}
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// LogoutAll invalidates all of a user's sessions
func (s *AuthService) LogoutAll(ctx context.Context, userID int64) error {
	if err := s.sessionRepo.DeleteByUserID(ctx, userID); err != nil {
		return fmt.Errorf("failed to delete user sessions: %w", err)
	}
	return nil
}

// CleanupExpiredSessions removes expired sessions from the database
func (s *AuthService) CleanupExpiredSessions(ctx context.Context) (int64, error) {
	count, err := s.sessionRepo.DeleteExpired(ctx)
	if err != nil {
		return 0, err
	}
	if count > 0 {
		log.Info().Int64("count", count).Msg("Expired sessions removed")
	}
	return count, nil
}

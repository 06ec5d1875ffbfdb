package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	"github.com/yasinhessnawi1/BotAnnotator_Backend/internal/config"
	"github.com/yasinhessnawi1/BotAnnotator_Backend/internal/constants"
	"github.com/yasinhessnawi1/BotAnnotator_Backend/internal/utils"
)

// ErrInvalidSigningMethod is returned by the key func for non-HMAC tokens.
var ErrInvalidSigningMethod = errors.New("invalid signing method")

// CustomClaims represents the claims in a JWT token.
// The registered ID (jti) is the key of the server-side session row.
type CustomClaims struct {
	UserID    int64  `json:"user_id"`
	Username  string `json:"username"`
	TokenType string `json:"token_type"`
	jwt.RegisteredClaims
}

// JWTValidator defines the interface for JWT validation
type JWTValidator interface {
	ValidateToken(tokenString string, expectedType string) (*CustomClaims, error)
}

// JWTService provides JWT token generation and validation functionality
type JWTService struct {
	Config *config.JWTSettings
}

// NewJWTService creates a new JWTService instance
func NewJWTService(cfg *config.JWTSettings) *JWTService {
	return &JWTService{
		Config: cfg,
	}
}

// GetConfig returns the JWT settings, falling back to defaults when unset.
func (s *JWTService) GetConfig() *config.JWTSettings {
	if s.Config == nil {
		return &config.JWTSettings{
			Expiry: constants.DefaultJWTExpiry,
			Issuer: constants.DefaultJWTIssuer,
		}
	}
	return s.Config
}

// GenerateAccessToken generates a new access token for a user.
// It returns the signed token and its JWT ID.
func (s *JWTService) GenerateAccessToken(userID int64, username string) (string, string, error) {
	cfg := s.GetConfig()
	jwtID := uuid.New().String()

	now := time.Now()
	claims := CustomClaims{
		UserID:    userID,
		Username:  username,
		TokenType: constants.TokenTypeAccess,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    cfg.Issuer,
			Subject:   strconv.FormatInt(userID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(cfg.Expiry)),
			NotBefore: jwt.NewNumericDate(now),
			ID:        jwtID,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString([]byte(cfg.Secret))
	if err != nil {
		return "", "", fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, jwtID, nil
}

// ValidateToken validates a JWT token and returns its claims if valid
func (s *JWTService) ValidateToken(tokenString string, expectedType string) (*CustomClaims, error) {
	cfg := s.GetConfig()

	token, err := jwt.ParseWithClaims(tokenString, &CustomClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidSigningMethod
		}
		return []byte(cfg.Secret), nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, utils.NewExpiredTokenError()
		}
		return nil, utils.NewInvalidTokenError()
	}

	claims, ok := token.Claims.(*CustomClaims)
	if !ok || !token.Valid {
		return nil, utils.NewInvalidTokenError()
	}

	if claims.TokenType != expectedType || claims.ID == "" {
		return nil, utils.NewInvalidTokenError()
	}

	if cfg.Issuer != "" && claims.Issuer != cfg.Issuer {
		return nil, utils.NewInvalidTokenError()
	}

	return claims, nil
}

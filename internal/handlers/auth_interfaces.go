// Package handlers provides the HTTP request handlers of the annotation API.
package handlers

import (
	"context"
	"io"

	"github.com/yasinhessnawi1/BotAnnotator_Backend/internal/dataset"
	"github.com/yasinhessnawi1/BotAnnotator_Backend/internal/models"
)

// AuthServiceInterface defines the methods required from the authentication service.
type AuthServiceInterface interface {
	// RegisterUser creates an account. A taken username is a conflict.
	RegisterUser(ctx context.Context, reg *models.UserRegistration) (*models.User, error)

	// AuthenticateUser checks the credentials and opens a session.
	AuthenticateUser(ctx context.Context, creds *models.UserCredentials) (*models.LoginResponse, error)

	// Logout revokes the session identified by the token's JWT ID.
	Logout(ctx context.Context, jwtID string) error

	// LogoutAll revokes every session of a user.
	LogoutAll(ctx context.Context, userID int64) error
}

// BotServiceInterface defines the methods required from the bot service.
type BotServiceInterface interface {
	CreateBot(ctx context.Context, name, owner, filename string, content io.Reader) (int64, error)
	ListBots(ctx context.Context, owner string) ([]models.BotSummary, error)
	PreviewDataset(ctx context.Context, botID int64) ([]dataset.Record, error)
}

// AnnotationServiceInterface defines the methods required from the annotation service.
type AnnotationServiceInterface interface {
	Annotate(ctx context.Context, sentence string, botID int64) (*models.AnnotateResponse, error)
	SaveAnnotation(ctx context.Context, req *models.SaveAnnotationRequest) (*models.Annotation, error)
	ListAnnotations(ctx context.Context, botID int64) ([]*models.Annotation, error)
}

// TrainingServiceInterface defines the methods required from the training service.
type TrainingServiceInterface interface {
	TrainBot(ctx context.Context, botID int64) (*models.TrainingSummary, error)
	TestBot(ctx context.Context, botID int64, message string) (*models.TestBotResponse, error)
}

// HealthChecker reports whether the database answers.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

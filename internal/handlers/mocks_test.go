package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/yasinhessnawi1/BotAnnotator_Backend/internal/auth"
	"github.com/yasinhessnawi1/BotAnnotator_Backend/internal/dataset"
	"github.com/yasinhessnawi1/BotAnnotator_Backend/internal/models"
	"github.com/yasinhessnawi1/BotAnnotator_Backend/internal/utils"
)

// Mock AuthService that implements the interface methods required by AuthHandler
type MockAuthService struct {
	RegisterUserFunc     func(ctx context.Context, reg *models.UserRegistration) (*models.User, error)
	AuthenticateUserFunc func(ctx context.Context, creds *models.UserCredentials) (*models.LoginResponse, error)
	LogoutFunc           func(ctx context.Context, jwtID string) error
	LogoutAllFunc        func(ctx context.Context, userID int64) error
}

func (m *MockAuthService) RegisterUser(ctx context.Context, reg *models.UserRegistration) (*models.User, error) {
	if m.RegisterUserFunc != nil {
		return m.RegisterUserFunc(ctx, reg)
	}
	return &models.User{ID: 1, Username: reg.Username}, nil
}

func (m *MockAuthService) AuthenticateUser(ctx context.Context, creds *models.UserCredentials) (*models.LoginResponse, error) {
	if m.AuthenticateUserFunc != nil {
		return m.AuthenticateUserFunc(ctx, creds)
	}
	return &models.LoginResponse{Token: "token", Username: creds.Username, TokenType: "Bearer", ExpiresIn: 900}, nil
}

func (m *MockAuthService) Logout(ctx context.Context, jwtID string) error {
	if m.LogoutFunc != nil {
		return m.LogoutFunc(ctx, jwtID)
	}
	return nil
}

func (m *MockAuthService) LogoutAll(ctx context.Context, userID int64) error {
	if m.LogoutAllFunc != nil {
		return m.LogoutAllFunc(ctx, userID)
	}
	return nil
}

type MockBotService struct {
	CreateBotFunc      func(ctx context.Context, name, owner, filename string, content io.Reader) (int64, error)
	ListBotsFunc       func(ctx context.Context, owner string) ([]models.BotSummary, error)
	PreviewDatasetFunc func(ctx context.Context, botID int64) ([]dataset.Record, error)
}

func (m *MockBotService) CreateBot(ctx context.Context, name, owner, filename string, content io.Reader) (int64, error) {
	if m.CreateBotFunc != nil {
		return m.CreateBotFunc(ctx, name, owner, filename, content)
	}
	return 1, nil
}

func (m *MockBotService) ListBots(ctx context.Context, owner string) ([]models.BotSummary, error) {
	if m.ListBotsFunc != nil {
		return m.ListBotsFunc(ctx, owner)
	}
	return []models.BotSummary{}, nil
}

func (m *MockBotService) PreviewDataset(ctx context.Context, botID int64) ([]dataset.Record, error) {
	if m.PreviewDatasetFunc != nil {
		return m.PreviewDatasetFunc(ctx, botID)
	}
	return []dataset.Record{}, nil
}

type MockAnnotationService struct {
	AnnotateFunc        func(ctx context.Context, sentence string, botID int64) (*models.AnnotateResponse, error)
	SaveAnnotationFunc  func(ctx context.Context, req *models.SaveAnnotationRequest) (*models.Annotation, error)
	ListAnnotationsFunc func(ctx context.Context, botID int64) ([]*models.Annotation, error)
}

func (m *MockAnnotationService) Annotate(ctx context.Context, sentence string, botID int64) (*models.AnnotateResponse, error) {
	if m.AnnotateFunc != nil {
		return m.AnnotateFunc(ctx, sentence, botID)
	}
	return &models.AnnotateResponse{Intent: "Unknown", Entities: models.EntityList{}}, nil
}

func (m *MockAnnotationService) SaveAnnotation(ctx context.Context, req *models.SaveAnnotationRequest) (*models.Annotation, error) {
	if m.SaveAnnotationFunc != nil {
		return m.SaveAnnotationFunc(ctx, req)
	}
	a := req.ToAnnotation()
	a.ID = 1
	return a, nil
}

func (m *MockAnnotationService) ListAnnotations(ctx context.Context, botID int64) ([]*models.Annotation, error) {
	if m.ListAnnotationsFunc != nil {
		return m.ListAnnotationsFunc(ctx, botID)
	}
	return []*models.Annotation{}, nil
}

type MockTrainingService struct {
	TrainBotFunc func(ctx context.Context, botID int64) (*models.TrainingSummary, error)
	TestBotFunc  func(ctx context.Context, botID int64, message string) (*models.TestBotResponse, error)
}

func (m *MockTrainingService) TrainBot(ctx context.Context, botID int64) (*models.TrainingSummary, error) {
	if m.TrainBotFunc != nil {
		return m.TrainBotFunc(ctx, botID)
	}
	return &models.TrainingSummary{BotID: botID}, nil
}

func (m *MockTrainingService) TestBot(ctx context.Context, botID int64, message string) (*models.TestBotResponse, error) {
	if m.TestBotFunc != nil {
		return m.TestBotFunc(ctx, botID, message)
	}
	return &models.TestBotResponse{}, nil
}

type MockHealthChecker struct {
	HealthCheckFunc func(ctx context.Context) error
}

func (m *MockHealthChecker) HealthCheck(ctx context.Context) error {
	if m.HealthCheckFunc != nil {
		return m.HealthCheckFunc(ctx)
	}
	return nil
}

// asUser attaches an authenticated identity to the request.
func asUser(r *http.Request, username string) *http.Request {
	return r.WithContext(auth.WithIdentity(r.Context(), &auth.Identity{
		UserID:   1,
		Username: username,
		JWTID:    "jwt-" + username,
	}))
}

// decodeResponse unwraps the standard envelope.
func decodeResponse(t *testing.T, rr *httptest.ResponseRecorder) utils.Response {
	t.Helper()
	var resp utils.Response
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to decode response %q: %v", rr.Body.String(), err)
	}
	return resp
}

// decodeData re-decodes the envelope's data field into v.
func decodeData(t *testing.T, rr *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("Failed to decode response %q: %v", rr.Body.String(), err)
	}
	if err := json.Unmarshal(envelope.Data, v); err != nil {
		t.Fatalf("Failed to decode data %q: %v", envelope.Data, err)
	}
}

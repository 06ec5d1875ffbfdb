package service

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/yasinhessnawi1/BotAnnotator_Backend/internal/models"
	"github.com/yasinhessnawi1/BotAnnotator_Backend/internal/utils"
)

// Mock implementations for testing
type MockUserRepository struct {
	users           map[int64]*models.User
	usersByUsername map[string]*models.User
	nextID          int64

	// createErr is returned by Create when set
	createErr error
}

func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		users:           make(map[int64]*models.User),
		usersByUsername: make(map[string]*models.User),
		nextID:          1,
	}
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	if m.createErr != nil {
		return m.createErr
	}
	if _, ok := m.usersByUsername[user.Username]; ok {
		return utils.NewDuplicateError("User", "username", user.Username)
	}

	user.ID = m.nextID
	m.nextID++

	m.users[user.ID] = user
	m.usersByUsername[user.Username] = user

	return nil
}

func (m *MockUserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	user, ok := m.users[id]
	if !ok {
		return nil, utils.NewNotFoundError("User", id)
	}
	return user, nil
}

func (m *MockUserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	user, ok := m.usersByUsername[username]
	if !ok {
		return nil, utils.NewNotFoundError("User", username)
	}
	return user, nil
}

func (m *MockUserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	_, ok := m.usersByUsername[username]
	return ok, nil
}

type MockSessionRepository struct {
	sessionsByJWTID map[string]*models.Session
}

func NewMockSessionRepository() *MockSessionRepository {
	return &MockSessionRepository{
		sessionsByJWTID: make(map[string]*models.Session),
	}
}

func (m *MockSessionRepository) Create(ctx context.Context, session *models.Session) error {
	if session.ID == "" {
		session.ID = uuid.New().String()
	}
	m.sessionsByJWTID[session.JWTID] = session
	return nil
}

func (m *MockSessionRepository) GetByJWTID(ctx context.Context, jwtID string) (*models.Session, error) {
	session, ok := m.sessionsByJWTID[jwtID]
	if !ok {
		return nil, utils.NewNotFoundError("Session", jwtID)
	}
	return session, nil
}

func (m *MockSessionRepository) DeleteByJWTID(ctx context.Context, jwtID string) error {
	if _, ok := m.sessionsByJWTID[jwtID]; !ok {
		return utils.NewNotFoundError("Session", jwtID)
	}
	delete(m.sessionsByJWTID, jwtID)
	return nil
}

func (m *MockSessionRepository) DeleteByUserID(ctx context.Context, userID int64) error {
	for jwtID, session := range m.sessionsByJWTID {
		if session.UserID == userID {
			delete(m.sessionsByJWTID, jwtID)
		}
	}
	return nil
}

func (m *MockSessionRepository) DeleteExpired(ctx context.Context) (int64, error) {
	var count int64
	now := time.Now()
	for jwtID, session := range m.sessionsByJWTID {
		if session.ExpiresAt.Before(now) {
			delete(m.sessionsByJWTID, jwtID)
			count++
		}
	}
	return count, nil
}

func (m *MockSessionRepository) IsValidSession(ctx context.Context, jwtID string) (bool, error) {
	session, ok := m.sessionsByJWTID[jwtID]
	return ok && !session.IsExpired(), nil
}

type MockDatasetRepository struct {
	datasetsByBot map[int64]*models.Dataset
	nextID        int64

	// getErr is returned by GetByBotID when set
	getErr error
}

func NewMockDatasetRepository() *MockDatasetRepository {
	return &MockDatasetRepository{
		datasetsByBot: make(map[int64]*models.Dataset),
		nextID:        1,
	}
}

func (m *MockDatasetRepository) Create(ctx context.Context, dataset *models.Dataset) error {
	dataset.ID = m.nextID
	m.nextID++
	if _, ok := m.datasetsByBot[dataset.BotID]; !ok {
		m.datasetsByBot[dataset.BotID] = dataset
	}
	return nil
}

func (m *MockDatasetRepository) GetByBotID(ctx context.Context, botID int64) (*models.Dataset, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	ds, ok := m.datasetsByBot[botID]
	if !ok {
		return nil, utils.NewNotFoundError("Dataset", botID)
	}
	return ds, nil
}

// MockBotRepository stores datasets through the dataset mock so both services
// see the same rows, mimicking the shared transaction.
type MockBotRepository struct {
	bots     map[int64]*models.Bot
	datasets *MockDatasetRepository
	nextID   int64
}

func NewMockBotRepository(datasets *MockDatasetRepository) *MockBotRepository {
	return &MockBotRepository{
		bots:     make(map[int64]*models.Bot),
		datasets: datasets,
		nextID:   1,
	}
}

func (m *MockBotRepository) CreateWithDataset(ctx context.Context, bot *models.Bot, dataset *models.Dataset, beforeCommit func(botID int64) error) error {
	id := m.nextID
	if beforeCommit != nil {
		if err := beforeCommit(id); err != nil {
			return err
		}
	}

	m.nextID++
	bot.ID = id
	dataset.BotID = id
	m.bots[id] = bot
	return m.datasets.Create(ctx, dataset)
}

func (m *MockBotRepository) GetByID(ctx context.Context, id int64) (*models.Bot, error) {
	bot, ok := m.bots[id]
	if !ok {
		return nil, utils.NewNotFoundError("Bot", id)
	}
	return bot, nil
}

func (m *MockBotRepository) ListByOwner(ctx context.Context, owner string) ([]models.BotSummary, error) {
	var summaries []models.BotSummary
	for _, bot := range m.bots {
		if bot.OwnerUsername == owner {
			summaries = append(summaries, models.BotSummary{ID: bot.ID, Name: bot.Name})
		}
	}
	sort.Slice(summaries, func(i, j int) bool { return summaries[i].ID < summaries[j].ID })
	return summaries, nil
}

type MockAnnotationRepository struct {
	annotations []*models.Annotation
	nextID      int64
}

func NewMockAnnotationRepository() *MockAnnotationRepository {
	return &MockAnnotationRepository{nextID: 1}
}

func (m *MockAnnotationRepository) Create(ctx context.Context, annotation *models.Annotation) error {
	if annotation.BotID == nil && annotation.WorkspaceName == nil {
		return errors.New("annotation has no target")
	}
	annotation.ID = m.nextID
	m.nextID++
	m.annotations = append(m.annotations, annotation)
	return nil
}

func (m *MockAnnotationRepository) ListByBotID(ctx context.Context, botID int64) ([]*models.Annotation, error) {
	var result []*models.Annotation
	for _, a := range m.annotations {
		if a.BotID != nil && *a.BotID == botID {
			result = append(result, a)
		}
	}
	return result, nil
}

package service

import (
	"context"
	"errors"
	"net/http"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/yasinhessnawi1/BotAnnotator_Backend/internal/constants"
	"github.com/yasinhessnawi1/BotAnnotator_Backend/internal/dataset"
	"github.com/yasinhessnawi1/BotAnnotator_Backend/internal/models"
	"github.com/yasinhessnawi1/BotAnnotator_Backend/internal/nlp"
	"github.com/yasinhessnawi1/BotAnnotator_Backend/internal/repository"
	"github.com/yasinhessnawi1/BotAnnotator_Backend/internal/utils"
)

// TrainingService builds retrieval models from bot datasets and keeps the
// latest model of each bot in memory.
type TrainingService struct {
	loader *datasetLoader

	mu     sync.RWMutex
	models map[int64]*nlp.RetrievalModel
}

// NewTrainingService creates a new TrainingService.
func NewTrainingService(datasetRepo repository.DatasetRepository, store *dataset.Store, cache *dataset.Cache) *TrainingService {
	return &TrainingService{
		loader: &datasetLoader{datasets: datasetRepo, store: store, cache: cache},
		models: make(map[int64]*nlp.RetrievalModel),
	}
}

// TrainBot builds a model from the bot's dataset, replacing any earlier one.
// Answers come from the first of the answer, response and intent columns;
// without any of them each question answers itself.
func (s *TrainingService) TrainBot(ctx context.Context, botID int64) (*models.TrainingSummary, error) {
	_, table, err := s.loader.load(ctx, botID)
	switch {
	case errors.Is(err, errNoDatasetRecord):
		return nil, utils.NewNotFoundMessage(constants.MsgDatasetNotFoundForBot)
	case errors.Is(err, errDatasetFileGone):
		return nil, utils.NewNotFoundMessage(constants.MsgDatasetFileMissing)
	case errors.Is(err, dataset.ErrMalformed):
		return nil, utils.NewValidationError(constants.FormFieldFile, constants.MsgCouldNotReadCSV)
	case err != nil:
		return nil, err
	}

	if table.Len() == 0 {
		return nil, utils.NewValidationError(constants.FormFieldFile, constants.MsgEmptyDataset)
	}

	questions, _, ok := table.LookupColumn(constants.ColumnQuestion, constants.ColumnSentence)
	if !ok {
		return nil, utils.NewValidationError(constants.FormFieldFile, constants.MsgMissingTextColumn)
	}
	answers, answerColumn, _ := table.LookupColumn(constants.ColumnAnswer, constants.ColumnResponse, constants.ColumnIntent)

	model, err := nlp.TrainRetrievalModel(questions, answers)
	if err != nil {
		if errors.Is(err, nlp.ErrNoExamples) {
			return nil, utils.NewValidationError(constants.FormFieldFile, constants.MsgNoTrainingExamples)
		}
		return nil, err
	}

	s.mu.Lock()
	s.models[botID] = model
	s.mu.Unlock()

	summary := &models.TrainingSummary{
		BotID:      botID,
		Examples:   model.Examples(),
		Vocabulary: model.Vocabulary(),
		Accuracy:   model.Accuracy(),
	}

	log.Info().
		Int64("bot_id", botID).
		Str("answer_column", answerColumn).
		Int("examples", summary.Examples).
		Int("vocabulary", summary.Vocabulary).
		Float64("accuracy", summary.Accuracy).
		Msg("Bot trained")

	return summary, nil
}

// TestBot answers message with the bot's trained model.
func (s *TrainingService) TestBot(_ context.Context, botID int64, message string) (*models.TestBotResponse, error) {
	s.mu.RLock()
	model, ok := s.models[botID]
	s.mu.RUnlock()
	if !ok {
		return nil, utils.NewConflictError(http.StatusConflict, constants.MsgBotNotTrained)
	}

	match := model.Answer(message)
	return &models.TestBotResponse{
		Answer:          match.Answer,
		MatchedQuestion: match.Question,
		Score:           match.Score,
	}, nil
}

// IsTrained reports whether a model is loaded for the bot.
func (s *TrainingService) IsTrained(botID int64) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.models[botID]
	return ok
}

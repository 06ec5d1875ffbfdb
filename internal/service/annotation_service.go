package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/yasinhessnawi1/BotAnnotator_Backend/internal/constants"
	"github.com/yasinhessnawi1/BotAnnotator_Backend/internal/dataset"
	"github.com/yasinhessnawi1/BotAnnotator_Backend/internal/models"
	"github.com/yasinhessnawi1/BotAnnotator_Backend/internal/nlp"
	"github.com/yasinhessnawi1/BotAnnotator_Backend/internal/repository"
	"github.com/yasinhessnawi1/BotAnnotator_Backend/internal/utils"
)

// AnnotationService suggests intents and entities for sentences and stores
// the labels annotators confirm.
type AnnotationService struct {
	annotationRepo repository.AnnotationRepository
	loader         *datasetLoader
	recognizer     nlp.EntityRecognizer
	matcher        nlp.IntentMatcher
}

// NewAnnotationService creates a new AnnotationService. A nil matcher selects
// the keyword matcher; a nil recognizer returns no entities.
func NewAnnotationService(
	annotationRepo repository.AnnotationRepository,
	datasetRepo repository.DatasetRepository,
	store *dataset.Store,
	cache *dataset.Cache,
	recognizer nlp.EntityRecognizer,
	matcher nlp.IntentMatcher,
) *AnnotationService {
	if recognizer == nil {
		recognizer = nlp.NoopRecognizer{}
	}
	if matcher == nil {
		matcher = nlp.KeywordMatcher{}
	}
	return &AnnotationService{
		annotationRepo: annotationRepo,
		loader:         &datasetLoader{datasets: datasetRepo, store: store, cache: cache},
		recognizer:     recognizer,
		matcher:        matcher,
	}
}

// Annotate runs the entity recognizer on sentence and picks an intent from the
// bot's dataset questions. It has no side effects.
func (s *AnnotationService) Annotate(ctx context.Context, sentence string, botID int64) (*models.AnnotateResponse, error) {
	_, table, err := s.loader.load(ctx, botID)
	switch {
	case errors.Is(err, errNoDatasetRecord):
		return nil, utils.NewNotFoundMessage(constants.MsgDatasetNotFoundForBot)
	case errors.Is(err, errDatasetFileGone):
		return nil, utils.NewNotFoundMessage(constants.MsgDatasetFileMissing)
	case errors.Is(err, dataset.ErrMalformed):
		return nil, utils.NewValidationError(constants.FormFieldFile, constants.MsgCouldNotReadCSV)
	case err != nil:
		return nil, utils.NewDetailedInternalError(constants.MsgAnnotationFailed, err)
	}

	if table.Len() == 0 {
		return nil, utils.NewValidationError(constants.FormFieldFile, constants.MsgEmptyDataset)
	}

	candidates, column, ok := table.LookupColumn(constants.ColumnQuestion, constants.ColumnSentence)
	if !ok {
		return nil, utils.NewValidationError(constants.FormFieldFile, constants.MsgMissingTextColumn)
	}

	entities, err := s.recognizer.Recognize(ctx, sentence)
	if err != nil {
		return nil, utils.NewDetailedInternalError(constants.MsgAnnotationFailed, err)
	}

	intent := s.matcher.Match(sentence, candidates)

	log.Debug().
		Int64("bot_id", botID).
		Str("column", column).
		Int("candidates", len(candidates)).
		Int("entities", len(entities)).
		Str("intent", intent).
		Msg("Sentence annotated")

	return &models.AnnotateResponse{
		Intent:          intent,
		Entities:        models.EntityList(entities),
		SuggestedIntent: nlp.SuggestIntent(sentence),
	}, nil
}

// SaveAnnotation appends one annotation. Duplicates are allowed.
func (s *AnnotationService) SaveAnnotation(ctx context.Context, req *models.SaveAnnotationRequest) (*models.Annotation, error) {
	annotation := req.ToAnnotation()
	if err := annotation.Validate(); err != nil {
		return nil, err
	}
	if err := s.annotationRepo.Create(ctx, annotation); err != nil {
		return nil, err
	}
	return annotation, nil
}

// ListAnnotations returns a bot's annotations in insertion order.
func (s *AnnotationService) ListAnnotations(ctx context.Context, botID int64) ([]*models.Annotation, error) {
	annotations, err := s.annotationRepo.ListByBotID(ctx, botID)
	if err != nil {
		return nil, err
	}
	if annotations == nil {
		annotations = []*models.Annotation{}
	}
	return annotations, nil
}

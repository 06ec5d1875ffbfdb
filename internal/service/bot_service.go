package service

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/rs/zerolog/log"

	"github.com/yasinhessnawi1/BotAnnotator_Backend/internal/constants"
	"github.com/yasinhessnawi1/BotAnnotator_Backend/internal/dataset"
	"github.com/yasinhessnawi1/BotAnnotator_Backend/internal/models"
	"github.com/yasinhessnawi1/BotAnnotator_Backend/internal/repository"
	"github.com/yasinhessnawi1/BotAnnotator_Backend/internal/utils"
)

// BotService manages bots and the dataset files uploaded with them.
type BotService struct {
	botRepo repository.BotRepository
	loader  *datasetLoader
}

// NewBotService creates a new BotService.
func NewBotService(
	botRepo repository.BotRepository,
	datasetRepo repository.DatasetRepository,
	store *dataset.Store,
	cache *dataset.Cache,
) *BotService {
	return &BotService{
		botRepo: botRepo,
		loader:  &datasetLoader{datasets: datasetRepo, store: store, cache: cache},
	}
}

// CreateBot stores a bot, its dataset row and the uploaded file. The file is
// written inside the transaction so a failed write leaves no rows behind; a
// failed commit leaves the file in place. An existing file with the same name
// is overwritten.
func (s *BotService) CreateBot(ctx context.Context, name, owner, filename string, content io.Reader) (int64, error) {
	if content == nil {
		return 0, utils.NewValidationError(constants.FormFieldFile, "A dataset file is required")
	}

	base, err := dataset.SanitizeFilename(filename)
	if err != nil {
		return 0, utils.NewValidationError(constants.FormFieldFile, "Invalid file name")
	}

	bot := models.NewBot(name, owner)
	ds := models.NewDataset(0, base, owner)

	err = s.botRepo.CreateWithDataset(ctx, bot, ds, func(botID int64) error {
		stored, written, err := s.loader.store.Save(base, content)
		if err != nil {
			return fmt.Errorf("failed to store dataset file: %w", err)
		}
		if path, err := s.loader.store.Path(stored); err == nil {
			s.loader.cache.Invalidate(path)
		}
		log.Debug().
			Int64("bot_id", botID).
			Str("filename", stored).
			Int64("bytes", written).
			Msg("Dataset file stored")
		return nil
	})
	if err != nil {
		return 0, err
	}

	return bot.ID, nil
}

// ListBots returns the bots owned by owner. An empty owner has no bots.
func (s *BotService) ListBots(ctx context.Context, owner string) ([]models.BotSummary, error) {
	if owner == "" {
		return []models.BotSummary{}, nil
	}
	bots, err := s.botRepo.ListByOwner(ctx, owner)
	if err != nil {
		return nil, err
	}
	if bots == nil {
		bots = []models.BotSummary{}
	}
	return bots, nil
}

// PreviewDataset returns the first rows of a bot's dataset in file order.
func (s *BotService) PreviewDataset(ctx context.Context, botID int64) ([]dataset.Record, error) {
	_, table, err := s.loader.load(ctx, botID)
	switch {
	case errors.Is(err, errNoDatasetRecord):
		return nil, utils.NewNotFoundMessage(constants.MsgDatasetNotFound)
	case errors.Is(err, errDatasetFileGone):
		return nil, utils.NewNotFoundMessage(constants.MsgFileNotFound)
	case errors.Is(err, dataset.ErrMalformed):
		return nil, utils.NewValidationError(constants.FormFieldFile, constants.MsgCouldNotReadCSV)
	case err != nil:
		return nil, err
	}

	return table.Preview(constants.DatasetPreviewRows), nil
}

package service

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"github.com/yasinhessnawi1/BotAnnotator_Backend/internal/dataset"
	"github.com/yasinhessnawi1/BotAnnotator_Backend/internal/models"
	"github.com/yasinhessnawi1/BotAnnotator_Backend/internal/repository"
	"github.com/yasinhessnawi1/BotAnnotator_Backend/internal/utils"
)

var (
	errNoDatasetRecord = errors.New("no dataset stored for bot")
	errDatasetFileGone = errors.New("dataset file missing on disk")
)

// datasetLoader resolves a bot's dataset row and parses its file through the cache.
type datasetLoader struct {
	datasets repository.DatasetRepository
	store    *dataset.Store
	cache    *dataset.Cache
}

// load returns errNoDatasetRecord, errDatasetFileGone or a dataset.ErrMalformed
// wrapper for the expected failures; callers turn those into their own messages.
func (l *datasetLoader) load(ctx context.Context, botID int64) (*models.Dataset, *dataset.Table, error) {
	ds, err := l.datasets.GetByBotID(ctx, botID)
	if err != nil {
		if utils.IsNotFoundError(err) {
			return nil, nil, errNoDatasetRecord
		}
		return nil, nil, err
	}

	path, err := l.store.Path(ds.Filename)
	if err != nil {
		return ds, nil, errDatasetFileGone
	}

	table, err := l.cache.Load(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return ds, nil, errDatasetFileGone
		}
		if errors.Is(err, dataset.ErrMalformed) {
			return ds, nil, err
		}
		return ds, nil, fmt.Errorf("failed to load dataset %q: %w", ds.Filename, err)
	}

	return ds, table, nil
}

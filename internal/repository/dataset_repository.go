package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/yasinhessnawi1/BotAnnotator_Backend/internal/database"
	"github.com/yasinhessnawi1/BotAnnotator_Backend/internal/models"
	"github.com/yasinhessnawi1/BotAnnotator_Backend/internal/utils"
)

// DatasetRepository defines methods for looking up the dataset of a bot.
type DatasetRepository interface {
	Create(ctx context.Context, dataset *models.Dataset) error
	GetByBotID(ctx context.Context, botID int64) (*models.Dataset, error)
}

// SQLDatasetRepository is the database/sql implementation of DatasetRepository.
type SQLDatasetRepository struct {
	db *database.Pool
}

// NewDatasetRepository creates a new DatasetRepository.
func NewDatasetRepository(db *database.Pool) DatasetRepository {
	return &SQLDatasetRepository{
		db: db,
	}
}

// Create inserts a dataset row outside any transaction.
func (r *SQLDatasetRepository) Create(ctx context.Context, dataset *models.Dataset) error {
	return insertDataset(ctx, r.db, r.db, dataset)
}

func insertDataset(ctx context.Context, db *database.Pool, q database.Querier, dataset *models.Dataset) error {
	startTime := time.Now()
	dataset.UploadedAt = now()

	query := `
		INSERT INTO datasets (bot_id, filename, owner_username, uploaded_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	err := q.QueryRowContext(ctx, db.Rebind(query),
		dataset.BotID,
		dataset.Filename,
		dataset.OwnerUsername,
		dataset.UploadedAt,
	).Scan(&dataset.ID)

	utils.LogDBQuery(
		query,
		[]interface{}{dataset.BotID, dataset.Filename, dataset.OwnerUsername, dataset.UploadedAt},
		time.Since(startTime),
		err,
	)

	if err != nil {
		return fmt.Errorf("failed to create dataset: %w", err)
	}
	return nil
}

// GetByBotID returns the first dataset stored for a bot.
func (r *SQLDatasetRepository) GetByBotID(ctx context.Context, botID int64) (*models.Dataset, error) {
	startTime := time.Now()

	query := `
		SELECT id, bot_id, filename, owner_username, uploaded_at
		FROM datasets
		WHERE bot_id = $1
		ORDER BY id
		LIMIT 1
	`

	ds := &models.Dataset{}
	err := r.db.QueryRowContext(ctx, r.db.Rebind(query), botID).Scan(
		&ds.ID,
		&ds.BotID,
		&ds.Filename,
		&ds.OwnerUsername,
		&ds.UploadedAt,
	)

	utils.LogDBQuery(query, []interface{}{botID}, time.Since(startTime), err)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, utils.NewNotFoundError("Dataset", botID)
		}
		return nil, fmt.Errorf("failed to get dataset: %w", err)
	}

	return ds, nil
}

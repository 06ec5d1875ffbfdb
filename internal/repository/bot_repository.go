package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/yasinhessnawi1/BotAnnotator_Backend/internal/database"
	"github.com/yasinhessnawi1/BotAnnotator_Backend/internal/models"
	"github.com/yasinhessnawi1/BotAnnotator_Backend/internal/utils"
)

// BotRepository defines methods for interacting with bots and their datasets.
type BotRepository interface {
	// CreateWithDataset inserts the bot and its dataset in one transaction.
	// beforeCommit runs with the new bot ID after both inserts and before the
	// commit; an error from it rolls everything back.
	CreateWithDataset(ctx context.Context, bot *models.Bot, dataset *models.Dataset, beforeCommit func(botID int64) error) error
	GetByID(ctx context.Context, id int64) (*models.Bot, error)
	ListByOwner(ctx context.Context, owner string) ([]models.BotSummary, error)
}

// SQLBotRepository is the database/sql implementation of BotRepository.
type SQLBotRepository struct {
	db *database.Pool
}

// NewBotRepository creates a new BotRepository.
func NewBotRepository(db *database.Pool) BotRepository {
	return &SQLBotRepository{
		db: db,
	}
}

// CreateWithDataset inserts a bot row and a dataset row atomically.
func (r *SQLBotRepository) CreateWithDataset(ctx context.Context, bot *models.Bot, dataset *models.Dataset, beforeCommit func(botID int64) error) error {
	err := r.db.Transaction(ctx, func(tx *sql.Tx) error {
		if err := r.insertBot(ctx, tx, bot); err != nil {
			return err
		}

		dataset.BotID = bot.ID
		if err := insertDataset(ctx, r.db, tx, dataset); err != nil {
			return err
		}

		if beforeCommit != nil {
			return beforeCommit(bot.ID)
		}
		return nil
	})
	if err != nil {
		return err
	}

	log.Info().
		Int64("bot_id", bot.ID).
		Str("name", bot.Name).
		Str("owner", bot.OwnerUsername).
		Str("filename", dataset.Filename).
		Msg("Bot created")

	return nil
}

func (r *SQLBotRepository) insertBot(ctx context.Context, q database.Querier, bot *models.Bot) error {
	startTime := time.Now()
	bot.CreatedAt = now()

	query := `
		INSERT INTO bots (name, owner_username, created_at)
		VALUES ($1, $2, $3)
		RETURNING id
	`

	err := q.QueryRowContext(ctx, r.db.Rebind(query), bot.Name, bot.OwnerUsername, bot.CreatedAt).Scan(&bot.ID)

	utils.LogDBQuery(query, []interface{}{bot.Name, bot.OwnerUsername, bot.CreatedAt}, time.Since(startTime), err)

	if err != nil {
		return fmt.Errorf("failed to create bot: %w", err)
	}
	return nil
}

// GetByID retrieves a bot by ID.
func (r *SQLBotRepository) GetByID(ctx context.Context, id int64) (*models.Bot, error) {
	startTime := time.Now()

	query := `SELECT id, name, owner_username, created_at FROM bots WHERE id = $1`

	bot := &models.Bot{}
	err := r.db.QueryRowContext(ctx, r.db.Rebind(query), id).Scan(
		&bot.ID,
		&bot.Name,
		&bot.OwnerUsername,
		&bot.CreatedAt,
	)

	utils.LogDBQuery(query, []interface{}{id}, time.Since(startTime), err)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, utils.NewNotFoundError("Bot", id)
		}
		return nil, fmt.Errorf("failed to get bot: %w", err)
	}

	return bot, nil
}

// ListByOwner returns the bots of owner ordered by ID.
func (r *SQLBotRepository) ListByOwner(ctx context.Context, owner string) ([]models.BotSummary, error) {
	startTime := time.Now()

	query := `SELECT id, name FROM bots WHERE owner_username = $1 ORDER BY id`

	rows, err := r.db.QueryContext(ctx, r.db.Rebind(query), owner)

	utils.LogDBQuery(query, []interface{}{owner}, time.Since(startTime), err)

	if err != nil {
		return nil, fmt.Errorf("failed to list bots: %w", err)
	}
	defer closeRows(rows)

	bots := []models.BotSummary{}
	for rows.Next() {
		var b models.BotSummary
		if err := rows.Scan(&b.ID, &b.Name); err != nil {
			return nil, fmt.Errorf("failed to scan bot: %w", err)
		}
		bots = append(bots, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating bots: %w", err)
	}

	return bots, nil
}

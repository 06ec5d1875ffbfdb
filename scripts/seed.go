// Package scripts provides utility scripts for database and system management.
//
// The seeder creates a demo account and a demo bot so a fresh install has
// something to annotate. Like migrations, each seed is recorded once it has
// run and is skipped on later starts.
package scripts

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/yasinhessnawi1/BotAnnotator_Backend/internal/config"
	"github.com/yasinhessnawi1/BotAnnotator_Backend/internal/constants"
	"github.com/yasinhessnawi1/BotAnnotator_Backend/internal/database"
	"github.com/yasinhessnawi1/BotAnnotator_Backend/internal/models"
	"github.com/yasinhessnawi1/BotAnnotator_Backend/internal/utils"
)

// demoDataset is a small question/answer table covering the keyword intents.
const demoDataset = `question,answer,intent
book a flight,Where would you like to fly to?,book_flight
I need a plane ticket to Oslo,Which date do you want to travel?,book_flight
check the weather,Which city should I check?,check_weather
will it rain tomorrow in Bergen,Expect light rain in the afternoon.,check_weather
find a restaurant for dinner,What kind of food do you like?,find_restaurant
where can I eat lunch nearby,There is a cafe two blocks away.,find_restaurant
`

// UserRegistrar creates accounts.
type UserRegistrar interface {
	RegisterUser(ctx context.Context, reg *models.UserRegistration) (*models.User, error)
}

// BotCreator creates a bot from an uploaded dataset.
type BotCreator interface {
	CreateBot(ctx context.Context, name, owner, filename string, content io.Reader) (int64, error)
}

// Seeder handles database seeding.
type Seeder struct {
	db    *database.Pool
	cfg   config.SeedSettings
	users UserRegistrar
	bots  BotCreator
}

// seed is a named, run-once step.
type seed struct {
	Name     string
	SeedFunc func(ctx context.Context) error
}

// NewSeeder creates a new seeder.
func NewSeeder(db *database.Pool, cfg config.SeedSettings, users UserRegistrar, bots BotCreator) *Seeder {
	return &Seeder{
		db:    db,
		cfg:   cfg,
		users: users,
		bots:  bots,
	}
}

// SeedDatabase runs every seed that has not run before. It does nothing when
// seeding is disabled.
func (s *Seeder) SeedDatabase(ctx context.Context) error {
	if !s.cfg.Enabled {
		log.Debug().Msg("Demo seeding disabled")
		return nil
	}

	log.Info().Msg("Seeding database")
	startTime := time.Now()

	if err := s.createSeedsTable(ctx); err != nil {
		return fmt.Errorf("failed to create seeds table: %w", err)
	}

	executedSeeds, err := s.getExecutedSeeds(ctx)
	if err != nil {
		return fmt.Errorf("failed to get executed seeds: %w", err)
	}

	// the bot seed needs its owner
	seeds := []seed{
		{"demo_user", s.seedDemoUser},
		{"demo_bot", s.seedDemoBot},
	}

	for _, sd := range seeds {
		if executedSeeds[sd.Name] {
			log.Debug().Str("seed", sd.Name).Msg("Seed already executed")
			continue
		}

		log.Info().Str("seed", sd.Name).Msg("Running seed")
		if err := s.runSeed(ctx, sd); err != nil {
			return err
		}
	}

	log.Info().
		Dur("duration", time.Since(startTime)).
		Msg("Database seeding completed")

	return nil
}

// createSeedsTable creates the seeds table if it doesn't exist.
func (s *Seeder) createSeedsTable(ctx context.Context) error {
	query := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			name VARCHAR(255) PRIMARY KEY,
			executed_at %s DEFAULT CURRENT_TIMESTAMP
		)
	`, constants.TableSeeds, s.db.Dialect.Timestamp())
	_, err := s.db.ExecContext(ctx, query)
	return err
}

// getExecutedSeeds returns the names of the seeds that already ran.
func (s *Seeder) getExecutedSeeds(ctx context.Context) (map[string]bool, error) {
	query := fmt.Sprintf(`SELECT name FROM %s`, constants.TableSeeds)
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			log.Error().Err(closeErr).Msg("failed to close rows")
		}
	}()

	seeds := make(map[string]bool)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		seeds[name] = true
	}

	return seeds, rows.Err()
}

// runSeed runs one seed and records it. The seed goes through the services,
// which manage their own transactions, so only the bookkeeping row is written here.
func (s *Seeder) runSeed(ctx context.Context, sd seed) error {
	if err := sd.SeedFunc(ctx); err != nil {
		return fmt.Errorf("seed %s failed: %w", sd.Name, err)
	}

	query := s.db.Rebind(fmt.Sprintf(`INSERT INTO %s (name) VALUES ($1)`, constants.TableSeeds))
	if _, err := s.db.ExecContext(ctx, query, sd.Name); err != nil {
		return fmt.Errorf("failed to record seed: %w", err)
	}

	return nil
}

// seedDemoUser registers the demo account. An existing account is kept as is.
func (s *Seeder) seedDemoUser(ctx context.Context) error {
	_, err := s.users.RegisterUser(ctx, &models.UserRegistration{
		Username: s.cfg.Username,
		Password: s.cfg.Password,
	})
	if err != nil && !utils.IsDuplicateError(err) {
		return err
	}
	if err != nil {
		log.Info().Str("username", s.cfg.Username).Msg("Demo user already exists")
	}
	return nil
}

// seedDemoBot uploads the demo dataset as a bot owned by the demo account.
func (s *Seeder) seedDemoBot(ctx context.Context) error {
	botID, err := s.bots.CreateBot(ctx, constants.SeedBotName, s.cfg.Username,
		constants.SeedDatasetFilename, strings.NewReader(demoDataset))
	if err != nil {
		return err
	}

	log.Info().Int64("bot_id", botID).Str("owner", s.cfg.Username).Msg("Demo bot created")
	return nil
}

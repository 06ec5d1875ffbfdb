// Package migrations creates and tracks the database schema.
//
// Every table is created with CREATE TABLE IF NOT EXISTS and each migration is
// recorded in a bookkeeping table, so running the migrator on every start is
// safe and never drops data.
package migrations

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/yasinhessnawi1/BotAnnotator_Backend/internal/constants"
	"github.com/yasinhessnawi1/BotAnnotator_Backend/internal/database"
)

// Migration represents a database migration.
// Each migration performs a specific schema change and is tracked
// to ensure it runs exactly once.
type Migration struct {
	// Name is a unique identifier for the migration
	Name string
	// Description is a human-readable explanation of what the migration does
	Description string
	// TableName is the table affected by this migration, used for existence checks
	TableName string
	// RunSQL executes the migration within a transaction using DDL for the given dialect
	RunSQL func(ctx context.Context, tx *sql.Tx, dialect database.Dialect) error
}

// Migrator handles database migrations.
type Migrator struct {
	db *database.Pool
}

// NewMigrator creates a new migrator.
func NewMigrator(db *database.Pool) *Migrator {
	return &Migrator{
		db: db,
	}
}

// RunMigrations creates every missing table and records each migration once.
// A table that already exists without a record is recorded without running its SQL.
func (m *Migrator) RunMigrations(ctx context.Context) error {
	log.Info().Str("dialect", string(m.db.Dialect)).Msg("Running database migrations")
	startTime := time.Now()

	if err := m.createMigrationsTable(ctx); err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	executed, err := m.getExecutedMigrations(ctx)
	if err != nil {
		return fmt.Errorf("failed to get executed migrations: %w", err)
	}

	migrations := GetMigrations()
	migrationsRun, migrationsRecorded := 0, 0

	for _, migration := range migrations {
		exists, err := m.tableExists(ctx, migration.TableName)
		if err != nil {
			return fmt.Errorf("failed to check if table %s exists: %w", migration.TableName, err)
		}

		switch {
		case !exists:
			if executed[migration.Name] {
				log.Warn().
					Str("migration", migration.Name).
					Str("table", migration.TableName).
					Msg("Table doesn't exist but migration was recorded. Recreating it.")
			}
			if err := m.runMigration(ctx, migration, !executed[migration.Name]); err != nil {
				return err
			}
			migrationsRun++

		case !executed[migration.Name]:
			log.Info().
				Str("migration", migration.Name).
				Str("table", migration.TableName).
				Msg("Table already exists, recording migration as completed")

			if err := m.recordMigration(ctx, m.db, migration); err != nil {
				return err
			}
			migrationsRecorded++
		}
	}

	log.Info().
		Int("migrations_run", migrationsRun).
		Int("migrations_recorded", migrationsRecorded).
		Int("total_migrations", len(migrations)).
		Dur("duration", time.Since(startTime)).
		Msg("Database migrations completed")

	return nil
}

// createMigrationsTable creates the migrations table if it doesn't exist.
func (m *Migrator) createMigrationsTable(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS migrations (
			name VARCHAR(255) PRIMARY KEY,
			description TEXT,
			executed_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`
	_, err := m.db.ExecContext(ctx, query)
	return err
}

// getExecutedMigrations returns the names of recorded migrations.
func (m *Migrator) getExecutedMigrations(ctx context.Context) (map[string]bool, error) {
	rows, err := m.db.QueryContext(ctx, `SELECT name FROM migrations`)
	if err != nil {
		return nil, err
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			log.Error().Err(closeErr).Msg("failed to close rows")
		}
	}()

	migrations := make(map[string]bool)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		migrations[name] = true
	}

	return migrations, rows.Err()
}

// runMigration runs a migration within a transaction, recording it when record is set.
func (m *Migrator) runMigration(ctx context.Context, migration Migration, record bool) error {
	log.Info().
		Str("migration", migration.Name).
		Str("table", migration.TableName).
		Msg("Running migration")

	return m.db.Transaction(ctx, func(tx *sql.Tx) error {
		if err := migration.RunSQL(ctx, tx, m.db.Dialect); err != nil {
			return fmt.Errorf("migration %s failed: %w", migration.Name, err)
		}
		if !record {
			return nil
		}
		return m.recordMigration(ctx, tx, migration)
	})
}

// recordMigration inserts the bookkeeping row for a migration.
func (m *Migrator) recordMigration(ctx context.Context, q database.Querier, migration Migration) error {
	query := m.db.Rebind(`INSERT INTO migrations (name, description) VALUES ($1, $2)`)
	if _, err := q.ExecContext(ctx, query, migration.Name, migration.Description); err != nil {
		return fmt.Errorf("failed to record migration %s: %w", migration.Name, err)
	}
	return nil
}

// tableExists checks if a table exists in the current schema.
func (m *Migrator) tableExists(ctx context.Context, tableName string) (bool, error) {
	query := `
		SELECT COUNT(*)
		FROM information_schema.tables
		WHERE table_schema = current_schema()
		AND table_name = $1
	`
	if m.db.Dialect == database.SQLite {
		query = `SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = $1`
	}

	var count int
	if err := m.db.QueryRowContext(ctx, m.db.Rebind(query), tableName).Scan(&count); err != nil {
		return false, err
	}
	return count > 0, nil
}

// GetMigrations returns all migrations in the order they must be applied.
func GetMigrations() []Migration {
	return []Migration{
		createUsersTable(),
		createSessionsTable(),
		createBotsTable(),
		createDatasetsTable(),
		createAnnotationsTable(),
	}
}

// TableNames lists the tables the migrations create.
func TableNames() []string {
	return []string{
		constants.TableUsers,
		constants.TableSessions,
		constants.TableBots,
		constants.TableDatasets,
		constants.TableAnnotations,
	}
}

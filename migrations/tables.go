package migrations

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/yasinhessnawi1/BotAnnotator_Backend/internal/constants"
	"github.com/yasinhessnawi1/BotAnnotator_Backend/internal/database"
)

// execAll runs each statement in order inside tx.
func execAll(ctx context.Context, tx *sql.Tx, statements ...string) error {
	for _, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

// createUsersTable creates the users table
func createUsersTable() Migration {
	return Migration{
		Name:        "create_users_table",
		Description: "Creates the users table",
		TableName:   constants.TableUsers,
		RunSQL: func(ctx context.Context, tx *sql.Tx, d database.Dialect) error {
			return execAll(ctx, tx, fmt.Sprintf(`
				CREATE TABLE IF NOT EXISTS users (
					id %s,
					username VARCHAR(50) NOT NULL,
					password_hash VARCHAR(255) NOT NULL,
					salt VARCHAR(255) NOT NULL,
					created_at %s NOT NULL DEFAULT CURRENT_TIMESTAMP,
					updated_at %s NOT NULL DEFAULT CURRENT_TIMESTAMP,
					CONSTRAINT %s UNIQUE (username)
				)
			`, d.AutoIncrementPK(), d.Timestamp(), d.Timestamp(), constants.IndexUsername))
		},
	}
}

// createSessionsTable creates the sessions table backing bearer tokens
func createSessionsTable() Migration {
	return Migration{
		Name:        "create_sessions_table",
		Description: "Creates the sessions table",
		TableName:   constants.TableSessions,
		RunSQL: func(ctx context.Context, tx *sql.Tx, d database.Dialect) error {
			return execAll(ctx, tx,
				fmt.Sprintf(`
				CREATE TABLE IF NOT EXISTS sessions (
					id VARCHAR(36) PRIMARY KEY,
					user_id %s NOT NULL,
					jwt_id VARCHAR(36) NOT NULL,
					expires_at %s NOT NULL,
					created_at %s NOT NULL DEFAULT CURRENT_TIMESTAMP,
					CONSTRAINT %s UNIQUE (jwt_id)
				)
			`, d.ForeignKey(), d.Timestamp(), d.Timestamp(), constants.IndexJWTID),
				`CREATE INDEX IF NOT EXISTS idx_sessions_expires_at ON sessions(expires_at)`,
			)
		},
	}
}

// createBotsTable creates the bots table
func createBotsTable() Migration {
	return Migration{
		Name:        "create_bots_table",
		Description: "Creates the bots table",
		TableName:   constants.TableBots,
		RunSQL: func(ctx context.Context, tx *sql.Tx, d database.Dialect) error {
			return execAll(ctx, tx,
				fmt.Sprintf(`
				CREATE TABLE IF NOT EXISTS bots (
					id %s,
					name VARCHAR(100) NOT NULL,
					owner_username VARCHAR(50) NOT NULL,
					created_at %s NOT NULL DEFAULT CURRENT_TIMESTAMP
				)
			`, d.AutoIncrementPK(), d.Timestamp()),
				fmt.Sprintf(`CREATE INDEX IF NOT EXISTS %s ON bots(owner_username)`, constants.IndexBotOwner),
			)
		},
	}
}

// createDatasetsTable creates the datasets table. bot_id is not a foreign key;
// orphaned rows are tolerated.
func createDatasetsTable() Migration {
	return Migration{
		Name:        "create_datasets_table",
		Description: "Creates the datasets table",
		TableName:   constants.TableDatasets,
		RunSQL: func(ctx context.Context, tx *sql.Tx, d database.Dialect) error {
			return execAll(ctx, tx,
				fmt.Sprintf(`
				CREATE TABLE IF NOT EXISTS datasets (
					id %s,
					bot_id %s NOT NULL,
					filename VARCHAR(255) NOT NULL,
					owner_username VARCHAR(50) NOT NULL,
					uploaded_at %s NOT NULL DEFAULT CURRENT_TIMESTAMP
				)
			`, d.AutoIncrementPK(), d.ForeignKey(), d.Timestamp()),
				fmt.Sprintf(`CREATE INDEX IF NOT EXISTS %s ON datasets(bot_id)`, constants.IndexDatasetBot),
			)
		},
	}
}

// createAnnotationsTable creates the annotations table. Either bot_id or
// workspace_name identifies what an annotation belongs to.
func createAnnotationsTable() Migration {
	return Migration{
		Name:        "create_annotations_table",
		Description: "Creates the annotations table",
		TableName:   constants.TableAnnotations,
		RunSQL: func(ctx context.Context, tx *sql.Tx, d database.Dialect) error {
			return execAll(ctx, tx,
				fmt.Sprintf(`
				CREATE TABLE IF NOT EXISTS annotations (
					id %s,
					bot_id %s,
					workspace_name VARCHAR(100),
					sentence TEXT NOT NULL,
					intent VARCHAR(255) NOT NULL,
					entities %s NOT NULL,
					created_at %s NOT NULL DEFAULT CURRENT_TIMESTAMP
				)
			`, d.AutoIncrementPK(), d.ForeignKey(), d.JSON(), d.Timestamp()),
				fmt.Sprintf(`CREATE INDEX IF NOT EXISTS %s ON annotations(bot_id)`, constants.IndexAnnotationBot),
			)
		},
	}
}

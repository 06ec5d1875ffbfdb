// Package database provides the connection pool, dialect handling and
// transaction helpers shared by the repositories.
package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/lib/pq"
	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite" // registers the "sqlite" driver

	"github.com/yasinhessnawi1/BotAnnotator_Backend/internal/config"
	"github.com/yasinhessnawi1/BotAnnotator_Backend/internal/constants"
)

// Pool represents a database connection pool
type Pool struct {
	*sql.DB
	Dialect Dialect
}

var (
	// dbPool is the global database connection pool
	dbPool *Pool
)

// Connect opens the configured database. PostgreSQL databases are created
// on first start; SQLite files are created next to their parent directory.
func Connect(cfg *config.AppConfig) (*Pool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), constants.DBConnectionTimeout)
	defer cancel()

	var (
		db  *sql.DB
		err error
	)

	if cfg.Database.IsSQLite() {
		db, err = openSQLite(cfg.Database.Path)
	} else {
		db, err = openPostgres(ctx, &cfg.Database)
	}
	if err != nil {
		return nil, err
	}

	dialect := DialectFor(cfg.Database.Driver)

	if dialect == SQLite {
		// SQLite allows a single writer; one connection avoids SQLITE_BUSY
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(cfg.Database.MaxConns)
		db.SetMaxIdleConns(cfg.Database.MinConns)
	}
	db.SetConnMaxLifetime(constants.DBConnMaxLifetime)
	db.SetConnMaxIdleTime(constants.DBConnMaxIdleTime)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	log.Info().Str("driver", string(dialect)).Msg("Successfully connected to database")

	dbPool = &Pool{DB: db, Dialect: dialect}
	return dbPool, nil
}

func openSQLite(path string) (*sql.DB, error) {
	if path == "" {
		path = constants.DefaultSQLitePath
	}

	log.Info().Str("path", path).Msg("Opening SQLite database")

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	dsn := fmt.Sprintf("file:%s?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)", path)
	db, err := sql.Open(constants.DriverSQLite, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}
	return db, nil
}

func openPostgres(ctx context.Context, settings *config.DatabaseSettings) (*sql.DB, error) {
	log.Info().
		Str("host", settings.Host).
		Int("port", settings.Port).
		Str("database", settings.Name).
		Str("user", settings.User).
		Msg("Connecting to database")

	adminDB, err := sql.Open(constants.DriverPostgres, settings.AdminConnectionString())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to admin database: %w", err)
	}
	defer adminDB.Close()

	if err := ensureDatabase(ctx, adminDB, settings.Name); err != nil {
		return nil, err
	}

	db, err := sql.Open(constants.DriverPostgres, settings.ConnectionString())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

// ensureDatabase creates the named database if it does not exist yet.
func ensureDatabase(ctx context.Context, admin Querier, name string) error {
	var exists int
	err := admin.QueryRowContext(ctx, "SELECT 1 FROM pg_database WHERE datname = $1", name).Scan(&exists)
	if err == nil {
		return nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("failed to check database existence: %w", err)
	}

	if _, err := admin.ExecContext(ctx, "CREATE DATABASE "+pq.QuoteIdentifier(name)); err != nil {
		return fmt.Errorf("failed to create database: %w", err)
	}

	log.Info().Msgf("Created database '%s'", name)
	return nil
}

// Get returns the global database connection pool
func Get() *Pool {
	if dbPool == nil {
		log.Fatal().Msg("database connection pool not initialized")
	}
	return dbPool
}

// Close closes the database connection pool
func (p *Pool) Close() {
	if p != nil && p.DB != nil {
		log.Info().Msg("Closing database connection pool")
		if err := p.DB.Close(); err != nil {
			log.Error().Err(err).Msg("Failed to close database connection pool")
		}
	}
}

// Rebind rewrites a query written with PostgreSQL placeholders for the pool's dialect.
func (p *Pool) Rebind(query string) string {
	return p.Dialect.Rebind(query)
}

// Transaction executes a function within a transaction
func (p *Pool) Transaction(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := p.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	// Handle panics to ensure proper rollback
	defer func() {
		if r := recover(); r != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				log.Error().Err(rbErr).Msg("Failed to rollback transaction after panic")
			}
			panic(r)
		}
	}()

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("failed to rollback transaction: %w", rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// HealthCheck performs a health check on the database connection
func (p *Pool) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, constants.DBHealthCheckTimeout)
	defer cancel()

	if err := p.PingContext(ctx); err != nil {
		return fmt.Errorf("database health check failed: %w", err)
	}

	var result int
	if err := p.QueryRowContext(ctx, "SELECT 1").Scan(&result); err != nil {
		return fmt.Errorf("database query test failed: %w", err)
	}

	if result != 1 {
		return fmt.Errorf("database returned unexpected result: %d", result)
	}

	return nil
}

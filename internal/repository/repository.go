// Package repository provides data access for users, sessions, bots, datasets
// and annotations. Queries are written with PostgreSQL placeholders and
// rebound for the pool's dialect.
package repository

import (
	"database/sql"
	"time"

	"github.com/rs/zerolog/log"
)

// closeRows closes a result set, logging any error.
func closeRows(rows *sql.Rows) {
	if err := rows.Close(); err != nil {
		log.Error().Err(err).Msg("failed to close rows")
	}
}

// now returns the current time in UTC so stored timestamps compare correctly
// in both dialects.
func now() time.Time {
	return time.Now().UTC()
}

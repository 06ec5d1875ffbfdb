package database

import (
	"strings"

	"github.com/yasinhessnawi1/BotAnnotator_Backend/internal/constants"
)

// Dialect identifies the SQL flavour spoken by the pool.
type Dialect string

// Supported dialects.
const (
	Postgres Dialect = constants.DriverPostgres
	SQLite   Dialect = constants.DriverSQLite
)

// DialectFor maps a configured driver name to its dialect. Unknown names fall back to Postgres.
func DialectFor(driver string) Dialect {
	if strings.EqualFold(driver, constants.DriverSQLite) {
		return SQLite
	}
	return Postgres
}

// Rebind converts $N placeholders to SQLite's ?N form. Postgres queries are returned unchanged.
func (d Dialect) Rebind(query string) string {
	if d != SQLite {
		return query
	}

	var b strings.Builder
	b.Grow(len(query))
	inString := false
	for i := 0; i < len(query); i++ {
		c := query[i]
		switch {
		case c == '\'':
			inString = !inString
			b.WriteByte(c)
		case c == '$' && !inString && i+1 < len(query) && isDigit(query[i+1]):
			b.WriteByte('?')
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

// AutoIncrementPK is the column definition for a generated integer primary key.
func (d Dialect) AutoIncrementPK() string {
	if d == SQLite {
		return "INTEGER PRIMARY KEY AUTOINCREMENT"
	}
	return "BIGSERIAL PRIMARY KEY"
}

// Timestamp is the column type used for points in time.
func (d Dialect) Timestamp() string {
	if d == SQLite {
		return "TIMESTAMP"
	}
	return "TIMESTAMPTZ"
}

// JSON is the column type used for structured documents.
func (d Dialect) JSON() string {
	if d == SQLite {
		return "TEXT"
	}
	return "JSONB"
}

// ForeignKey is the column type used for references to generated keys.
func (d Dialect) ForeignKey() string {
	if d == SQLite {
		return "INTEGER"
	}
	return "BIGINT"
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

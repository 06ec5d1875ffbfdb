package constants

// Database Table Names.
const (
	TableUsers       = "users"
	TableSessions    = "sessions"
	TableBots        = "bots"
	TableDatasets    = "datasets"
	TableAnnotations = "annotations"
	TableMigrations  = "migrations"
	TableSeeds       = "seeds"
)

// Index and constraint names.
const (
	IndexUsername      = "idx_username"
	IndexJWTID         = "idx_jwt_id"
	IndexBotOwner      = "idx_bots_owner"
	IndexDatasetBot    = "idx_datasets_bot"
	IndexAnnotationBot = "idx_annotations_bot"
)

// Postgres connection parameters.
const (
	PostgresSSLDisable = "sslmode=disable connect_timeout=15"
	PostgresAdminDB    = "postgres"
)

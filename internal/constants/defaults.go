// Package constants provides shared constant values used throughout the application.
//
// The defaults.go file defines default values and limits used when the configuration
// leaves a setting empty, plus the fixed limits of the annotation workflow.
package constants

// Default Configuration Values define fallback settings when not specified in configuration.
const (
	// DefaultServerPort is the default HTTP server port.
	DefaultServerPort = 8000
	// DefaultDBDriver is the database dialect used when none is configured.
	DefaultDBDriver = "postgres"
	// DefaultDBMaxConnections is the default maximum number of database connections.
	DefaultDBMaxConnections = 20
	// DefaultDBMinConnections is the default minimum number of database connections.
	DefaultDBMinConnections = 5
	// DefaultSQLitePath is the database file used by the sqlite dialect.
	DefaultSQLitePath = "chatbot.db"
	// DefaultLogLevel is the default logging verbosity level.
	DefaultLogLevel = "info"
	// DefaultLogFormat is the default logging output format.
	DefaultLogFormat = "json"
)

// Environment Types define the recognized application running environments.
const (
	// EnvDevelopment identifies a development environment with debugging features enabled.
	EnvDevelopment = "development"
	// EnvTesting identifies a testing environment for automated tests.
	EnvTesting = "testing"
	// EnvProduction identifies a production environment with optimized settings.
	EnvProduction = "production"
)

// Database dialects understood by the storage layer.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Upload and dataset limits.
const (
	// MaxRequestBodySize is the maximum size in bytes for non-upload HTTP request bodies.
	MaxRequestBodySize = 1048576 // 1MB
	// DefaultMaxUploadBytes caps a single dataset upload.
	DefaultMaxUploadBytes = 32 << 20
	// MultipartMemoryBytes is how much of a multipart upload is held in memory before spilling to disk.
	MultipartMemoryBytes = 8 << 20
	// DefaultUploadDir is the flat directory uploaded dataset files are copied into.
	DefaultUploadDir = "uploads"
	// DatasetPreviewRows is the fixed number of rows returned by a dataset preview.
	DatasetPreviewRows = 10
	// UnknownIntent is returned when no dataset row matches the sentence.
	UnknownIntent = "Unknown"
)

// Dataset column names recognised by the annotation and training workflows.
const (
	ColumnQuestion = "question"
	ColumnSentence = "sentence"
	ColumnAnswer   = "answer"
	ColumnResponse = "response"
	ColumnIntent   = "intent"
)

// Default NLP settings.
const (
	// RecognizerHugot runs a local ONNX token-classification model.
	RecognizerHugot = "hugot"
	// RecognizerNone disables entity recognition; annotate returns no entities.
	RecognizerNone = "none"
	// DefaultNERModel is the Hugging Face model used by the hugot recognizer.
	DefaultNERModel = "KnightsAnalytics/distilbert-NER"
	// DefaultModelDir is where downloaded models are cached.
	DefaultModelDir = "./models"
	// DefaultONNXFile is the model file inside the downloaded repository.
	DefaultONNXFile = "model.onnx"
)

// Default Rate Limit Settings.
const (
	DefaultRateLimitRPS   = 5.0
	DefaultRateLimitBurst = 10
)

// Default Password Hash Settings define the parameters for password hashing.
const (
	// DefaultPasswordHashMemory is the memory cost parameter for Argon2id hashing.
	DefaultPasswordHashMemory = 64 * 1024
	// DefaultPasswordHashIterations is the number of iterations for Argon2id hashing.
	DefaultPasswordHashIterations = 3
	// DefaultPasswordHashParallelism is the parallelism parameter for Argon2id hashing.
	DefaultPasswordHashParallelism = 2
	// DefaultPasswordHashSaltLength is the length in bytes of the random salt.
	DefaultPasswordHashSaltLength = 16
	// DefaultPasswordHashKeyLength is the length in bytes of the generated hash.
	DefaultPasswordHashKeyLength = 32
	// DevPasswordHashMemory is a reduced memory setting for development environments.
	DevPasswordHashMemory = 16 * 1024
	// DevPasswordHashIterations is a reduced iteration count for development environments.
	DevPasswordHashIterations = 1
)

// Auth Constants.
const (
	// DefaultJWTIssuer is the issuer claim value for JWT tokens.
	DefaultJWTIssuer = "bot-annotator-api"
	// BearerTokenPrefix is the prefix for Authorization header bearer tokens.
	BearerTokenPrefix = "Bearer "
	// TokenTypeBearer is reported to clients alongside issued tokens.
	TokenTypeBearer = "Bearer"
	// TokenTypeAccess marks access tokens in the JWT claims.
	TokenTypeAccess = "access"
)

// Field length limits.
const (
	MinPasswordLength = 6
	MinUsernameLength = 3
	MaxUsernameLength = 50
	MaxBotNameLength  = 100
)

// Demo seed data.
const (
	// DefaultSeedUsername owns the demo bot.
	DefaultSeedUsername = "demo"
	// SeedBotName is the name of the demo bot.
	SeedBotName = "Travel assistant"
	// SeedDatasetFilename is the upload name of the demo dataset.
	SeedDatasetFilename = "demo_travel.csv"
)

// Package config provides configuration management for the annotation backend.
//
// Configuration is read from a YAML file, then overridden by environment variables
// declared through `env` struct tags, then completed with defaults and validated.
// Secrets are redacted before the loaded configuration is logged.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	"github.com/yasinhessnawi1/BotAnnotator_Backend/internal/constants"
)

// AppConfig represents the complete application configuration.
type AppConfig struct {
	App          AppSettings       `yaml:"app"`
	Database     DatabaseSettings  `yaml:"database"`
	Server       ServerSettings    `yaml:"server"`
	JWT          JWTSettings       `yaml:"jwt"`
	Logging      LoggingSettings   `yaml:"logging"`
	CORS         CORSSettings      `yaml:"cors"`
	PasswordHash HashSettings      `yaml:"password_hash"`
	Storage      StorageSettings   `yaml:"storage"`
	NLP          NLPSettings       `yaml:"nlp"`
	RateLimit    RateLimitSettings `yaml:"rate_limit"`
	Seed         SeedSettings      `yaml:"seed"`
}

// AppSettings contains general application settings.
type AppSettings struct {
	Environment string `yaml:"environment" env:"APP_ENV"`
	Name        string `yaml:"name" env:"APP_NAME"`
	Version     string `yaml:"version" env:"APP_VERSION"`
}

// DatabaseSettings contains database connection settings.
// Driver selects the SQL dialect; Path is only used by the sqlite driver.
type DatabaseSettings struct {
	Driver   string `yaml:"driver" env:"DB_DRIVER"`
	Host     string `yaml:"host" env:"DB_HOST"`
	Port     int    `yaml:"port" env:"DB_PORT"`
	Name     string `yaml:"name" env:"DB_NAME"`
	User     string `yaml:"user" env:"DB_USER"`
	Password string `yaml:"password" env:"DB_PASSWORD"`
	Path     string `yaml:"path" env:"DB_PATH"`
	MaxConns int    `yaml:"max_conns" env:"DB_MAX_CONNS"`
	MinConns int    `yaml:"min_conns" env:"DB_MIN_CONNS"`
}

// ServerSettings contains HTTP server settings.
type ServerSettings struct {
	Host            string        `yaml:"host" env:"SERVER_HOST"`
	Port            int           `yaml:"port" env:"SERVER_PORT"`
	ReadTimeout     time.Duration `yaml:"read_timeout" env:"SERVER_READ_TIMEOUT"`
	WriteTimeout    time.Duration `yaml:"write_timeout" env:"SERVER_WRITE_TIMEOUT"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT"`

	// TrustProxy takes the client address from X-Forwarded-For / X-Real-IP.
	// Enable it only behind a reverse proxy that overwrites those headers.
	TrustProxy bool `yaml:"trust_proxy" env:"SERVER_TRUST_PROXY"`
}

// JWTSettings contains settings for the signed session tokens.
type JWTSettings struct {
	Secret string        `yaml:"secret" env:"JWT_SECRET"`
	Expiry time.Duration `yaml:"expiry" env:"JWT_EXPIRY"`
	Issuer string        `yaml:"issuer" env:"JWT_ISSUER"`
}

// LoggingSettings contains logging configuration.
type LoggingSettings struct {
	Level      string `yaml:"level" env:"LOG_LEVEL"`
	Format     string `yaml:"format" env:"LOG_FORMAT"`
	RequestLog bool   `yaml:"request_log" env:"LOG_REQUESTS"`
}

// CORSSettings contains CORS configuration.
type CORSSettings struct {
	AllowedOrigins   []string `yaml:"allowed_origins" env:"ALLOWED_ORIGINS"`
	AllowCredentials bool     `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS"`
}

// HashSettings contains Argon2id parameters used for new password hashes.
type HashSettings struct {
	Memory      uint32 `yaml:"memory" env:"HASH_MEMORY"`
	Iterations  uint32 `yaml:"iterations" env:"HASH_ITERATIONS"`
	Parallelism uint8  `yaml:"parallelism" env:"HASH_PARALLELISM"`
	SaltLength  uint32 `yaml:"salt_length" env:"HASH_SALT_LENGTH"`
	KeyLength   uint32 `yaml:"key_length" env:"HASH_KEY_LENGTH"`
}

// StorageSettings controls where uploaded dataset files live.
type StorageSettings struct {
	UploadDir      string `yaml:"upload_dir" env:"UPLOAD_DIR"`
	MaxUploadBytes int64  `yaml:"max_upload_bytes" env:"MAX_UPLOAD_BYTES"`
	WatchUploads   bool   `yaml:"watch_uploads" env:"WATCH_UPLOADS"`
}

// NLPSettings selects and configures the entity recognizer.
type NLPSettings struct {
	Recognizer      string `yaml:"recognizer" env:"NLP_RECOGNIZER"`
	ModelName       string `yaml:"model_name" env:"NLP_MODEL_NAME"`
	ModelDir        string `yaml:"model_dir" env:"NLP_MODEL_DIR"`
	ONNXFile        string `yaml:"onnx_file" env:"NLP_ONNX_FILE"`
	NormalizeLabels *bool  `yaml:"normalize_labels" env:"NLP_NORMALIZE_LABELS"`
}

// SeedSettings controls the demo account and bot created on startup.
type SeedSettings struct {
	Enabled  bool   `yaml:"enabled" env:"SEED_DEMO"`
	Username string `yaml:"username" env:"SEED_USERNAME"`
	Password string `yaml:"password" env:"SEED_PASSWORD"`
}

// RateLimitSettings configures the per-client token buckets.
type RateLimitSettings struct {
	Enabled           bool    `yaml:"enabled" env:"RATE_LIMIT_ENABLED"`
	RequestsPerSecond float64 `yaml:"requests_per_second" env:"RATE_LIMIT_RPS"`
	Burst             int     `yaml:"burst" env:"RATE_LIMIT_BURST"`
}

// ConnectionString returns a lib/pq connection string for the configured database.
func (dbs *DatabaseSettings) ConnectionString() string {
	return dbs.connectionStringFor(dbs.Name)
}

// AdminConnectionString returns a connection string for the maintenance database,
// used to create the application database when it does not exist yet.
func (dbs *DatabaseSettings) AdminConnectionString() string {
	return dbs.connectionStringFor(constants.PostgresAdminDB)
}

func (dbs *DatabaseSettings) connectionStringFor(name string) string {
	parts := []string{
		fmt.Sprintf("host=%s", dbs.Host),
		fmt.Sprintf("port=%d", dbs.Port),
		fmt.Sprintf("user=%s", dbs.User),
		fmt.Sprintf("dbname=%s", name),
	}
	if dbs.Password != "" {
		parts = append(parts, fmt.Sprintf("password=%s", dbs.Password))
	}
	parts = append(parts, constants.PostgresSSLDisable)
	return strings.Join(parts, " ")
}

// IsSQLite reports whether the embedded sqlite dialect is selected.
func (dbs *DatabaseSettings) IsSQLite() bool {
	return strings.EqualFold(dbs.Driver, constants.DriverSQLite)
}

// ServerAddress returns the formatted server address (host:port).
func (ss *ServerSettings) ServerAddress() string {
	return fmt.Sprintf("%s:%d", ss.Host, ss.Port)
}

// LabelNormalization reports whether recognizer labels should be mapped to the
// dashboard vocabulary. It defaults to true when unset.
func (ns *NLPSettings) LabelNormalization() bool {
	return ns.NormalizeLabels == nil || *ns.NormalizeLabels
}

// IsProduction returns true if the application is running in production mode.
func (as *AppSettings) IsProduction() bool {
	return strings.ToLower(as.Environment) == constants.EnvProduction
}

var (
	cfg *AppConfig
)

// Load loads configuration from a YAML file and environment variables.
// A missing file is not an error; environment variables and defaults still apply.
func Load(configPath string) (*AppConfig, error) {
	config := &AppConfig{}

	if _, err := os.Stat(configPath); err == nil {
		data, err := os.ReadFile(filepath.Clean(configPath))
		if err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}

		if err := yaml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("error parsing config file: %w", err)
		}
	}

	if err := LoadEnv(config); err != nil {
		return nil, fmt.Errorf("error loading environment variables: %w", err)
	}

	setDefaults(config)

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	cfg = config

	logConfig(config)

	return config, nil
}

// Get returns the loaded configuration.
func Get() *AppConfig {
	if cfg == nil {
		log.Fatal().Msg("configuration not loaded")
	}
	return cfg
}

func setDefaults(config *AppConfig) {
	if config.App.Environment == "" {
		config.App.Environment = constants.EnvDevelopment
	}
	if config.App.Name == "" {
		config.App.Name = "bot-annotator"
	}
	if config.App.Version == "" {
		config.App.Version = "1.0.0"
	}

	if config.Server.Port == 0 {
		config.Server.Port = constants.DefaultServerPort
	}
	if config.Server.ReadTimeout == 0 {
		config.Server.ReadTimeout = constants.DefaultReadTimeout
	}
	if config.Server.WriteTimeout == 0 {
		config.Server.WriteTimeout = constants.DefaultWriteTimeout
	}
	if config.Server.ShutdownTimeout == 0 {
		config.Server.ShutdownTimeout = constants.DefaultShutdownTimeout
	}

	if config.Database.Driver == "" {
		config.Database.Driver = constants.DefaultDBDriver
	}
	config.Database.Driver = strings.ToLower(config.Database.Driver)
	if config.Database.Path == "" {
		config.Database.Path = constants.DefaultSQLitePath
	}
	if config.Database.Port == 0 {
		config.Database.Port = 5432
	}
	if config.Database.Host == "" {
		config.Database.Host = "localhost"
	}
	if config.Database.MaxConns == 0 {
		config.Database.MaxConns = constants.DefaultDBMaxConnections
	}
	if config.Database.MinConns == 0 {
		config.Database.MinConns = constants.DefaultDBMinConnections
	}

	if config.JWT.Expiry == 0 {
		config.JWT.Expiry = constants.DefaultJWTExpiry
	}
	if config.JWT.Issuer == "" {
		config.JWT.Issuer = constants.DefaultJWTIssuer
	}

	if config.Logging.Level == "" {
		config.Logging.Level = constants.DefaultLogLevel
	}
	if config.Logging.Format == "" {
		config.Logging.Format = constants.DefaultLogFormat
	}

	if len(config.CORS.AllowedOrigins) == 0 {
		config.CORS.AllowedOrigins = []string{"*"}
	}

	if config.PasswordHash.Memory == 0 {
		if config.App.IsProduction() {
			config.PasswordHash.Memory = constants.DefaultPasswordHashMemory
		} else {
			config.PasswordHash.Memory = constants.DevPasswordHashMemory
		}
	}
	if config.PasswordHash.Iterations == 0 {
		if config.App.IsProduction() {
			config.PasswordHash.Iterations = constants.DefaultPasswordHashIterations
		} else {
			config.PasswordHash.Iterations = constants.DevPasswordHashIterations
		}
	}
	if config.PasswordHash.Parallelism == 0 {
		config.PasswordHash.Parallelism = constants.DefaultPasswordHashParallelism
	}
	if config.PasswordHash.SaltLength == 0 {
		config.PasswordHash.SaltLength = constants.DefaultPasswordHashSaltLength
	}
	if config.PasswordHash.KeyLength == 0 {
		config.PasswordHash.KeyLength = constants.DefaultPasswordHashKeyLength
	}

	if config.Storage.UploadDir == "" {
		config.Storage.UploadDir = constants.DefaultUploadDir
	}
	if config.Storage.MaxUploadBytes == 0 {
		config.Storage.MaxUploadBytes = constants.DefaultMaxUploadBytes
	}

	if config.NLP.Recognizer == "" {
		config.NLP.Recognizer = constants.RecognizerHugot
	}
	config.NLP.Recognizer = strings.ToLower(config.NLP.Recognizer)
	if config.NLP.ModelName == "" {
		config.NLP.ModelName = constants.DefaultNERModel
	}
	if config.NLP.ModelDir == "" {
		config.NLP.ModelDir = constants.DefaultModelDir
	}
	if config.NLP.ONNXFile == "" {
		config.NLP.ONNXFile = constants.DefaultONNXFile
	}

	if config.RateLimit.RequestsPerSecond == 0 {
		config.RateLimit.RequestsPerSecond = constants.DefaultRateLimitRPS
	}
	if config.RateLimit.Burst == 0 {
		config.RateLimit.Burst = constants.DefaultRateLimitBurst
	}

	if config.Seed.Username == "" {
		config.Seed.Username = constants.DefaultSeedUsername
	}
}

func validateConfig(config *AppConfig) error {
	env := strings.ToLower(config.App.Environment)
	if env != constants.EnvDevelopment && env != constants.EnvTesting && env != constants.EnvProduction {
		log.Warn().Str("environment", config.App.Environment).Msg("Invalid environment, defaulting to development")
		config.App.Environment = constants.EnvDevelopment
	}

	if config.App.IsProduction() && (config.JWT.Secret == "" || config.JWT.Secret == "changeme") {
		return fmt.Errorf("JWT secret must be set in production")
	}

	switch config.Database.Driver {
	case constants.DriverPostgres:
		if config.Database.User == "" {
			return fmt.Errorf("database user must be set")
		}
		if config.Database.Name == "" {
			return fmt.Errorf("database name must be set")
		}
	case constants.DriverSQLite:
	default:
		return fmt.Errorf("unsupported database driver: %s", config.Database.Driver)
	}

	switch config.NLP.Recognizer {
	case constants.RecognizerHugot, constants.RecognizerNone:
	default:
		return fmt.Errorf("unsupported entity recognizer: %s", config.NLP.Recognizer)
	}

	if config.Seed.Enabled && config.Seed.Password == "" {
		return fmt.Errorf("seed password must be set when demo seeding is enabled")
	}

	if config.Storage.MaxUploadBytes < 0 {
		return fmt.Errorf("max upload bytes must not be negative")
	}

	logLevel := strings.ToLower(config.Logging.Level)
	validLevels := []string{"debug", "info", "warn", "error", "fatal", "panic"}
	validLevel := false
	for _, level := range validLevels {
		if logLevel == level {
			validLevel = true
			break
		}
	}
	if !validLevel {
		return fmt.Errorf("invalid log level: %s", config.Logging.Level)
	}

	return nil
}

// logConfig logs the configuration with secrets left out.
func logConfig(config *AppConfig) {
	log.Info().
		Str("environment", config.App.Environment).
		Str("version", config.App.Version).
		Str("server", config.Server.ServerAddress()).
		Str("db_driver", config.Database.Driver).
		Str("db_host", config.Database.Host).
		Str("db_name", config.Database.Name).
		Str("upload_dir", config.Storage.UploadDir).
		Str("recognizer", config.NLP.Recognizer).
		Str("log_level", config.Logging.Level).
		Msg("Configuration loaded")
}

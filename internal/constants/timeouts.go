package constants

import "time"

// Server Timeouts.
const (
	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second
	DefaultIdleTimeout     = 120 * time.Second
)

// Database Timeouts.
const (
	DBConnectionTimeout   = 10 * time.Second
	DBHealthCheckTimeout  = 5 * time.Second
	DBConnMaxLifetime     = 1 * time.Hour
	DBConnMaxIdleTime     = 30 * time.Minute
	DBMaintenanceInterval = 1 * time.Hour
	DBMaintenanceTimeout  = 5 * time.Minute
	DBSlowQueryThreshold  = 100 * time.Millisecond
)

// Token and limiter lifetimes.
const (
	DefaultJWTExpiry         = 24 * time.Hour
	RateLimitCleanupInterval = 10 * time.Minute
	RateLimitIdleTTL         = 30 * time.Minute
)

// Dataset cache lifetimes.
const (
	DatasetCacheTTL             = 30 * time.Minute
	DatasetCacheCleanupInterval = 10 * time.Minute
)

package service

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/yasinhessnawi1/BotAnnotator_Backend/internal/config"
	"github.com/yasinhessnawi1/BotAnnotator_Backend/internal/constants"
	"github.com/yasinhessnawi1/BotAnnotator_Backend/internal/utils/ratelimit"
)

// SecurityService applies per-client rate limits to endpoint categories.
type SecurityService struct {
	enabled          bool
	rateLimiterStore *ratelimit.Store
	cleanupInterval  time.Duration
}

// NewSecurityService creates a SecurityService from the rate limit settings.
// Login and registration share the configured rate; the remaining endpoints
// are allowed a multiple of it.
func NewSecurityService(cfg *config.RateLimitSettings) *SecurityService {
	base := ratelimit.Rate{
		RequestsPerSecond: cfg.RequestsPerSecond,
		Burst:             cfg.Burst,
	}
	if base.RequestsPerSecond <= 0 {
		base.RequestsPerSecond = constants.DefaultRateLimitRPS
	}
	if base.Burst <= 0 {
		base.Burst = constants.DefaultRateLimitBurst
	}

	store := ratelimit.NewStore(base, constants.RateLimitIdleTTL)
	store.SetRate(constants.RateCategoryAuth, base)
	store.SetRate(constants.RateCategoryAPI, ratelimit.Rate{
		RequestsPerSecond: base.RequestsPerSecond * constants.APIRateMultiplier,
		Burst:             base.Burst * constants.APIRateMultiplier,
	})

	log.Info().
		Bool("enabled", cfg.Enabled).
		Float64("rps", base.RequestsPerSecond).
		Int("burst", base.Burst).
		Msg("Rate limiting configured")

	return &SecurityService{
		enabled:          cfg.Enabled,
		rateLimiterStore: store,
		cleanupInterval:  constants.RateLimitCleanupInterval,
	}
}

// Enabled reports whether requests are limited at all.
func (s *SecurityService) Enabled() bool {
	return s.enabled
}

// Allow takes a token for clientID in category. When the bucket is empty it
// reports how long the client should wait.
func (s *SecurityService) Allow(clientID, category string) (bool, time.Duration) {
	if !s.enabled {
		return true, 0
	}

	limiter := s.rateLimiterStore.GetLimiter(clientID, category)
	if limiter.Allow() {
		return true, 0
	}

	log.Warn().
		Str("client", clientID).
		Str("category", category).
		Msg("Rate limit exceeded")

	return false, limiter.RetryAfter()
}

// Run evicts idle limiters until ctx is cancelled.
func (s *SecurityService) Run(ctx context.Context) {
	s.rateLimiterStore.Run(ctx, s.cleanupInterval)
}

// TrackedClients returns the number of live limiters.
func (s *SecurityService) TrackedClients() int {
	return s.rateLimiterStore.Len()
}

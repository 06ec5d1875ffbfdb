package ratelimit

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// DefaultCategory is used when a category has no rate of its own.
const DefaultCategory = "default"

// Store manages rate limiters for multiple clients.
// Limiters are keyed by category and client so a client's login attempts do
// not share a bucket with its annotation requests.
type Store struct {
	limiters map[string]*Limiter
	rates    map[string]Rate
	mu       sync.RWMutex

	// idleTTL is how long a limiter may go unused before it is evicted
	idleTTL time.Duration
}

// NewStore creates a new store for managing rate limiters.
func NewStore(defaultRate Rate, idleTTL time.Duration) *Store {
	return &Store{
		limiters: make(map[string]*Limiter),
		rates:    map[string]Rate{DefaultCategory: defaultRate},
		idleTTL:  idleTTL,
	}
}

// SetRate sets a rate limit for a specific category.
func (s *Store) SetRate(category string, rate Rate) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rates[category] = rate
}

// GetLimiter returns the limiter for clientID within category, creating it on first use.
func (s *Store) GetLimiter(clientID, category string) *Limiter {
	key := category + "|" + clientID

	s.mu.RLock()
	limiter, exists := s.limiters[key]
	s.mu.RUnlock()
	if exists {
		return limiter
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// another goroutine may have won the race
	if limiter, exists = s.limiters[key]; exists {
		return limiter
	}

	rate, ok := s.rates[category]
	if !ok {
		rate = s.rates[DefaultCategory]
	}
	limiter = NewLimiter(rate)
	s.limiters[key] = limiter
	return limiter
}

// Len returns the number of tracked limiters.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.limiters)
}

// Run evicts idle limiters every interval until ctx is cancelled.
func (s *Store) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			if removed := s.cleanup(now); removed > 0 {
				log.Debug().Int("removed", removed).Msg("Evicted idle rate limiters")
			}
		}
	}
}

// cleanup removes limiters that have not been used within idleTTL of now.
func (s *Store) cleanup(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for key, limiter := range s.limiters {
		if now.Sub(limiter.LastSeen()) > s.idleTTL {
			delete(s.limiters, key)
			removed++
		}
	}
	return removed
}
